package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductCreatedTopic names the RabbitMQ queue and the Kafka topic that carry
// product creation events.
const ProductCreatedTopic = "product-created"

const ProductCreatedEventType = "product_created"

type ProductCreatedEvent struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Description  string          `json:"description"`
	DepartmentID int64           `json:"departmentId"`
	Price        decimal.Decimal `json:"price"`
	CreatedAt    time.Time       `json:"createdAt"`
	RequestID    string          `json:"requestId,omitempty"`
}

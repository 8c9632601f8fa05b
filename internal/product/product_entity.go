package product

import (
	"time"

	"go-inventory/internal/lifecycle"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Code         string           `gorm:"type:varchar(50);not null"`
	Description  string           `gorm:"type:varchar(100);not null"`
	DepartmentID int64            `gorm:"not null"`
	Price        decimal.Decimal  `gorm:"type:numeric(18,2);not null"`
	Status       lifecycle.Status `gorm:"type:varchar(16);not null;default:active"`
	CreatedAt    time.Time        `gorm:"autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"autoUpdateTime"`

	// Filled by list and lookup queries from the departments table.
	DepartmentTitle *string `gorm:"->;-:migration"`
}

func (Product) TableName() string {
	return "products"
}

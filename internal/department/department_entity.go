package department

import (
	"time"

	"go-inventory/internal/lifecycle"
)

type Department struct {
	ID        int64            `gorm:"primaryKey;autoIncrement"`
	Name      string           `gorm:"type:text;not null"`
	Status    lifecycle.Status `gorm:"type:varchar(16);not null;default:active"`
	CreatedAt time.Time        `gorm:"autoCreateTime"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime"`
}

func (Department) TableName() string {
	return "departments"
}

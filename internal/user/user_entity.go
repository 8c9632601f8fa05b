package user

import (
	"time"

	"go-inventory/internal/lifecycle"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Name         string           `gorm:"type:varchar(100);not null"`
	Email        string           `gorm:"type:varchar(100);not null"`
	PasswordHash string           `gorm:"type:text;not null"`
	Status       lifecycle.Status `gorm:"type:varchar(16);not null;default:active"`
	CreatedAt    time.Time        `gorm:"autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

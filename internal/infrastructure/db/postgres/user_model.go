package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
	Name             string         `gorm:"not null"`
	Email            string         `gorm:"uniqueIndex;not null"`
	Password         string         `gorm:"not null"`
	ResetToken       *string        `gorm:"index"`
	ResetTokenExpiry *time.Time
}

func (UserModel) TableName() string {
	return "users"
}

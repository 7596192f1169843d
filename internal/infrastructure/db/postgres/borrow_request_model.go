package postgres

import (
	"time"

	"github.com/google/uuid"
)

type BorrowRequestModel struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookId       uuid.UUID `gorm:"type:uuid;not null;index"`
	RequesterId  uuid.UUID `gorm:"type:uuid;not null;index"`
	OwnerId      uuid.UUID `gorm:"type:uuid;not null;index"`
	Status       string    `gorm:"not null;default:pending;index"`
	Message      *string
	RequestDate  time.Time `gorm:"not null"`
	ResponseDate *time.Time
}

func (BorrowRequestModel) TableName() string {
	return "borrow_requests"
}

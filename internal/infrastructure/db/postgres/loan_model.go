package postgres

import (
	"time"

	"github.com/google/uuid"
)

type LoanModel struct {
	Id         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserId     uuid.UUID  `gorm:"type:uuid;not null;index"`
	BookId     uuid.UUID  `gorm:"type:uuid;not null;index"`
	RequestId  *uuid.UUID `gorm:"type:uuid"`
	BorrowedAt time.Time  `gorm:"not null"`
	DueDate    time.Time  `gorm:"not null"`
	ReturnedAt *time.Time
}

// The table keeps the historical name from the first schema version.
func (LoanModel) TableName() string {
	return "borrowed_books"
}

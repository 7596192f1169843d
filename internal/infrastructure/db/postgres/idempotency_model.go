package postgres

import (
	"time"

	"github.com/google/uuid"
)

type IdempotencyRecordModel struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key        string    `gorm:"uniqueIndex;not null"`
	Request    string
	Response   string
	StatusCode int
	CreatedAt  time.Time
}

func (IdempotencyRecordModel) TableName() string {
	return "idempotency_records"
}

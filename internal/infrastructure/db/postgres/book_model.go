package postgres

import (
	"time"

	"github.com/google/uuid"
)

type BookModel struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Title         string `gorm:"not null"`
	Author        string `gorm:"not null"`
	ISBN          string `gorm:"column:isbn;uniqueIndex;not null"`
	PublishedYear int    `gorm:"not null"`
	Description   *string
	CoverImage    *string
	Available     bool      `gorm:"not null;default:true"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"`
}

func (BookModel) TableName() string {
	return "books"
}

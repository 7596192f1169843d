package command

import (
	"github.com/google/uuid"

	"booklending-service/internal/application/common"
)

type CreateBookCommand struct {
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	ISBN          string    `json:"isbn"`
	PublishedYear int       `json:"publishedYear"`
	Description   *string   `json:"description"`
	CoverImage    *string   `json:"coverImage"`
	OwnerId       uuid.UUID `json:"-"`
}

type CreateBookCommandResult struct {
	Result *common.BookResult `json:"result"`
}

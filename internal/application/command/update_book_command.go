package command

import (
	"github.com/google/uuid"

	"booklending-service/internal/application/common"
)

type UpdateBookCommand struct {
	BookId        uuid.UUID `json:"-"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	ISBN          string    `json:"isbn"`
	PublishedYear int       `json:"publishedYear"`
	Description   *string   `json:"description"`
	CoverImage    *string   `json:"coverImage"`
	CallerId      uuid.UUID `json:"-"`
}

type UpdateBookCommandResult struct {
	Result *common.BookResult `json:"result"`
}

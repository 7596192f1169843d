package mapper

import (
	"booklending-service/internal/application/common"
	"booklending-service/internal/domain/entities"
)

func NewBookResultFromEntity(book *entities.Book) *common.BookResult {
	return &common.BookResult{
		Id:            book.Id,
		Title:         book.Title,
		Author:        book.Author,
		ISBN:          book.ISBN,
		PublishedYear: book.PublishedYear,
		Description:   book.Description,
		CoverImage:    book.CoverImage,
		Available:     book.Available,
		UserId:        book.OwnerId,
		CreatedAt:     book.CreatedAt,
		UpdatedAt:     book.UpdatedAt,
	}
}

// NewRequestStatusResult maps the caller's pending request for a book, or
// nil when they have none.
func NewRequestStatusResult(request *entities.BorrowRequest) *common.RequestStatusResult {
	if request == nil {
		return nil
	}
	return &common.RequestStatusResult{
		Id:          request.Id,
		Status:      string(request.Status),
		RequestDate: request.RequestDate,
	}
}

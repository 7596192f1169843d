package interfaces

import (
	"context"

	"github.com/google/uuid"

	"booklending-service/internal/application/command"
	"booklending-service/internal/application/query"
)

type CatalogService interface {
	CreateBook(ctx context.Context, createCommand *command.CreateBookCommand) (*command.CreateBookCommandResult, error)
	UpdateBook(ctx context.Context, updateCommand *command.UpdateBookCommand) (*command.UpdateBookCommandResult, error)
	DeleteBook(ctx context.Context, bookID, callerID uuid.UUID) error
	GetBook(ctx context.Context, bookID, callerID uuid.UUID) (*query.BookQueryResult, error)
	ListBooks(ctx context.Context) (*query.BookListQueryResult, error)
	ListMyBooks(ctx context.Context, ownerID uuid.UUID) (*query.BookListQueryResult, error)
	ListAvailableBooks(ctx context.Context, callerID uuid.UUID) (*query.BookListQueryResult, error)
}

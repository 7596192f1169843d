package repositories

import (
	"context"

	"github.com/google/uuid"

	"booklending-service/internal/domain/entities"
)

type BookRepository interface {
	Create(ctx context.Context, book *entities.ValidatedBook) (*entities.Book, error)
	FindById(ctx context.Context, id uuid.UUID) (*entities.Book, error)
	// FindByIdForUpdate locks the book row for the rest of the surrounding
	// transaction (SELECT ... FOR UPDATE on postgres).
	FindByIdForUpdate(ctx context.Context, id uuid.UUID) (*entities.Book, error)
	// FindByISBN looks up a book by ISBN, skipping excludeId (uuid.Nil to
	// match any book).
	FindByISBN(ctx context.Context, isbn string, excludeId uuid.UUID) (*entities.Book, error)
	ListAll(ctx context.Context) ([]entities.Book, error)
	ListByOwner(ctx context.Context, ownerId uuid.UUID) ([]entities.Book, error)
	ListAvailable(ctx context.Context) ([]entities.BookWithOwner, error)
	Update(ctx context.Context, book *entities.ValidatedBook) (*entities.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// SetAvailability flips the availability flag only when it currently has
	// the opposite value, reporting whether a row actually changed. The
	// lending engine relies on this guard to detect racing transitions.
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) (bool, error)
	CountByOwner(ctx context.Context, ownerId uuid.UUID) (int64, error)
}

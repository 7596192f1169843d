package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"booklending-service/internal/domain/entities"
)

type LoanRepository interface {
	Create(ctx context.Context, loan *entities.Loan) (*entities.Loan, error)
	// FindOpenByBookAndUser returns the loan for (bookId, userId) with no
	// return timestamp, or nil when the user has not borrowed the book.
	FindOpenByBookAndUser(ctx context.Context, bookId, userId uuid.UUID) (*entities.Loan, error)
	ListOpenByUser(ctx context.Context, userId uuid.UUID) ([]entities.LoanDetails, error)
	// MarkReturned stamps the return timestamp only while the loan is still
	// open, reporting whether a row actually changed.
	MarkReturned(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	CountOpenByUser(ctx context.Context, userId uuid.UUID) (int64, error)
	CountOpenByBook(ctx context.Context, bookId uuid.UUID) (int64, error)
}

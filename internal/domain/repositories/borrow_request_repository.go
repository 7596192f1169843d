package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"booklending-service/internal/domain/entities"
)

type BorrowRequestRepository interface {
	Create(ctx context.Context, request *entities.BorrowRequest) (*entities.BorrowRequest, error)
	FindById(ctx context.Context, id uuid.UUID) (*entities.BorrowRequest, error)
	// FindPendingByIdAndOwner returns the pending request with the given id
	// owned by ownerId, or nil when no such request exists.
	FindPendingByIdAndOwner(ctx context.Context, id, ownerId uuid.UUID) (*entities.BorrowRequest, error)
	FindPendingByIdAndRequester(ctx context.Context, id, requesterId uuid.UUID) (*entities.BorrowRequest, error)
	FindPendingByBookAndRequester(ctx context.Context, bookId, requesterId uuid.UUID) (*entities.BorrowRequest, error)
	ListPendingByRequester(ctx context.Context, requesterId uuid.UUID) ([]entities.BorrowRequest, error)
	ListPendingByBook(ctx context.Context, bookId uuid.UUID) ([]entities.BorrowRequest, error)
	ListReceived(ctx context.Context, ownerId uuid.UUID, status entities.RequestStatus) ([]entities.BorrowRequestDetails, error)
	ListSent(ctx context.Context, requesterId uuid.UUID) ([]entities.BorrowRequestDetails, error)
	// MarkResponded sets status and response date on a request only while it
	// is still pending, reporting whether a row actually changed.
	MarkResponded(ctx context.Context, id uuid.UUID, status entities.RequestStatus, at time.Time) (bool, error)
	// RejectOtherPending bulk-rejects every pending request for the book
	// except keepId and returns how many were rejected.
	RejectOtherPending(ctx context.Context, bookId, keepId uuid.UUID, at time.Time) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountPendingByBook(ctx context.Context, bookId uuid.UUID) (int64, error)
	CountPendingByOwner(ctx context.Context, ownerId uuid.UUID) (int64, error)
}

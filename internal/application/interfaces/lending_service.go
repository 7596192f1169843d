package interfaces

import (
	"context"

	"github.com/google/uuid"

	"booklending-service/internal/application/command"
	"booklending-service/internal/application/query"
	"booklending-service/internal/domain/entities"
)

type LendingService interface {
	RequestBorrow(ctx context.Context, requestCommand *command.RequestBorrowCommand) (*command.RequestBorrowCommandResult, error)
	RespondToRequest(ctx context.Context, respondCommand *command.RespondToRequestCommand) (*command.RespondToRequestCommandResult, error)
	CancelRequest(ctx context.Context, requestID, requesterID uuid.UUID) error
	ReturnBook(ctx context.Context, bookID, userID uuid.UUID) error
	ListReceivedRequests(ctx context.Context, ownerID uuid.UUID, status entities.RequestStatus) (*query.BorrowRequestListQueryResult, error)
	ListSentRequests(ctx context.Context, requesterID uuid.UUID) (*query.BorrowRequestListQueryResult, error)
	ListBorrowedBooks(ctx context.Context, userID uuid.UUID) (*query.LoanListQueryResult, error)
	GetUserStats(ctx context.Context, userID uuid.UUID) (*query.StatsQueryResult, error)
}

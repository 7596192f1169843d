package services

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"booklending-service/internal/application/command"
	"booklending-service/internal/application/common"
	"booklending-service/internal/application/interfaces"
	"booklending-service/internal/application/mapper"
	"booklending-service/internal/application/query"
	"booklending-service/internal/domain/apperrors"
	"booklending-service/internal/domain/entities"
	"booklending-service/internal/domain/repositories"
	"booklending-service/internal/infrastructure"
	"booklending-service/internal/infrastructure/events"
)

const statsCacheTTL = 30 * time.Second

type LendingService struct {
	bookRepo        repositories.BookRepository
	requestRepo     repositories.BorrowRequestRepository
	loanRepo        repositories.LoanRepository
	userRepo        repositories.UserRepository
	idempotencyRepo repositories.IdempotencyRepository
	transactor      repositories.Transactor
	redisService    *infrastructure.RedisService
	publisher       *events.Publisher
}

func NewLendingService(
	bookRepo repositories.BookRepository,
	requestRepo repositories.BorrowRequestRepository,
	loanRepo repositories.LoanRepository,
	userRepo repositories.UserRepository,
	idempotencyRepo repositories.IdempotencyRepository,
	transactor repositories.Transactor,
	redisService *infrastructure.RedisService,
	publisher *events.Publisher,
) interfaces.LendingService {
	return &LendingService{
		bookRepo:        bookRepo,
		requestRepo:     requestRepo,
		loanRepo:        loanRepo,
		userRepo:        userRepo,
		idempotencyRepo: idempotencyRepo,
		transactor:      transactor,
		redisService:    redisService,
		publisher:       publisher,
	}
}

func (s *LendingService) RequestBorrow(ctx context.Context, requestCommand *command.RequestBorrowCommand) (*command.RequestBorrowCommandResult, error) {
	var createdRequest *entities.BorrowRequest

	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		book, err := s.bookRepo.FindById(txCtx, requestCommand.BookId)
		if err != nil {
			return apperrors.Internal("failed to look up book", err)
		}
		if book == nil {
			return apperrors.NotFound("Book not found")
		}
		if book.OwnerId == requestCommand.RequesterId {
			return apperrors.Forbidden("You cannot borrow your own book")
		}
		if !book.Available {
			return apperrors.Conflict("Book is not available for borrowing")
		}

		existing, err := s.requestRepo.FindPendingByBookAndRequester(txCtx, book.Id, requestCommand.RequesterId)
		if err != nil {
			return apperrors.Internal("failed to look up borrow request", err)
		}
		if existing != nil {
			return apperrors.Conflict("You already have a pending request for this book")
		}

		newRequest := entities.NewBorrowRequest(book.Id, requestCommand.RequesterId, book.OwnerId, requestCommand.Message)
		createdRequest, err = s.requestRepo.Create(txCtx, newRequest)
		if err != nil {
			return apperrors.Internal("failed to create borrow request", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &command.RequestBorrowCommandResult{
		Message:   "Borrow request sent successfully",
		RequestId: createdRequest.Id,
	}, nil
}

func (s *LendingService) RespondToRequest(ctx context.Context, respondCommand *command.RespondToRequestCommand) (*command.RespondToRequestCommandResult, error) {
	status := entities.RequestStatus(respondCommand.Status)
	if !entities.ValidResponseStatus(status) {
		return nil, apperrors.Validation("Status must be either accepted or rejected")
	}

	// A replayed idempotency key returns the recorded outcome without
	// re-running the transition.
	if respondCommand.IdempotencyKey != "" {
		record, err := s.idempotencyRepo.FindByKey(ctx, respondCommand.IdempotencyKey)
		if err != nil {
			return nil, apperrors.Internal("failed to look up idempotency key", err)
		}
		if record != nil {
			var recorded command.RespondToRequestCommandResult
			if err := json.Unmarshal([]byte(record.Response), &recorded); err != nil {
				return nil, apperrors.Internal("failed to decode recorded response", err)
			}
			return &recorded, nil
		}
	}

	now := time.Now()
	var (
		request          *entities.BorrowRequest
		book             *entities.Book
		loan             *entities.Loan
		autoRejected     []entities.BorrowRequest
		rejectedSiblings int64
	)

	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		request, err = s.requestRepo.FindPendingByIdAndOwner(txCtx, respondCommand.RequestId, respondCommand.OwnerId)
		if err != nil {
			return apperrors.Internal("failed to look up borrow request", err)
		}
		if request == nil {
			return apperrors.NotFound("Borrow request not found or already processed")
		}

		if status == entities.RequestStatusRejected {
			changed, err := s.requestRepo.MarkResponded(txCtx, request.Id, entities.RequestStatusRejected, now)
			if err != nil {
				return apperrors.Internal("failed to update borrow request", err)
			}
			if !changed {
				return apperrors.NotFound("Borrow request not found or already processed")
			}
			return nil
		}

		// Accept path: lock the book row so concurrent accepts for the same
		// book serialize here.
		book, err = s.bookRepo.FindByIdForUpdate(txCtx, request.BookId)
		if err != nil {
			return apperrors.Internal("failed to look up book", err)
		}
		if book == nil {
			return apperrors.NotFound("Book not found")
		}
		if !book.Available {
			return apperrors.Conflict("Book is no longer available for borrowing")
		}

		changed, err := s.requestRepo.MarkResponded(txCtx, request.Id, entities.RequestStatusAccepted, now)
		if err != nil {
			return apperrors.Internal("failed to update borrow request", err)
		}
		if !changed {
			return apperrors.NotFound("Borrow request not found or already processed")
		}

		loan, err = s.loanRepo.Create(txCtx, entities.NewLoan(request.RequesterId, request.BookId, &request.Id, now))
		if err != nil {
			return apperrors.Internal("failed to create loan", err)
		}

		flipped, err := s.bookRepo.SetAvailability(txCtx, book.Id, false)
		if err != nil {
			return apperrors.Internal("failed to update book availability", err)
		}
		if !flipped {
			return apperrors.Conflict("Book is no longer available for borrowing")
		}

		// Capture the siblings before the bulk reject so the post-commit
		// events know who lost out.
		autoRejected, err = s.requestRepo.ListPendingByBook(txCtx, book.Id)
		if err != nil {
			return apperrors.Internal("failed to list pending requests", err)
		}

		rejectedSiblings, err = s.requestRepo.RejectOtherPending(txCtx, book.Id, request.Id, now)
		if err != nil {
			return apperrors.Internal("failed to reject pending requests", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &command.RespondToRequestCommandResult{Message: "Borrow request rejected"}

	if status == entities.RequestStatusAccepted {
		ownerName := ""
		if owner, err := s.userRepo.FindById(ctx, respondCommand.OwnerId); err == nil && owner != nil {
			ownerName = owner.Name
		}

		result.Message = "Borrow request accepted"
		result.Loan = mapper.NewLoanResultFromEntity(loan, book, ownerName)
		result.RejectedRequests = rejectedSiblings

		if rejectedSiblings > 0 {
			log.Printf("Auto-rejected %d pending request(s) for book %s", rejectedSiblings, book.Id)
		}

		s.publisher.RequestAccepted(events.RequestAcceptedEvent{
			RequestId:   request.Id,
			BookId:      book.Id,
			RequesterId: request.RequesterId,
			OwnerId:     request.OwnerId,
			LoanId:      loan.Id,
			DueDate:     loan.DueDate,
		})
		for i := range autoRejected {
			if autoRejected[i].Id == request.Id {
				continue
			}
			s.publisher.RequestAutoRejected(events.RequestAutoRejectedEvent{
				RequestId:   autoRejected[i].Id,
				BookId:      book.Id,
				RequesterId: autoRejected[i].RequesterId,
			})
		}
	}

	if respondCommand.IdempotencyKey != "" {
		s.storeIdempotencyRecord(ctx, respondCommand, result)
	}

	return result, nil
}

func (s *LendingService) storeIdempotencyRecord(ctx context.Context, respondCommand *command.RespondToRequestCommand, result *command.RespondToRequestCommandResult) {
	requestBody, err := json.Marshal(respondCommand)
	if err != nil {
		log.Printf("Failed to encode idempotency request: %v", err)
		return
	}
	responseBody, err := json.Marshal(result)
	if err != nil {
		log.Printf("Failed to encode idempotency response: %v", err)
		return
	}

	record := entities.NewIdempotencyRecord(respondCommand.IdempotencyKey, string(requestBody))
	record.SetResponse(string(responseBody), http.StatusOK)
	if _, err := s.idempotencyRepo.Create(ctx, record); err != nil {
		log.Printf("Failed to store idempotency record: %v", err)
	}
}

func (s *LendingService) CancelRequest(ctx context.Context, requestID, requesterID uuid.UUID) error {
	return s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		request, err := s.requestRepo.FindPendingByIdAndRequester(txCtx, requestID, requesterID)
		if err != nil {
			return apperrors.Internal("failed to look up borrow request", err)
		}
		if request == nil {
			return apperrors.NotFound("Borrow request not found or cannot be cancelled")
		}
		if err := s.requestRepo.Delete(txCtx, request.Id); err != nil {
			return apperrors.Internal("failed to delete borrow request", err)
		}
		return nil
	})
}

func (s *LendingService) ReturnBook(ctx context.Context, bookID, userID uuid.UUID) error {
	var loan *entities.Loan

	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		book, err := s.bookRepo.FindById(txCtx, bookID)
		if err != nil {
			return apperrors.Internal("failed to look up book", err)
		}
		if book == nil {
			return apperrors.NotFound("Book not found")
		}

		loan, err = s.loanRepo.FindOpenByBookAndUser(txCtx, bookID, userID)
		if err != nil {
			return apperrors.Internal("failed to look up loan", err)
		}
		if loan == nil {
			return apperrors.Validation("You have not borrowed this book")
		}

		returned, err := s.loanRepo.MarkReturned(txCtx, loan.Id, time.Now())
		if err != nil {
			return apperrors.Internal("failed to update loan", err)
		}
		if !returned {
			return apperrors.Conflict("Book has already been returned")
		}

		flipped, err := s.bookRepo.SetAvailability(txCtx, bookID, true)
		if err != nil {
			return apperrors.Internal("failed to update book availability", err)
		}
		if !flipped {
			log.Printf("Book %s was already marked available on return", bookID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publisher.BookReturned(events.BookReturnedEvent{
		LoanId: loan.Id,
		BookId: bookID,
		UserId: userID,
	})
	return nil
}

func (s *LendingService) ListReceivedRequests(ctx context.Context, ownerID uuid.UUID, status entities.RequestStatus) (*query.BorrowRequestListQueryResult, error) {
	if status == "" {
		status = entities.RequestStatusPending
	}

	details, err := s.requestRepo.ListReceived(ctx, ownerID, status)
	if err != nil {
		return nil, apperrors.Internal("failed to list borrow requests", err)
	}

	results := make([]common.BorrowRequestResult, 0, len(details))
	for i := range details {
		results = append(results, *mapper.NewBorrowRequestResultFromDetails(&details[i]))
	}
	return &query.BorrowRequestListQueryResult{Result: results}, nil
}

func (s *LendingService) ListSentRequests(ctx context.Context, requesterID uuid.UUID) (*query.BorrowRequestListQueryResult, error) {
	details, err := s.requestRepo.ListSent(ctx, requesterID)
	if err != nil {
		return nil, apperrors.Internal("failed to list borrow requests", err)
	}

	results := make([]common.BorrowRequestResult, 0, len(details))
	for i := range details {
		results = append(results, *mapper.NewBorrowRequestResultFromDetails(&details[i]))
	}
	return &query.BorrowRequestListQueryResult{Result: results}, nil
}

func (s *LendingService) ListBorrowedBooks(ctx context.Context, userID uuid.UUID) (*query.LoanListQueryResult, error) {
	details, err := s.loanRepo.ListOpenByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list loans", err)
	}

	results := make([]common.LoanResult, 0, len(details))
	for i := range details {
		results = append(results, *mapper.NewLoanResultFromDetails(&details[i]))
	}
	return &query.LoanListQueryResult{Result: results}, nil
}

func (s *LendingService) GetUserStats(ctx context.Context, userID uuid.UUID) (*query.StatsQueryResult, error) {
	if s.redisService != nil {
		var cached common.StatsResult
		if found, err := s.redisService.GetStats(ctx, userID.String(), &cached); err == nil && found {
			return &query.StatsQueryResult{Result: &cached}, nil
		}
	}

	ownedBooks, err := s.bookRepo.CountByOwner(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to count books", err)
	}
	borrowedBooks, err := s.loanRepo.CountOpenByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to count loans", err)
	}
	pendingRequests, err := s.requestRepo.CountPendingByOwner(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to count borrow requests", err)
	}

	stats := &common.StatsResult{
		OwnedBooks:      ownedBooks,
		BorrowedBooks:   borrowedBooks,
		PendingRequests: pendingRequests,
	}

	if s.redisService != nil {
		if err := s.redisService.SetStats(ctx, userID.String(), stats, statsCacheTTL); err != nil {
			log.Printf("Failed to cache user stats: %v", err)
		}
	}

	return &query.StatsQueryResult{Result: stats}, nil
}

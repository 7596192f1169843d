package services

import (
	"context"

	"github.com/google/uuid"

	"booklending-service/internal/application/command"
	"booklending-service/internal/application/common"
	"booklending-service/internal/application/interfaces"
	"booklending-service/internal/application/mapper"
	"booklending-service/internal/application/query"
	"booklending-service/internal/domain/apperrors"
	"booklending-service/internal/domain/entities"
	"booklending-service/internal/domain/repositories"
)

type CatalogService struct {
	bookRepo    repositories.BookRepository
	requestRepo repositories.BorrowRequestRepository
	userRepo    repositories.UserRepository
	transactor  repositories.Transactor
}

func NewCatalogService(
	bookRepo repositories.BookRepository,
	requestRepo repositories.BorrowRequestRepository,
	userRepo repositories.UserRepository,
	transactor repositories.Transactor,
) interfaces.CatalogService {
	return &CatalogService{
		bookRepo:    bookRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		transactor:  transactor,
	}
}

func (s *CatalogService) CreateBook(ctx context.Context, createCommand *command.CreateBookCommand) (*command.CreateBookCommandResult, error) {
	newBook := entities.NewBook(
		createCommand.Title,
		createCommand.Author,
		createCommand.ISBN,
		createCommand.PublishedYear,
		createCommand.Description,
		createCommand.CoverImage,
		createCommand.OwnerId,
	)

	validatedBook, err := entities.NewValidatedBook(newBook)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	existing, err := s.bookRepo.FindByISBN(ctx, newBook.ISBN, uuid.Nil)
	if err != nil {
		return nil, apperrors.Internal("failed to look up book", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("A book with this ISBN already exists")
	}

	createdBook, err := s.bookRepo.Create(ctx, validatedBook)
	if err != nil {
		return nil, apperrors.Internal("failed to create book", err)
	}

	return &command.CreateBookCommandResult{
		Result: mapper.NewBookResultFromEntity(createdBook),
	}, nil
}

func (s *CatalogService) UpdateBook(ctx context.Context, updateCommand *command.UpdateBookCommand) (*command.UpdateBookCommandResult, error) {
	var updatedBook *entities.Book

	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		book, err := s.bookRepo.FindById(txCtx, updateCommand.BookId)
		if err != nil {
			return apperrors.Internal("failed to look up book", err)
		}
		if book == nil {
			return apperrors.NotFound("Book not found")
		}
		if book.OwnerId != updateCommand.CallerId {
			return apperrors.Forbidden("You can only update books that you added")
		}
		if !book.Available {
			return apperrors.Conflict("Cannot update a book that is currently borrowed")
		}

		// ISBN must stay unique across other books; keeping its own is fine.
		conflicting, err := s.bookRepo.FindByISBN(txCtx, updateCommand.ISBN, book.Id)
		if err != nil {
			return apperrors.Internal("failed to look up book", err)
		}
		if conflicting != nil {
			return apperrors.Conflict("A book with this ISBN already exists")
		}

		book.UpdateDetails(
			updateCommand.Title,
			updateCommand.Author,
			updateCommand.ISBN,
			updateCommand.PublishedYear,
			updateCommand.Description,
			updateCommand.CoverImage,
		)

		validatedBook, err := entities.NewValidatedBook(book)
		if err != nil {
			return apperrors.Validation(err.Error())
		}

		updatedBook, err = s.bookRepo.Update(txCtx, validatedBook)
		if err != nil {
			return apperrors.Internal("failed to update book", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &command.UpdateBookCommandResult{
		Result: mapper.NewBookResultFromEntity(updatedBook),
	}, nil
}

func (s *CatalogService) DeleteBook(ctx context.Context, bookID, callerID uuid.UUID) error {
	return s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		book, err := s.bookRepo.FindById(txCtx, bookID)
		if err != nil {
			return apperrors.Internal("failed to look up book", err)
		}
		if book == nil {
			return apperrors.NotFound("Book not found")
		}
		if book.OwnerId != callerID {
			return apperrors.Forbidden("You can only delete books that you added")
		}
		if !book.Available {
			return apperrors.Conflict("Cannot delete a book that is currently borrowed")
		}

		pending, err := s.requestRepo.CountPendingByBook(txCtx, bookID)
		if err != nil {
			return apperrors.Internal("failed to count pending requests", err)
		}
		if pending > 0 {
			return apperrors.Conflict("Cannot delete a book with pending borrow requests")
		}

		if err := s.bookRepo.Delete(txCtx, bookID); err != nil {
			return apperrors.Internal("failed to delete book", err)
		}
		return nil
	})
}

func (s *CatalogService) GetBook(ctx context.Context, bookID, callerID uuid.UUID) (*query.BookQueryResult, error) {
	book, err := s.bookRepo.FindById(ctx, bookID)
	if err != nil {
		return nil, apperrors.Internal("failed to look up book", err)
	}
	if book == nil {
		return nil, apperrors.NotFound("Book not found")
	}

	result := mapper.NewBookResultFromEntity(book)

	owner, err := s.userRepo.FindById(ctx, book.OwnerId)
	if err != nil {
		return nil, apperrors.Internal("failed to look up owner", err)
	}
	if owner != nil {
		result.OwnerName = owner.Name
	}

	// A viewer who is not the owner sees their own pending request, if any.
	if book.OwnerId != callerID {
		pendingRequest, err := s.requestRepo.FindPendingByBookAndRequester(ctx, bookID, callerID)
		if err != nil {
			return nil, apperrors.Internal("failed to look up borrow request", err)
		}
		result.RequestStatus = mapper.NewRequestStatusResult(pendingRequest)
	}

	return &query.BookQueryResult{Result: result}, nil
}

func (s *CatalogService) ListBooks(ctx context.Context) (*query.BookListQueryResult, error) {
	books, err := s.bookRepo.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list books", err)
	}

	results := make([]common.BookResult, 0, len(books))
	for i := range books {
		results = append(results, *mapper.NewBookResultFromEntity(&books[i]))
	}
	return &query.BookListQueryResult{Result: results}, nil
}

func (s *CatalogService) ListMyBooks(ctx context.Context, ownerID uuid.UUID) (*query.BookListQueryResult, error) {
	books, err := s.bookRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.Internal("failed to list books", err)
	}

	results := make([]common.BookResult, 0, len(books))
	for i := range books {
		results = append(results, *mapper.NewBookResultFromEntity(&books[i]))
	}
	return &query.BookListQueryResult{Result: results}, nil
}

// ListAvailableBooks returns every available book except the caller's own,
// annotated with the caller's pending request where one exists.
func (s *CatalogService) ListAvailableBooks(ctx context.Context, callerID uuid.UUID) (*query.BookListQueryResult, error) {
	books, err := s.bookRepo.ListAvailable(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list books", err)
	}

	pendingRequests, err := s.requestRepo.ListPendingByRequester(ctx, callerID)
	if err != nil {
		return nil, apperrors.Internal("failed to list borrow requests", err)
	}
	pendingByBook := make(map[uuid.UUID]*entities.BorrowRequest, len(pendingRequests))
	for i := range pendingRequests {
		pendingByBook[pendingRequests[i].BookId] = &pendingRequests[i]
	}

	results := make([]common.BookResult, 0, len(books))
	for i := range books {
		if books[i].OwnerId == callerID {
			continue
		}
		result := mapper.NewBookResultFromEntity(&books[i].Book)
		result.OwnerName = books[i].OwnerName
		result.RequestStatus = mapper.NewRequestStatusResult(pendingByBook[books[i].Id])
		results = append(results, *result)
	}
	return &query.BookListQueryResult{Result: results}, nil
}

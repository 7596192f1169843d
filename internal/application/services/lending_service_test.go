package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booklending-service/internal/application/command"
	"booklending-service/internal/domain/apperrors"
	"booklending-service/internal/domain/entities"
)

func TestRequestBorrow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "Olive Owner", "olive@example.com")
	requester := env.createUser(t, "Rita Requester", "rita@example.com")
	book := env.createBook(t, owner.Id, "The Go Programming Language", "978-0134190440")

	result, err := env.lending.RequestBorrow(ctx, &command.RequestBorrowCommand{
		BookId:      book.Id,
		RequesterId: requester.Id,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, result.RequestId)

	request, err := env.requests.FindById(ctx, result.RequestId)
	require.NoError(t, err)
	require.NotNil(t, request)
	assert.Equal(t, entities.RequestStatusPending, request.Status)
	assert.Equal(t, owner.Id, request.OwnerId)
	assert.Equal(t, requester.Id, request.RequesterId)
}

func TestRequestBorrowOwnBook(t *testing.T) {
	env := newTestEnv(t)

	owner := env.createUser(t, "Olive Owner", "olive@example.com")
	book := env.createBook(t, owner.Id, "Clean Code", "978-0132350884")

	_, err := env.lending.RequestBorrow(context.Background(), &command.RequestBorrowCommand{
		BookId:      book.Id,
		RequesterId: owner.Id,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
}

func TestRequestBorrowUnavailableBook(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "Olive Owner", "olive@example.com")
	requester := env.createUser(t, "Rita Requester", "rita@example.com")
	book := env.createBook(t, owner.Id, "Clean Code", "978-0132350884")

	flipped, err := env.books.SetAvailability(ctx, book.Id, false)
	require.NoError(t, err)
	require.True(t, flipped)

	_, err = env.lending.RequestBorrow(ctx, &command.RequestBorrowCommand{
		BookId:      book.Id,
		RequesterId: requester.Id,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestRequestBorrowDuplicatePending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "Olive Owner", "olive@example.com")
	requester := env.createUser(t, "Rita Requester", "rita@example.com")
	book := env.createBook(t, owner.Id, "Clean Code", "978-0132350884")

	_, err := env.lending.RequestBorrow(ctx, &command.RequestBorrowCommand{BookId: book.Id, RequesterId: requester.Id})
	require.NoError(t, err)

	_, err = env.lending.RequestBorrow(ctx, &command.RequestBorrowCommand{BookId: book.Id, RequesterId: requester.Id})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestRequestBorrowMissingBook(t *testing.T) {
	env := newTestEnv(t)

	requester := env.createUser(t, "Rita Requester", "rita@example.com")

	_, err := env.lending.RequestBorrow(context.Background(), &command.RequestBorrowCommand{
		BookId:      uuid.New(),
		RequesterId: requester.Id,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestRespondToRequestAccept(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "Olive Owner", "olive@example.com")
	rita := env.createUser(t, "Rita Requester", "rita@example.com")
	sam := env.createUser(t, "Sam Second", "sam@example.com")
	book := env.createBook(t, owner.Id, "Clean Code", "978-0132350884")

	ritaRequest, err := env.lending.RequestBorrow(ctx, &command.RequestBorrowCommand{BookId: book.Id, RequesterId: rita.Id})
	require.NoError(t, err)
	samRequest, err := env.lending.RequestBorrow(ctx, &command.RequestBorrowCommand{BookId: book.Id, RequesterId: sam.Id})
	require.NoError(t, err)

	result, err := env.lending.RespondToRequest(ctx, &command.RespondToRequestCommand{
		RequestId: ritaRequest.RequestId,
		OwnerId:   owner.Id,
		Status:    "accepted",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Loan)
	assert.Equal(t, int64(1), result.RejectedRequests)
	assert.Equal(t, result.Loan.BorrowedAt.Add(entities.LoanPeriod), result.Loan.DueDate)

	// The book is out of circulation.
	updatedBook, err := env.books.FindById(ctx, book.Id)
	require.NoError(t, err)
	assert.False(t, updatedBook.Available)

	// The accepted request carries its response date, the sibling was
	// auto-rejected.
	accepted, err := env.requests.FindById(ctx, ritaRequest.RequestId)
	require.NoError(t, err)
	assert.Equal(t, entities.RequestStatusAccepted, accepted.Status)
	assert.NotNil(t, accepted.ResponseDate)

	rejected, err := env.requests.FindById(ctx, samRequest.RequestId)
	require.NoError(t, err)
	assert.Equal(t, entities.RequestStatusRejected, rejected.Status)
	assert.NotNil(t, rejected.ResponseDate)

	// Exactly one open loan, held by Rita.
	loan, err := env.loans.FindOpenByBookAndUser(ctx, book.Id, rita.Id)
	require.NoError(t, err)
	require.NotNil(t, loan)
	openLoans, err := env.loans.CountOpenByBook(ctx, book.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), openLoans)
}

func TestRespondToRequestReject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "Olive Owner", "olive@example.com")
	rita := env.createUser(t, "Rita Requester", "rita@example.com")
	book := env.createBook(t, owner.Id, "Clean Code", "978-0132350884")

	request, err := env.lending.RequestBorrow(ctx, &command.RequestBorrowCommand{BookId: book.Id, RequesterId: rita.Id})
	require.NoError(t, err)

	result, err := env.lending.RespondToRequest(ctx, &command.RespondToRequestCommand{
		RequestId: request.RequestId,
		OwnerId:   owner.Id,
		Status:    "rejected",
	})
	require.NoError(t, err)
	assert.Nil(t, result.Loan)

	updatedBook, err := env.books.FindById(ctx, book.Id)
	require.NoError(t, err)
	assert.True(t, updatedBook.Available)

	loan, err := env.loans.FindOpenByBookAndUser(ctx, book.Id, rita.Id)
	require.NoError(t, err)
	assert.Nil(t, loan)
}

func TestRespondToRequestInvalidStatus(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.lending.RespondToRequest(context.Background(), &command.RespondToRequestCommand{
		RequestId: uuid.New(),
		OwnerId:   uuid.New(),
		Status:    "maybe",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestRespondToRequestWrongOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "Olive Owner", "olive@example.com")
	rita := env.createUser(t, "Rita Requester", "rita@example.com")
	book := env.createBook(t, owner.Id, "Clean Code", "978-0132350884")

	request, err := env.lending.RequestBorrow(ctx, &command.RequestBorrowCommand{BookId: book.Id, RequesterId: rita.Id})
	require.NoError(t, err)

	_, err = env.lending.RespondToRequest(ctx, &command.RespondToRequestCommand{
		RequestId: request.RequestId,
		OwnerId:   rita.Id,
		Status:    "accepted",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestRespondToRequestTwice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "Olive Owner", "olive@example.com")
	rita := env.createUser(t, "Rita Requester", "rita@example.com")
	book := env.createBook(t, owner.Id, "Clean Code", "978-0132350884")

	request, err := env.lending.RequestBorrow(ctx, &command.RequestBorrowCommand{BookId: book.Id, RequesterId: rita.Id})
	require.NoError(t, err)

	respond := &command.RespondToRequestCommand{RequestId: request.RequestId, OwnerId: owner.Id, Status: "accepted"}
	_, err = env.lending.RespondToRequest(ctx, respond)
	require.NoError(t, err)

	_, err = env.lending.RespondToRequest(ctx, respond)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	openLoans, err := env.loans.CountOpenByBook(ctx, book.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), openLoans)
}

func TestRespondToRequestIdempotencyReplay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "Olive Owner", "olive@example.com")
	rita := env.createUser(t, "Rita Requester", "rita@example.com")
	book := env.createBook(t, owner.Id, "Clean Code", "978-0132350884")

	request, err := env.lending.RequestBorrow(ctx, &command.RequestBorrowCommand{BookId: book.Id, RequesterId: rita.Id})
	require.NoError(t, err)

	respond := &command.RespondToRequestCommand{
		RequestId:      request.RequestId,
		OwnerId:        owner.Id,
		Status:         "accepted",
		IdempotencyKey: "respond-1",
	}

	first, err := env.lending.RespondToRequest(ctx, respond)
	require.NoError(t, err)
	require.NotNil(t, first.Loan)

	// The replay returns the recorded outcome instead of failing on the
	// already-processed request.
	second, err := env.lending.RespondToRequest(ctx, respond)
	require.NoError(t, err)
	require.NotNil(t, second.Loan)
	assert.Equal(t, first.Loan.Id, second.Loan.Id)
	assert.Equal(t, first.Message, second.Message)

	openLoans, err := env.loans.CountOpenByBook(ctx, book.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), openLoans)
}

func TestCancelRequest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "Olive Owner", "olive@example.com")
	rita := env.createUser(t, "Rita Requester", "rita@example.com")
	book := env.createBook(t, owner.Id, "Clean Code", "978-0132350884")

	request, err := env.lending.RequestBorrow(ctx, &command.RequestBorrowCommand{BookId: book.Id, RequesterId: rita.Id})
	require.NoError(t, err)

	// Only the requester may cancel.
	err = env.lending.CancelRequest(ctx, request.RequestId, owner.Id)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	require.NoError(t, env.lending.CancelRequest(ctx, request.RequestId, rita.Id))

	cancelled, err := env.requests.FindById(ctx, request.RequestId)
	require.NoError(t, err)
	assert.Nil(t, cancelled)
}

func TestCancelRequestAfterAccept(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "Olive Owner", "olive@example.com")
	rita := env.createUser(t, "Rita Requester", "rita@example.com")
	book := env.createBook(t, owner.Id, "Clean Code", "978-0132350884")

	request, err := env.lending.RequestBorrow(ctx, &command.RequestBorrowCommand{BookId: book.Id, RequesterId: rita.Id})
	require.NoError(t, err)
	_, err = env.lending.RespondToRequest(ctx, &command.RespondToRequestCommand{RequestId: request.RequestId, OwnerId: owner.Id, Status: "accepted"})
	require.NoError(t, err)

	err = env.lending.CancelRequest(ctx, request.RequestId, rita.Id)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestReturnBook(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "Olive Owner", "olive@example.com")
	rita := env.createUser(t, "Rita Requester", "rita@example.com")
	book := env.createBook(t, owner.Id, "Clean Code", "978-0132350884")

	request, err := env.lending.RequestBorrow(ctx, &command.RequestBorrowCommand{BookId: book.Id, RequesterId: rita.Id})
	require.NoError(t, err)
	_, err = env.lending.RespondToRequest(ctx, &command.RespondToRequestCommand{RequestId: request.RequestId, OwnerId: owner.Id, Status: "accepted"})
	require.NoError(t, err)

	require.NoError(t, env.lending.ReturnBook(ctx, book.Id, rita.Id))

	returnedBook, err := env.books.FindById(ctx, book.Id)
	require.NoError(t, err)
	assert.True(t, returnedBook.Available)

	openLoan, err := env.loans.FindOpenByBookAndUser(ctx, book.Id, rita.Id)
	require.NoError(t, err)
	assert.Nil(t, openLoan)

	// Returning again is rejected: nothing is borrowed anymore.
	err = env.lending.ReturnBook(ctx, book.Id, rita.Id)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestReturnBookNeverBorrowed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "Olive Owner", "olive@example.com")
	rita := env.createUser(t, "Rita Requester", "rita@example.com")
	book := env.createBook(t, owner.Id, "Clean Code", "978-0132350884")

	err := env.lending.ReturnBook(ctx, book.Id, rita.Id)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	err = env.lending.ReturnBook(ctx, uuid.New(), rita.Id)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestListReceivedAndSentRequests(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "Olive Owner", "olive@example.com")
	rita := env.createUser(t, "Rita Requester", "rita@example.com")
	first := env.createBook(t, owner.Id, "Clean Code", "978-0132350884")
	second := env.createBook(t, owner.Id, "Refactoring", "978-0134757599")

	firstRequest, err := env.lending.RequestBorrow(ctx, &command.RequestBorrowCommand{BookId: first.Id, RequesterId: rita.Id})
	require.NoError(t, err)
	_, err = env.lending.RequestBorrow(ctx, &command.RequestBorrowCommand{BookId: second.Id, RequesterId: rita.Id})
	require.NoError(t, err)

	received, err := env.lending.ListReceivedRequests(ctx, owner.Id, "")
	require.NoError(t, err)
	require.Len(t, received.Result, 2)
	assert.Equal(t, "Rita Requester", received.Result[0].RequesterName)
	assert.Equal(t, "rita@example.com", received.Result[0].RequesterEmail)
	assert.NotEmpty(t, received.Result[0].BookTitle)

	_, err = env.lending.RespondToRequest(ctx, &command.RespondToRequestCommand{RequestId: firstRequest.RequestId, OwnerId: owner.Id, Status: "accepted"})
	require.NoError(t, err)

	// The default listing only shows what still needs a decision.
	pending, err := env.lending.ListReceivedRequests(ctx, owner.Id, "")
	require.NoError(t, err)
	require.Len(t, pending.Result, 1)
	assert.Equal(t, second.Id, pending.Result[0].BookId)

	accepted, err := env.lending.ListReceivedRequests(ctx, owner.Id, entities.RequestStatusAccepted)
	require.NoError(t, err)
	require.Len(t, accepted.Result, 1)
	assert.Equal(t, first.Id, accepted.Result[0].BookId)

	sent, err := env.lending.ListSentRequests(ctx, rita.Id)
	require.NoError(t, err)
	require.Len(t, sent.Result, 2)
	assert.Equal(t, "Olive Owner", sent.Result[0].OwnerName)
}

func TestListBorrowedBooks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "Olive Owner", "olive@example.com")
	rita := env.createUser(t, "Rita Requester", "rita@example.com")
	book := env.createBook(t, owner.Id, "Clean Code", "978-0132350884")

	request, err := env.lending.RequestBorrow(ctx, &command.RequestBorrowCommand{BookId: book.Id, RequesterId: rita.Id})
	require.NoError(t, err)
	_, err = env.lending.RespondToRequest(ctx, &command.RespondToRequestCommand{RequestId: request.RequestId, OwnerId: owner.Id, Status: "accepted"})
	require.NoError(t, err)

	borrowed, err := env.lending.ListBorrowedBooks(ctx, rita.Id)
	require.NoError(t, err)
	require.Len(t, borrowed.Result, 1)
	assert.Equal(t, book.Id, borrowed.Result[0].Book.Id)
	assert.Equal(t, "Olive Owner", borrowed.Result[0].Owner.Name)
	assert.WithinDuration(t, time.Now().Add(entities.LoanPeriod), borrowed.Result[0].DueDate, 5*time.Second)

	require.NoError(t, env.lending.ReturnBook(ctx, book.Id, rita.Id))

	borrowed, err = env.lending.ListBorrowedBooks(ctx, rita.Id)
	require.NoError(t, err)
	assert.Empty(t, borrowed.Result)
}

func TestGetUserStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "Olive Owner", "olive@example.com")
	rita := env.createUser(t, "Rita Requester", "rita@example.com")
	first := env.createBook(t, owner.Id, "Clean Code", "978-0132350884")
	second := env.createBook(t, owner.Id, "Refactoring", "978-0134757599")
	env.createBook(t, rita.Id, "Domain-Driven Design", "978-0321125217")

	request, err := env.lending.RequestBorrow(ctx, &command.RequestBorrowCommand{BookId: first.Id, RequesterId: rita.Id})
	require.NoError(t, err)
	_, err = env.lending.RequestBorrow(ctx, &command.RequestBorrowCommand{BookId: second.Id, RequesterId: rita.Id})
	require.NoError(t, err)
	_, err = env.lending.RespondToRequest(ctx, &command.RespondToRequestCommand{RequestId: request.RequestId, OwnerId: owner.Id, Status: "accepted"})
	require.NoError(t, err)

	ownerStats, err := env.lending.GetUserStats(ctx, owner.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), ownerStats.Result.OwnedBooks)
	assert.Equal(t, int64(0), ownerStats.Result.BorrowedBooks)
	assert.Equal(t, int64(1), ownerStats.Result.PendingRequests)

	ritaStats, err := env.lending.GetUserStats(ctx, rita.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ritaStats.Result.OwnedBooks)
	assert.Equal(t, int64(1), ritaStats.Result.BorrowedBooks)
	assert.Equal(t, int64(0), ritaStats.Result.PendingRequests)
}

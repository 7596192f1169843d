package entities

import (
	"time"

	"github.com/google/uuid"
)

// LoanPeriod is the fixed lending policy: every loan is due 14 days after it
// is created, with no calendar adjustment.
const LoanPeriod = 14 * 24 * time.Hour

type Loan struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	BookId     uuid.UUID
	RequestId  *uuid.UUID
	BorrowedAt time.Time
	DueDate    time.Time
	ReturnedAt *time.Time
}

func NewLoan(userId, bookId uuid.UUID, requestId *uuid.UUID, borrowedAt time.Time) *Loan {
	return &Loan{
		Id:         uuid.New(),
		UserId:     userId,
		BookId:     bookId,
		RequestId:  requestId,
		BorrowedAt: borrowedAt,
		DueDate:    borrowedAt.Add(LoanPeriod),
	}
}

func (l *Loan) Open() bool {
	return l.ReturnedAt == nil
}

func (l *Loan) MarkReturned(at time.Time) {
	l.ReturnedAt = &at
}

// LoanDetails is a read model for the borrowed-books listing: the loan plus
// the joined book and its owner's name.
type LoanDetails struct {
	Loan
	Book      Book
	OwnerName string
}

package entities

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

// ValidResponseStatus reports whether s is a decision an owner may give to a
// pending request.
func ValidResponseStatus(s RequestStatus) bool {
	return s == RequestStatusAccepted || s == RequestStatusRejected
}

type BorrowRequest struct {
	Id           uuid.UUID
	BookId       uuid.UUID
	RequesterId  uuid.UUID
	OwnerId      uuid.UUID
	Status       RequestStatus
	Message      *string
	RequestDate  time.Time
	ResponseDate *time.Time
}

func NewBorrowRequest(bookId, requesterId, ownerId uuid.UUID, message *string) *BorrowRequest {
	return &BorrowRequest{
		Id:          uuid.New(),
		BookId:      bookId,
		RequesterId: requesterId,
		OwnerId:     ownerId,
		Status:      RequestStatusPending,
		Message:     message,
		RequestDate: time.Now(),
	}
}

func (r *BorrowRequest) MarkResponded(status RequestStatus, at time.Time) {
	r.Status = status
	r.ResponseDate = &at
}

// BorrowRequestDetails is a read model for request listings: the request plus
// the joined book and counterpart user columns the screens need.
type BorrowRequestDetails struct {
	BorrowRequest
	BookTitle      string
	BookAuthor     string
	BookCoverImage *string
	RequesterName  string
	RequesterEmail string
	OwnerName      string
}

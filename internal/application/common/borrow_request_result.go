package common

import (
	"time"

	"github.com/google/uuid"
)

type BorrowRequestResult struct {
	Id             uuid.UUID  `json:"id"`
	BookId         uuid.UUID  `json:"bookId"`
	RequesterId    uuid.UUID  `json:"requesterId"`
	OwnerId        uuid.UUID  `json:"ownerId"`
	Status         string     `json:"status"`
	Message        *string    `json:"message"`
	RequestDate    time.Time  `json:"requestDate"`
	ResponseDate   *time.Time `json:"responseDate"`
	BookTitle      string     `json:"bookTitle"`
	BookAuthor     string     `json:"bookAuthor"`
	BookCoverImage *string    `json:"bookCoverImage"`
	RequesterName  string     `json:"requesterName,omitempty"`
	RequesterEmail string     `json:"requesterEmail,omitempty"`
	OwnerName      string     `json:"ownerName,omitempty"`
}

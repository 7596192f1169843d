package common

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatusResult is the caller's own pending request for a book, shown
// alongside the book so the client can render "request sent".
type RequestStatusResult struct {
	Id          uuid.UUID `json:"id"`
	Status      string    `json:"status"`
	RequestDate time.Time `json:"requestDate"`
}

type BookResult struct {
	Id            uuid.UUID            `json:"id"`
	Title         string               `json:"title"`
	Author        string               `json:"author"`
	ISBN          string               `json:"isbn"`
	PublishedYear int                  `json:"publishedYear"`
	Description   *string              `json:"description"`
	CoverImage    *string              `json:"coverImage"`
	Available     bool                 `json:"available"`
	UserId        uuid.UUID            `json:"userId"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
	OwnerName     string               `json:"ownerName,omitempty"`
	RequestStatus *RequestStatusResult `json:"requestStatus,omitempty"`
}

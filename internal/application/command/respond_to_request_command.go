package command

import (
	"github.com/google/uuid"

	"booklending-service/internal/application/common"
)

type RespondToRequestCommand struct {
	RequestId      uuid.UUID `json:"-"`
	OwnerId        uuid.UUID `json:"-"`
	Status         string    `json:"status"`
	IdempotencyKey string    `json:"idempotency_key,omitempty"`
}

type RespondToRequestCommandResult struct {
	Message string `json:"message"`
	// Loan is set only when the request was accepted.
	Loan *common.LoanResult `json:"loan,omitempty"`
	// RejectedRequests counts the sibling pending requests that were
	// auto-rejected by an accept.
	RejectedRequests int64 `json:"rejectedRequests"`
}

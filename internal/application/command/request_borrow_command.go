package command

import "github.com/google/uuid"

type RequestBorrowCommand struct {
	BookId      uuid.UUID `json:"-"`
	RequesterId uuid.UUID `json:"-"`
	Message     *string   `json:"message"`
}

type RequestBorrowCommandResult struct {
	Message   string    `json:"message"`
	RequestId uuid.UUID `json:"requestId"`
}

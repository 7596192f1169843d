package common

import (
	"time"

	"github.com/google/uuid"
)

type LoanOwnerResult struct {
	Name string `json:"name"`
}

type LoanResult struct {
	Id         uuid.UUID       `json:"id"`
	BorrowedAt time.Time       `json:"borrowedAt"`
	DueDate    time.Time       `json:"dueDate"`
	ReturnedAt *time.Time      `json:"returnedAt"`
	RequestId  *uuid.UUID      `json:"requestId"`
	Book       BookResult      `json:"book"`
	Owner      LoanOwnerResult `json:"owner"`
}

package entities

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewLoanDueDate(t *testing.T) {
	borrowedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	loan := NewLoan(uuid.New(), uuid.New(), nil, borrowedAt)

	assert.Equal(t, borrowedAt.Add(14*24*time.Hour), loan.DueDate)
	assert.True(t, loan.Open())
}

func TestLoanMarkReturned(t *testing.T) {
	loan := NewLoan(uuid.New(), uuid.New(), nil, time.Now())

	returnedAt := time.Now()
	loan.MarkReturned(returnedAt)

	assert.False(t, loan.Open())
	assert.Equal(t, returnedAt, *loan.ReturnedAt)
}

func TestValidResponseStatus(t *testing.T) {
	assert.True(t, ValidResponseStatus(RequestStatusAccepted))
	assert.True(t, ValidResponseStatus(RequestStatusRejected))
	assert.False(t, ValidResponseStatus(RequestStatusPending))
	assert.False(t, ValidResponseStatus(RequestStatus("maybe")))
}

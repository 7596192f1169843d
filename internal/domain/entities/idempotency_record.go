package entities

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyRecord stores the outcome of a non-retryable command keyed by a
// client-supplied idempotency key, so a replayed request gets the recorded
// response instead of re-running the transition.
type IdempotencyRecord struct {
	Id         uuid.UUID
	Key        string
	Request    string
	Response   string
	StatusCode int
	CreatedAt  time.Time
}

func NewIdempotencyRecord(key, request string) *IdempotencyRecord {
	return &IdempotencyRecord{
		Id:        uuid.New(),
		Key:       key,
		Request:   request,
		CreatedAt: time.Now(),
	}
}

func (r *IdempotencyRecord) SetResponse(response string, statusCode int) {
	r.Response = response
	r.StatusCode = statusCode
}

package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// Subjects for lending lifecycle events. Consumers (a future notifier, an
// analytics sink) subscribe to these; the lending engine publishes after its
// transaction has committed, never inside it.
const (
	SubjectRequestAccepted     = "lending.request.accepted"
	SubjectRequestAutoRejected = "lending.request.auto_rejected"
	SubjectBookReturned        = "lending.book.returned"
)

type Publisher struct {
	nc *nats.Conn
}

// Connect establishes the NATS connection. A nil *Publisher is valid and
// drops every event, so the service runs without a broker.
func Connect(url string) (*Publisher, error) {
	opts := []nats.Option{
		nats.Name("booklending-service"),
		nats.Timeout(5 * time.Second),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(10),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Printf("NATS disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Println("NATS reconnected")
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}

	log.Println("✅ Connected to NATS.")
	return &Publisher{nc: nc}, nil
}

type RequestAcceptedEvent struct {
	RequestId   uuid.UUID `json:"request_id"`
	BookId      uuid.UUID `json:"book_id"`
	RequesterId uuid.UUID `json:"requester_id"`
	OwnerId     uuid.UUID `json:"owner_id"`
	LoanId      uuid.UUID `json:"loan_id"`
	DueDate     time.Time `json:"due_date"`
}

type RequestAutoRejectedEvent struct {
	RequestId   uuid.UUID `json:"request_id"`
	BookId      uuid.UUID `json:"book_id"`
	RequesterId uuid.UUID `json:"requester_id"`
}

type BookReturnedEvent struct {
	LoanId uuid.UUID `json:"loan_id"`
	BookId uuid.UUID `json:"book_id"`
	UserId uuid.UUID `json:"user_id"`
}

func (p *Publisher) RequestAccepted(event RequestAcceptedEvent) {
	p.publish(SubjectRequestAccepted, event)
}

func (p *Publisher) RequestAutoRejected(event RequestAutoRejectedEvent) {
	p.publish(SubjectRequestAutoRejected, event)
}

func (p *Publisher) BookReturned(event BookReturnedEvent) {
	p.publish(SubjectBookReturned, event)
}

// publish is fire-and-forget: event delivery must never fail a request that
// has already committed.
func (p *Publisher) publish(subject string, payload interface{}) {
	if p == nil || p.nc == nil || !p.nc.IsConnected() {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to encode %s event: %v", subject, err)
		return
	}

	if err := p.nc.Publish(subject, data); err != nil {
		log.Printf("Failed to publish %s event: %v", subject, err)
	}
}

func (p *Publisher) Close() {
	if p == nil || p.nc == nil {
		return
	}
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
	}
}

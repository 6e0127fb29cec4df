package contracts

import (
	"context"
	"time"

	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
)

const (
	OutboxStatusPending   = "pending"
	OutboxStatusProcessed = "processed"
)

// OutboxEvent is a domain event persisted to the outbox table.
type OutboxEvent struct {
	EventID      string
	EventType    string
	AggregateID  string
	PayloadJSON  string
	Status       string
	CreatedAtUTC time.Time
}

// EventPublisher publishes product lifecycle events. Inside a Tx it writes
// to the outbox so the event commits with the mutation that raised it.
type EventPublisher interface {
	Publish(ctx context.Context, ev domain.DomainEvent) error
}

// OutboxStore is read by the relay.
type OutboxStore interface {
	// FetchPending returns up to limit pending events, oldest first.
	FetchPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	// MarkProcessed flags the event as delivered.
	MarkProcessed(ctx context.Context, eventID string, at time.Time) error
}

// Dispatcher delivers an outbox event to the message bus.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev OutboxEvent) error
	Close() error
}

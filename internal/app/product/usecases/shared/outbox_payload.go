package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
)

// productEventPayload is the JSON body consumers receive for every product
// lifecycle event.
type productEventPayload struct {
	ID          string    `json:"id"`
	ProductName string    `json:"productName"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// MarshalDomainEventPayload converts a domain event into its outbox payload.
func MarshalDomainEventPayload(ev domain.DomainEvent) (string, error) {
	if ev == nil {
		return "{}", nil
	}

	var payload productEventPayload
	switch e := ev.(type) {
	case *domain.ProductCreatedEvent:
		payload = productEventPayload{ID: e.ProductID, ProductName: e.ProductName, OccurredAt: e.OccurredAt()}
	case *domain.ProductUpdatedEvent:
		payload = productEventPayload{ID: e.ProductID, ProductName: e.ProductName, OccurredAt: e.OccurredAt()}
	case *domain.ProductDeletedEvent:
		payload = productEventPayload{ID: e.ProductID, ProductName: e.ProductName, OccurredAt: e.OccurredAt()}
	default:
		b, err := json.Marshal(ev)
		if err != nil {
			return "", fmt.Errorf("marshal outbox payload for %T: %w", ev, err)
		}
		return string(b), nil
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal outbox payload for %s: %w", ev.EventType(), err)
	}
	return string(b), nil
}

// NewOutboxEvent enriches a domain event into a pending outbox row.
func NewOutboxEvent(ev domain.DomainEvent, now time.Time) (*contracts.OutboxEvent, error) {
	payload, err := MarshalDomainEventPayload(ev)
	if err != nil {
		return nil, err
	}
	return &contracts.OutboxEvent{
		EventID:      uuid.New().String(),
		EventType:    ev.EventType(),
		AggregateID:  ev.AggregateID(),
		PayloadJSON:  payload,
		Status:       contracts.OutboxStatusPending,
		CreatedAtUTC: now.UTC(),
	}, nil
}

// PublishAll drains the aggregate's events into the publisher.
func PublishAll(ctx context.Context, pub contracts.EventPublisher, events []domain.DomainEvent) error {
	for _, ev := range events {
		if err := pub.Publish(ctx, ev); err != nil {
			return fmt.Errorf("publish %s: %w", ev.EventType(), err)
		}
	}
	return nil
}

// Package events delivers outbox events to a message bus. Every dispatcher
// implements contracts.Dispatcher and blocks until the broker acknowledged
// the event, so the relay may mark it processed afterwards.
package events

import (
	"time"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
)

const (
	HeaderEventID     = "event_id"
	HeaderEventType   = "event_type"
	HeaderAggregateID = "aggregate_id"
	HeaderOccurredAt  = "occurred_at"
)

// Headers are attached to every message. Consumers de-duplicate on event_id.
func Headers(ev contracts.OutboxEvent) map[string]string {
	return map[string]string{
		HeaderEventID:     ev.EventID,
		HeaderEventType:   ev.EventType,
		HeaderAggregateID: ev.AggregateID,
		HeaderOccurredAt:  ev.CreatedAtUTC.UTC().Format(time.RFC3339Nano),
	}
}

// Subject is the NATS subject of an event, e.g. "events.product.created".
func Subject(prefix, eventType string) string {
	return prefix + "." + eventType
}

// Topic is the Kafka topic shared by all product events.
func Topic(prefix string) string {
	return prefix + ".product"
}

// Stream is the Redis stream shared by all product events.
func Stream(prefix string) string {
	return prefix + ":product"
}

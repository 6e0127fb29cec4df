package repo

import (
	"time"

	"cloud.google.com/go/spanner"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
	"github.com/murkotick/product-pricing-service/internal/models/m_outbox"
)

// OutboxRepo turns outbox events into Spanner mutations. Applying them is
// left to the plan of the surrounding unit of work.
type OutboxRepo struct{}

func NewOutboxRepo() *OutboxRepo {
	return &OutboxRepo{}
}

func outboxRow(e *contracts.OutboxEvent) m_outbox.Row {
	return m_outbox.Row{
		EventID:     e.EventID,
		EventType:   e.EventType,
		AggregateID: e.AggregateID,
		Payload:     e.PayloadJSON,
		Status:      e.Status,
		CreatedAt:   e.CreatedAtUTC,
	}
}

// InsertMut returns nil for a nil event so callers can feed it to Plan.Add.
func (r *OutboxRepo) InsertMut(e *contracts.OutboxEvent) *spanner.Mutation {
	if e == nil {
		return nil
	}
	return m_outbox.InsertMutation(outboxRow(e))
}

func (r *OutboxRepo) MarkProcessedMut(eventID string, at time.Time) *spanner.Mutation {
	return m_outbox.MarkProcessedMutation(eventID, contracts.OutboxStatusProcessed, at.UTC())
}

package m_outbox

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Row is one outbox_events record as written by the unit of work.
type Row struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string
	Status      string
	CreatedAt   time.Time
}

// Values returns the column values of r. processed_at starts out NULL.
func (r Row) Values() map[string]interface{} {
	return map[string]interface{}{
		ColEventID:     r.EventID,
		ColEventType:   r.EventType,
		ColAggregateID: r.AggregateID,
		ColPayload:     r.Payload,
		ColStatus:      r.Status,
		ColCreatedAt:   r.CreatedAt.UTC(),
		ColProcessedAt: spanner.NullTime{},
	}
}

func InsertMutation(r Row) *spanner.Mutation {
	return spanner.InsertMap(TableName, r.Values())
}

// MarkProcessedMutation flips a row to processed once the relay delivered it.
func MarkProcessedMutation(eventID, status string, processedAt time.Time) *spanner.Mutation {
	return spanner.Update(TableName,
		[]string{ColEventID, ColStatus, ColProcessedAt},
		[]interface{}{eventID, status, processedAt},
	)
}

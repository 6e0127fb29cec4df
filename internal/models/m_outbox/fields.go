package m_outbox

// Field constants for the outbox_events table. Rows are written in the same
// transaction as the product mutation that raised the event.
const (
	TableName = "outbox_events"

	// StatusIndex serves the relay's pending scan.
	StatusIndex = "outbox_events_by_status"

	ColEventID     = "event_id"
	ColEventType   = "event_type"
	ColAggregateID = "aggregate_id"
	ColPayload     = "payload"
	ColStatus      = "status"
	ColCreatedAt   = "created_at"
	ColProcessedAt = "processed_at"
)

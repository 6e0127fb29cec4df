package sqlrepo

import (
	"context"
	"fmt"
	"time"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
)

func (s *Store) FetchPending(ctx context.Context, limit int) ([]contracts.OutboxEvent, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT event_id, event_type, aggregate_id, payload, status, created_at
		FROM outbox_events
		WHERE status = ?
		ORDER BY created_at, event_id
		LIMIT ?`), contracts.OutboxStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch pending events: %w", err)
	}
	defer rows.Close()

	out := make([]contracts.OutboxEvent, 0, limit)
	for rows.Next() {
		var (
			e         contracts.OutboxEvent
			createdAt dbTime
		)
		if err := rows.Scan(&e.EventID, &e.EventType, &e.AggregateID, &e.PayloadJSON, &e.Status, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAtUTC = createdAt.Time
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) MarkProcessed(ctx context.Context, eventID string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		UPDATE outbox_events SET status = ?, processed_at = ? WHERE event_id = ?`),
		contracts.OutboxStatusProcessed, timeArg(s.dialect, at), eventID)
	if err != nil {
		return fmt.Errorf("mark event %s processed: %w", eventID, err)
	}
	return nil
}

package e2e

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/iterator"
)

type outboxRow struct {
	EventID     string
	EventType   string
	AggregateID string
	Status      string
	CreatedAt   time.Time
}

func mustFetchOutboxRows(ctx context.Context, t *testing.T, aggregateID string) []outboxRow {
	t.Helper()
	stmt := spanner.Statement{
		SQL: `SELECT event_id, event_type, aggregate_id, status, created_at
        FROM outbox_events
        WHERE aggregate_id = @id
        ORDER BY created_at ASC, event_id ASC`,
		Params: map[string]any{"id": aggregateID},
	}

	iter := spClient.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := make([]outboxRow, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out
		}
		require.NoError(t, err)

		var e outboxRow
		require.NoError(t, row.Columns(&e.EventID, &e.EventType, &e.AggregateID, &e.Status, &e.CreatedAt))
		out = append(out, e)
	}
}

func mustCountHistory(ctx context.Context, t *testing.T, productID string) int64 {
	t.Helper()
	iter := spClient.Single().Query(ctx, spanner.Statement{
		SQL:    `SELECT COUNT(*) FROM price_histories WHERE product_id = @id`,
		Params: map[string]any{"id": productID},
	})
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err)
	var n int64
	require.NoError(t, row.Columns(&n))
	return n
}

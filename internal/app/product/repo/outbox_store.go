package repo

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
	commitplan "github.com/murkotick/product-pricing-service/internal/pkg/committer"
)

// SpannerOutboxStore is the relay's view of the outbox table.
type SpannerOutboxStore struct {
	client    *spanner.Client
	committer *commitplan.Adapter
	repo      *OutboxRepo
}

func NewSpannerOutboxStore(client *spanner.Client, committer *commitplan.Adapter) *SpannerOutboxStore {
	return &SpannerOutboxStore{client: client, committer: committer, repo: NewOutboxRepo()}
}

func (s *SpannerOutboxStore) FetchPending(ctx context.Context, limit int) ([]contracts.OutboxEvent, error) {
	stmt := spanner.Statement{
		SQL: `SELECT event_id, event_type, aggregate_id, payload, status, created_at
		      FROM outbox_events@{FORCE_INDEX=outbox_events_by_status}
		      WHERE status = @status
		      ORDER BY created_at ASC, event_id ASC
		      LIMIT @limit`,
		Params: map[string]interface{}{
			"status": contracts.OutboxStatusPending,
			"limit":  int64(limit),
		},
	}

	iter := s.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := make([]contracts.OutboxEvent, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		var e contracts.OutboxEvent
		if err := row.Columns(&e.EventID, &e.EventType, &e.AggregateID, &e.PayloadJSON, &e.Status, &e.CreatedAtUTC); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
}

func (s *SpannerOutboxStore) MarkProcessed(ctx context.Context, eventID string, at time.Time) error {
	plan := commitplan.NewPlan()
	plan.Add(s.repo.MarkProcessedMut(eventID, at))
	return s.committer.Apply(ctx, plan)
}

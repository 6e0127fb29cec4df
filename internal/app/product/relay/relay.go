// Package relay moves committed outbox events to the message bus.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
	"github.com/murkotick/product-pricing-service/internal/pkg/clock"
)

// Relay polls pending events oldest first and marks each one processed after
// the dispatcher accepted it. Delivery is at least once.
type Relay struct {
	store      contracts.OutboxStore
	dispatcher contracts.Dispatcher
	clock      clock.Clock
	logger     *slog.Logger
	interval   time.Duration
	batchSize  int
}

func New(store contracts.OutboxStore, dispatcher contracts.Dispatcher, clk clock.Clock, logger *slog.Logger, interval time.Duration, batchSize int) *Relay {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if interval <= 0 {
		interval = time.Second
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Relay{
		store:      store,
		dispatcher: dispatcher,
		clock:      clk,
		logger:     logger.With(slog.String("component", "outbox_relay")),
		interval:   interval,
		batchSize:  batchSize,
	}
}

// Run drains the outbox every interval until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if _, err := r.Drain(ctx); err != nil && !errors.Is(err, context.Canceled) {
			r.logger.ErrorContext(ctx, "outbox drain failed", slog.Any("error", err))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Drain delivers pending events in batches until none are left. It stops at
// the first failed dispatch so later events are not delivered ahead of it.
func (r *Relay) Drain(ctx context.Context) (int, error) {
	delivered := 0
	for {
		batch, err := r.store.FetchPending(ctx, r.batchSize)
		if err != nil {
			return delivered, fmt.Errorf("fetch pending: %w", err)
		}
		if len(batch) == 0 {
			return delivered, nil
		}

		for _, ev := range batch {
			if err := r.dispatcher.Dispatch(ctx, ev); err != nil {
				return delivered, fmt.Errorf("dispatch %s (%s): %w", ev.EventID, ev.EventType, err)
			}
			if err := r.store.MarkProcessed(ctx, ev.EventID, r.clock.Now()); err != nil {
				return delivered, fmt.Errorf("mark processed %s: %w", ev.EventID, err)
			}
			delivered++
			r.logger.DebugContext(ctx, "event delivered",
				slog.String("event_id", ev.EventID),
				slog.String("event_type", ev.EventType),
			)
		}

		if len(batch) < r.batchSize {
			return delivered, nil
		}
	}
}

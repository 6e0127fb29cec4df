package events

import (
	"context"
	"log/slog"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
)

// LogDispatcher writes events to the log instead of a broker. It is the
// default for local development.
type LogDispatcher struct {
	logger *slog.Logger
}

func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Dispatch(ctx context.Context, ev contracts.OutboxEvent) error {
	d.logger.InfoContext(ctx, "event dispatched",
		slog.String(HeaderEventID, ev.EventID),
		slog.String(HeaderEventType, ev.EventType),
		slog.String(HeaderAggregateID, ev.AggregateID),
		slog.String("payload", ev.PayloadJSON),
	)
	return nil
}

func (d *LogDispatcher) Close() error { return nil }

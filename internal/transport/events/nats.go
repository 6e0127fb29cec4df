package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
)

type NATSDispatcher struct {
	conn   *nats.Conn
	prefix string
	logger *slog.Logger
}

func NewNATSDispatcher(url, prefix string, logger *slog.Logger) (*NATSDispatcher, error) {
	conn, err := nats.Connect(url,
		nats.Name("product-pricing-service"),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2*time.Second),
		nats.Timeout(5*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", slog.Any("error", err))
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return &NATSDispatcher{conn: conn, prefix: prefix, logger: logger}, nil
}

func buildNATSMsg(prefix string, ev contracts.OutboxEvent) *nats.Msg {
	msg := nats.NewMsg(Subject(prefix, ev.EventType))
	msg.Data = []byte(ev.PayloadJSON)
	for k, v := range Headers(ev) {
		msg.Header.Set(k, v)
	}
	return msg
}

// Dispatch publishes and flushes, so a nil error means the server has the
// message.
func (d *NATSDispatcher) Dispatch(ctx context.Context, ev contracts.OutboxEvent) error {
	if err := d.conn.PublishMsg(buildNATSMsg(d.prefix, ev)); err != nil {
		return fmt.Errorf("nats publish %s: %w", ev.EventID, err)
	}
	if err := d.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("nats flush: %w", err)
	}
	return nil
}

func (d *NATSDispatcher) Close() error {
	return d.conn.Drain()
}

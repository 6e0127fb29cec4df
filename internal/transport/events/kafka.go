package events

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
)

type KafkaDispatcher struct {
	writer *kafka.Writer
}

// NewKafkaDispatcher writes to one topic keyed by product id, so the events
// of a product stay ordered within a partition.
func NewKafkaDispatcher(brokers []string, prefix string) *KafkaDispatcher {
	return &KafkaDispatcher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  Topic(prefix),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			Async:                  false,
			BatchTimeout:           10 * time.Millisecond,
			AllowAutoTopicCreation: true,
		},
	}
}

func buildKafkaMessage(ev contracts.OutboxEvent) kafka.Message {
	headers := Headers(ev)
	msg := kafka.Message{
		Key:     []byte(ev.AggregateID),
		Value:   []byte(ev.PayloadJSON),
		Time:    ev.CreatedAtUTC,
		Headers: make([]kafka.Header, 0, len(headers)),
	}
	for _, k := range []string{HeaderEventID, HeaderEventType, HeaderAggregateID, HeaderOccurredAt} {
		msg.Headers = append(msg.Headers, kafka.Header{Key: k, Value: []byte(headers[k])})
	}
	return msg
}

func (d *KafkaDispatcher) Dispatch(ctx context.Context, ev contracts.OutboxEvent) error {
	if err := d.writer.WriteMessages(ctx, buildKafkaMessage(ev)); err != nil {
		return fmt.Errorf("kafka write %s: %w", ev.EventID, err)
	}
	return nil
}

func (d *KafkaDispatcher) Close() error {
	return d.writer.Close()
}

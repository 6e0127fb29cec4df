package events

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
)

func sampleEvent() contracts.OutboxEvent {
	return contracts.OutboxEvent{
		EventID:      "e-1",
		EventType:    "product.updated",
		AggregateID:  "p-1",
		PayloadJSON:  `{"id":"p-1","productName":"Widget"}`,
		Status:       contracts.OutboxStatusPending,
		CreatedAtUTC: time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
	}
}

func TestNaming(t *testing.T) {
	assert.Equal(t, "events.product.updated", Subject("events", "product.updated"))
	assert.Equal(t, "events.product", Topic("events"))
	assert.Equal(t, "events:product", Stream("events"))
}

func TestHeaders(t *testing.T) {
	h := Headers(sampleEvent())

	assert.Equal(t, "e-1", h[HeaderEventID])
	assert.Equal(t, "product.updated", h[HeaderEventType])
	assert.Equal(t, "p-1", h[HeaderAggregateID])
	assert.Equal(t, "2024-05-06T07:08:09Z", h[HeaderOccurredAt])
}

func TestBuildNATSMsg(t *testing.T) {
	msg := buildNATSMsg("events", sampleEvent())

	assert.Equal(t, "events.product.updated", msg.Subject)
	assert.Equal(t, "e-1", msg.Header.Get(HeaderEventID))
	assert.JSONEq(t, `{"id":"p-1","productName":"Widget"}`, string(msg.Data))
}

func TestBuildKafkaMessage_KeyedByProduct(t *testing.T) {
	msg := buildKafkaMessage(sampleEvent())

	assert.Equal(t, []byte("p-1"), msg.Key)
	require.Len(t, msg.Headers, 4)
	assert.Equal(t, HeaderEventID, msg.Headers[0].Key)
	assert.Equal(t, []byte("e-1"), msg.Headers[0].Value)
}

func TestBuildXAddArgs(t *testing.T) {
	args := buildXAddArgs("events:product", 1000, sampleEvent())

	assert.Equal(t, "events:product", args.Stream)
	assert.Equal(t, int64(1000), args.MaxLen)
	assert.True(t, args.Approx)

	values, ok := args.Values.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "e-1", values[HeaderEventID])
	assert.Equal(t, `{"id":"p-1","productName":"Widget"}`, values["data"])

	unbounded := buildXAddArgs("s", 0, sampleEvent())
	assert.Zero(t, unbounded.MaxLen)
	assert.False(t, unbounded.Approx)
}

func TestLogDispatcher(t *testing.T) {
	var buf bytes.Buffer
	d := NewLogDispatcher(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, d.Dispatch(context.Background(), sampleEvent()))
	require.NoError(t, d.Close())

	assert.Contains(t, buf.String(), `"event_id":"e-1"`)
	assert.Contains(t, buf.String(), `"msg":"event dispatched"`)
}

func TestNewDispatcher(t *testing.T) {
	d, err := NewDispatcher(context.Background(), Config{Driver: DriverLog}, nil)
	require.NoError(t, err)
	assert.IsType(t, &LogDispatcher{}, d)

	k, err := NewDispatcher(context.Background(), Config{Driver: DriverKafka, Prefix: "events", KafkaBrokers: []string{"localhost:9092"}}, nil)
	require.NoError(t, err)
	assert.IsType(t, &KafkaDispatcher{}, k)
	assert.NoError(t, k.Close())

	_, err = NewDispatcher(context.Background(), Config{Driver: DriverKafka}, nil)
	assert.Error(t, err)

	_, err = NewDispatcher(context.Background(), Config{Driver: "carrier-pigeon"}, nil)
	assert.EqualError(t, err, `unknown bus driver "carrier-pigeon"`)
}

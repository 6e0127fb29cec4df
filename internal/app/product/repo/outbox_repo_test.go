package repo

import (
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
	"github.com/murkotick/product-pricing-service/internal/models/m_outbox"
)

func TestOutboxRepo_InsertMut(t *testing.T) {
	r := NewOutboxRepo()

	assert.Nil(t, r.InsertMut(nil))
	assert.NotNil(t, r.InsertMut(&contracts.OutboxEvent{
		EventID:      "e-1",
		EventType:    "product.created",
		AggregateID:  "prod-1",
		PayloadJSON:  `{"id":"prod-1"}`,
		Status:       contracts.OutboxStatusPending,
		CreatedAtUTC: time.Now().UTC(),
	}))
	assert.NotNil(t, r.MarkProcessedMut("e-1", time.Now()))
}

func TestOutboxRow_Values(t *testing.T) {
	local := time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("X", 3600))

	values := outboxRow(&contracts.OutboxEvent{
		EventID:      "e-1",
		EventType:    "product.updated",
		AggregateID:  "prod-1",
		PayloadJSON:  `{}`,
		Status:       contracts.OutboxStatusPending,
		CreatedAtUTC: local,
	}).Values()

	assert.Equal(t, "product.updated", values[m_outbox.ColEventType])
	assert.Equal(t, contracts.OutboxStatusPending, values[m_outbox.ColStatus])
	assert.Equal(t, time.UTC, values[m_outbox.ColCreatedAt].(time.Time).Location())
	assert.Equal(t, spanner.NullTime{}, values[m_outbox.ColProcessedAt])
}

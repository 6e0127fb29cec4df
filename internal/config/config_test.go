package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "log", cfg.Bus.Driver)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Bus.KafkaBrokers)
	assert.Equal(t, int64(10000), cfg.Bus.RedisStreamMax)
	assert.Equal(t, time.Second, cfg.Outbox.PollInterval)
	assert.Equal(t, "USD", cfg.ExchangeRate.BaseCurrency)
	assert.Equal(t, 10*time.Minute, cfg.ExchangeRate.CacheTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/products")
	t.Setenv("BUS_DRIVER", "kafka")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("OUTBOX_BATCH_SIZE", "25")
	t.Setenv("EXCHANGE_RATE_CACHE_TTL", "0s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Bus.KafkaBrokers)
	assert.Equal(t, 25, cfg.Outbox.BatchSize)
	assert.Zero(t, cfg.ExchangeRate.CacheTTL)
}

func TestLoad_MalformedValues(t *testing.T) {
	t.Setenv("OUTBOX_BATCH_SIZE", "lots")
	t.Setenv("EXCHANGE_RATE_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OUTBOX_BATCH_SIZE")
	assert.Contains(t, err.Error(), "EXCHANGE_RATE_TIMEOUT")
}

func TestValidate(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	_, err := Load()
	assert.EqualError(t, err, "POSTGRES_DSN is required when STORE_DRIVER=postgres")

	t.Setenv("STORE_DRIVER", "mongo")
	_, err = Load()
	assert.EqualError(t, err, `unknown STORE_DRIVER "mongo"`)
}

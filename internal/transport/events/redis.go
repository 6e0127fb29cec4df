package events

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// MaxLen caps the stream approximately; zero keeps every entry.
	MaxLen int64
}

type RedisDispatcher struct {
	client *redis.Client
	stream string
	maxLen int64
}

func NewRedisDispatcher(ctx context.Context, cfg RedisConfig, prefix string) (*RedisDispatcher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisDispatcher{client: client, stream: Stream(prefix), maxLen: cfg.MaxLen}, nil
}

func buildXAddArgs(stream string, maxLen int64, ev contracts.OutboxEvent) *redis.XAddArgs {
	values := make(map[string]interface{}, 5)
	for k, v := range Headers(ev) {
		values[k] = v
	}
	values["data"] = ev.PayloadJSON

	args := &redis.XAddArgs{
		Stream: stream,
		Values: values,
	}
	if maxLen > 0 {
		args.MaxLen = maxLen
		args.Approx = true
	}
	return args
}

func (d *RedisDispatcher) Dispatch(ctx context.Context, ev contracts.OutboxEvent) error {
	if err := d.client.XAdd(ctx, buildXAddArgs(d.stream, d.maxLen, ev)).Err(); err != nil {
		return fmt.Errorf("redis xadd %s: %w", ev.EventID, err)
	}
	return nil
}

func (d *RedisDispatcher) Close() error {
	return d.client.Close()
}

package events

import (
	"context"
	"fmt"
	"log/slog"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
)

const (
	DriverLog   = "log"
	DriverNATS  = "nats"
	DriverKafka = "kafka"
	DriverRedis = "redis"
)

// Config selects and configures the bus.
type Config struct {
	Driver       string
	Prefix       string
	NATSURL      string
	KafkaBrokers []string
	Redis        RedisConfig
}

// NewDispatcher builds the dispatcher named by cfg.Driver.
func NewDispatcher(ctx context.Context, cfg Config, logger *slog.Logger) (contracts.Dispatcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With(slog.String("bus", cfg.Driver))

	switch cfg.Driver {
	case DriverLog, "":
		return NewLogDispatcher(logger), nil
	case DriverNATS:
		d, err := NewNATSDispatcher(cfg.NATSURL, cfg.Prefix, logger)
		if err != nil {
			return nil, err
		}
		return d, nil
	case DriverKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("kafka: at least one broker is required")
		}
		return NewKafkaDispatcher(cfg.KafkaBrokers, cfg.Prefix), nil
	case DriverRedis:
		d, err := NewRedisDispatcher(ctx, cfg.Redis, cfg.Prefix)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown bus driver %q", cfg.Driver)
	}
}

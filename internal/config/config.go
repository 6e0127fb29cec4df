// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server       ServerConfig
	Log          LogConfig
	Store        StoreConfig
	Bus          BusConfig
	Outbox       OutboxConfig
	ExchangeRate ExchangeRateConfig
}

type ServerConfig struct {
	HTTPAddr       string
	GRPCHealthAddr string
	ServiceName    string
	Environment    string
}

type LogConfig struct {
	Level  string
	Format string
}

type StoreConfig struct {
	Driver          string // memory, spanner, sqlite, postgres
	SpannerDatabase string
	SQLitePath      string
	PostgresDSN     string
}

type BusConfig struct {
	Driver         string // log, nats, kafka, redis
	Prefix         string
	NATSURL        string
	KafkaBrokers   []string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisStreamMax int64
}

type OutboxConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

type ExchangeRateConfig struct {
	BaseURL      string
	APIKey       string
	Endpoint     string
	BaseCurrency string
	Timeout      time.Duration
	CacheTTL     time.Duration
	CacheSize    int
}

// Load reads the environment. Malformed numbers and durations are errors.
func Load() (*Config, error) {
	var errs []error

	cfg := &Config{
		Server: ServerConfig{
			HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
			GRPCHealthAddr: getEnv("GRPC_HEALTH_ADDR", ":50051"),
			ServiceName:    getEnv("SERVICE_NAME", "product-pricing-service"),
			Environment:    getEnv("ENVIRONMENT", "development"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Store: StoreConfig{
			Driver:          getEnv("STORE_DRIVER", "memory"),
			SpannerDatabase: getEnv("SPANNER_DATABASE", "projects/test-project/instances/emulator-instance/databases/test-db"),
			SQLitePath:      getEnv("SQLITE_PATH", "file:products.db"),
			PostgresDSN:     getEnv("POSTGRES_DSN", ""),
		},
		Bus: BusConfig{
			Driver:        getEnv("BUS_DRIVER", "log"),
			Prefix:        getEnv("BUS_PREFIX", "events"),
			NATSURL:       getEnv("NATS_URL", "nats://localhost:4222"),
			KafkaBrokers:  splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getInt("REDIS_DB", 0, &errs),
		},
		Outbox: OutboxConfig{
			PollInterval: getDuration("OUTBOX_POLL_INTERVAL", time.Second, &errs),
			BatchSize:    getInt("OUTBOX_BATCH_SIZE", 100, &errs),
		},
		ExchangeRate: ExchangeRateConfig{
			BaseURL:      getEnv("EXCHANGE_RATE_BASE_URL", "https://v6.exchangerate-api.com/v6"),
			APIKey:       getEnv("EXCHANGE_RATE_API_KEY", ""),
			Endpoint:     getEnv("EXCHANGE_RATE_ENDPOINT", "latest"),
			BaseCurrency: getEnv("EXCHANGE_RATE_BASE_CURRENCY", "USD"),
			Timeout:      getDuration("EXCHANGE_RATE_TIMEOUT", 5*time.Second, &errs),
			CacheTTL:     getDuration("EXCHANGE_RATE_CACHE_TTL", 10*time.Minute, &errs),
			CacheSize:    getInt("EXCHANGE_RATE_CACHE_SIZE", 64, &errs),
		},
	}
	cfg.Bus.RedisStreamMax = int64(getInt("REDIS_STREAM_MAXLEN", 10000, &errs))

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the combinations Load cannot catch per variable.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "memory", "spanner", "sqlite":
	case "postgres":
		if c.Store.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	switch c.Bus.Driver {
	case "log", "nats", "redis":
	case "kafka":
		if len(c.Bus.KafkaBrokers) == 0 {
			return errors.New("KAFKA_BROKERS is required when BUS_DRIVER=kafka")
		}
	default:
		return fmt.Errorf("unknown BUS_DRIVER %q", c.Bus.Driver)
	}

	if c.Outbox.BatchSize <= 0 {
		return errors.New("OUTBOX_BATCH_SIZE must be positive")
	}
	if c.Outbox.PollInterval <= 0 {
		return errors.New("OUTBOX_POLL_INTERVAL must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int, errs *[]error) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

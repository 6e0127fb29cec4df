package main

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/spanner"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
	"github.com/murkotick/product-pricing-service/internal/app/product/queries"
	"github.com/murkotick/product-pricing-service/internal/app/product/repo"
	"github.com/murkotick/product-pricing-service/internal/app/product/repo/memrepo"
	"github.com/murkotick/product-pricing-service/internal/app/product/repo/sqlrepo"
	"github.com/murkotick/product-pricing-service/internal/config"
	committer "github.com/murkotick/product-pricing-service/internal/pkg/committer"
)

// backend is the storage selected by STORE_DRIVER.
type backend struct {
	tx        contracts.Transactor
	readModel contracts.ReadModel
	outbox    contracts.OutboxStore
	close     func()
}

func openStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (*backend, error) {
	switch cfg.Driver {
	case "memory":
		s := memrepo.New(logger)
		return &backend{tx: s, readModel: s, outbox: s, close: func() {}}, nil

	case "spanner":
		client, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
		if err != nil {
			return nil, fmt.Errorf("spanner.NewClient: %w", err)
		}
		cm := committer.NewAdapter(client)
		return &backend{
			tx:        repo.NewSpannerStore(cm),
			readModel: queries.NewSpannerReadModel(client),
			outbox:    repo.NewSpannerOutboxStore(client, cm),
			close:     client.Close,
		}, nil

	case "sqlite", "postgres":
		dsn := cfg.SQLitePath
		if cfg.Driver == "postgres" {
			dsn = cfg.PostgresDSN
		}
		s, err := sqlrepo.Open(ctx, cfg.Driver, dsn, logger)
		if err != nil {
			return nil, err
		}
		return &backend{tx: s, readModel: s, outbox: s, close: func() { _ = s.Close() }}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

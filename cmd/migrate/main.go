package main

import (
	"context"
	"fmt"
	"log"
	"time"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"

	"github.com/murkotick/product-pricing-service/internal/app/product/repo/sqlrepo"
	"github.com/murkotick/product-pricing-service/internal/config"
	"github.com/murkotick/product-pricing-service/internal/pkg/logging"
	"github.com/murkotick/product-pricing-service/migrations"
)

// Applies the embedded schema to the database selected by STORE_DRIVER.
//
// Usage (Spanner emulator):
//
//	export SPANNER_EMULATOR_HOST=localhost:9010
//	export STORE_DRIVER=spanner
//	export SPANNER_DATABASE=projects/test-project/instances/emulator-instance/databases/test-db
//	go run ./cmd/migrate
//
// For sqlite and postgres the goose migrations under migrations/ are applied.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	switch cfg.Store.Driver {
	case "spanner":
		n, err := migrateSpanner(ctx, cfg.Store.SpannerDatabase)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Applied %d DDL statements to %s\n", n, cfg.Store.SpannerDatabase)

	case sqlrepo.DialectSQLite, sqlrepo.DialectPostgres:
		dsn := cfg.Store.SQLitePath
		if cfg.Store.Driver == sqlrepo.DialectPostgres {
			dsn = cfg.Store.PostgresDSN
		}
		logger := logging.New(log.Writer(), logging.Options{Level: cfg.Log.Level, Format: "text", ServiceName: "migrate"})
		s, err := sqlrepo.Open(ctx, cfg.Store.Driver, dsn, logger)
		if err != nil {
			log.Fatalf("migrate %s: %v", cfg.Store.Driver, err)
		}
		_ = s.Close()
		fmt.Printf("Migrated %s database\n", cfg.Store.Driver)

	default:
		log.Fatalf("STORE_DRIVER %q has no schema to apply", cfg.Store.Driver)
	}
}

func migrateSpanner(ctx context.Context, db string) (int, error) {
	stmts, err := migrations.SpannerDDL()
	if err != nil {
		return 0, fmt.Errorf("read DDL: %w", err)
	}
	if len(stmts) == 0 {
		return 0, fmt.Errorf("no DDL statements found")
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return 0, fmt.Errorf("database admin client: %w", err)
	}
	defer admin.Close()

	op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   db,
		Statements: stmts,
	})
	if err != nil {
		return 0, fmt.Errorf("UpdateDatabaseDdl: %w", err)
	}
	if err := op.Wait(ctx); err != nil {
		return 0, fmt.Errorf("UpdateDatabaseDdl wait: %w", err)
	}
	return len(stmts), nil
}

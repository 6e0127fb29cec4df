// Package sqlrepo stores products, the price ledger and the outbox in SQLite
// or PostgreSQL through database/sql.
package sqlrepo

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/murkotick/product-pricing-service/migrations"
)

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// Open connects to the database, applies the embedded migrations and returns
// a Store. dsn is a file path or URI for SQLite and a connection string for
// PostgreSQL.
func Open(ctx context.Context, dialect, dsn string, logger *slog.Logger) (*Store, error) {
	var driver string
	switch dialect {
	case DialectSQLite:
		driver = SQLiteDriverName
	case DialectPostgres:
		driver = "pgx"
	default:
		return nil, fmt.Errorf("sqlrepo: unsupported dialect %q", dialect)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}

	if dialect == DialectSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
		// SQLite has a single writer.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}

	if err := migrations.Up(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}

	return New(db, dialect, logger), nil
}

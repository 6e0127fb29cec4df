// Package migrations embeds the schema of every supported store.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/pressly/goose/v3"
)

//go:embed spanner/*.sql sqlite/*.sql postgres/*.sql
var files embed.FS

// SpannerDDL returns the Spanner DDL statements in file order. Statements are
// separated by ";" and comments are not supported.
func SpannerDDL() ([]string, error) {
	names, err := fs.Glob(files, "spanner/*.sql")
	if err != nil {
		return nil, err
	}

	var out []string
	for _, name := range names {
		b, err := files.ReadFile(name)
		if err != nil {
			return nil, err
		}
		out = append(out, SplitDDL(string(b))...)
	}
	return out, nil
}

// SplitDDL splits a DDL script on ";" and drops empty statements.
func SplitDDL(sql string) []string {
	// Normalize line endings for Windows-authored files.
	sql = strings.ReplaceAll(sql, "\r\n", "\n")

	parts := strings.Split(sql, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}

// Up applies the goose migrations of dialect ("sqlite" or "postgres") to db.
func Up(ctx context.Context, db *sql.DB, dialect string) error {
	var gooseDialect goose.Dialect
	switch dialect {
	case "sqlite":
		gooseDialect = goose.DialectSQLite3
	case "postgres":
		gooseDialect = goose.DialectPostgres
	default:
		return fmt.Errorf("migrations: unsupported dialect %q", dialect)
	}

	sub, err := fs.Sub(files, dialect)
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(gooseDialect, db, sub)
	if err != nil {
		return fmt.Errorf("migrations: new provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrations: up: %w", err)
	}
	return nil
}

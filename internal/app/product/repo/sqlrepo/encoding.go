package sqlrepo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
)

// timeLayout is fixed width so SQLite TEXT columns sort chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const (
	pgUniqueViolation = "23505"
	skuIndex          = "products_by_sku"
)

// dbTime scans both native timestamps (PostgreSQL) and TEXT (SQLite).
type dbTime struct {
	time.Time
}

func (t *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("sqlrepo: cannot scan %T into time", src)
	}
}

func (t *dbTime) parse(s string) error {
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("sqlrepo: parse time %q: %w", s, err)
	}
	t.Time = parsed.UTC()
	return nil
}

// timeArg encodes t for the dialect's timestamp column.
func timeArg(dialect string, t time.Time) any {
	if dialect == DialectSQLite {
		return t.UTC().Format(timeLayout)
	}
	return t.UTC()
}

// rebind rewrites "?" placeholders to "$n" for PostgreSQL.
func rebind(dialect, query string) string {
	if dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// translateError maps a unique violation on sku to domain.ErrDuplicateSku.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == skuIndex {
		return fmt.Errorf("%w: %v", domain.ErrDuplicateSku, err)
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed: products.sku") {
		return fmt.Errorf("%w: %v", domain.ErrDuplicateSku, err)
	}
	return err
}

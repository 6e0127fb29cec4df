package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
	shared "github.com/murkotick/product-pricing-service/internal/app/product/usecases/shared"
)

// Store implements contracts.Transactor, contracts.ReadModel and
// contracts.OutboxStore on a *sql.DB.
type Store struct {
	db      *sql.DB
	dialect string
	logger  *slog.Logger
}

// New wraps an open database whose schema is already migrated.
func New(db *sql.DB, dialect string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{db: db, dialect: dialect, logger: logger.With(slog.String("store", dialect))}
}

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) q(query string) string { return rebind(s.dialect, query) }

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx contracts.Tx) error) (err error) {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := sqlTx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				s.logger.ErrorContext(ctx, "rollback failed", slog.Any("error", rbErr))
			}
		}
	}()

	if err = fn(ctx, &unitTx{store: s, tx: sqlTx}); err != nil {
		return err
	}
	if err = sqlTx.Commit(); err != nil {
		return translateError(fmt.Errorf("commit: %w", err))
	}
	return nil
}

type unitTx struct {
	store *Store
	tx    *sql.Tx
}

func (t *unitTx) Products() contracts.ProductWriter { return (*productWriter)(t) }
func (t *unitTx) Ledger() contracts.LedgerWriter { return (*ledgerWriter)(t) }
func (t *unitTx) Events() contracts.EventPublisher { return (*outboxWriter)(t) }

type productWriter unitTx

func (w *productWriter) Create(ctx context.Context, p *domain.Product) (string, error) {
	_, err := w.tx.ExecContext(ctx, w.store.q(`
		INSERT INTO products (product_id, name, description, price, category, sku)
		VALUES (?, ?, ?, ?, ?, ?)`),
		p.ID(), p.Name(), p.Description(), p.Price().Decimal(), p.Category(), p.Sku())
	if err != nil {
		return "", translateError(fmt.Errorf("insert product: %w", err))
	}
	return p.ID(), nil
}

func (w *productWriter) Update(ctx context.Context, id string, p *domain.Product) (string, domain.Money, error) {
	query := `SELECT price FROM products WHERE product_id = ?`
	if w.store.dialect == DialectPostgres {
		query += ` FOR UPDATE`
	}

	var oldPrice decimal.Decimal
	err := w.tx.QueryRowContext(ctx, w.store.q(query), id).Scan(&oldPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.Zero(), nil
	}
	if err != nil {
		return "", domain.Zero(), fmt.Errorf("read product %s: %w", id, err)
	}

	_, err = w.tx.ExecContext(ctx, w.store.q(`
		UPDATE products
		SET name = ?, description = ?, price = ?, category = ?, sku = ?
		WHERE product_id = ?`),
		p.Name(), p.Description(), p.Price().Decimal(), p.Category(), p.Sku(), id)
	if err != nil {
		return "", domain.Zero(), translateError(fmt.Errorf("update product %s: %w", id, err))
	}
	return id, domain.NewMoney(oldPrice), nil
}

func (w *productWriter) Delete(ctx context.Context, id string) (*domain.Product, error) {
	row := w.tx.QueryRowContext(ctx, w.store.q(`
		SELECT product_id, name, description, price, category, sku
		FROM products WHERE product_id = ?`), id)

	var (
		pid, name, description, category, sku string
		price                                 decimal.Decimal
	)
	err := row.Scan(&pid, &name, &description, &price, &category, &sku)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read product %s: %w", id, err)
	}

	if _, err := w.tx.ExecContext(ctx, w.store.q(`DELETE FROM products WHERE product_id = ?`), id); err != nil {
		return nil, fmt.Errorf("delete product %s: %w", id, err)
	}
	return domain.ReconstructProduct(pid, name, description, category, sku, domain.NewMoney(price)), nil
}

type ledgerWriter unitTx

func (w *ledgerWriter) Append(ctx context.Context, h domain.PriceHistory) error {
	_, err := w.tx.ExecContext(ctx, w.store.q(`
		INSERT INTO price_histories (history_id, product_id, old_price, new_price, action, changed_at)
		VALUES (?, ?, ?, ?, ?, ?)`),
		h.ID, h.ProductID, h.OldPrice.Decimal(), h.NewPrice.Decimal(), string(h.Action),
		timeArg(w.store.dialect, h.ChangedAt))
	return err
}

type outboxWriter unitTx

func (w *outboxWriter) Publish(ctx context.Context, ev domain.DomainEvent) error {
	rec, err := shared.NewOutboxEvent(ev, ev.OccurredAt())
	if err != nil {
		return err
	}
	_, err = w.tx.ExecContext(ctx, w.store.q(`
		INSERT INTO outbox_events (event_id, event_type, aggregate_id, payload, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`),
		rec.EventID, rec.EventType, rec.AggregateID, rec.PayloadJSON, rec.Status,
		timeArg(w.store.dialect, rec.CreatedAtUTC))
	if err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}
	return nil
}

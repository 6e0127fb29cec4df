package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
	shared "github.com/murkotick/product-pricing-service/internal/app/product/usecases/shared"
	commitplan "github.com/murkotick/product-pricing-service/internal/pkg/committer"
	"github.com/murkotick/product-pricing-service/internal/models/m_product"
)

// SpannerStore implements contracts.Transactor. Reads needed by a unit of
// work go through the read-write transaction; writes are collected as
// mutations in a commit plan and buffered when the unit succeeds.
type SpannerStore struct {
	committer *commitplan.Adapter
	products  *ProductRepo
	history   *PriceHistoryRepo
	outbox    *OutboxRepo
}

func NewSpannerStore(committer *commitplan.Adapter) *SpannerStore {
	return &SpannerStore{
		committer: committer,
		products:  NewProductRepo(),
		history:   NewPriceHistoryRepo(),
		outbox:    NewOutboxRepo(),
	}
}

func (s *SpannerStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx contracts.Tx) error) error {
	err := s.committer.ReadWrite(ctx, func(ctx context.Context, rw *spanner.ReadWriteTransaction, plan *commitplan.Plan) error {
		return fn(ctx, &spannerTx{store: s, rw: rw, plan: plan})
	})
	return translateCommitError(err)
}

// translateCommitError maps a unique-index violation on sku to
// domain.ErrDuplicateSku. Spanner reports it at commit time.
func translateCommitError(err error) error {
	if err == nil {
		return nil
	}
	if spanner.ErrCode(err) == codes.AlreadyExists && strings.Contains(err.Error(), m_product.SkuIndex) {
		return fmt.Errorf("%w: %v", domain.ErrDuplicateSku, err)
	}
	return err
}

type spannerTx struct {
	store *SpannerStore
	rw    *spanner.ReadWriteTransaction
	plan  *commitplan.Plan
}

func (t *spannerTx) Products() contracts.ProductWriter { return (*spannerProducts)(t) }
func (t *spannerTx) Ledger() contracts.LedgerWriter { return (*spannerLedger)(t) }
func (t *spannerTx) Events() contracts.EventPublisher { return (*spannerOutbox)(t) }

type spannerProducts spannerTx

func (w *spannerProducts) Create(ctx context.Context, p *domain.Product) (string, error) {
	w.plan.Add(w.store.products.InsertMut(p))
	return p.ID(), nil
}

func (w *spannerProducts) Update(ctx context.Context, id string, p *domain.Product) (string, domain.Money, error) {
	row, err := w.rw.ReadRow(ctx, m_product.TableName, spanner.Key{id}, []string{m_product.ColPrice})
	if isRowNotFound(err) {
		return "", domain.Zero(), nil
	}
	if err != nil {
		return "", domain.Zero(), fmt.Errorf("read product %s: %w", id, err)
	}

	var oldPrice spanner.NullNumeric
	if err := row.Columns(&oldPrice); err != nil {
		return "", domain.Zero(), err
	}

	w.plan.Add(w.store.products.UpdateMut(id, p))
	return id, moneyFromNumeric(oldPrice), nil
}

func (w *spannerProducts) Delete(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, nil
	}
	row, err := w.rw.ReadRow(ctx, m_product.TableName, spanner.Key{id}, m_product.AllColumns)
	if isRowNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read product %s: %w", id, err)
	}

	p, err := scanProduct(row)
	if err != nil {
		return nil, err
	}

	w.plan.Add(w.store.products.DeleteMut(id))
	return p, nil
}

type spannerLedger spannerTx

func (w *spannerLedger) Append(ctx context.Context, h domain.PriceHistory) error {
	w.plan.Add(w.store.history.InsertMut(h))
	return nil
}

type spannerOutbox spannerTx

func (w *spannerOutbox) Publish(ctx context.Context, ev domain.DomainEvent) error {
	rec, err := shared.NewOutboxEvent(ev, ev.OccurredAt())
	if err != nil {
		return err
	}
	w.plan.Add(w.store.outbox.InsertMut(rec))
	return nil
}

func scanProduct(row *spanner.Row) (*domain.Product, error) {
	var (
		id, name, description, category, sku string
		price                                spanner.NullNumeric
	)
	if err := row.Columns(&id, &name, &description, &price, &category, &sku); err != nil {
		return nil, err
	}
	return domain.ReconstructProduct(id, name, description, category, sku, moneyFromNumeric(price)), nil
}

func isRowNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, spanner.ErrRowNotFound) || spanner.ErrCode(err) == codes.NotFound
}

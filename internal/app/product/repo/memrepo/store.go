// Package memrepo is an in-memory product store. It backs local development
// (STORE_DRIVER=memory) and the usecase and transport tests.
package memrepo

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
	"github.com/murkotick/product-pricing-service/internal/app/product/dto"
	shared "github.com/murkotick/product-pricing-service/internal/app/product/usecases/shared"
)

type state struct {
	products map[string]*domain.Product
	skus     map[string]string // sku -> product id
	history  []domain.PriceHistory
	outbox   []contracts.OutboxEvent
}

func (s *state) clone() *state {
	c := &state{
		products: make(map[string]*domain.Product, len(s.products)),
		skus:     make(map[string]string, len(s.skus)),
		history:  append([]domain.PriceHistory(nil), s.history...),
		outbox:   append([]contracts.OutboxEvent(nil), s.outbox...),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.skus {
		c.skus[k] = v
	}
	return c
}

// Store implements contracts.Transactor, contracts.ReadModel and
// contracts.OutboxStore. Units of work are serialized and applied to a copy of
// the state that replaces the live one only on success.
type Store struct {
	mu     sync.RWMutex
	state  *state
	logger *slog.Logger
}

// New creates an empty store. A nil logger discards output.
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		state: &state{
			products: make(map[string]*domain.Product),
			skus:     make(map[string]string),
		},
		logger: logger,
	}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx contracts.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(ctx, &memTx{st: work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *Store) GetProduct(ctx context.Context, productID string) (*dto.ProductDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.state.products[productID]
	if !ok {
		s.logger.DebugContext(ctx, "product not found", slog.String("product_id", productID))
		return nil, domain.ErrProductNotFound
	}
	return toDTO(p), nil
}

func (s *Store) ListProducts(ctx context.Context) ([]*dto.ProductDTO, error) {
	return s.list(func(*domain.Product) bool { return true }), nil
}

func (s *Store) ListProductsByCategory(ctx context.Context, category string) ([]*dto.ProductDTO, error) {
	return s.list(func(p *domain.Product) bool { return p.Category() == category }), nil
}

func (s *Store) list(keep func(*domain.Product) bool) []*dto.ProductDTO {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*dto.ProductDTO, 0, len(s.state.products))
	for _, p := range s.state.products {
		if keep(p) {
			out = append(out, toDTO(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out
}

func (s *Store) GetPriceHistory(ctx context.Context, productID string) ([]*dto.PriceHistoryDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*dto.PriceHistoryDTO, 0)
	for _, h := range s.state.history {
		if h.ProductID != productID {
			continue
		}
		row := &dto.PriceHistoryDTO{
			HistoryID: h.ID,
			ProductID: h.ProductID,
			OldPrice:  h.OldPrice.Decimal(),
			NewPrice:  h.NewPrice.Decimal(),
			Action:    string(h.Action),
			ChangedAt: h.ChangedAt,
		}
		if p, ok := s.state.products[h.ProductID]; ok {
			row.ProductName = p.Name()
			row.ProductSku = p.Sku()
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ChangedAt.Before(out[j].ChangedAt) })
	return out, nil
}

func (s *Store) FetchPending(ctx context.Context, limit int) ([]contracts.OutboxEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]contracts.OutboxEvent, 0, limit)
	for _, e := range s.state.outbox {
		if len(out) == limit {
			break
		}
		if e.Status == contracts.OutboxStatusPending {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) MarkProcessed(ctx context.Context, eventID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.outbox {
		if s.state.outbox[i].EventID == eventID {
			s.state.outbox[i].Status = contracts.OutboxStatusProcessed
			return nil
		}
	}
	return nil
}

func toDTO(p *domain.Product) *dto.ProductDTO {
	return &dto.ProductDTO{
		ProductID:   p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price().Decimal(),
		Category:    p.Category(),
		Sku:         p.Sku(),
	}
}

// snapshot drops recorded events so stored products stay immutable.
func snapshot(p *domain.Product) *domain.Product {
	return domain.ReconstructProduct(p.ID(), p.Name(), p.Description(), p.Category(), p.Sku(), p.Price())
}

type memTx struct {
	st *state
}

func (t *memTx) Products() contracts.ProductWriter { return (*productWriter)(t) }
func (t *memTx) Ledger() contracts.LedgerWriter { return (*ledgerWriter)(t) }
func (t *memTx) Events() contracts.EventPublisher { return (*outboxWriter)(t) }

type productWriter memTx

func (w *productWriter) Create(ctx context.Context, p *domain.Product) (string, error) {
	if _, taken := w.st.skus[p.Sku()]; taken {
		return "", domain.ErrDuplicateSku
	}
	w.st.products[p.ID()] = snapshot(p)
	w.st.skus[p.Sku()] = p.ID()
	return p.ID(), nil
}

func (w *productWriter) Update(ctx context.Context, id string, p *domain.Product) (string, domain.Money, error) {
	existing, ok := w.st.products[id]
	if !ok {
		return "", domain.Zero(), nil
	}
	if owner, taken := w.st.skus[p.Sku()]; taken && owner != id {
		return "", domain.Zero(), domain.ErrDuplicateSku
	}
	oldPrice := existing.Price()

	delete(w.st.skus, existing.Sku())
	w.st.products[id] = domain.ReconstructProduct(id, p.Name(), p.Description(), p.Category(), p.Sku(), p.Price())
	w.st.skus[p.Sku()] = id
	return id, oldPrice, nil
}

func (w *productWriter) Delete(ctx context.Context, id string) (*domain.Product, error) {
	existing, ok := w.st.products[id]
	if !ok {
		return nil, nil
	}
	delete(w.st.products, id)
	delete(w.st.skus, existing.Sku())
	return snapshot(existing), nil
}

type ledgerWriter memTx

func (w *ledgerWriter) Append(ctx context.Context, h domain.PriceHistory) error {
	w.st.history = append(w.st.history, h)
	return nil
}

type outboxWriter memTx

func (w *outboxWriter) Publish(ctx context.Context, ev domain.DomainEvent) error {
	rec, err := shared.NewOutboxEvent(ev, ev.OccurredAt())
	if err != nil {
		return err
	}
	w.st.outbox = append(w.st.outbox, *rec)
	return nil
}

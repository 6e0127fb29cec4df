package sqlrepo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	s, err := Open(context.Background(), DialectSQLite, dsn, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

var t0 = time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

func mustProduct(t *testing.T, id, name, category, sku, price string) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(id, name, "desc", category, sku, domain.MustMoney(price), t0)
	require.NoError(t, err)
	return p
}

func create(t *testing.T, s *Store, p *domain.Product) {
	t.Helper()
	require.NoError(t, s.WithinTx(context.Background(), func(ctx context.Context, tx contracts.Tx) error {
		if _, err := tx.Products().Create(ctx, p); err != nil {
			return err
		}
		if err := tx.Ledger().Append(ctx, domain.NewEntry(uuid.NewString(), p.ID(), p.Price(), t0)); err != nil {
			return err
		}
		for _, ev := range p.DomainEvents() {
			if err := tx.Events().Publish(ctx, ev); err != nil {
				return err
			}
		}
		return nil
	}))
}

func TestCreateAndRead(t *testing.T) {
	s := openTestStore(t)
	create(t, s, mustProduct(t, "p-1", "Widget", "Tools", "W-1", "19.99"))

	got, err := s.GetProduct(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, "19.99", got.Price.String())

	_, err = s.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCreate_DuplicateSkuRollsBack(t *testing.T) {
	s := openTestStore(t)
	create(t, s, mustProduct(t, "p-1", "Widget", "Tools", "W-1", "10"))

	dup := mustProduct(t, "p-2", "Other", "Tools", "W-1", "5")
	err := s.WithinTx(context.Background(), func(ctx context.Context, tx contracts.Tx) error {
		if err := tx.Ledger().Append(ctx, domain.NewEntry("h-dup", dup.ID(), dup.Price(), t0)); err != nil {
			return err
		}
		_, err := tx.Products().Create(ctx, dup)
		return err
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateSku)

	history, err := s.GetPriceHistory(context.Background(), "p-2")
	require.NoError(t, err)
	assert.Empty(t, history, "ledger row must roll back with the product")
}

func TestUpdate_ReturnsOldPrice(t *testing.T) {
	s := openTestStore(t)
	create(t, s, mustProduct(t, "p-1", "Widget", "Tools", "W-1", "10.50"))

	revised, err := domain.ReviseProduct("p-1", "Widget Pro", "desc", "Tools", "W-2", domain.MustMoney("12"), t0)
	require.NoError(t, err)

	var (
		id  string
		old domain.Money
	)
	require.NoError(t, s.WithinTx(context.Background(), func(ctx context.Context, tx contracts.Tx) error {
		var err error
		id, old, err = tx.Products().Update(ctx, "p-1", revised)
		return err
	}))
	assert.Equal(t, "p-1", id)
	assert.True(t, old.Equal(domain.MustMoney("10.5")))

	got, err := s.GetProduct(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, "W-2", got.Sku)
}

func TestUpdate_MissingProduct(t *testing.T) {
	s := openTestStore(t)
	revised, err := domain.ReviseProduct("nope", "n", "d", "c", "s", domain.MustMoney("1"), t0)
	require.NoError(t, err)

	require.NoError(t, s.WithinTx(context.Background(), func(ctx context.Context, tx contracts.Tx) error {
		id, _, err := tx.Products().Update(ctx, "nope", revised)
		assert.Empty(t, id)
		return err
	}))
}

func TestDelete_KeepsHistory(t *testing.T) {
	s := openTestStore(t)
	create(t, s, mustProduct(t, "p-1", "Widget", "Tools", "W-1", "10"))

	var removed *domain.Product
	require.NoError(t, s.WithinTx(context.Background(), func(ctx context.Context, tx contracts.Tx) error {
		var err error
		removed, err = tx.Products().Delete(ctx, "p-1")
		return err
	}))
	require.NotNil(t, removed)
	assert.Equal(t, "Widget", removed.Name())

	history, err := s.GetPriceHistory(context.Background(), "p-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Entry", history[0].Action)
	assert.Empty(t, history[0].ProductName)
	assert.Equal(t, t0, history[0].ChangedAt)

	require.NoError(t, s.WithinTx(context.Background(), func(ctx context.Context, tx contracts.Tx) error {
		again, err := tx.Products().Delete(ctx, "p-1")
		assert.Nil(t, again)
		return err
	}))
}

func TestListProducts(t *testing.T) {
	s := openTestStore(t)
	create(t, s, mustProduct(t, "p-1", "Hammer", "Tools", "H-1", "20"))
	create(t, s, mustProduct(t, "p-2", "Apple", "Food", "A-1", "1"))
	create(t, s, mustProduct(t, "p-3", "Drill", "Tools", "D-1", "80"))

	all, err := s.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Apple", all[0].Name)

	tools, err := s.ListProductsByCategory(context.Background(), "Tools")
	require.NoError(t, err)
	require.Len(t, tools, 2)
	assert.Equal(t, "Drill", tools[0].Name)
	assert.Equal(t, "Hammer", tools[1].Name)
}

func TestOutbox_FetchAndMark(t *testing.T) {
	s := openTestStore(t)
	create(t, s, mustProduct(t, "p-1", "Widget", "Tools", "W-1", "10"))

	pending, err := s.FetchPending(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, domain.EventProductCreated, pending[0].EventType)
	assert.Equal(t, "p-1", pending[0].AggregateID)
	assert.Equal(t, t0, pending[0].CreatedAtUTC)

	require.NoError(t, s.MarkProcessed(context.Background(), pending[0].EventID, t0.Add(time.Second)))

	pending, err = s.FetchPending(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestWithinTx_ErrorRollsBack(t *testing.T) {
	s := openTestStore(t)
	boom := errors.New("boom")

	err := s.WithinTx(context.Background(), func(ctx context.Context, tx contracts.Tx) error {
		if _, err := tx.Products().Create(ctx, mustProduct(t, "p-1", "Widget", "Tools", "W-1", "10")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.GetProduct(context.Background(), "p-1")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

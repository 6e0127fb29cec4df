package list_products

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
	"github.com/murkotick/product-pricing-service/internal/app/product/dto"
	"github.com/murkotick/product-pricing-service/internal/app/product/repo/memrepo"
	"github.com/murkotick/product-pricing-service/internal/pkg/outcome"
)

type fakeRates struct {
	rate decimal.Decimal
	fail bool
}

func (f fakeRates) GetRate(context.Context, string) outcome.Result[decimal.Decimal, domain.HttpClientCommunicationFailed] {
	if f.fail {
		return outcome.Err[decimal.Decimal](domain.CommunicationFailed("unsupported-code. Invalid currency code: XXX"))
	}
	return outcome.Ok[decimal.Decimal, domain.HttpClientCommunicationFailed](f.rate)
}

func newStore(t *testing.T) *memrepo.Store {
	t.Helper()
	store := memrepo.New(nil)
	items := []struct{ id, name, category, sku, price string }{
		{"p-1", "Hammer", "Tools", "H-1", "20"},
		{"p-2", "Apple", "Food", "A-1", "1.50"},
		{"p-3", "Drill", "Tools", "D-1", "80"},
	}
	require.NoError(t, store.WithinTx(context.Background(), func(ctx context.Context, tx contracts.Tx) error {
		for _, it := range items {
			p, err := domain.NewProduct(it.id, it.name, "desc", it.category, it.sku, domain.MustMoney(it.price), time.Now())
			if err != nil {
				return err
			}
			if _, err := tx.Products().Create(ctx, p); err != nil {
				return err
			}
		}
		return nil
	}))
	return store
}

func products(t *testing.T, r Result) []dto.ProductResponse {
	t.Helper()
	return outcome.Match(r,
		func(p []dto.ProductResponse) []dto.ProductResponse { return p },
		func(f domain.HttpClientCommunicationFailed) []dto.ProductResponse {
			t.Fatalf("unexpected failure: %v", f.Messages)
			return nil
		},
	)
}

func names(ps []dto.ProductResponse) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

func TestAll_OrderedByName(t *testing.T) {
	res, err := NewHandler(newStore(t), fakeRates{}).All(context.Background(), Query{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Apple", "Drill", "Hammer"}, names(products(t, res)))
}

func TestByCategory_ConvertsPrices(t *testing.T) {
	h := NewHandler(newStore(t), fakeRates{rate: decimal.RequireFromString("1.5")})

	res, err := h.ByCategory(context.Background(), Query{Category: "Tools", Currency: "GBP"})
	require.NoError(t, err)

	got := products(t, res)
	require.Len(t, got, 2)
	assert.Equal(t, "120", got[0].Price.String())
	assert.Equal(t, "30", got[1].Price.String())
	assert.Equal(t, "GBP", *got[0].Currency)
}

func TestByCategory_IsCaseSensitive(t *testing.T) {
	res, err := NewHandler(newStore(t), fakeRates{}).ByCategory(context.Background(), Query{Category: "tools"})
	require.NoError(t, err)

	assert.Empty(t, products(t, res))
}

func TestAll_RateFailureDropsData(t *testing.T) {
	res, err := NewHandler(newStore(t), fakeRates{fail: true}).All(context.Background(), Query{Currency: "XXX"})
	require.NoError(t, err)

	failed := outcome.Match(res,
		func([]dto.ProductResponse) bool { return false },
		func(domain.HttpClientCommunicationFailed) bool { return true },
	)
	assert.True(t, failed)
}

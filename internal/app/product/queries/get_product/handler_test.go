package get_product

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
	rate  decimal.Decimal
	fail  bool
	calls int
}

func (f *fakeRates) GetRate(context.Context, string) outcome.Result[decimal.Decimal, domain.HttpClientCommunicationFailed] {
	f.calls++
	if f.fail {
		return outcome.Err[decimal.Decimal](domain.CommunicationFailed("Failed to communicate with the exchange rate API. Try again later."))
	}
	return outcome.Ok[decimal.Decimal, domain.HttpClientCommunicationFailed](f.rate)
}

func seed(t *testing.T, store *memrepo.Store, id, price string) {
	t.Helper()
	p, err := domain.NewProduct(id, "Widget", "A widget", "Tools", "SKU-"+id, domain.MustMoney(price), time.Now())
	require.NoError(t, err)
	require.NoError(t, store.WithinTx(context.Background(), func(ctx context.Context, tx contracts.Tx) error {
		_, err := tx.Products().Create(ctx, p)
		return err
	}))
}

type view struct {
	kind     string
	product  dto.ProductResponse
	messages []string
}

func inspect(r Result) view {
	return outcome.MatchWarning(r,
		func(p dto.ProductResponse) view { return view{kind: "value", product: p} },
		func(f domain.HttpClientCommunicationFailed) view { return view{kind: "error", messages: f.Messages} },
		func(w domain.RecordNotFound) view { return view{kind: "warning", messages: w.Messages} },
	)
}

func TestExecute_WithoutCurrency(t *testing.T) {
	store := memrepo.New(nil)
	seed(t, store, "p-1", "10.00")
	rates := &fakeRates{}

	res, err := NewHandler(store, rates).Execute(context.Background(), Query{ID: "p-1"})
	require.NoError(t, err)

	v := inspect(res)
	require.Equal(t, "value", v.kind)
	assert.Equal(t, "10", v.product.Price.String())
	assert.Nil(t, v.product.Currency)
	assert.Equal(t, 0, rates.calls)
}

func TestExecute_ConvertsOnce(t *testing.T) {
	store := memrepo.New(nil)
	seed(t, store, "p-1", "10.00")
	rates := &fakeRates{rate: decimal.RequireFromString("0.9")}
	h := NewHandler(store, rates)

	for i := 0; i < 2; i++ {
		res, err := h.Execute(context.Background(), Query{ID: "p-1", Currency: "eur"})
		require.NoError(t, err)

		v := inspect(res)
		require.Equal(t, "value", v.kind)
		assert.Equal(t, "9", v.product.Price.String())
		require.NotNil(t, v.product.Currency)
		assert.Equal(t, "EUR", *v.product.Currency)
	}
}

func TestExecute_NotFoundIsWarningBeforeRateLookup(t *testing.T) {
	rates := &fakeRates{fail: true}

	res, err := NewHandler(memrepo.New(nil), rates).Execute(context.Background(), Query{ID: "missing", Currency: "EUR"})
	require.NoError(t, err)

	v := inspect(res)
	assert.Equal(t, "warning", v.kind)
	assert.Equal(t, []string{"Product with Id missing not found."}, v.messages)
	assert.Equal(t, 0, rates.calls)
}

func TestExecute_RateFailure(t *testing.T) {
	store := memrepo.New(nil)
	seed(t, store, "p-1", "10.00")

	res, err := NewHandler(store, &fakeRates{fail: true}).Execute(context.Background(), Query{ID: "p-1", Currency: "EUR"})
	require.NoError(t, err)

	v := inspect(res)
	assert.Equal(t, "error", v.kind)
	assert.Equal(t, []string{"Failed to communicate with the exchange rate API. Try again later."}, v.messages)
}

package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
	"github.com/murkotick/product-pricing-service/internal/app/product/dto"
	"github.com/murkotick/product-pricing-service/internal/pkg/outcome"
)

type stubRates struct {
	rate     decimal.Decimal
	fail     *domain.HttpClientCommunicationFailed
	calls    int
	lastCode string
}

func (s *stubRates) GetRate(_ context.Context, code string) outcome.Result[decimal.Decimal, domain.HttpClientCommunicationFailed] {
	s.calls++
	s.lastCode = code
	if s.fail != nil {
		return outcome.Err[decimal.Decimal](*s.fail)
	}
	return outcome.Ok[decimal.Decimal, domain.HttpClientCommunicationFailed](s.rate)
}

func resolved(t *testing.T, r outcome.Result[Conversion, domain.HttpClientCommunicationFailed]) Conversion {
	t.Helper()
	return outcome.Match(r,
		func(c Conversion) Conversion { return c },
		func(f domain.HttpClientCommunicationFailed) Conversion {
			t.Fatalf("unexpected failure: %v", f.Messages)
			return Conversion{}
		},
	)
}

func TestResolve_EmptyCurrencySkipsProvider(t *testing.T) {
	rates := &stubRates{rate: decimal.RequireFromString("2")}

	c := resolved(t, Resolve(context.Background(), rates, "  "))

	assert.Equal(t, 0, rates.calls)
	assert.Nil(t, c.Currency())
	assert.Equal(t, "19.99", c.Apply(decimal.RequireFromString("19.99")).String())
}

func TestResolve_NormalizesCode(t *testing.T) {
	rates := &stubRates{rate: decimal.RequireFromString("0.5")}

	c := resolved(t, Resolve(context.Background(), rates, " eur"))

	assert.Equal(t, "EUR", rates.lastCode)
	require.NotNil(t, c.Currency())
	assert.Equal(t, "EUR", *c.Currency())
}

func TestResolve_PropagatesFailure(t *testing.T) {
	failed := domain.CommunicationFailed("boom")
	rates := &stubRates{fail: &failed}

	msgs := outcome.Match(Resolve(context.Background(), rates, "EUR"),
		func(Conversion) []string { return nil },
		func(f domain.HttpClientCommunicationFailed) []string { return f.Messages },
	)
	assert.Equal(t, []string{"boom"}, msgs)
}

func TestPriceHistoryResponses_ScalesBothPrices(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := []*dto.PriceHistoryDTO{{
		HistoryID: "h-1", ProductID: "p-1", ProductName: "Widget", ProductSku: "W-1",
		OldPrice: decimal.RequireFromString("10"), NewPrice: decimal.RequireFromString("12.5"),
		Action: "Increased", ChangedAt: at,
	}}
	c := Conversion{rate: decimal.RequireFromString("2"), currency: "GBP"}

	out := PriceHistoryResponses(rows, c)

	require.Len(t, out, 1)
	assert.Equal(t, "20", out[0].OldPrice.String())
	assert.Equal(t, "25", out[0].NewPrice.String())
	assert.Equal(t, "GBP", *out[0].Currency)
	assert.Equal(t, at, out[0].Timestamp)
	assert.Equal(t, "10", rows[0].OldPrice.String(), "rows must not be modified")
}

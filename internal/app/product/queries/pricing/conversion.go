// Package pricing turns read-side rows into responses, applying the optional
// currency conversion requested by the caller.
package pricing

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
	"github.com/murkotick/product-pricing-service/internal/app/product/dto"
	"github.com/murkotick/product-pricing-service/internal/pkg/outcome"
)

// Conversion is the multiplier applied to every price of one response.
// The zero value leaves prices untouched and sets no currency.
type Conversion struct {
	rate     decimal.Decimal
	currency string
}

// Resolve looks up the rate for currency. An empty currency resolves to the
// zero Conversion without calling the provider.
func Resolve(ctx context.Context, rates contracts.RateProvider, currency string) outcome.Result[Conversion, domain.HttpClientCommunicationFailed] {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		return outcome.Ok[Conversion, domain.HttpClientCommunicationFailed](Conversion{})
	}

	return outcome.Match(rates.GetRate(ctx, code),
		func(rate decimal.Decimal) outcome.Result[Conversion, domain.HttpClientCommunicationFailed] {
			return outcome.Ok[Conversion, domain.HttpClientCommunicationFailed](Conversion{rate: rate, currency: code})
		},
		func(f domain.HttpClientCommunicationFailed) outcome.Result[Conversion, domain.HttpClientCommunicationFailed] {
			return outcome.Err[Conversion](f)
		},
	)
}

// Apply scales a stored price. It is the only place prices are converted.
func (c Conversion) Apply(price decimal.Decimal) decimal.Decimal {
	if c.currency == "" {
		return price
	}
	return price.Mul(c.rate)
}

// Currency returns the requested code, or nil when no conversion was asked for.
func (c Conversion) Currency() *string {
	if c.currency == "" {
		return nil
	}
	code := c.currency
	return &code
}

func ProductResponse(p *dto.ProductDTO, c Conversion) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ProductID,
		Name:        p.Name,
		Description: p.Description,
		Price:       c.Apply(p.Price),
		Currency:    c.Currency(),
		Category:    p.Category,
		Sku:         p.Sku,
	}
}

func ProductResponses(rows []*dto.ProductDTO, c Conversion) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, ProductResponse(p, c))
	}
	return out
}

func PriceHistoryResponses(rows []*dto.PriceHistoryDTO, c Conversion) []dto.PriceHistoryResponse {
	out := make([]dto.PriceHistoryResponse, 0, len(rows))
	for _, h := range rows {
		out = append(out, dto.PriceHistoryResponse{
			ID:          h.HistoryID,
			ProductID:   h.ProductID,
			ProductName: h.ProductName,
			ProductSku:  h.ProductSku,
			OldPrice:    c.Apply(h.OldPrice),
			NewPrice:    c.Apply(h.NewPrice),
			Currency:    c.Currency(),
			Action:      h.Action,
			Timestamp:   h.ChangedAt,
		})
	}
	return out
}

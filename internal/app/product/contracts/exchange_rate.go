package contracts

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
	"github.com/murkotick/product-pricing-service/internal/pkg/outcome"
)

// RateProvider resolves the multiplier from the catalog's base currency to
// the requested one. Every failure mode is reported as
// HttpClientCommunicationFailed.
type RateProvider interface {
	GetRate(ctx context.Context, currency string) outcome.Result[decimal.Decimal, domain.HttpClientCommunicationFailed]
}

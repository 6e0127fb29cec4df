package get_price_history

import (
	"context"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
	"github.com/murkotick/product-pricing-service/internal/app/product/dto"
	"github.com/murkotick/product-pricing-service/internal/app/product/queries/pricing"
	"github.com/murkotick/product-pricing-service/internal/pkg/outcome"
)

type Query struct {
	ProductID string
	Currency  string
}

type Result = outcome.Result[[]dto.PriceHistoryResponse, domain.HttpClientCommunicationFailed]

type Handler struct {
	readModel contracts.ReadModel
	rates     contracts.RateProvider
}

func NewHandler(r contracts.ReadModel, rates contracts.RateProvider) *Handler {
	return &Handler{readModel: r, rates: rates}
}

// Execute lists the ledger of one product, oldest first. An unknown or
// deleted product is not an error; its rows, if any, are still returned.
func (h *Handler) Execute(ctx context.Context, q Query) (Result, error) {
	rows, err := h.readModel.GetPriceHistory(ctx, q.ProductID)
	if err != nil {
		return Result{}, err
	}

	return outcome.Match(pricing.Resolve(ctx, h.rates, q.Currency),
		func(c pricing.Conversion) Result {
			return outcome.Ok[[]dto.PriceHistoryResponse, domain.HttpClientCommunicationFailed](pricing.PriceHistoryResponses(rows, c))
		},
		func(f domain.HttpClientCommunicationFailed) Result {
			return outcome.Err[[]dto.PriceHistoryResponse](f)
		},
	), nil
}

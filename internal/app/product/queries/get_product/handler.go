package get_product

import (
	"context"
	"errors"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
	"github.com/murkotick/product-pricing-service/internal/app/product/dto"
	"github.com/murkotick/product-pricing-service/internal/app/product/queries/pricing"
	"github.com/murkotick/product-pricing-service/internal/pkg/outcome"
)

// Query selects one product. Currency is optional.
type Query struct {
	ID       string
	Currency string
}

// Result is the product, a rate lookup failure, or a not-found warning.
type Result = outcome.ResultWithWarning[dto.ProductResponse, domain.HttpClientCommunicationFailed, domain.RecordNotFound]

type Handler struct {
	readModel contracts.ReadModel
	rates     contracts.RateProvider
}

func NewHandler(r contracts.ReadModel, rates contracts.RateProvider) *Handler {
	return &Handler{readModel: r, rates: rates}
}

// Execute reports a missing product as a warning before any rate lookup.
func (h *Handler) Execute(ctx context.Context, q Query) (Result, error) {
	p, err := h.readModel.GetProduct(ctx, q.ID)
	if errors.Is(err, domain.ErrProductNotFound) {
		return outcome.Warning[dto.ProductResponse, domain.HttpClientCommunicationFailed](domain.ProductNotFound(q.ID)), nil
	}
	if err != nil {
		return Result{}, err
	}

	return outcome.Match(pricing.Resolve(ctx, h.rates, q.Currency),
		func(c pricing.Conversion) Result {
			return outcome.Value[dto.ProductResponse, domain.HttpClientCommunicationFailed, domain.RecordNotFound](pricing.ProductResponse(p, c))
		},
		func(f domain.HttpClientCommunicationFailed) Result {
			return outcome.Error[dto.ProductResponse, domain.HttpClientCommunicationFailed, domain.RecordNotFound](f)
		},
	), nil
}

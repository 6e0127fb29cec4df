package list_products

import (
	"context"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
	"github.com/murkotick/product-pricing-service/internal/app/product/dto"
	"github.com/murkotick/product-pricing-service/internal/app/product/queries/pricing"
	"github.com/murkotick/product-pricing-service/internal/pkg/outcome"
)

// Query lists products. Category is ignored by All; Currency is optional.
type Query struct {
	Category string
	Currency string
}

type Result = outcome.Result[[]dto.ProductResponse, domain.HttpClientCommunicationFailed]

type Handler struct {
	readModel contracts.ReadModel
	rates     contracts.RateProvider
}

func NewHandler(r contracts.ReadModel, rates contracts.RateProvider) *Handler {
	return &Handler{readModel: r, rates: rates}
}

// All lists every product ordered by name.
func (h *Handler) All(ctx context.Context, q Query) (Result, error) {
	rows, err := h.readModel.ListProducts(ctx)
	if err != nil {
		return Result{}, err
	}
	return h.respond(ctx, rows, q.Currency), nil
}

// ByCategory lists the products whose category matches exactly.
func (h *Handler) ByCategory(ctx context.Context, q Query) (Result, error) {
	rows, err := h.readModel.ListProductsByCategory(ctx, q.Category)
	if err != nil {
		return Result{}, err
	}
	return h.respond(ctx, rows, q.Currency), nil
}

func (h *Handler) respond(ctx context.Context, rows []*dto.ProductDTO, currency string) Result {
	return outcome.Match(pricing.Resolve(ctx, h.rates, currency),
		func(c pricing.Conversion) Result {
			return outcome.Ok[[]dto.ProductResponse, domain.HttpClientCommunicationFailed](pricing.ProductResponses(rows, c))
		},
		func(f domain.HttpClientCommunicationFailed) Result {
			return outcome.Err[[]dto.ProductResponse](f)
		},
	)
}

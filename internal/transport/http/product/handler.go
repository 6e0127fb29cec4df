package product

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
	"github.com/murkotick/product-pricing-service/internal/app/product/dto"
	"github.com/murkotick/product-pricing-service/internal/app/product/queries/get_price_history"
	"github.com/murkotick/product-pricing-service/internal/app/product/queries/get_product"
	"github.com/murkotick/product-pricing-service/internal/app/product/queries/list_products"
	"github.com/murkotick/product-pricing-service/internal/app/product/usecases/create_product"
	"github.com/murkotick/product-pricing-service/internal/app/product/usecases/delete_product"
	"github.com/murkotick/product-pricing-service/internal/app/product/usecases/update_product"
	"github.com/murkotick/product-pricing-service/internal/pkg/outcome"
	"github.com/murkotick/product-pricing-service/internal/transport/http/response"
)

// Commands groups write interactors.
type Commands struct {
	Create *create_product.Interactor
	Update *update_product.Interactor
	Delete *delete_product.Interactor
}

// Queries groups read handlers.
type Queries struct {
	Get     *get_product.Handler
	List    *list_products.Handler
	History *get_price_history.Handler
}

// Handler is a thin HTTP adapter. It decodes input, delegates to the
// application handlers and turns their Result variants into responses.
type Handler struct {
	commands Commands
	queries  Queries
	logger   *slog.Logger
}

func NewHandler(cmd Commands, qry Queries, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{commands: cmd, queries: qry, logger: logger}
}

// Routes mounts the product and price history endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.CreateProduct)
		r.Get("/", h.ListProducts)
		r.Get("/categories/{category}", h.ListProductsByCategory)
		r.Get("/{id}", h.GetProduct)
		r.Put("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.DeleteProduct)
	})
	r.Get("/pricehistories/{productId}", h.GetPriceHistory)
}

// CreateProduct handles POST /products.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var body productBody
	if err := decodeBody(w, r, &body); err != nil {
		response.Operation(w, http.StatusBadRequest, "Malformed request body.")
		return
	}

	res, err := h.commands.Create.Execute(r.Context(), create_product.Request{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Category:    body.Category,
		Sku:         body.Sku,
	})
	if err != nil {
		h.writeError(w, r, err, body.Sku)
		return
	}

	outcome.Match(res,
		func(id string) struct{} {
			w.Header().Set("Location", "/products/"+url.PathEscape(id))
			response.JSON(w, http.StatusCreated, id)
			return struct{}{}
		},
		func(f domain.ValidationFailed) struct{} {
			response.Validation(w, f)
			return struct{}{}
		},
	)
}

// UpdateProduct handles PUT /products/{id}.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var body productBody
	if err := decodeBody(w, r, &body); err != nil {
		response.Operation(w, http.StatusBadRequest, "Malformed request body.")
		return
	}

	res, err := h.commands.Update.Execute(r.Context(), update_product.Request{
		ProductID:   chi.URLParam(r, "id"),
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Category:    body.Category,
		Sku:         body.Sku,
	})
	if err != nil {
		h.writeError(w, r, err, body.Sku)
		return
	}

	outcome.MatchWarning(res,
		func(string) struct{} {
			w.WriteHeader(http.StatusNoContent)
			return struct{}{}
		},
		func(f domain.ValidationFailed) struct{} {
			response.Validation(w, f)
			return struct{}{}
		},
		func(nf domain.RecordNotFound) struct{} {
			response.Operation(w, http.StatusNotFound, nf.Messages...)
			return struct{}{}
		},
	)
}

// DeleteProduct handles DELETE /products/{id}.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	res, err := h.commands.Delete.Execute(r.Context(), delete_product.Request{ProductID: chi.URLParam(r, "id")})
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}

	outcome.Match(res,
		func(string) struct{} {
			w.WriteHeader(http.StatusNoContent)
			return struct{}{}
		},
		func(nf domain.RecordNotFound) struct{} {
			response.Operation(w, http.StatusNotFound, nf.Messages...)
			return struct{}{}
		},
	)
}

// GetProduct handles GET /products/{id}?currency=.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	res, err := h.queries.Get.Execute(r.Context(), get_product.Query{
		ID:       chi.URLParam(r, "id"),
		Currency: currency(r),
	})
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}

	outcome.MatchWarning(res,
		func(p dto.ProductResponse) struct{} {
			response.JSON(w, http.StatusOK, p)
			return struct{}{}
		},
		func(f domain.HttpClientCommunicationFailed) struct{} {
			h.rateFailure(w, r, f)
			return struct{}{}
		},
		func(nf domain.RecordNotFound) struct{} {
			response.Operation(w, http.StatusNotFound, nf.Messages...)
			return struct{}{}
		},
	)
}

// ListProducts handles GET /products?currency=.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	res, err := h.queries.List.All(r.Context(), list_products.Query{Currency: currency(r)})
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}
	h.writeList(w, r, res)
}

// ListProductsByCategory handles GET /products/categories/{category}?currency=.
func (h *Handler) ListProductsByCategory(w http.ResponseWriter, r *http.Request) {
	res, err := h.queries.List.ByCategory(r.Context(), list_products.Query{
		Category: chi.URLParam(r, "category"),
		Currency: currency(r),
	})
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}
	h.writeList(w, r, res)
}

// GetPriceHistory handles GET /pricehistories/{productId}?currency=.
func (h *Handler) GetPriceHistory(w http.ResponseWriter, r *http.Request) {
	res, err := h.queries.History.Execute(r.Context(), get_price_history.Query{
		ProductID: chi.URLParam(r, "productId"),
		Currency:  currency(r),
	})
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}

	outcome.Match(res,
		func(rows []dto.PriceHistoryResponse) struct{} {
			response.JSON(w, http.StatusOK, rows)
			return struct{}{}
		},
		func(f domain.HttpClientCommunicationFailed) struct{} {
			h.rateFailure(w, r, f)
			return struct{}{}
		},
	)
}

func (h *Handler) writeList(w http.ResponseWriter, r *http.Request, res list_products.Result) {
	outcome.Match(res,
		func(rows []dto.ProductResponse) struct{} {
			response.JSON(w, http.StatusOK, rows)
			return struct{}{}
		},
		func(f domain.HttpClientCommunicationFailed) struct{} {
			h.rateFailure(w, r, f)
			return struct{}{}
		},
	)
}

func (h *Handler) rateFailure(w http.ResponseWriter, r *http.Request, f domain.HttpClientCommunicationFailed) {
	h.logger.WarnContext(r.Context(), "exchange rate lookup failed", slog.Any("messages", f.Messages))
	response.Operation(w, http.StatusInternalServerError, f.Messages...)
}

func currency(r *http.Request) string {
	return r.URL.Query().Get("currency")
}

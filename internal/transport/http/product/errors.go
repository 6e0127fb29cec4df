package product

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
	"github.com/murkotick/product-pricing-service/internal/transport/http/response"
)

// writeError translates errors returned next to a handler Result into a
// status code. sku names the product in the conflict message.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, sku string) {
	switch {
	case errors.Is(err, domain.ErrDuplicateSku):
		response.Operation(w, http.StatusConflict, fmt.Sprintf("Product with Sku %s already exists.", sku))
		return
	case errors.Is(err, domain.ErrProductNotFound):
		response.Operation(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads the body.
		w.WriteHeader(499)
		return
	}

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("http.request.method", r.Method),
		slog.String("url.path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	response.Operation(w, http.StatusInternalServerError, response.MsgUnexpected)
}

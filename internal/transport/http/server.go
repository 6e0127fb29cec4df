// Package http assembles the chi router and the HTTP server.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/murkotick/product-pricing-service/internal/transport/http/middleware"
	"github.com/murkotick/product-pricing-service/internal/transport/http/product"
)

// NewRouter wires middleware, the product routes and /health.
func NewRouter(products *product.Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(chimiddleware.Recoverer)

	products.Routes(r)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}

// NewServer returns an http.Server for addr with conservative timeouts.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

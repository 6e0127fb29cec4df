package contracts

import (
	"context"

	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
	"github.com/murkotick/product-pricing-service/internal/app/product/dto"
)

// ProductWriter is the write side of the product store. It is only reachable
// through a Tx.
type ProductWriter interface {
	// Create inserts the product and returns its id.
	// A SKU collision returns domain.ErrDuplicateSku.
	Create(ctx context.Context, p *domain.Product) (string, error)

	// Update replaces every attribute of product id and returns the id with
	// the price it had before the write. An empty id means no such product.
	Update(ctx context.Context, id string, p *domain.Product) (string, domain.Money, error)

	// Delete removes product id and returns its last state, or nil when absent.
	Delete(ctx context.Context, id string) (*domain.Product, error)
}

// ProductReader is the read side of the product store.
type ProductReader interface {
	// GetProduct returns domain.ErrProductNotFound when the id is unknown.
	GetProduct(ctx context.Context, productID string) (*dto.ProductDTO, error)
	ListProducts(ctx context.Context) ([]*dto.ProductDTO, error)
	ListProductsByCategory(ctx context.Context, category string) ([]*dto.ProductDTO, error)
}

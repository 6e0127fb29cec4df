package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
	"github.com/murkotick/product-pricing-service/internal/models/m_product"
)

// ProductRepo builds Spanner mutations for the products table.
// It never applies them.
type ProductRepo struct{}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{}
}

// buildInsertValues is unexported so tests in this package can inspect the
// map without relying on spanner.Mutation internals.
func buildInsertValues(p *domain.Product) map[string]interface{} {
	return m_product.BuildInsertMap(p.ID(), p.Name(), p.Description(), numeric(p.Price()), p.Category(), p.Sku())
}

func buildUpdateValues(p *domain.Product) map[string]interface{} {
	return m_product.BuildUpdateMap(p.Name(), p.Description(), numeric(p.Price()), p.Category(), p.Sku())
}

// InsertMut builds an Insert mutation for a new product.
func (r *ProductRepo) InsertMut(p *domain.Product) *spanner.Mutation {
	if p == nil {
		return nil
	}
	return m_product.InsertMutation(buildInsertValues(p))
}

// UpdateMut replaces every attribute of product id with the state of p.
func (r *ProductRepo) UpdateMut(id string, p *domain.Product) *spanner.Mutation {
	if p == nil || id == "" {
		return nil
	}
	return m_product.UpdateMutation(id, buildUpdateValues(p))
}

// DeleteMut removes product id. Ledger rows are kept.
func (r *ProductRepo) DeleteMut(id string) *spanner.Mutation {
	if id == "" {
		return nil
	}
	return m_product.DeleteMutation(id)
}

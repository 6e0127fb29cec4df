package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
	"github.com/murkotick/product-pricing-service/internal/app/product/dto"
)

const selectProducts = `SELECT product_id, name, description, price, category, sku FROM products`

func (s *Store) GetProduct(ctx context.Context, productID string) (*dto.ProductDTO, error) {
	var p dto.ProductDTO
	err := s.db.QueryRowContext(ctx, s.q(selectProducts+` WHERE product_id = ?`), productID).
		Scan(&p.ProductID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Sku)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", productID, err)
	}
	return &p, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]*dto.ProductDTO, error) {
	return s.listProducts(ctx, selectProducts+` ORDER BY name, product_id`)
}

func (s *Store) ListProductsByCategory(ctx context.Context, category string) ([]*dto.ProductDTO, error) {
	return s.listProducts(ctx, selectProducts+` WHERE category = ? ORDER BY name, product_id`, category)
}

func (s *Store) listProducts(ctx context.Context, query string, args ...any) ([]*dto.ProductDTO, error) {
	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := make([]*dto.ProductDTO, 0)
	for rows.Next() {
		var p dto.ProductDTO
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Sku); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// GetPriceHistory joins each ledger row with the product as it is now.
func (s *Store) GetPriceHistory(ctx context.Context, productID string) ([]*dto.PriceHistoryDTO, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT h.history_id, h.product_id, p.name, p.sku, h.old_price, h.new_price, h.action, h.changed_at
		FROM price_histories h
		LEFT JOIN products p ON p.product_id = h.product_id
		WHERE h.product_id = ?
		ORDER BY h.changed_at, h.history_id`), productID)
	if err != nil {
		return nil, fmt.Errorf("get price history %s: %w", productID, err)
	}
	defer rows.Close()

	out := make([]*dto.PriceHistoryDTO, 0)
	for rows.Next() {
		var (
			h         dto.PriceHistoryDTO
			name, sku sql.NullString
			changedAt dbTime
		)
		if err := rows.Scan(&h.HistoryID, &h.ProductID, &name, &sku, &h.OldPrice, &h.NewPrice, &h.Action, &changedAt); err != nil {
			return nil, err
		}
		h.ProductName = name.String
		h.ProductSku = sku.String
		h.ChangedAt = changedAt.Time
		out = append(out, &h)
	}
	return out, rows.Err()
}

package list_products

import (
	"context"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
	"github.com/murkotick/product-pricing-service/internal/app/product/dto"
)

const selectProducts = `SELECT product_id, name, description, price, category, sku FROM products`

// SpannerListProductsQuery lists products with an optional category filter.
type SpannerListProductsQuery struct {
	Client *spanner.Client
}

func NewSpannerListProductsQuery(client *spanner.Client) *SpannerListProductsQuery {
	return &SpannerListProductsQuery{Client: client}
}

func (q *SpannerListProductsQuery) ListProducts(ctx context.Context) ([]*dto.ProductDTO, error) {
	return q.run(ctx, spanner.Statement{SQL: selectProducts + " ORDER BY name ASC, product_id ASC"})
}

func (q *SpannerListProductsQuery) ListProductsByCategory(ctx context.Context, category string) ([]*dto.ProductDTO, error) {
	return q.run(ctx, spanner.Statement{
		SQL:    selectProducts + " WHERE category = @category ORDER BY name ASC, product_id ASC",
		Params: map[string]interface{}{"category": category},
	})
}

func (q *SpannerListProductsQuery) run(ctx context.Context, stmt spanner.Statement) ([]*dto.ProductDTO, error) {
	iter := q.Client.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := make([]*dto.ProductDTO, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		var (
			p     dto.ProductDTO
			price spanner.NullNumeric
		)
		if err := row.Columns(&p.ProductID, &p.Name, &p.Description, &price, &p.Category, &p.Sku); err != nil {
			return nil, err
		}
		if price.Valid {
			p.Price = domain.MoneyFromRat(&price.Numeric).Decimal()
		}
		out = append(out, &p)
	}
}

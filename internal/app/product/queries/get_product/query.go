package get_product

import (
	"context"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
	"github.com/murkotick/product-pricing-service/internal/app/product/dto"
)

// SpannerGetProductQuery reads a single product from Spanner.
type SpannerGetProductQuery struct {
	Client *spanner.Client
}

func NewSpannerGetProductQuery(client *spanner.Client) *SpannerGetProductQuery {
	return &SpannerGetProductQuery{Client: client}
}

func (q *SpannerGetProductQuery) GetProduct(ctx context.Context, productID string) (*dto.ProductDTO, error) {
	stmt := spanner.Statement{
		SQL: `SELECT product_id, name, description, price, category, sku
		      FROM products
		      WHERE product_id = @id`,
		Params: map[string]interface{}{"id": productID},
	}

	iter := q.Client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	var (
		out   dto.ProductDTO
		price spanner.NullNumeric
	)
	if err := row.Columns(&out.ProductID, &out.Name, &out.Description, &price, &out.Category, &out.Sku); err != nil {
		return nil, err
	}
	if price.Valid {
		out.Price = domain.MoneyFromRat(&price.Numeric).Decimal()
	}
	return &out, nil
}

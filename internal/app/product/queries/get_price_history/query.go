package get_price_history

import (
	"context"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
	"github.com/murkotick/product-pricing-service/internal/app/product/dto"
)

// SpannerPriceHistoryQuery reads the ledger joined with the current product
// row. Name and sku are empty for rows whose product was deleted.
type SpannerPriceHistoryQuery struct {
	Client *spanner.Client
}

func NewSpannerPriceHistoryQuery(client *spanner.Client) *SpannerPriceHistoryQuery {
	return &SpannerPriceHistoryQuery{Client: client}
}

func (q *SpannerPriceHistoryQuery) GetPriceHistory(ctx context.Context, productID string) ([]*dto.PriceHistoryDTO, error) {
	stmt := spanner.Statement{
		SQL: `SELECT h.history_id, h.product_id, p.name, p.sku,
		             h.old_price, h.new_price, h.action, h.changed_at
		      FROM price_histories h
		      LEFT JOIN products p ON p.product_id = h.product_id
		      WHERE h.product_id = @product_id
		      ORDER BY h.changed_at ASC, h.history_id ASC`,
		Params: map[string]interface{}{"product_id": productID},
	}

	iter := q.Client.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := make([]*dto.PriceHistoryDTO, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		var (
			h                  dto.PriceHistoryDTO
			name, sku          spanner.NullString
			oldPrice, newPrice spanner.NullNumeric
		)
		if err := row.Columns(&h.HistoryID, &h.ProductID, &name, &sku, &oldPrice, &newPrice, &h.Action, &h.ChangedAt); err != nil {
			return nil, err
		}
		h.ProductName = name.StringVal
		h.ProductSku = sku.StringVal
		if oldPrice.Valid {
			h.OldPrice = domain.MoneyFromRat(&oldPrice.Numeric).Decimal()
		}
		if newPrice.Valid {
			h.NewPrice = domain.MoneyFromRat(&newPrice.Numeric).Decimal()
		}
		h.ChangedAt = h.ChangedAt.UTC()
		out = append(out, &h)
	}
}

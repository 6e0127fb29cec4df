package contracts

import (
	"context"

	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
	"github.com/murkotick/product-pricing-service/internal/app/product/dto"
)

// LedgerWriter appends price history rows. Rows are never updated or removed.
type LedgerWriter interface {
	Append(ctx context.Context, h domain.PriceHistory) error
}

// LedgerReader lists the price history of one product, oldest first.
type LedgerReader interface {
	GetPriceHistory(ctx context.Context, productID string) ([]*dto.PriceHistoryDTO, error)
}

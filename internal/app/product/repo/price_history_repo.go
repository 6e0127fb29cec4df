package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
	"github.com/murkotick/product-pricing-service/internal/models/m_price_history"
)

// PriceHistoryRepo builds insert mutations for the append-only ledger.
type PriceHistoryRepo struct{}

func NewPriceHistoryRepo() *PriceHistoryRepo {
	return &PriceHistoryRepo{}
}

func buildHistoryValues(h domain.PriceHistory) map[string]interface{} {
	return m_price_history.BuildInsertMap(h.ID, h.ProductID, numeric(h.OldPrice), numeric(h.NewPrice),
		string(h.Action), h.ChangedAt.UTC())
}

func (r *PriceHistoryRepo) InsertMut(h domain.PriceHistory) *spanner.Mutation {
	return m_price_history.InsertMutation(buildHistoryValues(h))
}

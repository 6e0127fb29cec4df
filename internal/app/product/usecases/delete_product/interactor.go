package delete_product

import (
	"context"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
	shared "github.com/murkotick/product-pricing-service/internal/app/product/usecases/shared"
	"github.com/murkotick/product-pricing-service/internal/pkg/clock"
	"github.com/murkotick/product-pricing-service/internal/pkg/outcome"
)

type Request struct {
	ProductID string
}

// Result is the deleted id or a not-found error.
type Result = outcome.Result[string, domain.RecordNotFound]

// Interactor removes a product. Deletion is not a price event, so the ledger
// is left untouched and keeps the product's history.
type Interactor struct {
	Transactor contracts.Transactor
	Clock      clock.Clock
}

func NewInteractor(tx contracts.Transactor, clk clock.Clock) *Interactor {
	return &Interactor{Transactor: tx, Clock: clk}
}

func (it *Interactor) Execute(ctx context.Context, req Request) (Result, error) {
	now := it.Clock.Now()

	var deletedID string
	err := it.Transactor.WithinTx(ctx, func(ctx context.Context, tx contracts.Tx) error {
		removed, err := tx.Products().Delete(ctx, req.ProductID)
		if err != nil || removed == nil {
			return err
		}
		deletedID = removed.ID()

		removed.MarkDeleted(now)
		return shared.PublishAll(ctx, tx.Events(), removed.DomainEvents())
	})
	if err != nil {
		return Result{}, err
	}

	if deletedID == "" {
		return outcome.Err[string](domain.ProductNotFound(req.ProductID)), nil
	}
	return outcome.Ok[string, domain.RecordNotFound](deletedID), nil
}

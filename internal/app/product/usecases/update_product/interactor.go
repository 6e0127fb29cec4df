package update_product

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	contracts "github.com/murkotick/product-pricing-service/internal/app/product/contracts"
	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
	shared "github.com/murkotick/product-pricing-service/internal/app/product/usecases/shared"
	"github.com/murkotick/product-pricing-service/internal/pkg/clock"
	"github.com/murkotick/product-pricing-service/internal/pkg/outcome"
)

// Request replaces every attribute of an existing product.
type Request struct {
	ProductID   string          `label:"Id" validate:"notblank"`
	Name        string          `validate:"notblank,max=100"`
	Description string          `validate:"notblank,max=500"`
	Price       decimal.Decimal `validate:"decimal_required,decimal_gt=0,max_scale=9"`
	Category    string          `validate:"notblank,max=50"`
	Sku         string          `validate:"notblank,max=50"`
}

// Result is the updated id, the validation failures, or a not-found warning.
type Result = outcome.ResultWithWarning[string, domain.ValidationFailed, domain.RecordNotFound]

// Interactor implements the update-product usecase.
type Interactor struct {
	Transactor contracts.Transactor
	Validator  contracts.Validator
	Clock      clock.Clock
}

func NewInteractor(tx contracts.Transactor, validator contracts.Validator, clk clock.Clock) *Interactor {
	return &Interactor{
		Transactor: tx,
		Validator:  validator,
		Clock:      clk,
	}
}

// Execute replaces the product and appends a ledger row whose action is
// derived from the previous and the new price. The previous price is read in
// the same unit of work as the write.
func (it *Interactor) Execute(ctx context.Context, req Request) (Result, error) {
	// 1. Validate input
	if errs := it.Validator.Validate(req); len(errs) > 0 {
		return outcome.Error[string, domain.ValidationFailed, domain.RecordNotFound](
			domain.ValidationFailed{Errors: errs}), nil
	}

	now := it.Clock.Now()

	// 2. Build the replacement state
	product, err := domain.ReviseProduct(req.ProductID, req.Name, req.Description, req.Category, req.Sku,
		domain.NewMoney(req.Price), now)
	if err != nil {
		return Result{}, err
	}
	historyID := uuid.Must(uuid.NewV7()).String()

	// 3. Write, derive the ledger action, enqueue the event
	var (
		updatedID string
		notFound  bool
	)
	err = it.Transactor.WithinTx(ctx, func(ctx context.Context, tx contracts.Tx) error {
		// Spanner may run this more than once.
		updatedID, notFound = "", false

		id, oldPrice, err := tx.Products().Update(ctx, req.ProductID, product)
		if err != nil {
			return err
		}
		if id == "" {
			notFound = true
			return nil
		}
		updatedID = id

		change := domain.NewChange(historyID, id, oldPrice, product.Price(), now)
		if err := tx.Ledger().Append(ctx, change); err != nil {
			return fmt.Errorf("append price history: %w", err)
		}
		return shared.PublishAll(ctx, tx.Events(), product.DomainEvents())
	})
	if err != nil {
		return Result{}, err
	}

	if notFound {
		return outcome.Warning[string, domain.ValidationFailed](domain.ProductNotFound(req.ProductID)), nil
	}
	return outcome.Value[string, domain.ValidationFailed, domain.RecordNotFound](updatedID), nil
}

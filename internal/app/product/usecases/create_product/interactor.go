package create_product

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

// Request is the application-level create-product request.
type Request struct {
	Name        string          `validate:"notblank,max=100"`
	Description string          `validate:"notblank,max=500"`
	Price       decimal.Decimal `validate:"decimal_required,decimal_gt=0,max_scale=9"`
	Category    string          `validate:"notblank,max=50"`
	Sku         string          `validate:"notblank,max=50"`
}

// Result is the new product id or the validation failures.
type Result = outcome.Result[string, domain.ValidationFailed]

// Interactor implements the create-product usecase.
type Interactor struct {
	Transactor contracts.Transactor
	Validator  contracts.Validator
	Clock      clock.Clock
}

// NewInteractor constructs the interactor.
func NewInteractor(tx contracts.Transactor, validator contracts.Validator, clk clock.Clock) *Interactor {
	return &Interactor{
		Transactor: tx,
		Validator:  validator,
		Clock:      clk,
	}
}

// Execute validates the request, then stores the product together with its
// Entry ledger row and ProductCreated event in a single unit of work.
// A non-nil error means nothing was committed and the Result must be ignored.
func (it *Interactor) Execute(ctx context.Context, req Request) (Result, error) {
	// 1. Validate input
	if errs := it.Validator.Validate(req); len(errs) > 0 {
		return outcome.Err[string](domain.ValidationFailed{Errors: errs}), nil
	}

	now := it.Clock.Now()

	// 2. Build domain aggregate
	product, err := domain.NewProduct(uuid.New().String(), req.Name, req.Description, req.Category, req.Sku,
		domain.NewMoney(req.Price), now)
	if err != nil {
		return Result{}, err
	}
	// Ledger ids are time-ordered so rows sharing a timestamp keep append order.
	entry := domain.NewEntry(uuid.Must(uuid.NewV7()).String(), product.ID(), product.Price(), now)

	// 3. Product, ledger row and outbox event commit together
	var id string
	err = it.Transactor.WithinTx(ctx, func(ctx context.Context, tx contracts.Tx) error {
		var err error
		if id, err = tx.Products().Create(ctx, product); err != nil {
			return err
		}
		if err := tx.Ledger().Append(ctx, entry); err != nil {
			return fmt.Errorf("append price history: %w", err)
		}
		return shared.PublishAll(ctx, tx.Events(), product.DomainEvents())
	})
	if err != nil {
		return Result{}, err
	}

	return outcome.Ok[string, domain.ValidationFailed](id), nil
}

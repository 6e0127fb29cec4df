package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductDTO is the read-side shape of a product row.
type ProductDTO struct {
	ProductID   string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Sku         string
}

// PriceHistoryDTO is a ledger row joined with the current name and sku of its
// product. Both are empty once the product has been deleted.
type PriceHistoryDTO struct {
	HistoryID   string
	ProductID   string
	ProductName string
	ProductSku  string
	OldPrice    decimal.Decimal
	NewPrice    decimal.Decimal
	Action      string
	ChangedAt   time.Time
}

// ProductResponse is returned to callers of the product queries.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    *string         `json:"currency,omitempty"`
	Category    string          `json:"category"`
	Sku         string          `json:"sku"`
}

// PriceHistoryResponse is returned by the price history query.
type PriceHistoryResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	ProductSku  string          `json:"productSku"`
	OldPrice    decimal.Decimal `json:"oldPrice"`
	NewPrice    decimal.Decimal `json:"newPrice"`
	Currency    *string         `json:"currency,omitempty"`
	Action      string          `json:"action"`
	Timestamp   time.Time       `json:"timestamp"`
}

type ValidationError struct {
	PropertyName string `json:"propertyName"`
	Message      string `json:"message"`
}

// ValidationFailureResponse lists every failed field rule.
type ValidationFailureResponse struct {
	Errors []ValidationError `json:"errors"`
}

type OperationError struct {
	Message string `json:"message"`
}

// OperationFailureResponse carries not-found, conflict and upstream failures.
type OperationFailureResponse struct {
	Errors []OperationError `json:"errors"`
}

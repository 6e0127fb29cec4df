package domain

import "errors"

// Domain errors for the Product aggregate
var (
	// ErrProductNotFound indicates that a product with the given ID does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrDuplicateSku indicates that another product already uses the SKU.
	ErrDuplicateSku = errors.New("product sku already exists")

	// ErrEmptyProductID indicates a product built without an identity.
	ErrEmptyProductID = errors.New("product id cannot be empty")
)

// Domain errors for Money
var (
	// ErrNegativePrice indicates an attempt to set a negative price.
	ErrNegativePrice = errors.New("price cannot be negative")
)

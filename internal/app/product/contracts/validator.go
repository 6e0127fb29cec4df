package contracts

import "github.com/murkotick/product-pricing-service/internal/app/product/domain"

// Validator checks a request and returns one FieldError per failed rule.
// An empty slice means the request is valid.
type Validator interface {
	Validate(req any) []domain.FieldError
}

// Package validation checks command requests against their `validate` struct
// tags and renders the failures as field/message pairs.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
)

// Validator implements contracts.Validator on top of go-playground/validator.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Report fields by their `label` tag so messages read "Id is required".
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})

	// decimal.Decimal is a struct, which the validator would walk into, so it
	// is checked through its exact string form instead.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	rules := map[string]validator.Func{
		"notblank": func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		},
		"decimal_required": func(fl validator.FieldLevel) bool {
			d, ok := fieldDecimal(fl)
			return ok && !d.IsZero()
		},
		"decimal_gt": func(fl validator.FieldLevel) bool {
			d, ok := fieldDecimal(fl)
			bound, err := decimal.NewFromString(fl.Param())
			return ok && err == nil && d.GreaterThan(bound)
		},
		// max_scale bounds the fractional digits that survive storage.
		"max_scale": func(fl validator.FieldLevel) bool {
			d, ok := fieldDecimal(fl)
			places, err := strconv.ParseInt(fl.Param(), 10, 32)
			return ok && err == nil && d.Equal(d.Round(int32(places)))
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}

	return &Validator{v: v}
}

// Validate returns one FieldError per failed rule, in field order.
func (val *Validator) Validate(req any) []domain.FieldError {
	err := val.v.Struct(req)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return []domain.FieldError{{Message: err.Error()}}
	}

	out := make([]domain.FieldError, 0, len(ves))
	for _, fe := range ves {
		out = append(out, domain.FieldError{
			PropertyName: fe.Field(),
			Message:      message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank", "decimal_required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s cannot be more than %s characters", fe.Field(), fe.Param())
	case "gt", "decimal_gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "max_scale":
		return fmt.Sprintf("%s cannot have more than %s decimal places", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

func fieldDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(fl.Field().String())
	return d, err == nil
}

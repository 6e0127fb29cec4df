package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
)

// numericScale is the fractional precision of a Spanner NUMERIC column.
const numericScale = 9

func numeric(m domain.Money) spanner.NullNumeric {
	return spanner.NullNumeric{Numeric: *m.Decimal().Round(numericScale).Rat(), Valid: true}
}

func moneyFromNumeric(n spanner.NullNumeric) domain.Money {
	if !n.Valid {
		return domain.Zero()
	}
	return domain.MoneyFromRat(&n.Numeric)
}

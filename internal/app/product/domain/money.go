package domain

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount in the catalog's base currency.
// The zero value is a valid zero amount. Money is immutable.
type Money struct {
	amount decimal.Decimal
}

// NewMoney wraps a decimal amount.
func NewMoney(d decimal.Decimal) Money {
	return Money{amount: d}
}

// MustMoney parses s and panics on malformed input. Intended for literals.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseMoney parses a decimal string such as "19.99".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money amount %q: %w", s, err)
	}
	return Money{amount: d}, nil
}

// MoneyFromRat converts a big.Rat (Spanner NUMERIC) into Money.
// Spanner NUMERIC keeps 9 fractional digits, so that precision is lossless.
func MoneyFromRat(r *big.Rat) Money {
	if r == nil {
		return Money{}
	}
	d, _ := decimal.NewFromString(r.FloatString(9))
	return Money{amount: d}
}

// Zero is the zero amount.
func Zero() Money { return Money{} }

func (m Money) Decimal() decimal.Decimal { return m.amount }

// Rat returns the amount as a big.Rat for drivers that bind NUMERIC that way.
func (m Money) Rat() *big.Rat { return m.amount.Rat() }

func (m Money) IsZero() bool { return m.amount.IsZero() }
func (m Money) IsNegative() bool { return m.amount.IsNegative() }

func (m Money) GreaterThan(other Money) bool { return m.amount.GreaterThan(other.amount) }

func (m Money) Equal(other Money) bool { return m.amount.Equal(other.amount) }

// Scale multiplies the amount by a rate, returning a new Money.
func (m Money) Scale(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate)}
}

// String renders the amount without trailing zeros beyond its exponent.
func (m Money) String() string { return m.amount.String() }

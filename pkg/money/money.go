// Package money provides an exact decimal amount type for prices and
// contributions. Amounts are stored with two decimal places and must never
// pass through binary floating point: summing offers has to round-trip
// exactly, so all arithmetic goes through shopspring/decimal.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Amount is a monetary value. It embeds decimal.Decimal for arithmetic and
// JSON encoding, and persists in Mongo as a normalized two-decimal string so
// that content-equality probes over price behave deterministically.
type Amount struct {
	decimal.Decimal
}

// FromDecimal wraps a decimal value as an Amount.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// Parse converts a numeric string like "199.99" into an Amount.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %v", s, err)
	}
	return Amount{Decimal: d}, nil
}

// MustParse is Parse for test fixtures and constants; it panics on bad input.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Zero returns the zero amount.
func Zero() Amount {
	return Amount{Decimal: decimal.Zero}
}

// Positive reports whether the amount is strictly greater than zero.
func (a Amount) Positive() bool {
	return a.Decimal.IsPositive()
}

// Canonical renders the amount with exactly two decimal places. This is the
// stored form, so "100", "100.0" and "100.00" compare equal at rest.
func (a Amount) Canonical() string {
	return a.Decimal.StringFixed(2)
}

// MarshalBSONValue stores the amount as its canonical string.
func (a Amount) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(a.Canonical())
}

// UnmarshalBSONValue restores an amount from its stored string form.
func (a *Amount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var s string
	raw := bson.RawValue{Type: t, Value: data}
	if err := raw.Unmarshal(&s); err != nil {
		return fmt.Errorf("failed to decode amount: %v", err)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid stored amount %q: %v", s, err)
	}
	a.Decimal = d
	return nil
}

// Package money holds small helpers for monetary amounts. All budget math
// runs on shopspring decimals; these helpers cover the two edges where that
// is not enough: integer-cent persistence and display formatting.
package money

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// WeeksPerMonth is the uniform monthly-to-weekly conversion factor (52/12).
// This is an average-month approximation, not calendar-exact; it is applied
// consistently everywhere a monthly amount needs a weekly equivalent.
var WeeksPerMonth = decimal.NewFromInt(52).Div(decimal.NewFromInt(12))

// WeeksPerYear converts annual amounts to weekly ones.
var WeeksPerYear = decimal.NewFromInt(52)

// Cents converts an amount to integer cents using banker's rounding.
// The store persists all amounts as cents.
func Cents(d decimal.Decimal) int64 {
	return d.Mul(hundred).RoundBank(0).IntPart()
}

// FromCents converts integer cents back to a decimal amount.
func FromCents(c int64) decimal.Decimal {
	return decimal.NewFromInt(c).Div(hundred)
}

// Round rounds an amount to whole cents for display.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format renders an amount as a currency string ("$1234.50").
func Format(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// Min returns the smaller of two amounts.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two amounts.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

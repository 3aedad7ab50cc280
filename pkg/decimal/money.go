// Package decimal implements the presentation rounding contract for result
// records: monetary amounts to cents, percentages to one decimal place.
package decimal

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	MoneyPlaces   = 2
	PercentPlaces = 1
)

// Round rounds half away from zero to the given number of places.
// NaN and infinities are returned unchanged.
func Round(value float64, places int32) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	return decimal.NewFromFloat(value).Round(places).InexactFloat64()
}

// RoundMoney rounds a monetary amount to cents.
func RoundMoney(value float64) float64 { return Round(value, MoneyPlaces) }

// RoundPercent rounds a percentage to one decimal place.
func RoundPercent(value float64) float64 { return Round(value, PercentPlaces) }

// RoundMoneyDecimal rounds a decimal amount to cents for flat-map output.
func RoundMoneyDecimal(d decimal.Decimal) float64 {
	return d.Round(MoneyPlaces).InexactFloat64()
}

// RoundPercentDecimal rounds a decimal percentage to one place.
func RoundPercentDecimal(d decimal.Decimal) float64 {
	return d.Round(PercentPlaces).InexactFloat64()
}

// RoundMoneySlice rounds every amount of a sequence to cents.
func RoundMoneySlice(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = RoundMoney(v)
	}
	return out
}

// Money is a monetary amount held at decimal precision for display.
type Money struct {
	decimal.Decimal
}

// NewMoney creates a Money from a float64. Non-finite values become zero.
func NewMoney(value float64) Money {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Zero()
	}
	return Money{decimal.NewFromFloat(value)}
}

// Zero returns a zero Money amount.
func Zero() Money {
	return Money{decimal.Zero}
}

// Round rounds the amount to cents.
func (m Money) Round() Money {
	return Money{m.Decimal.Round(MoneyPlaces)}
}

// String returns the amount with exactly two decimals.
func (m Money) String() string {
	return m.Decimal.StringFixed(MoneyPlaces)
}

// Format renders the amount as dollars with thousands separators, e.g. "$1,234,567.89".
// Negative amounts carry the sign ahead of the currency symbol.
func (m Money) Format() string {
	p := message.NewPrinter(language.English)
	r := m.Round()
	if r.IsNegative() {
		return "-" + p.Sprintf("$%.2f", r.Neg().InexactFloat64())
	}
	return p.Sprintf("$%.2f", r.InexactFloat64())
}

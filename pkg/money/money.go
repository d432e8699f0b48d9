package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	half    = decimal.NewFromFloat(0.5)
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// printer groups digits the way en-US locale formatting does ("1,234,567.5").
var printer = message.NewPrinter(language.AmericanEnglish)

// Money is a currency amount. It stays unrounded until formatted.
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// Format renders a whole-unit dollar amount: "$1,234", "-$1,234".
func (m Money) Format() string {
	r := RoundWhole(m.Decimal)
	if r.IsNegative() {
		return "-$" + Group(r.Neg(), 0)
	}
	return "$" + Group(r, 0)
}

// RoundWhole rounds d to the nearest integer. Halves round toward positive
// infinity (2.5 -> 3, -2.5 -> -2), matching the browser's Math.round.
func RoundWhole(d decimal.Decimal) decimal.Decimal {
	return d.Add(half).Floor()
}

// Fraction converts a percent (7 for 7%) to a fraction (0.07).
func Fraction(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(hundred)
}

// GrowthFactor converts a percent to the multiplier 1 + percent/100.
func GrowthFactor(percent decimal.Decimal) decimal.Decimal {
	return one.Add(Fraction(percent))
}

// Group formats d with en-US grouping separators and at most maxFraction
// fraction digits, trailing zeros dropped.
func Group(d decimal.Decimal, maxFraction int) string {
	s := printer.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(maxFraction)))
	if s == "-0" {
		return "0"
	}
	return s
}

// Millions renders an amount as "$1.23M", the compact style used in the
// projection matrix.
func Millions(d decimal.Decimal) string {
	m := d.Div(decimal.NewFromInt(1_000_000)).StringFixed(2)
	if strings.HasPrefix(m, "-") {
		return "-$" + strings.TrimPrefix(m, "-") + "M"
	}
	return "$" + m + "M"
}

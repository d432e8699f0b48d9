package output

import (
	"strconv"

	"github.com/rpgo/networth-planner/pkg/money"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as whole US dollars with grouping ("$1,234,567").
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatMillions formats a balance in the compact matrix style ("$1.23M").
func FormatMillions(amount decimal.Decimal) string { return money.Millions(amount) }

// FormatPercentage formats a percent value without trailing zeros ("7%", "6.5%").
func FormatPercentage(percent decimal.Decimal) string { return percent.String() + "%" }

func intToString(i int) string { return strconv.Itoa(i) }

package calculation

import (
	"github.com/shopspring/decimal"
)

// powPrecision bounds the digits carried through repeated squaring; exact
// powers of a 16-digit monthly rate grow to thousands of digits otherwise.
const powPrecision = 28

var (
	decimalOne    = decimal.NewFromInt(1)
	decimalTwelve = decimal.NewFromInt(12)
	monthlyDiv    = decimal.NewFromInt(1200)
)

// Amortization is a fixed-payment loan schedule.
type Amortization struct {
	Principal   decimal.Decimal
	MonthlyRate decimal.Decimal
	NumPayments int

	compounded decimal.Decimal // (1+MonthlyRate)^NumPayments
}

// NewAmortization builds the schedule for principal at an annual percent
// rate over termYears.
func NewAmortization(principal, annualRatePercent decimal.Decimal, termYears int) Amortization {
	a := Amortization{
		Principal:   principal,
		MonthlyRate: annualRatePercent.Div(monthlyDiv),
		NumPayments: termYears * 12,
	}
	if a.NumPayments > 0 {
		a.compounded = powInt(decimalOne.Add(a.MonthlyRate), a.NumPayments)
	}
	return a
}

// Amortizes reports whether the loan has a payment schedule at all.
// A zero rate yields no payments and the principal never declines. This
// mirrors the planner's long-standing behavior and is kept for compatibility.
func (a Amortization) Amortizes() bool {
	return !a.MonthlyRate.IsZero() && a.NumPayments > 0 && !a.compounded.Equal(decimalOne)
}

// MonthlyPayment is P·r·(1+r)^n / ((1+r)^n − 1).
func (a Amortization) MonthlyPayment() decimal.Decimal {
	if !a.Amortizes() {
		return decimal.Zero
	}
	num := a.Principal.Mul(a.MonthlyRate).Mul(a.compounded)
	return num.DivRound(a.compounded.Sub(decimalOne), powPrecision)
}

// AnnualPayment is twelve monthly payments.
func (a Amortization) AnnualPayment() decimal.Decimal {
	return a.MonthlyPayment().Mul(decimalTwelve)
}

// RemainingAfter returns the closed-form principal outstanding after k
// payments, floored at zero.
func (a Amortization) RemainingAfter(k int) decimal.Decimal {
	if !a.Amortizes() {
		return a.Principal
	}
	if k <= 0 {
		return a.Principal
	}
	if k >= a.NumPayments {
		return decimal.Zero
	}
	paid := powInt(decimalOne.Add(a.MonthlyRate), k)
	remaining := a.Principal.Mul(a.compounded.Sub(paid)).DivRound(a.compounded.Sub(decimalOne), powPrecision)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// ScheduleRow is one year of an amortization table.
type ScheduleRow struct {
	Year      int
	Payment   decimal.Decimal
	Interest  decimal.Decimal
	Principal decimal.Decimal
	Remaining decimal.Decimal
}

// YearlySchedule summarizes the loan year by year.
func (a Amortization) YearlySchedule() []ScheduleRow {
	if !a.Amortizes() {
		return nil
	}
	years := (a.NumPayments + 11) / 12
	rows := make([]ScheduleRow, 0, years)
	prev := a.Principal
	for y := 1; y <= years; y++ {
		remaining := a.RemainingAfter(y * 12)
		payment := a.AnnualPayment()
		principalPaid := prev.Sub(remaining)
		rows = append(rows, ScheduleRow{
			Year:      y,
			Payment:   payment,
			Interest:  payment.Sub(principalPaid),
			Principal: principalPaid,
			Remaining: remaining,
		})
		prev = remaining
	}
	return rows
}

// powInt raises base to a non-negative integer power by squaring.
func powInt(base decimal.Decimal, n int) decimal.Decimal {
	result := decimalOne
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(powPrecision)
		}
		base = base.Mul(base).Round(powPrecision)
		n >>= 1
	}
	return result
}

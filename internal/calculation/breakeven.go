package calculation

import (
	"errors"
	"fmt"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrTargetUnreachable is returned when no savings rate in range reaches the target.
var ErrTargetUnreachable = errors.New("target net worth is unreachable")

// GoalResult is the outcome of a savings-rate goal seek.
type GoalResult struct {
	Target             decimal.Decimal `json:"target"`
	Years              int             `json:"years"`
	ReturnRate         decimal.Decimal `json:"returnRate"`
	SavingsRate        decimal.Decimal `json:"savingsRate"`
	ProjectedBalance   decimal.Decimal `json:"projectedBalance"`
	AnnualContribution decimal.Decimal `json:"annualContribution"`
}

// CalculateBreakEvenSavingsRate finds the smallest base savings rate (percent,
// two decimals) whose projected net worth after years reaches target. Yearly
// savings-rate overrides in the profile still apply from their years onward.
// Net worth never decreases as the base rate grows, so bisection is sound.
func (ce *CalculationEngine) CalculateBreakEvenSavingsRate(p *domain.Profile, years int, returnRate, target, maxRate decimal.Decimal) (*GoalResult, error) {
	if years <= 0 {
		return nil, fmt.Errorf("years must be positive, got %d", years)
	}
	if !maxRate.IsPositive() {
		maxRate = decimal.NewFromInt(100)
	}

	trial := p.Clone()
	balanceAt := func(rate decimal.Decimal) decimal.Decimal {
		trial.SavingsRate = rate
		return ProjectBalance(trial, years, returnRate)
	}

	minRate := decimal.Zero
	if balanceAt(minRate).GreaterThanOrEqual(target) {
		return ce.goalResult(trial, years, returnRate, target, minRate), nil
	}
	if balanceAt(maxRate).LessThan(target) {
		return nil, fmt.Errorf("%w: %s%% saved for %d years at %s%% reaches %s", ErrTargetUnreachable,
			maxRate, years, returnRate, balanceAt(maxRate))
	}

	tolerance := decimal.NewFromFloat(0.005)
	lo, hi := minRate, maxRate
	for i := 0; i < 64 && hi.Sub(lo).GreaterThan(tolerance); i++ {
		mid := lo.Add(hi).Div(decimal.NewFromInt(2))
		if balanceAt(mid).LessThan(target) {
			lo = mid
		} else {
			hi = mid
		}
	}

	// Round up to two decimals so the reported rate still reaches the target.
	rate := hi.RoundCeil(2)
	ce.Logger.Debugf("break-even savings rate for %s in %d years at %s%%: %s%%", target, years, returnRate, rate)
	return ce.goalResult(trial, years, returnRate, target, rate), nil
}

func (ce *CalculationEngine) goalResult(trial *domain.Profile, years int, returnRate, target, rate decimal.Decimal) *GoalResult {
	trial.SavingsRate = rate
	return &GoalResult{
		Target:             target,
		Years:              years,
		ReturnRate:         returnRate,
		SavingsRate:        rate,
		ProjectedBalance:   ProjectBalance(trial, years, returnRate),
		AnnualContribution: trial.AnnualContribution(),
	}
}

// YearsToTarget returns the first year whose net worth reaches target, searching
// up to maxYears. The second result is false when the target is never reached.
func YearsToTarget(p *domain.Profile, returnRate, target decimal.Decimal, maxYears int) (int, bool) {
	for _, r := range ProjectTrajectory(p, maxYears, returnRate) {
		if r.Balance.GreaterThanOrEqual(target) {
			return r.Year, true
		}
	}
	return 0, false
}

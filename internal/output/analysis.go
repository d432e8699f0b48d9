package output

import (
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// MatrixSummary highlights the extremes of a projection matrix.
type MatrixSummary struct {
	Best       domain.MatrixCell
	Worst      domain.MatrixCell
	FirstHigh  *domain.MatrixCell // shortest horizon (then lowest rate) in the high tier
	TierCounts map[domain.Tier]int
}

// AnalyzeMatrix finds the best and worst cells and the earliest horizon that
// reaches the high tier. Ties keep the first cell in row-major order.
func AnalyzeMatrix(m *domain.ProjectionMatrix) MatrixSummary {
	s := MatrixSummary{TierCounts: map[domain.Tier]int{}}
	if m == nil {
		return s
	}
	first := true
	for _, row := range m.Cells {
		for _, c := range row {
			s.TierCounts[c.Tier]++
			if first || c.Balance.GreaterThan(s.Best.Balance) {
				s.Best = c
			}
			if first || c.Balance.LessThan(s.Worst.Balance) {
				s.Worst = c
			}
			first = false
		}
	}

	for yi := range m.YearOptions {
		for ri := range m.Cells {
			if yi >= len(m.Cells[ri]) {
				continue
			}
			c := m.Cells[ri][yi]
			if c.Tier != domain.TierHigh {
				continue
			}
			if s.FirstHigh == nil || c.Years < s.FirstHigh.Years ||
				(c.Years == s.FirstHigh.Years && c.ReturnRate.LessThan(s.FirstHigh.ReturnRate)) {
				cell := c
				s.FirstHigh = &cell
			}
		}
	}
	return s
}

// TrajectorySummary condenses a trajectory into headline figures.
type TrajectorySummary struct {
	Final         domain.YearRecord
	LowPoint      domain.YearRecord
	PeakEquity    decimal.Decimal
	NegativeYears int // years whose liquid balance ends below zero
}

// AnalyzeTrajectory extracts the headline figures from a trajectory.
func AnalyzeTrajectory(t domain.Trajectory) TrajectorySummary {
	s := TrajectorySummary{
		Final:      t.Final(),
		LowPoint:   t.LowPoint(),
		PeakEquity: decimal.Zero,
	}
	for _, r := range t {
		if r.TotalEquity.GreaterThan(s.PeakEquity) {
			s.PeakEquity = r.TotalEquity
		}
		if r.LiquidBalance.IsNegative() {
			s.NegativeYears++
		}
	}
	return s
}

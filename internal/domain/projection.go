package domain

import (
	"github.com/shopspring/decimal"
)

// AnnotationType classifies a per-year event annotation.
type AnnotationType string

const (
	AnnotationIncome          AnnotationType = "income"
	AnnotationSavings         AnnotationType = "savings"
	AnnotationPurchase        AnnotationType = "purchase"
	AnnotationMortgageDown    AnnotationType = "mortgage_down"
	AnnotationMortgagePayment AnnotationType = "mortgage_payment"
)

// EventAnnotation is a human-readable note attached to a projected year.
type EventAnnotation struct {
	Type  AnnotationType `json:"type" yaml:"type"`
	Label string         `json:"label" yaml:"label"`
}

// MortgageEquity is the per-mortgage equity breakdown at the end of a year.
// Equity may be negative when the home is underwater.
type MortgageEquity struct {
	Description        string          `json:"description" yaml:"description"`
	HomeValue          decimal.Decimal `json:"homeValue" yaml:"home_value"`
	RemainingPrincipal decimal.Decimal `json:"remainingPrincipal" yaml:"remaining_principal"`
	Equity             decimal.Decimal `json:"equity" yaml:"equity"`
}

// YearRecord is one point of a projected trajectory. Monetary fields are
// rounded to whole currency units.
type YearRecord struct {
	Year             int                        `json:"year" yaml:"year"`
	Balance          decimal.Decimal            `json:"balance" yaml:"balance"`
	LiquidBalance    decimal.Decimal            `json:"liquidBalance" yaml:"liquid_balance"`
	TotalEquity      decimal.Decimal            `json:"totalEquity" yaml:"total_equity"`
	MortgageEquities map[EventID]MortgageEquity `json:"mortgageEquities" yaml:"mortgage_equities"`
	Events           []EventAnnotation          `json:"events" yaml:"events"`
}

// HasEvents reports whether anything happened in this year worth annotating.
func (r YearRecord) HasEvents() bool {
	return len(r.Events) > 0
}

// Trajectory is the ordered year-by-year projection, years 0..N.
type Trajectory []YearRecord

// Final returns the last record, or the zero record for an empty trajectory.
func (t Trajectory) Final() YearRecord {
	if len(t) == 0 {
		return YearRecord{}
	}
	return t[len(t)-1]
}

// LowPoint returns the record with the smallest net worth. Ties go to the earliest year.
func (t Trajectory) LowPoint() YearRecord {
	if len(t) == 0 {
		return YearRecord{}
	}
	low := t[0]
	for _, r := range t[1:] {
		if r.Balance.LessThan(low.Balance) {
			low = r
		}
	}
	return low
}

// Tier buckets a balance against the display color thresholds.
type Tier string

const (
	TierHigh Tier = "high"
	TierMid  Tier = "mid"
	TierLow  Tier = "low"
)

// ColorThresholds are the balance cut-offs for the projection matrix.
type ColorThresholds struct {
	Green  decimal.Decimal `json:"green" yaml:"green"`
	Yellow decimal.Decimal `json:"yellow" yaml:"yellow"`
}

// Classify returns the tier for balance. Both comparisons are strict.
func (t ColorThresholds) Classify(balance decimal.Decimal) Tier {
	switch {
	case balance.GreaterThan(t.Green):
		return TierHigh
	case balance.GreaterThan(t.Yellow):
		return TierMid
	default:
		return TierLow
	}
}

// MatrixCell is the terminal balance for one (years, return rate) pair.
type MatrixCell struct {
	Years      int             `json:"years" yaml:"years"`
	ReturnRate decimal.Decimal `json:"returnRate" yaml:"return_rate"`
	Balance    decimal.Decimal `json:"balance" yaml:"balance"`
	Tier       Tier            `json:"tier" yaml:"tier"`
}

// ProjectionMatrix holds balances by return rate (rows) and horizon (columns).
type ProjectionMatrix struct {
	YearOptions []int             `json:"yearOptions" yaml:"year_options"`
	ReturnRates []decimal.Decimal `json:"returnRates" yaml:"return_rates"`
	Cells       [][]MatrixCell    `json:"cells" yaml:"cells"`
}

// Cell looks up the cell for a horizon and rate.
func (m *ProjectionMatrix) Cell(years int, rate decimal.Decimal) (MatrixCell, bool) {
	for _, row := range m.Cells {
		for _, c := range row {
			if c.Years == years && c.ReturnRate.Equal(rate) {
				return c, true
			}
		}
	}
	return MatrixCell{}, false
}

// CellRef points at a selected matrix cell.
type CellRef struct {
	Years      int             `json:"years" yaml:"years"`
	ReturnRate decimal.Decimal `json:"returnRate" yaml:"return_rate"`
}

// ProjectionReport is everything an output formatter renders.
type ProjectionReport struct {
	Profile     Profile           `json:"profile"`
	Years       int               `json:"years"`
	ReturnRate  decimal.Decimal   `json:"returnRate"`
	Trajectory  Trajectory        `json:"trajectory"`
	Matrix      *ProjectionMatrix `json:"matrix,omitempty"`
	Assumptions []string          `json:"assumptions"`
	Warnings    []string          `json:"warnings,omitempty"`
}

// PlannerState is the persisted planner blob: the profile plus UI selection.
type PlannerState struct {
	Profile      Profile  `json:"profile"`
	SelectedCell *CellRef `json:"selectedCell,omitempty"`
}

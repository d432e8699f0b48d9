package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates projections for the CLI and the HTTP service.
// The projection functions are pure; the engine adds logging, the matrix
// worker limit and an optional balance cache.
type CalculationEngine struct {
	Cache   *BalanceCache // optional; nil disables memoization
	Workers int           // matrix concurrency, <= 0 uses the default
	Logger  Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Logger: NopLogger{},
	}
}

// NewCachedCalculationEngine creates an engine that memoizes matrix cells.
func NewCachedCalculationEngine(cacheSize int) (*CalculationEngine, error) {
	cache, err := NewBalanceCache(cacheSize)
	if err != nil {
		return nil, err
	}
	ce := NewCalculationEngine()
	ce.Cache = cache
	return ce, nil
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	ce.Logger = OrNop(l)
}

// ProjectBalance returns the terminal net worth for (years, returnRate).
func (ce *CalculationEngine) ProjectBalance(p *domain.Profile, years int, returnRate decimal.Decimal) decimal.Decimal {
	balance := ProjectBalance(p, years, returnRate)
	ce.Logger.Debugf("balance years=%d rate=%s%% -> %s", years, returnRate, balance)
	return balance
}

// ProjectTrajectory returns the full year-by-year projection.
func (ce *CalculationEngine) ProjectTrajectory(p *domain.Profile, years int, returnRate decimal.Decimal) domain.Trajectory {
	t := ProjectTrajectory(p, years, returnRate)
	ce.Logger.Debugf("trajectory years=%d rate=%s%% final=%s", years, returnRate, t.Final().Balance)
	return t
}

// ResolveEffectiveValue returns the carry-forward value of field in year.
func (ce *CalculationEngine) ResolveEffectiveValue(p *domain.Profile, year int, field domain.AdjustmentField) (decimal.Decimal, error) {
	if !field.Valid() {
		return decimal.Zero, fmt.Errorf("unknown adjustment field %q", field)
	}
	return NewResolver(p).Value(year, field), nil
}

// EffectiveYear is the income and savings rate in force for one year.
type EffectiveYear struct {
	Year                  int             `json:"year"`
	Income                decimal.Decimal `json:"income"`
	SavingsRate           decimal.Decimal `json:"savingsRate"`
	Contribution          decimal.Decimal `json:"contribution"`
	IncomeOverridden      bool            `json:"incomeOverridden"`
	SavingsRateOverridden bool            `json:"savingsRateOverridden"`
}

// ResolveSchedule previews the effective values for years 1..through.
func (ce *CalculationEngine) ResolveSchedule(p *domain.Profile, through int) []EffectiveYear {
	if through < 1 {
		return nil
	}
	r := NewResolver(p)
	out := make([]EffectiveYear, 0, min(through, maxPrealloc))
	for year := 1; year <= through; year++ {
		out = append(out, EffectiveYear{
			Year:                  year,
			Income:                r.Value(year, domain.FieldIncome),
			SavingsRate:           r.Value(year, domain.FieldSavingsRate),
			Contribution:          r.Contribution(year),
			IncomeOverridden:      r.Overridden(year, domain.FieldIncome),
			SavingsRateOverridden: r.Overridden(year, domain.FieldSavingsRate),
		})
	}
	ce.Logger.Debugf("resolved schedule through year %d", through)
	return out
}

// ReportRequest selects what RunReport computes.
type ReportRequest struct {
	Profile     *domain.Profile
	Years       int
	ReturnRate  decimal.Decimal
	YearOptions []int             // matrix columns; empty skips the matrix
	ReturnRates []decimal.Decimal // matrix rows; empty skips the matrix
	Thresholds  domain.ColorThresholds
}

// RunReport computes the trajectory for the selected cell and, when options
// are given, the full projection matrix.
func (ce *CalculationEngine) RunReport(ctx context.Context, req ReportRequest) (*domain.ProjectionReport, error) {
	if req.Profile == nil {
		return nil, fmt.Errorf("report: profile is required")
	}
	if req.Years < 0 {
		return nil, fmt.Errorf("report: years must not be negative, got %d", req.Years)
	}

	report := &domain.ProjectionReport{
		Profile:    *req.Profile,
		Years:      req.Years,
		ReturnRate: req.ReturnRate,
		Trajectory: ce.ProjectTrajectory(req.Profile, req.Years, req.ReturnRate),
	}

	if len(req.YearOptions) > 0 && len(req.ReturnRates) > 0 {
		m, err := ce.ProjectionMatrix(ctx, MatrixRequest{
			Profile:     req.Profile,
			YearOptions: req.YearOptions,
			ReturnRates: req.ReturnRates,
			Thresholds:  req.Thresholds,
		})
		if err != nil {
			return nil, err
		}
		report.Matrix = m
	}
	return report, nil
}

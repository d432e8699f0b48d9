package output

import (
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/rpgo/networth-planner/internal/calculation"
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func testProfile() *domain.Profile {
	return &domain.Profile{
		AnnualIncome:   decimal.NewFromInt(100000),
		InitialSavings: decimal.NewFromInt(10000),
		SavingsRate:    decimal.NewFromInt(20),
	}
}

// buildTestReport projects the reference profile for 10 years at 7% with a
// 2x2 matrix (rates 5 and 7, horizons 5 and 10).
func buildTestReport(t *testing.T) *domain.ProjectionReport {
	t.Helper()
	report, err := calculation.NewCalculationEngine().RunReport(context.Background(), calculation.ReportRequest{
		Profile:     testProfile(),
		Years:       10,
		ReturnRate:  decimal.NewFromInt(7),
		YearOptions: []int{5, 10},
		ReturnRates: []decimal.Decimal{decimal.NewFromInt(5), decimal.NewFromInt(7)},
		Thresholds:  domain.ColorThresholds{Green: decimal.NewFromInt(250000), Yellow: decimal.NewFromInt(125000)},
	})
	require.NoError(t, err)
	report.Assumptions = GenerateAssumptions(report)
	return report
}

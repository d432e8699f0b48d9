package output

import (
	"testing"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeMatrix(t *testing.T) {
	report := buildTestReport(t)
	s := AnalyzeMatrix(report.Matrix)

	assert.Equal(t, 10, s.Best.Years)
	assert.True(t, s.Best.ReturnRate.Equal(decimal.NewFromInt(7)))
	assert.Equal(t, "296000", s.Best.Balance.String())

	assert.Equal(t, 5, s.Worst.Years)
	assert.True(t, s.Worst.ReturnRate.Equal(decimal.NewFromInt(5)))

	require.NotNil(t, s.FirstHigh)
	assert.Equal(t, 10, s.FirstHigh.Years)
	assert.True(t, s.FirstHigh.ReturnRate.Equal(decimal.NewFromInt(5)))

	assert.Equal(t, map[domain.Tier]int{domain.TierHigh: 2, domain.TierMid: 1, domain.TierLow: 1}, s.TierCounts)
}

func TestAnalyzeMatrix_Nil(t *testing.T) {
	s := AnalyzeMatrix(nil)
	assert.Nil(t, s.FirstHigh)
	assert.Empty(t, s.TierCounts)
}

func TestAnalyzeTrajectory(t *testing.T) {
	traj := domain.Trajectory{
		{Year: 0, Balance: decimal.NewFromInt(50000), LiquidBalance: decimal.NewFromInt(50000), TotalEquity: decimal.Zero},
		{Year: 1, Balance: decimal.NewFromInt(46256), LiquidBalance: decimal.NewFromInt(-12548), TotalEquity: decimal.NewFromInt(58803)},
		{Year: 2, Balance: decimal.NewFromInt(44904), LiquidBalance: decimal.NewFromInt(-55096), TotalEquity: decimal.NewFromInt(100000)},
	}
	s := AnalyzeTrajectory(traj)
	assert.Equal(t, 2, s.Final.Year)
	assert.Equal(t, 2, s.LowPoint.Year)
	assert.Equal(t, 2, s.NegativeYears)
	assert.True(t, s.PeakEquity.Equal(decimal.NewFromInt(100000)))
}

func TestGenerateAssumptions(t *testing.T) {
	report := &domain.ProjectionReport{ReturnRate: decimal.NewFromFloat(6.5)}
	got := GenerateAssumptions(report)
	assert.Equal(t, "Liquid savings and home values grow 6.5% annually", got[0])
	assert.Contains(t, got, "Simple mode: yearly adjustments and events are not applied")

	report.Profile.AdvancedMode = true
	assert.Len(t, GenerateAssumptions(report), len(DefaultAssumptions)+1)
}

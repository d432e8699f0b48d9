package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	s, err := LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, []int{5, 10, 15, 20, 25, 30, 35, 40}, s.Projections.YearOptions)
	assert.Len(t, s.ReturnRates(), 7)
	assert.True(t, s.ReturnRates()[0].Equal(decimal.NewFromInt(4)))
	assert.True(t, s.Thresholds().Green.Equal(decimal.NewFromInt(1000000)))
	assert.True(t, s.Thresholds().Yellow.Equal(decimal.NewFromInt(500000)))
	assert.Equal(t, ":8080", s.Server.Addr)
	assert.True(t, s.DefaultReturnRate().Equal(decimal.NewFromInt(7)))

	p := s.DefaultProfile()
	assert.True(t, p.AnnualIncome.Equal(decimal.NewFromInt(100000)))
	assert.True(t, p.InitialSavings.Equal(decimal.NewFromInt(10000)))
	assert.True(t, p.SavingsRate.Equal(decimal.NewFromInt(20)))
	assert.False(t, p.AdvancedMode)
}

func TestLoadSettings_FileAndEnv(t *testing.T) {
	path := writeTemp(t, "fplan.yaml", `projections:
  year_options: [10, 20]
  return_rate_options: [3.5, 6]
color_thresholds:
  green: 2000000
  yellow: 750000
server:
  addr: ":9000"
`)
	t.Setenv("FPLAN_STATE_DIR", "/tmp/fplan-state")

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20}, s.Projections.YearOptions)
	assert.True(t, s.ReturnRates()[0].Equal(decimal.NewFromFloat(3.5)))
	assert.True(t, s.Thresholds().Green.Equal(decimal.NewFromInt(2000000)))
	assert.Equal(t, ":9000", s.Server.Addr)
	assert.Equal(t, "/tmp/fplan-state", s.StateDir)
	// untouched keys keep their defaults
	assert.Equal(t, 8, s.Server.Workers)
}

func TestLoadSettings_ExplicitFileMissing(t *testing.T) {
	_, err := LoadSettings("/nonexistent/fplan.yaml")
	assert.Error(t, err)
}

func TestSettings_Validate(t *testing.T) {
	base := func() Settings {
		return Settings{
			Projections:     Projections{YearOptions: []int{5}, ReturnRateOptions: []float64{7}, MaxYears: 50},
			ColorThresholds: ThresholdSettings{Green: 10, Yellow: 5},
		}
	}

	s := base()
	assert.NoError(t, s.Validate())

	s = base()
	s.Projections.YearOptions = nil
	assert.Error(t, s.Validate())

	s = base()
	s.Projections.YearOptions = []int{-5}
	assert.Error(t, s.Validate())

	s = base()
	s.Projections.YearOptions = []int{5, 60}
	assert.ErrorIs(t, s.Validate(), ErrHorizonOutOfRange)

	s = base()
	s.Projections.MaxYears = 0
	assert.Error(t, s.Validate())

	s = base()
	s.Defaults.Years = 51
	assert.ErrorIs(t, s.Validate(), ErrHorizonOutOfRange)

	s = base()
	s.Projections.ReturnRateOptions = nil
	assert.Error(t, s.Validate())

	s = base()
	s.ColorThresholds.Yellow = 20
	assert.Error(t, s.Validate())
}

func TestSettings_CheckHorizon(t *testing.T) {
	s := Settings{Projections: Projections{MaxYears: 100}}
	assert.NoError(t, s.CheckHorizon(0))
	assert.NoError(t, s.CheckHorizon(100))
	assert.ErrorIs(t, s.CheckHorizon(101), ErrHorizonOutOfRange)
	assert.ErrorIs(t, s.CheckHorizon(-1), ErrHorizonOutOfRange)
}

func TestSliderRange_Contains(t *testing.T) {
	r := SliderRange{Min: 0, Max: 100}
	assert.True(t, r.Contains(decimal.NewFromInt(0)))
	assert.True(t, r.Contains(decimal.NewFromInt(100)))
	assert.False(t, r.Contains(decimal.NewFromInt(101)))
	assert.False(t, r.Contains(decimal.NewFromInt(-1)))
}

package calculation

import (
	"testing"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func resolverProfile() *domain.Profile {
	return &domain.Profile{
		AnnualIncome:   decimal.NewFromInt(100000),
		InitialSavings: decimal.NewFromInt(10000),
		SavingsRate:    decimal.NewFromInt(20),
		AdvancedMode:   true,
		YearlyAdjustments: map[int]domain.Adjustment{
			0: {SavingsRate: dec(99)},
			3: {SavingsRate: dec(50)},
			5: {Income: dec(150000)},
			8: {Income: dec(90000), SavingsRate: dec(10)},
		},
	}
}

func TestResolveEffectiveValue_CarryForward(t *testing.T) {
	p := resolverProfile()

	tests := []struct {
		year  int
		field domain.AdjustmentField
		want  int64
	}{
		{1, domain.FieldSavingsRate, 20},
		{2, domain.FieldSavingsRate, 20},
		{3, domain.FieldSavingsRate, 50},
		{5, domain.FieldSavingsRate, 50},
		{7, domain.FieldSavingsRate, 50},
		{8, domain.FieldSavingsRate, 10},
		{40, domain.FieldSavingsRate, 10},
		{4, domain.FieldIncome, 100000},
		{5, domain.FieldIncome, 150000},
		{7, domain.FieldIncome, 150000},
		{8, domain.FieldIncome, 90000},
	}
	for _, tt := range tests {
		got := ResolveEffectiveValue(p, tt.year, tt.field)
		assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "year %d %s: got %s want %d", tt.year, tt.field, got, tt.want)
	}
}

func TestResolveEffectiveValue_YearZeroIgnored(t *testing.T) {
	p := resolverProfile()
	assert.True(t, ResolveEffectiveValue(p, 0, domain.FieldSavingsRate).Equal(decimal.NewFromInt(20)))
	assert.True(t, ResolveEffectiveValue(p, -2, domain.FieldIncome).Equal(decimal.NewFromInt(100000)))
}

func TestResolveEffectiveValue_NoAdjustments(t *testing.T) {
	p := &domain.Profile{AnnualIncome: decimal.NewFromInt(55000), SavingsRate: decimal.NewFromInt(15)}
	assert.True(t, ResolveEffectiveValue(p, 10, domain.FieldIncome).Equal(decimal.NewFromInt(55000)))
	assert.True(t, ResolveEffectiveValue(p, 10, domain.FieldSavingsRate).Equal(decimal.NewFromInt(15)))
}

func TestResolver_MatchesLinearScan(t *testing.T) {
	p := resolverProfile()
	r := NewResolver(p)
	for year := -1; year <= 12; year++ {
		for _, f := range []domain.AdjustmentField{domain.FieldIncome, domain.FieldSavingsRate} {
			want := ResolveEffectiveValue(p, year, f)
			assert.True(t, r.Value(year, f).Equal(want), "year %d field %s", year, f)
			// memoized path
			assert.True(t, r.Value(year, f).Equal(want), "year %d field %s (memo)", year, f)
		}
	}
}

func TestResolver_ContributionAndOverridden(t *testing.T) {
	r := NewResolver(resolverProfile())

	assert.True(t, r.Contribution(1).Equal(decimal.NewFromInt(20000)))
	assert.True(t, r.Contribution(3).Equal(decimal.NewFromInt(50000)))
	assert.True(t, r.Contribution(5).Equal(decimal.NewFromInt(75000)))
	assert.True(t, r.Contribution(8).Equal(decimal.NewFromInt(9000)))

	assert.True(t, r.Overridden(3, domain.FieldSavingsRate))
	assert.False(t, r.Overridden(3, domain.FieldIncome))
	assert.False(t, r.Overridden(4, domain.FieldSavingsRate))
	assert.False(t, r.Overridden(0, domain.FieldSavingsRate))
}

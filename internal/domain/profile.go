package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AdjustmentField names an overridable per-year value.
type AdjustmentField string

const (
	FieldIncome      AdjustmentField = "income"
	FieldSavingsRate AdjustmentField = "savingsRate"
)

// Valid reports whether f is a known adjustment field.
func (f AdjustmentField) Valid() bool {
	return f == FieldIncome || f == FieldSavingsRate
}

// Profile is the complete input snapshot for one projection query.
// Percent values are expressed in percent units (20 means 20%).
type Profile struct {
	AnnualIncome      decimal.Decimal    `yaml:"annual_income" json:"annualIncome"`
	InitialSavings    decimal.Decimal    `yaml:"initial_savings" json:"initialSavings"`
	SavingsRate       decimal.Decimal    `yaml:"savings_rate" json:"savingsRate"`
	AdvancedMode      bool               `yaml:"advanced_mode" json:"advancedMode"`
	YearlyAdjustments map[int]Adjustment `yaml:"yearly_adjustments,omitempty" json:"yearlyAdjustments,omitempty"`
	Events            EventList          `yaml:"events,omitempty" json:"events,omitempty"`
}

// Adjustment is a sparse carry-forward override for a single year.
// A nil field leaves the previously effective value in place.
type Adjustment struct {
	Income      *decimal.Decimal `yaml:"income,omitempty" json:"income,omitempty"`
	SavingsRate *decimal.Decimal `yaml:"savings_rate,omitempty" json:"savingsRate,omitempty"`
}

// Value returns the override for field, or nil when unset.
func (a Adjustment) Value(field AdjustmentField) *decimal.Decimal {
	switch field {
	case FieldIncome:
		return a.Income
	case FieldSavingsRate:
		return a.SavingsRate
	}
	return nil
}

// IsEmpty reports whether the adjustment overrides nothing.
func (a Adjustment) IsEmpty() bool {
	return a.Income == nil && a.SavingsRate == nil
}

// BaseValue returns the profile's base value for field.
func (p *Profile) BaseValue(field AdjustmentField) decimal.Decimal {
	if field == FieldIncome {
		return p.AnnualIncome
	}
	return p.SavingsRate
}

// AdjustmentYears returns the override years in ascending order.
func (p *Profile) AdjustmentYears() []int {
	years := make([]int, 0, len(p.YearlyAdjustments))
	for y := range p.YearlyAdjustments {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// SetAdjustment sets (or clears, when value is nil) a single override field.
// Entries left with no overrides are removed from the map.
func (p *Profile) SetAdjustment(year int, field AdjustmentField, value *decimal.Decimal) {
	if p.YearlyAdjustments == nil {
		p.YearlyAdjustments = make(map[int]Adjustment)
	}
	adj := p.YearlyAdjustments[year]
	switch field {
	case FieldIncome:
		adj.Income = value
	case FieldSavingsRate:
		adj.SavingsRate = value
	}
	if adj.IsEmpty() {
		delete(p.YearlyAdjustments, year)
		return
	}
	p.YearlyAdjustments[year] = adj
}

// AnnualContribution is income × rate / 100 for the base values.
func (p *Profile) AnnualContribution() decimal.Decimal {
	return p.AnnualIncome.Mul(p.SavingsRate).Div(decimal.NewFromInt(100))
}

// Clone returns a deep copy so callers can mutate without touching a shared snapshot.
func (p *Profile) Clone() *Profile {
	c := *p
	if p.YearlyAdjustments != nil {
		c.YearlyAdjustments = make(map[int]Adjustment, len(p.YearlyAdjustments))
		for y, adj := range p.YearlyAdjustments {
			c.YearlyAdjustments[y] = Adjustment{Income: copyDecimal(adj.Income), SavingsRate: copyDecimal(adj.SavingsRate)}
		}
	}
	if p.Events != nil {
		c.Events = append(EventList(nil), p.Events...)
	}
	return &c
}

// Equal compares two profiles by value, treating decimals numerically and
// nil/empty collections as equal.
func (p *Profile) Equal(o *Profile) bool {
	if p == nil || o == nil {
		return p == o
	}
	if !p.AnnualIncome.Equal(o.AnnualIncome) || !p.InitialSavings.Equal(o.InitialSavings) ||
		!p.SavingsRate.Equal(o.SavingsRate) || p.AdvancedMode != o.AdvancedMode {
		return false
	}
	if len(p.YearlyAdjustments) != len(o.YearlyAdjustments) {
		return false
	}
	for y, a := range p.YearlyAdjustments {
		b, ok := o.YearlyAdjustments[y]
		if !ok || !decimalPtrEqual(a.Income, b.Income) || !decimalPtrEqual(a.SavingsRate, b.SavingsRate) {
			return false
		}
	}
	if len(p.Events) != len(o.Events) {
		return false
	}
	for i := range p.Events {
		if !eventsEqual(p.Events[i], o.Events[i]) {
			return false
		}
	}
	return true
}

func copyDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

func decimalPtrEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

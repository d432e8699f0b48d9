package config

import (
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const exampleYAML = `annual_income: 100000
initial_savings: 10000
savings_rate: 20
advanced_mode: true
yearly_adjustments:
  3:
    savings_rate: 50
  5:
    income: 150000
events:
  - id: car
    type: one_time
    year: 2
    amount: 30000
    description: Car
  - id: home
    type: mortgage
    year: 4
    house_cost: 400000
    down_payment: 80000
    interest_rate: 6.5
    mortgage_term: 30
    description: House
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_YAML(t *testing.T) {
	parser := NewInputParser()
	p, err := parser.LoadFromFile(writeTemp(t, "profile.yaml", exampleYAML))
	require.NoError(t, err)

	assert.True(t, p.AnnualIncome.Equal(decimal.NewFromInt(100000)))
	assert.True(t, p.AdvancedMode)
	require.Contains(t, p.YearlyAdjustments, 3)
	assert.True(t, p.YearlyAdjustments[3].SavingsRate.Equal(decimal.NewFromInt(50)))
	assert.Nil(t, p.YearlyAdjustments[3].Income)

	require.Len(t, p.Events, 2)
	m, ok := p.Events[1].(domain.Mortgage)
	require.True(t, ok)
	assert.True(t, m.InterestRate.Equal(decimal.NewFromFloat(6.5)))
	assert.Equal(t, 30, m.MortgageTerm)
}

func TestLoadFromFile_JSONMatchesYAML(t *testing.T) {
	parser := NewInputParser()
	fromYAML, err := parser.ParseProfileYAML([]byte(exampleYAML))
	require.NoError(t, err)

	data, err := json.Marshal(fromYAML)
	require.NoError(t, err)
	fromJSON, err := parser.LoadFromFile(writeTemp(t, "profile.json", string(data)))
	require.NoError(t, err)
	assert.True(t, fromYAML.Equal(fromJSON))
}

func TestLoadFromFile_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = parser.LoadFromFile(writeTemp(t, "bad.yaml", "annual_income: [\n"))
	assert.Error(t, err)

	_, err = parser.LoadFromFile(writeTemp(t, "partial.yaml", "annual_income: 1000\nsavings_rate: 10\n"))
	require.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "initial_savings")

	_, err = parser.LoadFromFile(writeTemp(t, "null.json", `{"annualIncome":1,"initialSavings":null,"savingsRate":2}`))
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestParseProfile_MortgageSubFieldsDefaultToZero(t *testing.T) {
	data := `{"annualIncome":1,"initialSavings":2,"savingsRate":3,"advancedMode":true,
		"events":[{"id":9,"type":"mortgage","year":2,"houseCost":100000}]}`
	p, err := NewInputParser().ParseProfileJSON([]byte(data))
	require.NoError(t, err)
	m := p.Events[0].(domain.Mortgage)
	assert.Equal(t, domain.EventID("9"), m.ID)
	assert.True(t, m.DownPayment.IsZero())
	assert.True(t, m.InterestRate.IsZero())
	assert.Equal(t, 0, m.MortgageTerm)
}

func TestValidateProfile(t *testing.T) {
	parser := NewInputParser()
	assert.NoError(t, parser.ValidateProfile(parser.CreateExampleProfile()))
	assert.ErrorIs(t, parser.ValidateProfile(nil), ErrInvalidProfile)

	dup := parser.CreateExampleProfile()
	dup.Events = append(dup.Events, domain.OneTime{ID: "car", Year: 8})
	assert.ErrorIs(t, parser.ValidateProfile(dup), ErrInvalidProfile)

	noID := parser.CreateExampleProfile()
	noID.Events = domain.EventList{domain.OneTime{Year: 1}}
	assert.ErrorIs(t, parser.ValidateProfile(noID), ErrInvalidProfile)
}

func TestWarnings(t *testing.T) {
	parser := NewInputParser()
	sliders := &Sliders{
		AnnualIncome:   SliderRange{Min: 0, Max: 500000, Step: 1000},
		SavingsRate:    SliderRange{Min: 0, Max: 100, Step: 1},
		InitialSavings: SliderRange{Min: 0, Max: 1000000, Step: 1000},
	}

	assert.Empty(t, parser.Warnings(parser.CreateExampleProfile(), sliders))

	p := parser.CreateExampleProfile()
	p.SavingsRate = decimal.NewFromInt(120)
	p.AnnualIncome = decimal.NewFromInt(900000)
	p.Events = append(p.Events,
		domain.OneTime{ID: "old", Year: 0, Amount: decimal.NewFromInt(1)},
		domain.Mortgage{ID: "free", Year: 3, HouseCost: decimal.NewFromInt(1000), MortgageTerm: 5},
	)
	w := parser.Warnings(p, sliders)
	assert.Len(t, w, 5)

	simple := parser.CreateExampleProfile()
	simple.AdvancedMode = false
	assert.Len(t, parser.Warnings(simple, nil), 1)
}

func TestCreateExampleProfile_SurvivesYAML(t *testing.T) {
	parser := NewInputParser()
	p := parser.CreateExampleProfile()
	data, err := yaml.Marshal(p)
	require.NoError(t, err)

	back, err := parser.ParseProfileYAML(data)
	require.NoError(t, err)
	assert.True(t, p.Equal(back))
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingField is returned when a required profile number is absent or null.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidProfile is returned for structurally unusable profiles.
	ErrInvalidProfile = errors.New("invalid profile")
)

var (
	requiredYAMLFields = []string{"annual_income", "initial_savings", "savings_rate"}
	requiredJSONFields = []string{"annualIncome", "initialSavings", "savingsRate"}
)

// InputParser handles parsing of profile files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a profile from a YAML or JSON file. Files ending in
// .json are read as JSON, everything else as YAML.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var profile *domain.Profile
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		profile, err = ip.ParseProfileJSON(data)
	} else {
		profile, err = ip.ParseProfileYAML(data)
	}
	if err != nil {
		return nil, err
	}

	if err := ip.ValidateProfile(profile); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}
	return profile, nil
}

// ParseProfileYAML decodes a snake_case YAML profile.
func (ip *InputParser) ParseProfileYAML(data []byte) (*domain.Profile, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := CheckRequiredFields(raw, requiredYAMLFields); err != nil {
		return nil, err
	}

	var profile domain.Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &profile, nil
}

// ParseProfileJSON decodes a camelCase JSON profile, the shape used by saved
// planner state and share codes.
func (ip *InputParser) ParseProfileJSON(data []byte) (*domain.Profile, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if err := CheckRequiredFields(raw, requiredJSONFields); err != nil {
		return nil, err
	}

	var profile domain.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &profile, nil
}

// CheckRequiredFields fails with ErrMissingField when any key is absent or null.
func CheckRequiredFields(raw map[string]interface{}, keys []string) error {
	if raw == nil {
		return fmt.Errorf("%w: profile is empty", ErrMissingField)
	}
	var missing []string
	for _, k := range keys {
		if v, ok := raw[k]; !ok || v == nil {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	return nil
}

// ValidateProfile rejects profiles the engine cannot represent faithfully.
// Degenerate values (zero rates, savings above 100%) are left to Warnings.
func (ip *InputParser) ValidateProfile(p *domain.Profile) error {
	if p == nil {
		return fmt.Errorf("%w: profile is nil", ErrInvalidProfile)
	}

	seen := make(map[domain.EventID]int, len(p.Events))
	for i, e := range p.Events {
		if e == nil {
			return fmt.Errorf("%w: event %d is empty", ErrInvalidProfile, i)
		}
		id := e.EventKey()
		if id == "" {
			return fmt.Errorf("%w: event %d has no id", ErrInvalidProfile, i)
		}
		if j, dup := seen[id]; dup {
			return fmt.Errorf("%w: events %d and %d share id %q", ErrInvalidProfile, j, i, id)
		}
		seen[id] = i
	}
	return nil
}

// Warnings lists advisories about values that are accepted but probably
// unintended. sliders may be nil.
func (ip *InputParser) Warnings(p *domain.Profile, sliders *Sliders) []string {
	var warnings []string
	hundred := decimal.NewFromInt(100)

	if p.SavingsRate.GreaterThan(hundred) {
		warnings = append(warnings, fmt.Sprintf("savings rate %s%% exceeds income", p.SavingsRate))
	}
	if sliders != nil {
		warnings = appendRange(warnings, "annual income", p.AnnualIncome, sliders.AnnualIncome)
		warnings = appendRange(warnings, "initial savings", p.InitialSavings, sliders.InitialSavings)
		warnings = appendRange(warnings, "savings rate", p.SavingsRate, sliders.SavingsRate)
	}

	if !p.AdvancedMode {
		if len(p.Events) > 0 || len(p.YearlyAdjustments) > 0 {
			warnings = append(warnings, "advanced mode is off: yearly adjustments and events are ignored")
		}
		return warnings
	}

	for _, year := range p.AdjustmentYears() {
		adj := p.YearlyAdjustments[year]
		if year < 1 {
			warnings = append(warnings, fmt.Sprintf("adjustment for year %d is ignored (years start at 1)", year))
			continue
		}
		if adj.SavingsRate != nil && adj.SavingsRate.GreaterThan(hundred) {
			warnings = append(warnings, fmt.Sprintf("year %d savings rate %s%% exceeds income", year, adj.SavingsRate))
		}
	}

	for _, e := range p.Events {
		if e.StartYear() < 1 {
			warnings = append(warnings, fmt.Sprintf("event %q in year %d is ignored (years start at 1)", e.EventKey(), e.StartYear()))
		}
		m, ok := e.(domain.Mortgage)
		if !ok {
			continue
		}
		switch {
		case m.MortgageTerm <= 0:
			warnings = append(warnings, fmt.Sprintf("mortgage %q has no term and makes no payments", m.ID))
		case m.InterestRate.IsZero():
			warnings = append(warnings, fmt.Sprintf("mortgage %q has a 0%% rate: no payments are deducted and the principal never declines", m.ID))
		}
		if m.DownPayment.GreaterThan(m.HouseCost) {
			warnings = append(warnings, fmt.Sprintf("mortgage %q down payment exceeds house cost", m.ID))
		}
	}
	return warnings
}

func appendRange(warnings []string, name string, v decimal.Decimal, r SliderRange) []string {
	if r.Max <= r.Min || r.Contains(v) {
		return warnings
	}
	return append(warnings, fmt.Sprintf("%s %s is outside the usual range %v-%v", name, v, r.Min, r.Max))
}

// CreateExampleProfile creates an advanced-mode profile exercising overrides,
// a one-time purchase and a mortgage.
func (ip *InputParser) CreateExampleProfile() *domain.Profile {
	raise := decimal.NewFromInt(120000)
	higherRate := decimal.NewFromInt(25)
	return &domain.Profile{
		AnnualIncome:   decimal.NewFromInt(100000),
		InitialSavings: decimal.NewFromInt(10000),
		SavingsRate:    decimal.NewFromInt(20),
		AdvancedMode:   true,
		YearlyAdjustments: map[int]domain.Adjustment{
			3: {Income: &raise},
			6: {SavingsRate: &higherRate},
		},
		Events: domain.EventList{
			domain.OneTime{
				ID:          "car",
				Year:        2,
				Amount:      decimal.NewFromInt(35000),
				Description: "Car",
			},
			domain.Mortgage{
				ID:           "house",
				Year:         5,
				HouseCost:    decimal.NewFromInt(450000),
				DownPayment:  decimal.NewFromInt(90000),
				InterestRate: decimal.NewFromFloat(6.5),
				MortgageTerm: 30,
				Description:  "House",
			},
		},
	}
}

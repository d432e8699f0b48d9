package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// ErrHorizonOutOfRange is returned for projection horizons outside 0..max_years.
var ErrHorizonOutOfRange = errors.New("projection horizon out of range")

// SettingsFileName is the planner settings file looked up in "." and $HOME/.fplan.
const SettingsFileName = "fplan"

// EnvPrefix prefixes environment overrides, e.g. FPLAN_SERVER_ADDR.
const EnvPrefix = "FPLAN"

// Defaults are the starting values for a fresh profile.
type Defaults struct {
	AnnualIncome   float64 `mapstructure:"annual_income"`
	InitialSavings float64 `mapstructure:"initial_savings"`
	SavingsRate    float64 `mapstructure:"savings_rate"`
	Years          int     `mapstructure:"years"`
	ReturnRate     float64 `mapstructure:"return_rate"`
}

// Projections lists the matrix horizons and return rates.
type Projections struct {
	YearOptions       []int     `mapstructure:"year_options"`
	ReturnRateOptions []float64 `mapstructure:"return_rate_options"`
	MaxYears          int       `mapstructure:"max_years"`
}

// ThresholdSettings are the matrix color cut-offs in currency units.
type ThresholdSettings struct {
	Green  float64 `mapstructure:"green"`
	Yellow float64 `mapstructure:"yellow"`
}

// SliderRange is the advisory range for an input value.
type SliderRange struct {
	Min  float64 `mapstructure:"min"`
	Max  float64 `mapstructure:"max"`
	Step float64 `mapstructure:"step"`
}

// Contains reports whether v lies within [Min, Max].
func (r SliderRange) Contains(v decimal.Decimal) bool {
	f := v.InexactFloat64()
	return f >= r.Min && f <= r.Max
}

// Sliders holds the advisory input ranges.
type Sliders struct {
	AnnualIncome   SliderRange `mapstructure:"annual_income"`
	SavingsRate    SliderRange `mapstructure:"savings_rate"`
	InitialSavings SliderRange `mapstructure:"initial_savings"`
}

// ServerSettings configures `fplan serve`.
type ServerSettings struct {
	Addr      string `mapstructure:"addr"`
	CacheSize int    `mapstructure:"cache_size"`
	Workers   int    `mapstructure:"workers"`
}

// Settings is the planner configuration: defaults, matrix layout, color
// thresholds, slider ranges, the state directory and the HTTP server.
type Settings struct {
	Defaults        Defaults          `mapstructure:"defaults"`
	Projections     Projections       `mapstructure:"projections"`
	ColorThresholds ThresholdSettings `mapstructure:"color_thresholds"`
	Sliders         Sliders           `mapstructure:"sliders"`
	StateDir        string            `mapstructure:"state_dir"`
	ShareBaseURL    string            `mapstructure:"share_base_url"`
	Server          ServerSettings    `mapstructure:"server"`
}

// SetDefaults registers the built-in settings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("defaults.annual_income", 100000)
	v.SetDefault("defaults.initial_savings", 10000)
	v.SetDefault("defaults.savings_rate", 20)
	v.SetDefault("defaults.years", 30)
	v.SetDefault("defaults.return_rate", 7)

	v.SetDefault("projections.year_options", []int{5, 10, 15, 20, 25, 30, 35, 40})
	v.SetDefault("projections.return_rate_options", []float64{4, 5, 6, 7, 8, 9, 10})
	v.SetDefault("projections.max_years", 100)

	v.SetDefault("color_thresholds.green", 1000000)
	v.SetDefault("color_thresholds.yellow", 500000)

	v.SetDefault("sliders.annual_income.min", 0)
	v.SetDefault("sliders.annual_income.max", 500000)
	v.SetDefault("sliders.annual_income.step", 1000)
	v.SetDefault("sliders.savings_rate.min", 0)
	v.SetDefault("sliders.savings_rate.max", 100)
	v.SetDefault("sliders.savings_rate.step", 1)
	v.SetDefault("sliders.initial_savings.min", 0)
	v.SetDefault("sliders.initial_savings.max", 1000000)
	v.SetDefault("sliders.initial_savings.step", 1000)

	v.SetDefault("state_dir", defaultStateDir())
	v.SetDefault("share_base_url", "http://localhost:8080/")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cache_size", 4096)
	v.SetDefault("server.workers", 8)
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fplan"
	}
	return filepath.Join(home, ".fplan")
}

// NewViper returns a viper instance wired with defaults, the settings file
// search path and FPLAN_* environment overrides. An explicit file, when
// given, replaces the search path.
func NewViper(file string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(SettingsFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.fplan")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadSettings reads planner settings. A missing settings file is not an
// error; an explicit file that cannot be read is.
func LoadSettings(file string) (*Settings, error) {
	v := NewViper(file)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}
	return DecodeSettings(v)
}

// DecodeSettings unmarshals and validates the settings held by v.
func DecodeSettings(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &s, nil
}

// Validate checks the settings for layouts the planner cannot render.
func (s *Settings) Validate() error {
	if len(s.Projections.YearOptions) == 0 {
		return fmt.Errorf("projections.year_options must not be empty")
	}
	if s.Projections.MaxYears <= 0 {
		return fmt.Errorf("projections.max_years must be positive")
	}
	for _, y := range s.Projections.YearOptions {
		if err := s.CheckHorizon(y); err != nil {
			return fmt.Errorf("projections.year_options: %w", err)
		}
	}
	if len(s.Projections.ReturnRateOptions) == 0 {
		return fmt.Errorf("projections.return_rate_options must not be empty")
	}
	if s.ColorThresholds.Yellow > s.ColorThresholds.Green {
		return fmt.Errorf("color_thresholds.yellow (%v) exceeds green (%v)", s.ColorThresholds.Yellow, s.ColorThresholds.Green)
	}
	if err := s.CheckHorizon(s.Defaults.Years); err != nil {
		return fmt.Errorf("defaults.years: %w", err)
	}
	return nil
}

// CheckHorizon reports whether years lies within 0..projections.max_years.
func (s *Settings) CheckHorizon(years int) error {
	if years < 0 {
		return fmt.Errorf("%w: horizon %d is negative", ErrHorizonOutOfRange, years)
	}
	if years > s.Projections.MaxYears {
		return fmt.Errorf("%w: horizon %d exceeds the maximum of %d years", ErrHorizonOutOfRange, years, s.Projections.MaxYears)
	}
	return nil
}

// ReturnRates converts the configured return rates to decimals.
func (s *Settings) ReturnRates() []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(s.Projections.ReturnRateOptions))
	for _, r := range s.Projections.ReturnRateOptions {
		out = append(out, decimal.NewFromFloat(r))
	}
	return out
}

// Thresholds converts the color thresholds to the domain type.
func (s *Settings) Thresholds() domain.ColorThresholds {
	return domain.ColorThresholds{
		Green:  decimal.NewFromFloat(s.ColorThresholds.Green),
		Yellow: decimal.NewFromFloat(s.ColorThresholds.Yellow),
	}
}

// DefaultReturnRate is the return rate used when none is selected.
func (s *Settings) DefaultReturnRate() decimal.Decimal {
	return decimal.NewFromFloat(s.Defaults.ReturnRate)
}

// DefaultProfile builds a simple-mode profile from the configured defaults.
func (s *Settings) DefaultProfile() *domain.Profile {
	return &domain.Profile{
		AnnualIncome:   decimal.NewFromFloat(s.Defaults.AnnualIncome),
		InitialSavings: decimal.NewFromFloat(s.Defaults.InitialSavings),
		SavingsRate:    decimal.NewFromFloat(s.Defaults.SavingsRate),
	}
}

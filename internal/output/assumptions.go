package output

import (
	"fmt"

	"github.com/rpgo/networth-planner/internal/domain"
)

// DefaultAssumptions lists the modeling rules rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Savings grow once a year, before the contribution for that year is added",
	"Balances at or below zero earn no return",
	"Contributions equal income times the savings rate in effect that year",
	"Yearly income and savings-rate changes stay in effect until changed again",
	"Mortgages are fixed-rate loans with monthly payments deducted once a year",
	"A 0% mortgage makes no payments and its principal never declines",
	"All figures are nominal: no inflation or taxes are modeled",
}

// GenerateAssumptions creates the assumptions list for a report.
func GenerateAssumptions(report *domain.ProjectionReport) []string {
	out := []string{
		fmt.Sprintf("Liquid savings and home values grow %s annually", FormatPercentage(report.ReturnRate)),
	}
	if !report.Profile.AdvancedMode {
		out = append(out, "Simple mode: yearly adjustments and events are not applied")
	}
	return append(out, DefaultAssumptions...)
}

package output

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/rpgo/networth-planner/internal/domain"
)

var (
	tierHigh = color.New(color.FgGreen).SprintFunc()
	tierMid  = color.New(color.FgYellow).SprintFunc()
	tierLow  = color.New(color.FgRed).SprintFunc()
	bold     = color.New(color.Bold).SprintFunc()
)

// colorizeTier paints an already padded cell by its tier. Colors are
// dropped automatically when stdout is not a terminal.
func colorizeTier(tier domain.Tier, s string) string {
	switch tier {
	case domain.TierHigh:
		return tierHigh(s)
	case domain.TierMid:
		return tierMid(s)
	default:
		return tierLow(s)
	}
}

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "NET WORTH PROJECTION")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)

	writeProfile(&buf, &report.Profile)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	if len(report.Warnings) > 0 {
		fmt.Fprintln(&buf, "WARNINGS:")
		for _, w := range report.Warnings {
			fmt.Fprintf(&buf, "! %s\n", w)
		}
		fmt.Fprintln(&buf)
	}

	writeTrajectory(&buf, report)
	writeEquity(&buf, report.Trajectory.Final())
	if report.Matrix != nil {
		writeMatrix(&buf, report.Matrix)
	}
	return buf.Bytes(), nil
}

func writeProfile(buf *bytes.Buffer, p *domain.Profile) {
	fmt.Fprintln(buf, "PROFILE")
	fmt.Fprintln(buf, "-------")
	fmt.Fprintf(buf, "Annual Income:    %s\n", FormatCurrency(p.AnnualIncome))
	fmt.Fprintf(buf, "Initial Savings:  %s\n", FormatCurrency(p.InitialSavings))
	fmt.Fprintf(buf, "Savings Rate:     %s\n", FormatPercentage(p.SavingsRate))
	if p.AdvancedMode {
		fmt.Fprintf(buf, "Mode:             advanced (%d adjustment years, %d events)\n", len(p.YearlyAdjustments), len(p.Events))
	} else {
		fmt.Fprintln(buf, "Mode:             simple")
	}
	fmt.Fprintln(buf)
}

func writeTrajectory(buf *bytes.Buffer, report *domain.ProjectionReport) {
	fmt.Fprintf(buf, "YEAR-BY-YEAR PROJECTION (%d years at %s)\n", report.Years, FormatPercentage(report.ReturnRate))
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	fmt.Fprintf(buf, "%-5s %14s %14s %14s  %s\n", "Year", "Net Worth", "Liquid", "Home Equity", "Events")
	for _, r := range report.Trajectory {
		labels := make([]string, 0, len(r.Events))
		for _, e := range r.Events {
			labels = append(labels, e.Label)
		}
		fmt.Fprintf(buf, "%-5d %14s %14s %14s  %s\n",
			r.Year,
			FormatCurrency(r.Balance),
			FormatCurrency(r.LiquidBalance),
			FormatCurrency(r.TotalEquity),
			strings.Join(labels, "; "),
		)
	}
	fmt.Fprintln(buf)
}

func writeEquity(buf *bytes.Buffer, final domain.YearRecord) {
	if len(final.MortgageEquities) == 0 {
		return
	}
	fmt.Fprintf(buf, "MORTGAGE EQUITY (year %d)\n", final.Year)
	fmt.Fprintln(buf, "------------------------")
	ids := make([]string, 0, len(final.MortgageEquities))
	for id := range final.MortgageEquities {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	for _, id := range ids {
		eq := final.MortgageEquities[domain.EventID(id)]
		name := eq.Description
		if name == "" {
			name = id
		}
		fmt.Fprintf(buf, "  %s: home %s, owed %s, equity %s\n", name,
			FormatCurrency(eq.HomeValue), FormatCurrency(eq.RemainingPrincipal), FormatCurrency(eq.Equity))
	}
	fmt.Fprintln(buf)
}

func writeMatrix(buf *bytes.Buffer, m *domain.ProjectionMatrix) {
	fmt.Fprintln(buf, bold("PROJECTION MATRIX"))
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	fmt.Fprintf(buf, "%-8s", "Return")
	for _, y := range m.YearOptions {
		fmt.Fprintf(buf, " %10s", intToString(y)+" yrs")
	}
	fmt.Fprintln(buf)
	for ri, rate := range m.ReturnRates {
		fmt.Fprintf(buf, "%-8s", FormatPercentage(rate))
		for _, cell := range m.Cells[ri] {
			fmt.Fprint(buf, " "+colorizeTier(cell.Tier, fmt.Sprintf("%10s", FormatMillions(cell.Balance))))
		}
		fmt.Fprintln(buf)
	}
	fmt.Fprintln(buf)
}

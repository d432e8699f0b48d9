package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/networth-planner/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "NET WORTH PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Horizon: %d years at %s\n", report.Years, FormatPercentage(report.ReturnRate))

	ts := AnalyzeTrajectory(report.Trajectory)
	fmt.Fprintf(&buf, "Final Net Worth: %s\n", FormatCurrency(ts.Final.Balance))
	fmt.Fprintf(&buf, "  Liquid=%s HomeEquity=%s\n", FormatCurrency(ts.Final.LiquidBalance), FormatCurrency(ts.Final.TotalEquity))
	fmt.Fprintf(&buf, "Lowest Net Worth: %s (year %d)\n", FormatCurrency(ts.LowPoint.Balance), ts.LowPoint.Year)
	if ts.NegativeYears > 0 {
		fmt.Fprintf(&buf, "Years with negative savings: %d\n", ts.NegativeYears)
	}

	if report.Matrix != nil {
		ms := AnalyzeMatrix(report.Matrix)
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Best: %s (%d years at %s)\n", FormatMillions(ms.Best.Balance), ms.Best.Years, FormatPercentage(ms.Best.ReturnRate))
		fmt.Fprintf(&buf, "Worst: %s (%d years at %s)\n", FormatMillions(ms.Worst.Balance), ms.Worst.Years, FormatPercentage(ms.Worst.ReturnRate))
		if ms.FirstHigh != nil {
			fmt.Fprintf(&buf, "Earliest high tier: %d years at %s\n", ms.FirstHigh.Years, FormatPercentage(ms.FirstHigh.ReturnRate))
		}
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(&buf, "Warning: %s\n", w)
	}
	return buf.Bytes(), nil
}

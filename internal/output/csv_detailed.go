package output

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/rpgo/networth-planner/internal/domain"
)

// CSVDetailedExporter writes the trajectory, one row per year.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "NetWorth", "LiquidBalance", "HomeEquity", "Events"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, yr := range report.Trajectory {
		labels := make([]string, 0, len(yr.Events))
		for _, e := range yr.Events {
			labels = append(labels, e.Label)
		}
		row := []string{
			intToString(yr.Year),
			yr.Balance.StringFixed(0),
			yr.LiquidBalance.StringFixed(0),
			yr.TotalEquity.StringFixed(0),
			strings.Join(labels, "; "),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

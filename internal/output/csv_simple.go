package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVSummarizer writes the projection matrix: one row per return rate, one
// column per horizon. Without a matrix it writes the selected cell only.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.ProjectionReport) ([]byte, error) {
	m := report.Matrix
	if m == nil {
		m = &domain.ProjectionMatrix{
			YearOptions: []int{report.Years},
			ReturnRates: []decimal.Decimal{report.ReturnRate},
			Cells: [][]domain.MatrixCell{{{
				Years:      report.Years,
				ReturnRate: report.ReturnRate,
				Balance:    report.Trajectory.Final().Balance,
			}}},
		}
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := make([]string, 0, len(m.YearOptions)+1)
	header = append(header, "ReturnRate")
	for _, y := range m.YearOptions {
		header = append(header, intToString(y)+"Years")
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for ri, rate := range m.ReturnRates {
		row := []string{rate.String()}
		for _, cell := range m.Cells[ri] {
			row = append(row, cell.Balance.StringFixed(0))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

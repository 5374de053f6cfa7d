package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/carbonsim/internal/domain"
)

// CSVDetailedExporter provides one row per completed project with its financing status.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.GameReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Project", "CompletedYear", "Financing", "Cost", "Rebate", "AnnualPayment", "YearsPaid", "TermYears", "StillFinanced"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	financed := make(map[domain.ProjectID]domain.FinancedProject, len(report.Financing))
	for _, f := range report.Financing {
		financed[f.ProjectID] = f
	}

	for _, p := range report.Completed {
		f, ok := financed[p.ProjectID]
		row := []string{
			string(p.ProjectID),
			intToString(p.CompletedYear),
			string(p.Financing),
			p.Cost.StringFixed(2),
			p.Rebate.StringFixed(2),
			f.AnnualPayment.StringFixed(2),
			intToString(f.YearsPaid),
			intToString(f.TermYears),
			boolToString(ok),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/carbonsim/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per period).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.GameReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "Label", "Budget", "ImplementationSpending", "HiddenSpending", "Rebates", "EnergyCostSavings", "CarbonEmissions", "CarbonSavingsPercent", "Projects"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, p := range report.Summary.Periods {
		row := []string{
			intToString(p.Year),
			p.Label,
			p.Budget.StringFixed(2),
			p.ImplementationSpend.StringFixed(2),
			p.HiddenSpend.StringFixed(2),
			p.Rebates.StringFixed(2),
			p.EnergyCostSavings.StringFixed(2),
			p.CarbonEmissions.StringFixed(2),
			p.CarbonSavingsPercent.StringFixed(5),
			joinIDs(p.Projects),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

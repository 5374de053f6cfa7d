package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rpgo/carbonsim/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":   FormatCurrency,
	"pct":    FormatPercentage,
	"kg":     FormatKg,
	"status": roundStatus,
	"ids":    func(ids []domain.ProjectID) string { return joinIDs(ids) },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.GameReport) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.GameReport
		Highlights  Highlights
		Assumptions []string
		Rounds      []domain.CapitalFundingRound
	}{
		report,
		AnalyzeReport(report),
		GenerateAssumptions(report.Settings),
		[]domain.CapitalFundingRound{report.Milestones.RoundA, report.Milestones.RoundB},
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/carbonsim/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.GameReport) ([]byte, error) {
	var buf bytes.Buffer
	sum := report.Summary
	fmt.Fprintln(&buf, "CARBON REDUCTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Outcome: %s (period %d)\n", report.Outcome, report.FinalYear)
	fmt.Fprintf(&buf, "Reduction=%s Spending=%s Rebates=%s Future=%s\n",
		FormatPercentage(sum.CarbonSavingsPercent),
		FormatCurrency(sum.TotalSpending),
		FormatCurrency(sum.TotalRebates),
		FormatCurrency(sum.ProjectedFutureSpending),
	)
	fmt.Fprintln(&buf)
	for _, p := range sum.Periods {
		fmt.Fprintf(&buf, "%s: Reduction=%s Spent=%s Projects=%d\n",
			p.Label, FormatPercentage(p.CarbonSavingsPercent), FormatCurrency(p.ImplementationSpend), len(p.Projects))
	}
	if h := AnalyzeReport(report); h.BestPeriodLabel != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Best period: %s (Δ %s)\n", h.BestPeriodLabel, FormatPercentage(h.BestPeriodGain))
	}
	return buf.Bytes(), nil
}

package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/carbonsim/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed end-of-game console report.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.GameReport) ([]byte, error) {
	var buf bytes.Buffer
	sum := report.Summary

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "CARBON REDUCTION GAME REPORT")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	if report.Name != "" {
		fmt.Fprintf(&buf, "Plan:    %s\n", report.Name)
	}
	fmt.Fprintf(&buf, "Outcome: %s after %d period(s)\n", report.Outcome, report.FinalYear)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "GAME RULES:")
	for _, a := range GenerateAssumptions(report.Settings) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "TOTALS")
	fmt.Fprintln(&buf, "=============================================")
	fmt.Fprintf(&buf, "Carbon Reduction:         %s (%s)\n", FormatPercentage(sum.CarbonSavingsPercent), FormatKg(sum.CarbonSavingsKg))
	fmt.Fprintf(&buf, "Total Spending:           %s\n", FormatCurrency(sum.TotalSpending))
	fmt.Fprintf(&buf, "Total Rebates:            %s\n", FormatCurrency(sum.TotalRebates))
	fmt.Fprintf(&buf, "Projected Future Spend:   %s\n", FormatCurrency(sum.ProjectedFutureSpending))
	fmt.Fprintf(&buf, "Cost per kg Reduced:      %s\n", FormatCurrency(sum.CostPerCarbonSavingsKg))
	fmt.Fprintln(&buf)

	writePeriodTable(&buf, sum.Periods)

	if len(report.Completed) > 0 {
		fmt.Fprintln(&buf, "COMPLETED PROJECTS")
		fmt.Fprintln(&buf, strings.Repeat("-", 50))
		for _, p := range report.Completed {
			fmt.Fprintf(&buf, "  %-28s period %-3d %-14s cost %s rebate %s\n",
				p.ProjectID, p.CompletedYear, p.Financing, FormatCurrency(p.Cost), FormatCurrency(p.Rebate))
		}
		fmt.Fprintln(&buf)
	}

	if len(report.Financing) > 0 {
		fmt.Fprintln(&buf, "ACTIVE FINANCING")
		fmt.Fprintln(&buf, strings.Repeat("-", 50))
		for _, f := range report.Financing {
			fmt.Fprintf(&buf, "  %-28s %-12s %s/yr, %d of %d years paid\n",
				f.ProjectID, f.Financing, FormatCurrency(f.AnnualPayment), f.YearsPaid, f.TermYears)
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "CAPITAL FUNDING")
	fmt.Fprintln(&buf, strings.Repeat("-", 50))
	for _, r := range []domain.CapitalFundingRound{report.Milestones.RoundA, report.Milestones.RoundB} {
		fmt.Fprintf(&buf, "  Round %s (%s): %s\n", r.Name, FormatPercentage(r.Threshold), roundStatus(r))
	}
	fmt.Fprintln(&buf)

	h := AnalyzeReport(report)
	if h.BestPeriodLabel != "" {
		fmt.Fprintf(&buf, "Best period: %s (+%s)\n", h.BestPeriodLabel, FormatPercentage(h.BestPeriodGain))
	}
	if h.RemainingToWin.IsPositive() {
		fmt.Fprintf(&buf, "Short of the target by %s\n", FormatPercentage(h.RemainingToWin))
	}
	return buf.Bytes(), nil
}

func writePeriodTable(buf *bytes.Buffer, periods []domain.PeriodSummary) {
	fmt.Fprintln(buf, "PERIOD BY PERIOD")
	fmt.Fprintln(buf, strings.Repeat("=", 100))
	fmt.Fprintf(buf, "%-10s %14s %14s %14s %12s %14s %10s\n",
		"Period", "Budget", "Spent", "Financing", "Rebates", "Energy Saved", "Reduction")
	for _, p := range periods {
		fmt.Fprintf(buf, "%-10s %14s %14s %14s %12s %14s %10s\n",
			p.Label,
			FormatCurrency(p.Budget),
			FormatCurrency(p.ImplementationSpend),
			FormatCurrency(p.HiddenSpend),
			FormatCurrency(p.Rebates),
			FormatCurrency(p.EnergyCostSavings),
			FormatPercentage(p.CarbonSavingsPercent),
		)
		if len(p.Projects) > 0 {
			fmt.Fprintf(buf, "  projects: %s\n", strings.ReplaceAll(joinIDs(p.Projects), ";", ", "))
		}
	}
	fmt.Fprintln(buf)
}

func roundStatus(r domain.CapitalFundingRound) string {
	switch {
	case r.Used:
		return fmt.Sprintf("used by %s in period %d", r.UsedBy, r.UsedYear)
	case r.Expired:
		return "expired"
	case r.Earned:
		return fmt.Sprintf("earned in period %d", r.EarnedYear)
	}
	return "not earned"
}

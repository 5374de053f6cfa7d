package output

import (
	"github.com/rpgo/carbonsim/internal/domain"
	"github.com/rpgo/carbonsim/internal/simulation"
	"github.com/shopspring/decimal"
)

// Highlights encapsulates the headline findings of a finished game.
type Highlights struct {
	BestPeriodLabel string
	BestPeriodGain  decimal.Decimal // carbon savings fraction gained during that period
	RemainingToWin  decimal.Decimal // fraction still missing, zero once the target is met
	TotalEnergySave decimal.Decimal
}

// AnalyzeReport finds the period with the largest gain in carbon savings and
// the distance left to the win threshold.
func AnalyzeReport(report *domain.GameReport) Highlights {
	var h Highlights
	prev := decimal.Zero
	for i, p := range report.Summary.Periods {
		gain := p.CarbonSavingsPercent.Sub(prev)
		if i == 0 || gain.GreaterThan(h.BestPeriodGain) {
			h.BestPeriodLabel = p.Label
			h.BestPeriodGain = gain
		}
		prev = p.CarbonSavingsPercent
		h.TotalEnergySave = h.TotalEnergySave.Add(p.EnergyCostSavings)
	}

	h.RemainingToWin = simulation.WinThreshold.Sub(report.Summary.CarbonSavingsPercent)
	if h.RemainingToWin.IsNegative() {
		h.RemainingToWin = decimal.Zero
	}
	return h
}

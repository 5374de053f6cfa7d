package simulation

import (
	"github.com/rpgo/carbonsim/internal/domain"
	money "github.com/rpgo/carbonsim/pkg/decimal"
	"github.com/shopspring/decimal"
)

// GetEndOfGameSummary rolls up every committed period, plus the one in
// progress when the game is still running.
func (e *Engine) GetEndOfGameSummary(st GameState) (domain.EndOfGameSummary, error) {
	var sum domain.EndOfGameSummary
	sum.TotalRebates = decimal.Zero

	var last domain.TrackedStats
	for i, rec := range st.periods {
		var sels []domain.ImplementedProject
		var savings decimal.Decimal
		switch {
		case rec.closed != nil:
			sels = rec.closed.Implemented
			if i < len(st.CostSavings) {
				savings = st.CostSavings[i]
			}
		case !st.IsOver():
			sels = st.Implemented
		default:
			continue
		}
		if i >= len(st.YearRangeInitialStats) {
			return sum, ErrCorruptHistory
		}
		opening := st.YearRangeInitialStats[i]
		end, _, err := e.replay(opening, st.Baseline, rec.capitalAtOpening, sels)
		if err != nil {
			return sum, err
		}
		if rec.closed == nil {
			savings = GetYearCostSavings(opening, end)
		}

		rebates := decimal.Zero
		ids := make([]domain.ProjectID, 0, len(sels))
		for _, sel := range sels {
			p, err := e.Catalog.Lookup(sel.ProjectID)
			if err != nil {
				return sum, err
			}
			charge, err := e.chargeFor(p, sel.Financing, opening.Interval())
			if err != nil {
				return sum, err
			}
			rebates = rebates.Add(charge.Rebate)
			ids = append(ids, sel.ProjectID)
		}
		sum.TotalRebates = sum.TotalRebates.Add(rebates)
		sum.Periods = append(sum.Periods, domain.PeriodSummary{
			Year:                 opening.CurrentGameYear,
			Label:                e.PeriodLabel(opening.CurrentGameYear),
			Budget:               opening.YearBudget,
			ImplementationSpend:  end.ImplementationSpending,
			HiddenSpend:          opening.HiddenSpending,
			Rebates:              rebates,
			EnergyCostSavings:    savings,
			CarbonEmissions:      end.CarbonEmissions,
			CarbonSavingsPercent: end.CarbonSavingsPercent,
			Projects:             ids,
		})
		last = end
	}

	// A finished game's Stats describe the next, unplayed period: its
	// savings decided the outcome, but its installments are still owed.
	var owed []money.Money
	for _, f := range st.Financed {
		owed = append(owed, money.NewMoneyFromDecimal(f.AnnualPayment).Times(f.RemainingYears()))
	}
	if st.IsOver() {
		owed = append(owed, money.NewMoneyFromDecimal(st.Stats.HiddenSpending))
	} else {
		for _, sel := range st.Implemented {
			if !sel.Financing.IsAmortized() {
				continue
			}
			p, err := e.Catalog.Lookup(sel.ProjectID)
			if err != nil {
				return sum, err
			}
			o, err := e.financingOption(sel.Financing)
			if err != nil {
				return sum, err
			}
			_, covered := InstallmentCharge(o.AnnualCost(p), o.Term(p), 0, e.interval())
			owed = append(owed, money.NewMoneyFromDecimal(o.AnnualCost(p)).Times(o.Term(p)-covered))
		}
	}

	sum.CarbonSavingsPercent = st.Stats.CarbonSavingsPercent
	sum.CarbonSavingsKg = st.Stats.CarbonSavingsPerKg
	sum.TotalSpending = last.GameTotalSpending
	sum.ProjectedFutureSpending = money.Sum(owed...).Decimal
	if sum.CarbonSavingsKg.IsPositive() {
		sum.CostPerCarbonSavingsKg = sum.TotalSpending.Div(sum.CarbonSavingsKg).Round(domain.ApplierPrecision)
	}
	return sum, nil
}

// BuildReport assembles the document rendered by the output formatters
func (e *Engine) BuildReport(name string, st GameState) (*domain.GameReport, error) {
	sum, err := e.GetEndOfGameSummary(st)
	if err != nil {
		return nil, err
	}
	outcome := st.LastOutcome
	if outcome == "" {
		outcome = domain.OutcomeContinue
	}
	return &domain.GameReport{
		Name:       name,
		Outcome:    outcome,
		FinalYear:  st.PeriodsPlayed(),
		Settings:   e.Settings,
		Summary:    sum,
		Completed:  cloneSlice(st.Completed),
		Financing:  cloneSlice(st.Financed),
		Milestones: st.CapitalFunding,
	}, nil
}

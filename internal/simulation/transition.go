package simulation

import (
	"fmt"

	"github.com/rpgo/carbonsim/internal/domain"
	"github.com/rpgo/carbonsim/pkg/dateutil"
	money "github.com/rpgo/carbonsim/pkg/decimal"
	"github.com/shopspring/decimal"
)

// WinThreshold is the carbon savings fraction that ends the game in a win
var WinThreshold = decimal.NewFromFloat(0.5)

// AdvanceToNextPeriod commits the current period and opens the next one:
// selections are rolled into history, the next budget is computed, financing
// installments are billed, renewables are renewed, and milestones and the
// win/lose outcome are evaluated.
func (e *Engine) AdvanceToNextPeriod(st GameState) (GameState, domain.Outcome, error) {
	if st.IsOver() {
		return st, st.LastOutcome, ErrGameOver
	}
	year := st.CurrentYear()
	nextYear := year + 1
	interval := e.interval()
	opening, err := st.Opening()
	if err != nil {
		return st, "", err
	}
	closing := st.Stats

	next := st.Clone()
	lists := st.snapshotLists()
	next.periods[len(next.periods)-1].closed = &lists

	savings := GetYearCostSavings(opening, closing)
	next.CostSavings = append(next.CostSavings, savings)
	budget := e.nextBudget(closing.FinancesAvailable, next.CostSavings)

	newOpening := opening
	newOpening.CurrentGameYear = nextYear
	newOpening.GameYearDisplayOffset = dateutil.ElapsedYears(nextYear, interval)
	newOpening.ElectricityEmissionsPerUnit = rescaleGridFactor(opening.ElectricityEmissionsPerUnit,
		opening.GameYearDisplayOffset, newOpening.GameYearDisplayOffset)

	// Effects are replayed in selection order so renewables keep their place
	// relative to the projects completed around them. Renewing projects are
	// then unwound in reverse; the next period's replay applies them again.
	var renewing []*ProjectControl
	for _, sel := range st.Implemented {
		p, err := e.Catalog.Lookup(sel.ProjectID)
		if err != nil {
			return st, "", err
		}
		newOpening = p.ApplyEffects(newOpening, p.StatsActualAppliers)
		if sel.Renewable {
			renewing = append(renewing, p)
			continue
		}
		o, err := e.financingOption(sel.Financing)
		if err != nil {
			return st, "", err
		}
		charge, err := e.chargeFor(p, sel.Financing, interval)
		if err != nil {
			return st, "", err
		}
		newOpening = p.ApplyEffects(newOpening, p.StatsRecapAppliers)

		next.Completed = append(next.Completed, domain.CompletedProject{
			ProjectID:     p.ID,
			CompletedYear: year,
			Financing:     sel.Financing,
			Cost:          o.TotalCost(p),
			Rebate:        charge.Rebate,
		})
		if sel.Financing.IsAmortized() {
			annual := o.AnnualCost(p)
			_, covered := InstallmentCharge(annual, o.Term(p), 0, interval)
			next.Financed = append(next.Financed, domain.FinancedProject{
				ProjectID:     p.ID,
				Financing:     sel.Financing,
				StartYear:     year,
				TermYears:     o.Term(p),
				YearsPaid:     covered,
				AnnualPayment: annual,
				TotalPaid:     charge.Cost,
			})
		}
	}
	for i := len(renewing) - 1; i >= 0; i-- {
		newOpening = renewing[i].UnapplyEffects(newOpening, renewing[i].StatsActualAppliers)
	}

	newOpening.YearBudget = budget
	newOpening.FinancesAvailable = budget
	newOpening.ImplementationSpending = decimal.Zero
	newOpening.HiddenSpending = decimal.Zero
	newOpening.GameTotalSpending = closing.GameTotalSpending

	active := next.Financed[:0]
	for _, f := range next.Financed {
		if IsProjectFullyFunded(f) {
			e.Logger.Infof("period %d: %s financing paid off after %d years", nextYear, f.ProjectID, f.YearsPaid)
			continue
		}
		cost, years := InstallmentCharge(f.AnnualPayment, f.TermYears, f.YearsPaid, interval)
		newOpening.FinancesAvailable = newOpening.FinancesAvailable.Sub(cost)
		newOpening.HiddenSpending = newOpening.HiddenSpending.Add(cost)
		newOpening.GameTotalSpending = newOpening.GameTotalSpending.Add(cost)
		f.YearsPaid += years
		f.TotalPaid = f.TotalPaid.Add(cost)
		active = append(active, f)
	}
	next.Financed = active

	var notes []Notification
	var renewed []domain.ImplementedProject
	for _, p := range renewing {
		i, ok := next.renewable(p.ID)
		if !ok || !next.Renewables[i].ActiveIn(year) {
			return st, "", fmt.Errorf("%w: %s is selected but has no renewal record for period %d", ErrCorruptHistory, p.ID, year)
		}
		next.Renewables[i].GameYearsImplemented = append(next.Renewables[i].GameYearsImplemented, nextYear)
		renewed = append(renewed, domain.ImplementedProject{
			ProjectID: p.ID,
			Financing: domain.FinancingBudget,
			Renewable: true,
			Renewed:   true,
		})
	}
	kept := next.Renewables[:0]
	for _, r := range next.Renewables {
		if !r.ActiveIn(nextYear) {
			e.Logger.Infof("period %d: renewable %s lapsed", nextYear, r.ProjectID)
			notes = append(notes, Notification{
				Kind:    NotifyRenewableLapsed,
				Year:    nextYear,
				Message: fmt.Sprintf("%s was not renewed and no longer applies", r.ProjectID),
			})
			continue
		}
		kept = append(kept, r)
	}
	next.Renewables = kept
	next.Implemented = renewed
	next.PendingComparison = nil

	newOpening, err = SetCarbonEmissionsAndSavings(newOpening, st.Baseline)
	if err != nil {
		return st, "", err
	}
	next.YearRangeInitialStats = append(next.YearRangeInitialStats, newOpening)

	stats, _, err := e.replay(newOpening, st.Baseline, st.CapitalFunding, renewed)
	if err != nil {
		return st, "", err
	}
	capital, milestoneNotes := CheckCapitalFundingMilestones(st.CapitalFunding, stats.CarbonSavingsPercent,
		nextYear, e.Settings.CapitalFundingExpiryPeriods)
	for _, n := range milestoneNotes {
		e.Logger.Infof("period %d: %s", nextYear, n.Message)
	}
	next.periods = append(next.periods, periodRecord{capitalAtOpening: capital})
	next.CapitalFunding = capital
	next.Stats = stats
	next.Notifications = append(notes, milestoneNotes...)

	outcome := domain.OutcomeContinue
	switch {
	case stats.CarbonSavingsPercent.GreaterThanOrEqual(WinThreshold):
		outcome = domain.OutcomeWin
		next.Phase = PhaseWon
	case nextYear > e.Settings.TotalPeriods:
		outcome = domain.OutcomeLose
		next.Phase = PhaseLost
	}
	next.LastOutcome = outcome

	e.Logger.Infof("period %d closed: savings %s%%, energy cost savings %s, next budget %s, outcome %s",
		year, stats.CarbonSavingsPercent.Mul(decimal.NewFromInt(100)).StringFixed(2),
		savings.StringFixed(2), budget.StringFixed(2), outcome)
	return next, outcome, nil
}

// nextBudget applies the carryover policies to the base award
func (e *Engine) nextBudget(leftover decimal.Decimal, savings []decimal.Decimal) decimal.Decimal {
	budget := money.NewMoneyFromDecimal(e.Settings.PeriodBudget())
	left := money.NewMoneyFromDecimal(leftover)
	switch e.Settings.Carryover {
	case domain.CarryoverYes:
		budget = budget.Add(left)
	default:
		budget = budget.Add(money.Min(left, money.Zero()))
	}
	switch e.Settings.CostSavingsCarryover {
	case domain.CostSavingsOneYear:
		if len(savings) > 0 {
			budget = budget.Add(money.NewMoneyFromDecimal(savings[len(savings)-1]).Split(2))
		}
	case domain.CostSavingsAlways:
		parts := make([]money.Money, 0, len(savings))
		for _, s := range savings {
			parts = append(parts, money.NewMoneyFromDecimal(s))
		}
		budget = budget.Add(money.Sum(parts...))
	}
	return budget.Round().Decimal
}

// rescaleGridFactor moves an electricity factor along the grid table while
// keeping any project changes made to it.
func rescaleGridFactor(current decimal.Decimal, fromYears, toYears int) decimal.Decimal {
	from := ElectricityEmissionsFactor(fromYears)
	to := ElectricityEmissionsFactor(toYears)
	if from.Equal(to) {
		return current
	}
	return current.Mul(to).Div(from).Round(domain.ApplierPrecision)
}

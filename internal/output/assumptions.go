package output

import (
	"fmt"

	"github.com/rpgo/carbonsim/internal/domain"
	"github.com/rpgo/carbonsim/internal/simulation"
)

// GenerateAssumptions lists the game rules a report was played under
func GenerateAssumptions(s domain.GameSettings) []string {
	out := []string{
		fmt.Sprintf("Game length: %d periods of %d year(s) starting %d", s.TotalPeriods, s.GameYearInterval, s.StartYear),
		fmt.Sprintf("Annual budget: %s", FormatCurrency(s.AnnualBudget)),
		fmt.Sprintf("Budget carryover: %s; cost savings carryover: %s", s.Carryover, s.CostSavingsCarryover),
		fmt.Sprintf("New projects per period: %d", s.PeriodProjectLimit()),
		fmt.Sprintf("Win target: %s carbon reduction", FormatPercentage(simulation.WinThreshold)),
	}
	fs := s.Financing
	if fs.AllowLoan {
		out = append(out, fmt.Sprintf("Loan: %s over %d years", FormatPercentage(fs.LoanRate), fs.LoanTermYears))
	}
	if fs.AllowGreenBond {
		out = append(out, fmt.Sprintf("Green bond: %s over %d years", FormatPercentage(fs.GreenBondRate), fs.GreenBondTermYears))
	}
	if fs.AllowEaaS {
		out = append(out, fmt.Sprintf("Energy as a service: %s premium over %d years", FormatPercentage(fs.EaaSPremium), fs.EaaSTermYears))
	}
	if fs.AllowCapitalFunds {
		out = append(out, "Capital funding rewards at 15% and 30% carbon reduction")
	}
	return out
}

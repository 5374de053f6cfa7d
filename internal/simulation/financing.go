package simulation

import (
	"fmt"

	"github.com/rpgo/carbonsim/internal/domain"
	"github.com/rpgo/carbonsim/pkg/decimal"
	sdecimal "github.com/shopspring/decimal"
)

// FinancingOption describes one way of paying for a project
type FinancingOption struct {
	Type        domain.FinancingType
	Name        string
	Description string
	Rate        sdecimal.Decimal // annual interest for loans and bonds
	Premium     sdecimal.Decimal // service markup for energy-as-a-service
	TermYears   int
}

// NewFinancingOptions builds the option table from game settings. Options
// switched off in the settings are omitted; budget is always present.
func NewFinancingOptions(fs domain.FinancingSettings) map[domain.FinancingType]FinancingOption {
	opts := map[domain.FinancingType]FinancingOption{
		domain.FinancingBudget: {
			Type:        domain.FinancingBudget,
			Name:        "Pay with budget",
			Description: "Pay the full cost this period",
			TermYears:   1,
		},
	}
	if fs.AllowLoan {
		opts[domain.FinancingLoan] = FinancingOption{
			Type:        domain.FinancingLoan,
			Name:        "Loan",
			Description: "Amortized bank loan repaid in yearly installments",
			Rate:        fs.LoanRate,
			TermYears:   fs.LoanTermYears,
		}
	}
	if fs.AllowGreenBond {
		opts[domain.FinancingGreenBond] = FinancingOption{
			Type:        domain.FinancingGreenBond,
			Name:        "Green bond",
			Description: "Low-rate bond issued for sustainability projects",
			Rate:        fs.GreenBondRate,
			TermYears:   fs.GreenBondTermYears,
		}
	}
	if fs.AllowEaaS {
		opts[domain.FinancingEaaS] = FinancingOption{
			Type:        domain.FinancingEaaS,
			Name:        "Energy as a service",
			Description: "A provider installs the project and bills a yearly service fee",
			Premium:     fs.EaaSPremium,
			TermYears:   fs.EaaSTermYears,
		}
	}
	if fs.AllowCapitalFunds {
		opts[domain.FinancingCapitalFunds] = FinancingOption{
			Type:        domain.FinancingCapitalFunds,
			Name:        "Capital funding",
			Description: "Spend an earned capital funding reward on this project",
			TermYears:   1,
		}
	}
	return opts
}

// Term returns the number of yearly installments for the project
func (o FinancingOption) Term(p *ProjectControl) int {
	if !o.Type.IsAmortized() {
		return 1
	}
	if p.YearsToPayOff > 0 {
		return p.YearsToPayOff
	}
	return max(o.TermYears, 1)
}

// AnnualCost returns the yearly installment, rounded to cents
func (o FinancingOption) AnnualCost(p *ProjectControl) sdecimal.Decimal {
	principal := decimal.NewMoneyFromDecimal(p.Cost)
	n := o.Term(p)
	switch o.Type {
	case domain.FinancingLoan, domain.FinancingGreenBond:
		return annuity(principal, o.Rate, n).Round().Decimal
	case domain.FinancingEaaS:
		return principal.Split(n).ApplyMarkup(o.Premium).Round().Decimal
	case domain.FinancingCapitalFunds:
		return sdecimal.Zero
	}
	return principal.Round().Decimal
}

// TotalCost returns every installment summed
func (o FinancingOption) TotalCost(p *ProjectControl) sdecimal.Decimal {
	if !o.Type.IsAmortized() {
		return o.AnnualCost(p)
	}
	return decimal.NewMoneyFromDecimal(o.AnnualCost(p)).Times(o.Term(p)).Decimal
}

// annuity returns the level payment P*r*(1+r)^n / ((1+r)^n - 1); a zero rate splits evenly
func annuity(principal decimal.Money, rate sdecimal.Decimal, n int) decimal.Money {
	if rate.IsZero() {
		return principal.Split(n)
	}
	growth := sdecimal.NewFromInt(1).Add(rate).Pow(sdecimal.NewFromInt(int64(n)))
	return principal.Mul(rate).Mul(growth).Div(growth.Sub(sdecimal.NewFromInt(1)))
}

// InstallmentCharge returns the installments due in one period and how many
// years they cover, given how many have already been paid.
func InstallmentCharge(annual sdecimal.Decimal, term, yearsPaid, interval int) (sdecimal.Decimal, int) {
	years := min(max(interval, 1), term-yearsPaid)
	if years <= 0 {
		return sdecimal.Zero, 0
	}
	return decimal.NewMoneyFromDecimal(annual).Times(years).Decimal, years
}

// IsProjectFullyFunded reports whether every installment has been paid
func IsProjectFullyFunded(f domain.FinancedProject) bool {
	return f.YearsPaid >= f.TermYears
}

// financingOption returns the option for a type, rejecting types this game does not offer
func (e *Engine) financingOption(f domain.FinancingType) (FinancingOption, error) {
	o, ok := e.Financing[f]
	if !ok {
		return FinancingOption{}, fmt.Errorf("%w: %s", ErrUnknownFinancing, f)
	}
	return o, nil
}

// chargeFor returns what a selection costs in the current period. Capital
// funds pay the whole price and forfeit the rebate; amortized options bill
// the first installments and keep the rebate.
func (e *Engine) chargeFor(p *ProjectControl, f domain.FinancingType, interval int) (Charge, error) {
	o, err := e.financingOption(f)
	if err != nil {
		return Charge{}, err
	}
	switch {
	case f == domain.FinancingCapitalFunds:
		return Charge{Cost: sdecimal.Zero, Rebate: sdecimal.Zero}, nil
	case f.IsAmortized():
		cost, _ := InstallmentCharge(o.AnnualCost(p), o.Term(p), 0, interval)
		return Charge{Cost: cost, Rebate: p.Rebate}, nil
	}
	return p.budgetCharge(interval), nil
}

// AvailableFinancing lists the options a project may use right now, in display order
func (e *Engine) AvailableFinancing(st GameState, p *ProjectControl) []domain.FinancingType {
	var out []domain.FinancingType
	for _, f := range domain.AllFinancingTypes {
		if _, ok := e.Financing[f]; !ok {
			continue
		}
		if f.IsAmortized() && (p.IsRenewable || !containsFinancing(p.FinancingOptions, f)) {
			continue
		}
		if f == domain.FinancingCapitalFunds {
			if !p.IsCapitalFundsEligible || p.IsPPA {
				continue
			}
			if !st.CapitalFunding.HasAvailableReward() && !st.usesFinancing(p.ID, f) {
				continue
			}
		}
		out = append(out, f)
	}
	return out
}

func containsFinancing(list []domain.FinancingType, f domain.FinancingType) bool {
	for _, x := range list {
		if x == f {
			return true
		}
	}
	return false
}

package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProjectID identifies a catalog project
type ProjectID string

// FinancingType is the way a selected project is paid for
type FinancingType string

const (
	FinancingBudget       FinancingType = "budget"
	FinancingLoan         FinancingType = "loan"
	FinancingGreenBond    FinancingType = "green_bond"
	FinancingEaaS         FinancingType = "eaas" // energy-as-a-service
	FinancingCapitalFunds FinancingType = "capital_funds"
)

// AllFinancingTypes lists the financing types in display order
var AllFinancingTypes = []FinancingType{
	FinancingBudget,
	FinancingLoan,
	FinancingGreenBond,
	FinancingEaaS,
	FinancingCapitalFunds,
}

// ParseFinancingType validates a financing name; the empty string means budget
func ParseFinancingType(s string) (FinancingType, error) {
	if s == "" {
		return FinancingBudget, nil
	}
	for _, f := range AllFinancingTypes {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown financing type %q", s)
}

// IsAmortized reports whether the project cost is spread over several years
func (f FinancingType) IsAmortized() bool {
	return f == FinancingLoan || f == FinancingGreenBond || f == FinancingEaaS
}

// ImplementedProject is a project active in the current period, kept in
// insertion order.
type ImplementedProject struct {
	ProjectID ProjectID     `yaml:"project_id" json:"project_id"`
	Financing FinancingType `yaml:"financing" json:"financing"`
	Renewable bool          `yaml:"renewable,omitempty" json:"renewable,omitempty"`
	Renewed   bool          `yaml:"renewed,omitempty" json:"renewed,omitempty"` // carried over from the previous period
}

// RenewableProject tracks the periods a renewable project was paid for
type RenewableProject struct {
	ProjectID            ProjectID     `yaml:"project_id" json:"project_id"`
	FirstYear            int           `yaml:"first_year" json:"first_year"`
	Financing            FinancingType `yaml:"financing" json:"financing"`
	GameYearsImplemented []int         `yaml:"game_years_implemented" json:"game_years_implemented"`
}

// ActiveIn reports whether the project was renewed for the given period
func (r RenewableProject) ActiveIn(year int) bool {
	for _, y := range r.GameYearsImplemented {
		if y == year {
			return true
		}
	}
	return false
}

// CompletedProject is a non-renewable project rolled into history at period end
type CompletedProject struct {
	ProjectID     ProjectID       `yaml:"project_id" json:"project_id"`
	CompletedYear int             `yaml:"completed_year" json:"completed_year"`
	Financing     FinancingType   `yaml:"financing" json:"financing"`
	Cost          decimal.Decimal `yaml:"cost" json:"cost"`
	Rebate        decimal.Decimal `yaml:"rebate" json:"rebate"`
}

// FinancedProject is a completed project still being paid off
type FinancedProject struct {
	ProjectID     ProjectID       `yaml:"project_id" json:"project_id"`
	Financing     FinancingType   `yaml:"financing" json:"financing"`
	StartYear     int             `yaml:"start_year" json:"start_year"`
	TermYears     int             `yaml:"term_years" json:"term_years"`
	YearsPaid     int             `yaml:"years_paid" json:"years_paid"`
	AnnualPayment decimal.Decimal `yaml:"annual_payment" json:"annual_payment"`
	TotalPaid     decimal.Decimal `yaml:"total_paid" json:"total_paid"`
}

// RemainingYears returns the number of unpaid installments
func (f FinancedProject) RemainingYears() int {
	if r := f.TermYears - f.YearsPaid; r > 0 {
		return r
	}
	return 0
}

// ProjectDescriptor is the read model handed to the presentation layer
type ProjectDescriptor struct {
	ID                ProjectID       `json:"id"`
	Title             string          `json:"title"`
	Cost              decimal.Decimal `json:"cost"`   // for this period, scaled for renewables
	Rebate            decimal.Decimal `json:"rebate"` // for this period, scaled for renewables
	Effects           Appliers        `json:"effects"`
	Preview           TrackedStats    `json:"preview"` // current stats with the preview effects applied
	Visible           bool            `json:"visible"`
	Disabled          bool            `json:"disabled"`
	Selected          bool            `json:"selected"`
	Renewable         bool            `json:"renewable"`
	FinancingOptions  []FinancingType `json:"financing_options"`
	DisabledReason    string          `json:"disabled_reason,omitempty"`
	CapitalFundsReady bool            `json:"capital_funds_ready"`
}

package domain

import (
	"github.com/shopspring/decimal"
)

// Outcome is the result of advancing past a period
type Outcome string

const (
	OutcomeContinue Outcome = "CONTINUE"
	OutcomeWin      Outcome = "WIN"
	OutcomeLose     Outcome = "LOSE"
)

// PeriodSummary is one row of the end-of-game report
type PeriodSummary struct {
	Year                 int             `json:"year"`
	Label                string          `json:"label"`
	Budget               decimal.Decimal `json:"budget"`
	ImplementationSpend  decimal.Decimal `json:"implementation_spending"`
	HiddenSpend          decimal.Decimal `json:"hidden_spending"`
	Rebates              decimal.Decimal `json:"rebates"`
	EnergyCostSavings    decimal.Decimal `json:"energy_cost_savings"`
	CarbonEmissions      decimal.Decimal `json:"carbon_emissions"`
	CarbonSavingsPercent decimal.Decimal `json:"carbon_savings_percent"`
	Projects             []ProjectID     `json:"projects"`
}

// EndOfGameSummary rolls spending, rebates and carbon savings up across every period
type EndOfGameSummary struct {
	CarbonSavingsPercent    decimal.Decimal `json:"carbon_savings_percent"`
	CarbonSavingsKg         decimal.Decimal `json:"carbon_savings_kg"`
	TotalSpending           decimal.Decimal `json:"total_spending"`
	TotalRebates            decimal.Decimal `json:"total_rebates"`
	ProjectedFutureSpending decimal.Decimal `json:"projected_future_spending"` // unpaid financing installments
	CostPerCarbonSavingsKg  decimal.Decimal `json:"cost_per_carbon_savings_kg"`
	Periods                 []PeriodSummary `json:"periods"`
}

// GameReport is the document rendered by the output formatters
type GameReport struct {
	Name       string              `json:"name"`
	Outcome    Outcome             `json:"outcome"`
	FinalYear  int                 `json:"final_year"`
	Settings   GameSettings        `json:"settings"`
	Summary    EndOfGameSummary    `json:"summary"`
	Completed  []CompletedProject  `json:"completed_projects"`
	Financing  []FinancedProject   `json:"active_financing"`
	Milestones CapitalFundingState `json:"capital_funding"`
}

// PlayPlan scripts a whole game: the intents issued in each period
type PlayPlan struct {
	Name    string       `yaml:"name" json:"name"`
	Periods []PeriodPlan `yaml:"periods" json:"periods"`
}

// PeriodPlan lists the intents for one period before advancing
type PeriodPlan struct {
	Select   []PlannedSelection `yaml:"select" json:"select"`
	Deselect []ProjectID        `yaml:"deselect,omitempty" json:"deselect,omitempty"`
	Back     bool               `yaml:"back,omitempty" json:"back,omitempty"` // go back one period instead of advancing
}

// PlannedSelection is a single "implement project X" intent
type PlannedSelection struct {
	Project   ProjectID     `yaml:"project" json:"project"`
	Financing FinancingType `yaml:"financing,omitempty" json:"financing,omitempty"`
}

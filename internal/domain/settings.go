package domain

import (
	"github.com/shopspring/decimal"
)

// CarryoverPolicy controls what happens to leftover finances at period end
type CarryoverPolicy string

const (
	// CarryoverNo rolls only deficits into the next period
	CarryoverNo CarryoverPolicy = "no"
	// CarryoverYes rolls every leftover dollar into the next period
	CarryoverYes CarryoverPolicy = "yes"
)

// CostSavingsCarryoverPolicy controls how realized energy-cost savings feed the next budget
type CostSavingsCarryoverPolicy string

const (
	CostSavingsNever   CostSavingsCarryoverPolicy = "never"
	CostSavingsOneYear CostSavingsCarryoverPolicy = "oneYear" // half of the latest period's savings
	CostSavingsAlways  CostSavingsCarryoverPolicy = "always"  // the full sum of every period's savings
)

const (
	DefaultStartYear            = 2024
	DefaultProjectLimit         = 4
	DefaultBiennialProjectLimit = 6
	DefaultAnnualPeriods        = 10
	DefaultBiennialPeriods      = 5
)

// EnergyBaseline seeds the facility's annual energy use and unit factors at game start
type EnergyBaseline struct {
	NaturalGasMMBTU            decimal.Decimal `yaml:"natural_gas_mmbtu" json:"natural_gas_mmbtu"`
	NaturalGasCostPerUnit      decimal.Decimal `yaml:"natural_gas_cost_per_unit" json:"natural_gas_cost_per_unit"`
	NaturalGasEmissionsPerUnit decimal.Decimal `yaml:"natural_gas_emissions_per_unit" json:"natural_gas_emissions_per_unit"`
	ElectricityUseKWh          decimal.Decimal `yaml:"electricity_use_kwh" json:"electricity_use_kwh"`
	ElectricityCostPerUnit     decimal.Decimal `yaml:"electricity_cost_per_unit" json:"electricity_cost_per_unit"`
	HydrogenMMBTU              decimal.Decimal `yaml:"hydrogen_mmbtu" json:"hydrogen_mmbtu"`
	HydrogenCostPerUnit        decimal.Decimal `yaml:"hydrogen_cost_per_unit" json:"hydrogen_cost_per_unit"`
	HydrogenEmissionsPerUnit   decimal.Decimal `yaml:"hydrogen_emissions_per_unit" json:"hydrogen_emissions_per_unit"`
}

// FinancingSettings enables financing options and sets their terms
type FinancingSettings struct {
	AllowLoan          bool            `yaml:"allow_loan" json:"allow_loan"`
	AllowGreenBond     bool            `yaml:"allow_green_bond" json:"allow_green_bond"`
	AllowEaaS          bool            `yaml:"allow_eaas" json:"allow_eaas"`
	AllowCapitalFunds  bool            `yaml:"allow_capital_funds" json:"allow_capital_funds"`
	LoanRate           decimal.Decimal `yaml:"loan_rate" json:"loan_rate"`
	GreenBondRate      decimal.Decimal `yaml:"green_bond_rate" json:"green_bond_rate"`
	EaaSPremium        decimal.Decimal `yaml:"eaas_premium" json:"eaas_premium"`
	LoanTermYears      int             `yaml:"loan_term_years" json:"loan_term_years"`
	GreenBondTermYears int             `yaml:"green_bond_term_years" json:"green_bond_term_years"`
	EaaSTermYears      int             `yaml:"eaas_term_years" json:"eaas_term_years"`
}

// Allows reports whether a financing type is switched on for this game
func (fs FinancingSettings) Allows(f FinancingType) bool {
	switch f {
	case FinancingBudget:
		return true
	case FinancingLoan:
		return fs.AllowLoan
	case FinancingGreenBond:
		return fs.AllowGreenBond
	case FinancingEaaS:
		return fs.AllowEaaS
	case FinancingCapitalFunds:
		return fs.AllowCapitalFunds
	}
	return false
}

// GameSettings is chosen before play begins and never changes during a game
type GameSettings struct {
	Name                        string                     `yaml:"name" json:"name"`
	StartYear                   int                        `yaml:"start_year" json:"start_year"`
	GameYearInterval            int                        `yaml:"game_year_interval" json:"game_year_interval"`
	TotalPeriods                int                        `yaml:"total_periods" json:"total_periods"`
	AnnualBudget                decimal.Decimal            `yaml:"annual_budget" json:"annual_budget"`
	Baseline                    EnergyBaseline             `yaml:"baseline" json:"baseline"`
	Financing                   FinancingSettings          `yaml:"financing" json:"financing"`
	Carryover                   CarryoverPolicy            `yaml:"carryover" json:"carryover"`
	CostSavingsCarryover        CostSavingsCarryoverPolicy `yaml:"cost_savings_carryover" json:"cost_savings_carryover"`
	ProjectLimit                int                        `yaml:"project_limit,omitempty" json:"project_limit,omitempty"`
	CapitalFundingExpiryPeriods int                        `yaml:"capital_funding_expiry_periods,omitempty" json:"capital_funding_expiry_periods,omitempty"`
}

// ApplyDefaults fills unset fields with the standard game configuration
func (gs *GameSettings) ApplyDefaults() {
	if gs.StartYear == 0 {
		gs.StartYear = DefaultStartYear
	}
	if gs.GameYearInterval == 0 {
		gs.GameYearInterval = 1
	}
	if gs.TotalPeriods == 0 {
		gs.TotalPeriods = DefaultAnnualPeriods
		if gs.GameYearInterval == 2 {
			gs.TotalPeriods = DefaultBiennialPeriods
		}
	}
	if gs.Carryover == "" {
		gs.Carryover = CarryoverNo
	}
	if gs.CostSavingsCarryover == "" {
		gs.CostSavingsCarryover = CostSavingsNever
	}
	if gs.Financing.LoanRate.IsZero() {
		gs.Financing.LoanRate = decimal.NewFromFloat(0.06)
	}
	if gs.Financing.GreenBondRate.IsZero() {
		gs.Financing.GreenBondRate = decimal.NewFromFloat(0.035)
	}
	if gs.Financing.EaaSPremium.IsZero() {
		gs.Financing.EaaSPremium = decimal.NewFromFloat(0.2)
	}
	if gs.Financing.LoanTermYears == 0 {
		gs.Financing.LoanTermYears = 5
	}
	if gs.Financing.GreenBondTermYears == 0 {
		gs.Financing.GreenBondTermYears = 10
	}
	if gs.Financing.EaaSTermYears == 0 {
		gs.Financing.EaaSTermYears = 5
	}
}

// PeriodProjectLimit returns how many new projects may start in one period
func (gs GameSettings) PeriodProjectLimit() int {
	if gs.ProjectLimit > 0 {
		return gs.ProjectLimit
	}
	if gs.GameYearInterval == 2 {
		return DefaultBiennialProjectLimit
	}
	return DefaultProjectLimit
}

// PeriodBudget returns the base award for one period before carryovers
func (gs GameSettings) PeriodBudget() decimal.Decimal {
	interval := gs.GameYearInterval
	if interval < 1 {
		interval = 1
	}
	return gs.AnnualBudget.Mul(decimal.NewFromInt(int64(interval)))
}

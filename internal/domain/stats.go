package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StatKey names a TrackedStats field that project appliers may modify
type StatKey string

const (
	StatNaturalGasMMBTU             StatKey = "naturalGasMMBTU"
	StatElectricityUseKWh           StatKey = "electricityUseKWh"
	StatHydrogenMMBTU               StatKey = "hydrogenMMBTU"
	StatNaturalGasCostPerUnit       StatKey = "naturalGasCostPerUnit"
	StatElectricityCostPerUnit      StatKey = "electricityCostPerUnit"
	StatHydrogenCostPerUnit         StatKey = "hydrogenCostPerUnit"
	StatNaturalGasEmissionsPerUnit  StatKey = "naturalGasEmissionsPerUnit"
	StatElectricityEmissionsPerUnit StatKey = "electricityEmissionsPerUnit"
	StatHydrogenEmissionsPerUnit    StatKey = "hydrogenEmissionsPerUnit"
	StatAbsoluteCarbonSavings       StatKey = "absoluteCarbonSavings"
)

// AllStatKeys lists every applier-addressable stat in canonical application order
var AllStatKeys = []StatKey{
	StatNaturalGasMMBTU,
	StatElectricityUseKWh,
	StatHydrogenMMBTU,
	StatNaturalGasCostPerUnit,
	StatElectricityCostPerUnit,
	StatHydrogenCostPerUnit,
	StatNaturalGasEmissionsPerUnit,
	StatElectricityEmissionsPerUnit,
	StatHydrogenEmissionsPerUnit,
	StatAbsoluteCarbonSavings,
}

// ParseStatKey validates a stat name read from a catalog file
func ParseStatKey(s string) (StatKey, error) {
	for _, k := range AllStatKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown stat key %q", s)
}

// TrackedStats is the facility snapshot for one budget period. It is a plain
// value: assigning it copies every field.
type TrackedStats struct {
	// Energy quantities for the whole period
	NaturalGasMMBTU   decimal.Decimal `yaml:"natural_gas_mmbtu" json:"natural_gas_mmbtu"`
	ElectricityUseKWh decimal.Decimal `yaml:"electricity_use_kwh" json:"electricity_use_kwh"`
	HydrogenMMBTU     decimal.Decimal `yaml:"hydrogen_mmbtu" json:"hydrogen_mmbtu"`

	// Unit costs ($ per MMBTU / kWh)
	NaturalGasCostPerUnit  decimal.Decimal `yaml:"natural_gas_cost_per_unit" json:"natural_gas_cost_per_unit"`
	ElectricityCostPerUnit decimal.Decimal `yaml:"electricity_cost_per_unit" json:"electricity_cost_per_unit"`
	HydrogenCostPerUnit    decimal.Decimal `yaml:"hydrogen_cost_per_unit" json:"hydrogen_cost_per_unit"`

	// Emission factors (kg CO2e per MMBTU / kWh)
	NaturalGasEmissionsPerUnit  decimal.Decimal `yaml:"natural_gas_emissions_per_unit" json:"natural_gas_emissions_per_unit"`
	ElectricityEmissionsPerUnit decimal.Decimal `yaml:"electricity_emissions_per_unit" json:"electricity_emissions_per_unit"`
	HydrogenEmissionsPerUnit    decimal.Decimal `yaml:"hydrogen_emissions_per_unit" json:"hydrogen_emissions_per_unit"`

	// Finances
	YearBudget             decimal.Decimal `yaml:"year_budget" json:"year_budget"`
	FinancesAvailable      decimal.Decimal `yaml:"finances_available" json:"finances_available"` // may dip below zero by at most the rebate of the last project
	ImplementationSpending decimal.Decimal `yaml:"implementation_spending" json:"implementation_spending"`
	HiddenSpending         decimal.Decimal `yaml:"hidden_spending" json:"hidden_spending"` // financing installments billed at period start
	GameTotalSpending      decimal.Decimal `yaml:"game_total_spending" json:"game_total_spending"`

	// Carbon
	CarbonEmissions       decimal.Decimal `yaml:"carbon_emissions" json:"carbon_emissions"`
	AbsoluteCarbonSavings decimal.Decimal `yaml:"absolute_carbon_savings" json:"absolute_carbon_savings"` // flat kg offsets not tied to energy use
	CarbonSavingsPercent  decimal.Decimal `yaml:"carbon_savings_percent" json:"carbon_savings_percent"`   // fraction, 0.5 == 50%
	CarbonSavingsPerKg    decimal.Decimal `yaml:"carbon_savings_per_kg" json:"carbon_savings_per_kg"`     // kg reduced versus the baseline
	CostPerCarbonSavings  decimal.Decimal `yaml:"cost_per_carbon_savings" json:"cost_per_carbon_savings"` // $ spent per kg reduced

	// Time
	CurrentGameYear       int `yaml:"current_game_year" json:"current_game_year"`
	GameYearInterval      int `yaml:"game_year_interval" json:"game_year_interval"`
	GameYearDisplayOffset int `yaml:"game_year_display_offset" json:"game_year_display_offset"`
}

// Get returns the value of an applier-addressable stat
func (s TrackedStats) Get(key StatKey) (decimal.Decimal, bool) {
	switch key {
	case StatNaturalGasMMBTU:
		return s.NaturalGasMMBTU, true
	case StatElectricityUseKWh:
		return s.ElectricityUseKWh, true
	case StatHydrogenMMBTU:
		return s.HydrogenMMBTU, true
	case StatNaturalGasCostPerUnit:
		return s.NaturalGasCostPerUnit, true
	case StatElectricityCostPerUnit:
		return s.ElectricityCostPerUnit, true
	case StatHydrogenCostPerUnit:
		return s.HydrogenCostPerUnit, true
	case StatNaturalGasEmissionsPerUnit:
		return s.NaturalGasEmissionsPerUnit, true
	case StatElectricityEmissionsPerUnit:
		return s.ElectricityEmissionsPerUnit, true
	case StatHydrogenEmissionsPerUnit:
		return s.HydrogenEmissionsPerUnit, true
	case StatAbsoluteCarbonSavings:
		return s.AbsoluteCarbonSavings, true
	}
	return decimal.Zero, false
}

// Set returns a copy of s with the given stat replaced. ok is false for an unknown key.
func (s TrackedStats) Set(key StatKey, v decimal.Decimal) (TrackedStats, bool) {
	switch key {
	case StatNaturalGasMMBTU:
		s.NaturalGasMMBTU = v
	case StatElectricityUseKWh:
		s.ElectricityUseKWh = v
	case StatHydrogenMMBTU:
		s.HydrogenMMBTU = v
	case StatNaturalGasCostPerUnit:
		s.NaturalGasCostPerUnit = v
	case StatElectricityCostPerUnit:
		s.ElectricityCostPerUnit = v
	case StatHydrogenCostPerUnit:
		s.HydrogenCostPerUnit = v
	case StatNaturalGasEmissionsPerUnit:
		s.NaturalGasEmissionsPerUnit = v
	case StatElectricityEmissionsPerUnit:
		s.ElectricityEmissionsPerUnit = v
	case StatHydrogenEmissionsPerUnit:
		s.HydrogenEmissionsPerUnit = v
	case StatAbsoluteCarbonSavings:
		s.AbsoluteCarbonSavings = v
	default:
		return s, false
	}
	return s, true
}

// Interval returns GameYearInterval, treating an unset value as one year
func (s TrackedStats) Interval() int {
	if s.GameYearInterval < 1 {
		return 1
	}
	return s.GameYearInterval
}

// Equal reports whether every field of s and o holds the same value
func (s TrackedStats) Equal(o TrackedStats) bool {
	if s.CurrentGameYear != o.CurrentGameYear ||
		s.GameYearInterval != o.GameYearInterval ||
		s.GameYearDisplayOffset != o.GameYearDisplayOffset {
		return false
	}
	pairs := [][2]decimal.Decimal{
		{s.NaturalGasMMBTU, o.NaturalGasMMBTU},
		{s.ElectricityUseKWh, o.ElectricityUseKWh},
		{s.HydrogenMMBTU, o.HydrogenMMBTU},
		{s.NaturalGasCostPerUnit, o.NaturalGasCostPerUnit},
		{s.ElectricityCostPerUnit, o.ElectricityCostPerUnit},
		{s.HydrogenCostPerUnit, o.HydrogenCostPerUnit},
		{s.NaturalGasEmissionsPerUnit, o.NaturalGasEmissionsPerUnit},
		{s.ElectricityEmissionsPerUnit, o.ElectricityEmissionsPerUnit},
		{s.HydrogenEmissionsPerUnit, o.HydrogenEmissionsPerUnit},
		{s.YearBudget, o.YearBudget},
		{s.FinancesAvailable, o.FinancesAvailable},
		{s.ImplementationSpending, o.ImplementationSpending},
		{s.HiddenSpending, o.HiddenSpending},
		{s.GameTotalSpending, o.GameTotalSpending},
		{s.CarbonEmissions, o.CarbonEmissions},
		{s.AbsoluteCarbonSavings, o.AbsoluteCarbonSavings},
		{s.CarbonSavingsPercent, o.CarbonSavingsPercent},
		{s.CarbonSavingsPerKg, o.CarbonSavingsPerKg},
		{s.CostPerCarbonSavings, o.CostPerCarbonSavings},
	}
	for _, p := range pairs {
		if !p[0].Equal(p[1]) {
			return false
		}
	}
	return true
}

// MaxStatDrift returns the largest absolute difference between the
// applier-addressable stats of s and o.
func (s TrackedStats) MaxStatDrift(o TrackedStats) decimal.Decimal {
	worst := decimal.Zero
	for _, k := range AllStatKeys {
		a, _ := s.Get(k)
		b, _ := o.Get(k)
		if d := a.Sub(b).Abs(); d.GreaterThan(worst) {
			worst = d
		}
	}
	return worst
}

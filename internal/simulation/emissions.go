package simulation

import (
	"fmt"

	"github.com/rpgo/carbonsim/internal/domain"
	"github.com/shopspring/decimal"
)

// Default energy factors seeded at game start
var (
	// NaturalGasEmissionsFactor is kg CO2e per MMBTU of natural gas
	NaturalGasEmissionsFactor = decimal.RequireFromString("53.06")
	// HydrogenEmissionsFactor is kg CO2e per MMBTU of green hydrogen
	HydrogenEmissionsFactor = decimal.Zero
)

// electricityEmissionsByYear is the grid factor in kg CO2e per kWh, indexed
// by real years elapsed since the game started. Later years use the last entry.
var electricityEmissionsByYear = []decimal.Decimal{
	decimal.RequireFromString("0.371"),
	decimal.RequireFromString("0.367"),
	decimal.RequireFromString("0.363"),
	decimal.RequireFromString("0.359"),
	decimal.RequireFromString("0.355"),
	decimal.RequireFromString("0.351"),
	decimal.RequireFromString("0.347"),
	decimal.RequireFromString("0.343"),
	decimal.RequireFromString("0.339"),
	decimal.RequireFromString("0.335"),
	decimal.RequireFromString("0.331"),
}

// ElectricityEmissionsFactor returns the grid emission factor after elapsedYears
func ElectricityEmissionsFactor(elapsedYears int) decimal.Decimal {
	if elapsedYears < 0 {
		elapsedYears = 0
	}
	if elapsedYears >= len(electricityEmissionsByYear) {
		return electricityEmissionsByYear[len(electricityEmissionsByYear)-1]
	}
	return electricityEmissionsByYear[elapsedYears]
}

// CalculateEmissions returns the facility's kg CO2e for the period: usage
// times emission factor for each energy type, less flat offsets.
func CalculateEmissions(s domain.TrackedStats) decimal.Decimal {
	gas := s.NaturalGasMMBTU.Mul(s.NaturalGasEmissionsPerUnit)
	electricity := s.ElectricityUseKWh.Mul(s.ElectricityEmissionsPerUnit)
	hydrogen := s.HydrogenMMBTU.Mul(s.HydrogenEmissionsPerUnit)
	return gas.Add(electricity).Add(hydrogen).Sub(s.AbsoluteCarbonSavings).Round(domain.ApplierPrecision)
}

// SetCarbonEmissionsAndSavings recomputes emissions and the savings measured
// against the game-start baseline.
func SetCarbonEmissionsAndSavings(s, baseline domain.TrackedStats) (domain.TrackedStats, error) {
	if !baseline.CarbonEmissions.IsPositive() {
		return s, fmt.Errorf("%w: got %s", ErrNonPositiveBaseline, baseline.CarbonEmissions.String())
	}
	s.CarbonEmissions = CalculateEmissions(s)
	s.CarbonSavingsPerKg = baseline.CarbonEmissions.Sub(s.CarbonEmissions)
	s.CarbonSavingsPercent = s.CarbonSavingsPerKg.Div(baseline.CarbonEmissions)
	return SetCostPerCarbonSavings(s), nil
}

// SetCostPerCarbonSavings sets dollars spent per kg reduced; zero until something is reduced
func SetCostPerCarbonSavings(s domain.TrackedStats) domain.TrackedStats {
	if !s.CarbonSavingsPerKg.IsPositive() {
		s.CostPerCarbonSavings = decimal.Zero
		return s
	}
	s.CostPerCarbonSavings = s.GameTotalSpending.Div(s.CarbonSavingsPerKg).Round(domain.ApplierPrecision)
	return s
}

// EnergyCost returns the utility bill for the period
func EnergyCost(s domain.TrackedStats) decimal.Decimal {
	gas := s.NaturalGasMMBTU.Mul(s.NaturalGasCostPerUnit)
	electricity := s.ElectricityUseKWh.Mul(s.ElectricityCostPerUnit)
	hydrogen := s.HydrogenMMBTU.Mul(s.HydrogenCostPerUnit)
	return gas.Add(electricity).Add(hydrogen).Round(2)
}

// GetYearCostSavings returns the utility-cost reduction realized over a
// period, from its opening stats to its closing stats.
func GetYearCostSavings(opening, closing domain.TrackedStats) decimal.Decimal {
	return EnergyCost(opening).Sub(EnergyCost(closing))
}

package simulation

import (
	"github.com/rpgo/carbonsim/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultBaseline is a mid-size manufacturing facility's annual energy profile
func DefaultBaseline() domain.EnergyBaseline {
	return domain.EnergyBaseline{
		NaturalGasMMBTU:            decimal.NewFromInt(4000),
		NaturalGasCostPerUnit:      decimal.NewFromInt(5),
		NaturalGasEmissionsPerUnit: NaturalGasEmissionsFactor,
		ElectricityUseKWh:          decimal.NewFromInt(4_000_000),
		ElectricityCostPerUnit:     decimal.NewFromFloat(0.10),
		HydrogenMMBTU:              decimal.Zero,
		HydrogenCostPerUnit:        decimal.NewFromInt(15),
		HydrogenEmissionsPerUnit:   HydrogenEmissionsFactor,
	}
}

var amortizable = []domain.FinancingType{domain.FinancingLoan, domain.FinancingGreenBond, domain.FinancingEaaS}

// DefaultProjects returns the built-in project catalog entries
func DefaultProjects() []ProjectControl {
	return []ProjectControl{
		{
			ID:                  "led_lighting",
			Title:               "LED lighting retrofit",
			Cost:                decimal.NewFromInt(40_000),
			Rebate:              decimal.NewFromInt(2_000),
			StatsActualAppliers: domain.Appliers{domain.StatElectricityUseKWh: domain.Relative(-0.08)},
		},
		{
			ID:                  "delamping",
			Title:               "Fluorescent delamping",
			Cost:                decimal.NewFromInt(5_000),
			StatsActualAppliers: domain.Appliers{domain.StatElectricityUseKWh: domain.Relative(-0.02)},
			Visibility:          VisibilityRule{HiddenWhenAny: []domain.ProjectID{"led_lighting"}},
		},
		{
			ID:    "smart_thermostats",
			Title: "Smart thermostats",
			Cost:  decimal.NewFromInt(25_000),
			StatsActualAppliers: domain.Appliers{
				domain.StatNaturalGasMMBTU:   domain.Relative(-0.05),
				domain.StatElectricityUseKWh: domain.Relative(-0.02),
			},
		},
		{
			ID:                  "boiler_tuneup",
			Title:               "Boiler tune-up",
			Cost:                decimal.NewFromInt(15_000),
			StatsActualAppliers: domain.Appliers{domain.StatNaturalGasMMBTU: domain.Relative(-0.06)},
			RelatedProjects:     []domain.ProjectID{"steam_trap_maintenance"},
		},
		{
			ID:                  "steam_trap_maintenance",
			Title:               "Steam trap maintenance",
			Cost:                decimal.NewFromInt(10_000),
			StatsActualAppliers: domain.Appliers{domain.StatNaturalGasMMBTU: domain.Relative(-0.03)},
			Visibility:          VisibilityRule{RequiresAny: []domain.ProjectID{"boiler_tuneup"}},
		},
		{
			ID:                  "compressed_air_leaks",
			Title:               "Compressed air leak repair",
			Cost:                decimal.NewFromInt(20_000),
			StatsActualAppliers: domain.Appliers{domain.StatElectricityUseKWh: domain.Relative(-0.04)},
		},
		{
			ID:                  "vfd_motors",
			Title:               "Variable frequency drives",
			Cost:                decimal.NewFromInt(60_000),
			Rebate:              decimal.NewFromInt(3_000),
			StatsActualAppliers: domain.Appliers{domain.StatElectricityUseKWh: domain.Relative(-0.06)},
			FinancingOptions:    amortizable,
		},
		{
			ID:     "building_envelope",
			Title:  "Building envelope upgrade",
			Cost:   decimal.NewFromInt(120_000),
			Rebate: decimal.NewFromInt(6_000),
			StatsActualAppliers: domain.Appliers{
				domain.StatNaturalGasMMBTU:   domain.Relative(-0.15),
				domain.StatElectricityUseKWh: domain.Relative(-0.03),
			},
			StatsRecapAppliers:     domain.Appliers{domain.StatNaturalGasMMBTU: domain.Relative(-0.02)},
			IsCapitalFundsEligible: true,
			FinancingOptions:       amortizable,
		},
		{
			ID:     "heat_pump",
			Title:  "Industrial heat pump",
			Cost:   decimal.NewFromInt(210_000),
			Rebate: decimal.NewFromInt(5_000),
			StatsInfoAppliers: domain.Appliers{
				domain.StatNaturalGasMMBTU: domain.Absolute(-1_400),
			},
			StatsActualAppliers: domain.Appliers{
				domain.StatNaturalGasMMBTU:   domain.Absolute(-1_400),
				domain.StatElectricityUseKWh: domain.Absolute(120_000),
			},
			IsCapitalFundsEligible: true,
			FinancingOptions:       amortizable,
			YearsToPayOff:          8,
		},
		{
			ID:                     "solar_rooftop",
			Title:                  "Rooftop solar array",
			Cost:                   decimal.NewFromInt(250_000),
			Rebate:                 decimal.NewFromInt(20_000),
			StatsActualAppliers:    domain.Appliers{domain.StatElectricityUseKWh: domain.Absolute(-400_000)},
			IsCapitalFundsEligible: true,
			FinancingOptions:       amortizable,
		},
		{
			ID:                  "hydrogen_boiler",
			Title:               "Green hydrogen boiler conversion",
			Cost:                decimal.NewFromInt(180_000),
			Rebate:              decimal.NewFromInt(10_000),
			StatsActualAppliers: domain.Appliers{
				domain.StatNaturalGasMMBTU: domain.Relative(-0.5),
				domain.StatHydrogenMMBTU:   domain.Absolute(1_000),
			},
			IsCapitalFundsEligible: true,
			FinancingOptions:       amortizable,
			Visibility:             VisibilityRule{RequiresAny: []domain.ProjectID{"boiler_tuneup"}},
		},
		{
			ID:                  "wind_ppa",
			Title:               "Community wind power purchase agreement",
			Cost:                decimal.NewFromInt(45_000),
			StatsActualAppliers: domain.Appliers{domain.StatElectricityEmissionsPerUnit: domain.Relative(-0.3)},
			IsRenewable:         true,
			IsPPA:               true,
		},
		{
			ID:                     "renewable_credits",
			Title:                  "Renewable energy credits",
			Cost:                   decimal.NewFromInt(30_000),
			StatsActualAppliers:    domain.Appliers{domain.StatAbsoluteCarbonSavings: domain.Absolute(150_000)},
			IsRenewable:            true,
			IsCapitalFundsEligible: true,
		},
	}
}

// DefaultCatalog returns the built-in catalog
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultProjects()...)
	if err != nil {
		panic("simulation: invalid default catalog: " + err.Error())
	}
	return c
}

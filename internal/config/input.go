package config

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/rpgo/carbonsim/internal/domain"
	"github.com/rpgo/carbonsim/internal/simulation"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// CatalogSchemaConstraint is the range of catalog schema versions this build reads
const CatalogSchemaConstraint = "^1.0.0"

// CatalogFile is the on-disk form of a project catalog
type CatalogFile struct {
	SchemaVersion string                      `yaml:"schema_version"`
	Projects      []simulation.ProjectControl `yaml:"projects"`
}

// InputParser handles parsing of settings, catalog and plan files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadSettings loads game settings from a YAML file. CARBONSIM_* environment
// variables override the file before defaults are applied.
func (ip *InputParser) LoadSettings(filename string) (*domain.GameSettings, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var settings domain.GameSettings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ApplyEnvOverrides(&settings); err != nil {
		return nil, err
	}
	ip.ApplyDefaults(&settings)

	if err := ip.ValidateSettings(&settings); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}

	return &settings, nil
}

// ApplyDefaults fills unset settings, including the standard emission factors
func (ip *InputParser) ApplyDefaults(settings *domain.GameSettings) {
	settings.ApplyDefaults()
	if settings.Baseline.NaturalGasEmissionsPerUnit.IsZero() {
		settings.Baseline.NaturalGasEmissionsPerUnit = simulation.NaturalGasEmissionsFactor
	}
	if settings.Baseline.HydrogenEmissionsPerUnit.IsZero() {
		settings.Baseline.HydrogenEmissionsPerUnit = simulation.HydrogenEmissionsFactor
	}
}

// ValidateSettings validates loaded game settings
func (ip *InputParser) ValidateSettings(settings *domain.GameSettings) error {
	if settings.GameYearInterval != 1 && settings.GameYearInterval != 2 {
		return fmt.Errorf("game year interval must be 1 or 2, got %d", settings.GameYearInterval)
	}
	if settings.TotalPeriods < 1 || settings.TotalPeriods > 30 {
		return fmt.Errorf("total periods must be between 1 and 30")
	}
	if !settings.AnnualBudget.IsPositive() {
		return fmt.Errorf("annual budget must be positive")
	}
	if settings.ProjectLimit < 0 {
		return fmt.Errorf("project limit cannot be negative")
	}
	if settings.CapitalFundingExpiryPeriods < 0 {
		return fmt.Errorf("capital funding expiry cannot be negative")
	}

	switch settings.Carryover {
	case domain.CarryoverNo, domain.CarryoverYes:
	default:
		return fmt.Errorf("carryover must be 'no' or 'yes'")
	}
	switch settings.CostSavingsCarryover {
	case domain.CostSavingsNever, domain.CostSavingsOneYear, domain.CostSavingsAlways:
	default:
		return fmt.Errorf("cost savings carryover must be 'never', 'oneYear', or 'always'")
	}

	if err := ip.validateBaseline(&settings.Baseline); err != nil {
		return fmt.Errorf("baseline validation failed: %w", err)
	}
	if err := ip.validateFinancing(&settings.Financing); err != nil {
		return fmt.Errorf("financing validation failed: %w", err)
	}

	return nil
}

// validateBaseline validates the facility's starting energy profile
func (ip *InputParser) validateBaseline(b *domain.EnergyBaseline) error {
	amounts := map[string]decimal.Decimal{
		"natural gas use":              b.NaturalGasMMBTU,
		"natural gas cost":             b.NaturalGasCostPerUnit,
		"natural gas emissions factor": b.NaturalGasEmissionsPerUnit,
		"electricity use":              b.ElectricityUseKWh,
		"electricity cost":             b.ElectricityCostPerUnit,
		"hydrogen use":                 b.HydrogenMMBTU,
		"hydrogen cost":                b.HydrogenCostPerUnit,
		"hydrogen emissions factor":    b.HydrogenEmissionsPerUnit,
	}
	for name, v := range amounts {
		if v.IsNegative() {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}

	emissions := b.NaturalGasMMBTU.Mul(b.NaturalGasEmissionsPerUnit).
		Add(b.ElectricityUseKWh.Mul(simulation.ElectricityEmissionsFactor(0))).
		Add(b.HydrogenMMBTU.Mul(b.HydrogenEmissionsPerUnit))
	if !emissions.IsPositive() {
		return fmt.Errorf("baseline emissions must be positive")
	}
	return nil
}

// validateFinancing validates financing rates and terms
func (ip *InputParser) validateFinancing(fs *domain.FinancingSettings) error {
	one := decimal.NewFromInt(1)
	rates := []struct {
		name string
		v    decimal.Decimal
	}{
		{"loan rate", fs.LoanRate},
		{"green bond rate", fs.GreenBondRate},
		{"EaaS premium", fs.EaaSPremium},
	}
	for _, r := range rates {
		if r.v.IsNegative() || r.v.GreaterThanOrEqual(one) {
			return fmt.Errorf("%s must be between 0 and 1", r.name)
		}
	}
	if fs.LoanTermYears < 1 || fs.GreenBondTermYears < 1 || fs.EaaSTermYears < 1 {
		return fmt.Errorf("financing terms must be at least one year")
	}
	return nil
}

// LoadCatalog loads and validates a project catalog
func (ip *InputParser) LoadCatalog(filename string) (*simulation.Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var file CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.checkSchemaVersion(file.SchemaVersion); err != nil {
		return nil, err
	}
	if len(file.Projects) == 0 {
		return nil, fmt.Errorf("catalog validation failed: no projects provided")
	}

	catalog, err := simulation.NewCatalog(file.Projects...)
	if err != nil {
		return nil, fmt.Errorf("catalog validation failed: %w", err)
	}
	return catalog, nil
}

func (ip *InputParser) checkSchemaVersion(version string) error {
	if version == "" {
		return fmt.Errorf("catalog schema_version is required")
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid catalog schema_version %q: %w", version, err)
	}
	constraint, err := semver.NewConstraint(CatalogSchemaConstraint)
	if err != nil {
		return fmt.Errorf("invalid schema constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("catalog schema_version %s is not supported (want %s)", v, CatalogSchemaConstraint)
	}
	return nil
}

// LoadPlan loads a scripted play plan
func (ip *InputParser) LoadPlan(filename string) (*domain.PlayPlan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var plan domain.PlayPlan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	return &plan, nil
}

// ValidatePlan checks a plan's shape; project ids are resolved against the catalog during play
func (ip *InputParser) ValidatePlan(plan *domain.PlayPlan) error {
	if len(plan.Periods) == 0 {
		return fmt.Errorf("no periods provided")
	}
	for i, period := range plan.Periods {
		for j, sel := range period.Select {
			if sel.Project == "" {
				return fmt.Errorf("period %d selection %d: project is required", i+1, j+1)
			}
			if _, err := domain.ParseFinancingType(string(sel.Financing)); err != nil {
				return fmt.Errorf("period %d selection %d: %w", i+1, j+1, err)
			}
		}
		for j, id := range period.Deselect {
			if id == "" {
				return fmt.Errorf("period %d deselection %d: project is required", i+1, j+1)
			}
		}
	}
	return nil
}

// SaveYAML writes v to filename as YAML
func SaveYAML(v any, filename string) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExampleSettings creates example game settings
func (ip *InputParser) CreateExampleSettings() *domain.GameSettings {
	settings := &domain.GameSettings{
		Name:             "Example facility",
		StartYear:        domain.DefaultStartYear,
		GameYearInterval: 1,
		TotalPeriods:     domain.DefaultAnnualPeriods,
		AnnualBudget:     decimal.NewFromInt(150_000),
		Baseline:         simulation.DefaultBaseline(),
		Financing: domain.FinancingSettings{
			AllowLoan:         true,
			AllowGreenBond:    true,
			AllowEaaS:         true,
			AllowCapitalFunds: true,
		},
		Carryover:            domain.CarryoverNo,
		CostSavingsCarryover: domain.CostSavingsOneYear,
	}
	ip.ApplyDefaults(settings)
	return settings
}

// CreateExampleCatalog creates a catalog file holding the built-in projects
func (ip *InputParser) CreateExampleCatalog() *CatalogFile {
	return &CatalogFile{
		SchemaVersion: "1.0.0",
		Projects:      simulation.DefaultProjects(),
	}
}

// CreateExamplePlan creates a plan that plays the example catalog for a few periods
func (ip *InputParser) CreateExamplePlan() *domain.PlayPlan {
	return &domain.PlayPlan{
		Name: "Efficiency first",
		Periods: []domain.PeriodPlan{
			{Select: []domain.PlannedSelection{
				{Project: "led_lighting"},
				{Project: "boiler_tuneup"},
				{Project: "smart_thermostats"},
				{Project: "wind_ppa"},
			}},
			{Select: []domain.PlannedSelection{
				{Project: "steam_trap_maintenance"},
				{Project: "vfd_motors", Financing: domain.FinancingLoan},
				{Project: "compressed_air_leaks"},
			}},
			{Select: []domain.PlannedSelection{
				{Project: "solar_rooftop", Financing: domain.FinancingGreenBond},
				{Project: "renewable_credits"},
			}},
			{Select: []domain.PlannedSelection{
				{Project: "building_envelope", Financing: domain.FinancingEaaS},
				{Project: "heat_pump", Financing: domain.FinancingLoan},
			}},
		},
	}
}

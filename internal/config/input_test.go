package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rpgo/carbonsim/internal/domain"
	"github.com/rpgo/carbonsim/internal/simulation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, pattern, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), pattern)
	require.NoError(t, err)
	_, err = tmpfile.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())
	return tmpfile.Name()
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadSettings_Success(t *testing.T) {
	testSettings := "name: \"Plant 7\"\n" +
		"game_year_interval: 2\n" +
		"annual_budget: 120000\n" +
		"carryover: \"yes\"\n" +
		"baseline:\n" +
		"  natural_gas_mmbtu: 4000\n" +
		"  natural_gas_cost_per_unit: 5\n" +
		"  electricity_use_kwh: 4000000\n" +
		"  electricity_cost_per_unit: 0.10\n" +
		"financing:\n" +
		"  allow_loan: true\n"

	parser := NewInputParser()
	settings, err := parser.LoadSettings(writeTemp(t, "settings_*.yaml", testSettings))
	require.NoError(t, err)

	assert.Equal(t, "Plant 7", settings.Name)
	assert.Equal(t, 2, settings.GameYearInterval)
	assert.Equal(t, domain.DefaultBiennialPeriods, settings.TotalPeriods)
	assert.Equal(t, domain.DefaultStartYear, settings.StartYear)
	assert.True(t, settings.AnnualBudget.Equal(decimal.NewFromInt(120_000)))
	assert.Equal(t, domain.CarryoverYes, settings.Carryover)
	assert.Equal(t, domain.CostSavingsNever, settings.CostSavingsCarryover)
	assert.True(t, settings.Financing.AllowLoan)
	assert.False(t, settings.Financing.AllowEaaS)
	assert.Equal(t, 5, settings.Financing.LoanTermYears)
	assert.True(t, settings.Baseline.NaturalGasEmissionsPerUnit.Equal(simulation.NaturalGasEmissionsFactor))
}

func TestLoadSettings_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	settings, err := parser.LoadSettings("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, settings)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadSettings_InvalidYAML(t *testing.T) {
	parser := NewInputParser()
	settings, err := parser.LoadSettings(writeTemp(t, "invalid_*.yaml", "name: [unclosed\n"))

	assert.Error(t, err)
	assert.Nil(t, settings)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidateSettings(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name    string
		mutate  func(s *domain.GameSettings)
		wantErr string
	}{
		{"valid", func(s *domain.GameSettings) {}, ""},
		{"interval", func(s *domain.GameSettings) { s.GameYearInterval = 3 }, "game year interval"},
		{"too many periods", func(s *domain.GameSettings) { s.TotalPeriods = 31 }, "total periods"},
		{"zero budget", func(s *domain.GameSettings) { s.AnnualBudget = decimal.Zero }, "annual budget"},
		{"negative limit", func(s *domain.GameSettings) { s.ProjectLimit = -1 }, "project limit"},
		{"negative expiry", func(s *domain.GameSettings) { s.CapitalFundingExpiryPeriods = -2 }, "expiry"},
		{"carryover", func(s *domain.GameSettings) { s.Carryover = "sometimes" }, "carryover must be"},
		{"cost savings", func(s *domain.GameSettings) { s.CostSavingsCarryover = "twice" }, "cost savings carryover"},
		{"negative use", func(s *domain.GameSettings) { s.Baseline.HydrogenMMBTU = decimal.NewFromInt(-1) }, "hydrogen use cannot be negative"},
		{"no emissions", func(s *domain.GameSettings) {
			s.Baseline.NaturalGasMMBTU = decimal.Zero
			s.Baseline.ElectricityUseKWh = decimal.Zero
		}, "baseline emissions must be positive"},
		{"loan rate", func(s *domain.GameSettings) { s.Financing.LoanRate = decimal.NewFromInt(1) }, "loan rate"},
		{"term", func(s *domain.GameSettings) { s.Financing.EaaSTermYears = -1 }, "financing terms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parser.CreateExampleSettings()
			tt.mutate(s)
			err := parser.ValidateSettings(s)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadCatalog_Success(t *testing.T) {
	testCatalog := "schema_version: \"1.2.0\"\n" +
		"projects:\n" +
		"  - id: boiler_tuneup\n" +
		"    title: Boiler tune-up\n" +
		"    cost: 15000\n" +
		"    actual_appliers:\n" +
		"      naturalGasMMBTU:\n" +
		"        modifier: -0.06\n" +
		"    related_projects: [steam_traps]\n" +
		"  - id: steam_traps\n" +
		"    title: Steam traps\n" +
		"    cost: 10000\n" +
		"    actual_appliers:\n" +
		"      naturalGasMMBTU:\n" +
		"        modifier: -0.03\n" +
		"    visibility:\n" +
		"      requires_any: [boiler_tuneup]\n" +
		"  - id: offsets\n" +
		"    title: Carbon offsets\n" +
		"    cost: 5000\n" +
		"    renewable: true\n" +
		"    actual_appliers:\n" +
		"      absoluteCarbonSavings:\n" +
		"        modifier: 1000\n" +
		"        absolute: true\n"

	parser := NewInputParser()
	catalog, err := parser.LoadCatalog(writeTemp(t, "catalog_*.yaml", testCatalog))
	require.NoError(t, err)
	require.Equal(t, 3, catalog.Len())

	boiler, err := catalog.Lookup("boiler_tuneup")
	require.NoError(t, err)
	gas := boiler.StatsActualAppliers[domain.StatNaturalGasMMBTU]
	assert.True(t, gas.Modifier.Equal(decimal.RequireFromString("-0.06")))
	assert.False(t, gas.IsAbsolute)
	assert.Equal(t, []domain.ProjectID{"steam_traps"}, boiler.RelatedProjects)

	traps, _ := catalog.Lookup("steam_traps")
	assert.Equal(t, []domain.ProjectID{"boiler_tuneup"}, traps.Visibility.RequiresAny)

	offsets, _ := catalog.Lookup("offsets")
	assert.True(t, offsets.IsRenewable)
	assert.True(t, offsets.StatsActualAppliers[domain.StatAbsoluteCarbonSavings].IsAbsolute)
}

func TestLoadCatalog_SchemaVersion(t *testing.T) {
	parser := NewInputParser()
	body := "projects:\n  - id: a\n    title: A\n    cost: 1\n"

	tests := []struct {
		name    string
		header  string
		wantErr string
	}{
		{"missing", "", "schema_version is required"},
		{"garbage", "schema_version: \"one\"\n", "invalid catalog schema_version"},
		{"too new", "schema_version: \"2.0.0\"\n", "not supported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.LoadCatalog(writeTemp(t, "catalog_*.yaml", tt.header+body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadCatalog_InvalidProjects(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadCatalog(writeTemp(t, "catalog_*.yaml", "schema_version: \"1.0.0\"\nprojects: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no projects provided")

	dup := "schema_version: \"1.0.0\"\n" +
		"projects:\n" +
		"  - id: a\n    cost: 1\n" +
		"  - id: a\n    cost: 2\n"
	_, err = parser.LoadCatalog(writeTemp(t, "catalog_*.yaml", dup))
	require.Error(t, err)
	assert.True(t, errors.Is(err, simulation.ErrDuplicateProject))
}

func TestLoadPlan(t *testing.T) {
	testPlan := "name: \"quick\"\n" +
		"periods:\n" +
		"  - select:\n" +
		"      - project: led_lighting\n" +
		"      - project: vfd_motors\n" +
		"        financing: loan\n" +
		"  - deselect: [vfd_motors]\n" +
		"    back: true\n"

	parser := NewInputParser()
	plan, err := parser.LoadPlan(writeTemp(t, "plan_*.yaml", testPlan))
	require.NoError(t, err)

	assert.Equal(t, "quick", plan.Name)
	require.Len(t, plan.Periods, 2)
	assert.Equal(t, domain.FinancingLoan, plan.Periods[0].Select[1].Financing)
	assert.Equal(t, domain.FinancingType(""), plan.Periods[0].Select[0].Financing)
	assert.Equal(t, []domain.ProjectID{"vfd_motors"}, plan.Periods[1].Deselect)
	assert.True(t, plan.Periods[1].Back)
}

func TestValidatePlan(t *testing.T) {
	parser := NewInputParser()

	assert.ErrorContains(t, parser.ValidatePlan(&domain.PlayPlan{}), "no periods")

	badFinancing := &domain.PlayPlan{Periods: []domain.PeriodPlan{{
		Select: []domain.PlannedSelection{{Project: "a", Financing: "lease"}},
	}}}
	assert.ErrorContains(t, parser.ValidatePlan(badFinancing), "unknown financing type")

	noProject := &domain.PlayPlan{Periods: []domain.PeriodPlan{{
		Select: []domain.PlannedSelection{{Financing: domain.FinancingLoan}},
	}}}
	assert.ErrorContains(t, parser.ValidatePlan(noProject), "project is required")
}

func TestExampleFiles_RoundTrip(t *testing.T) {
	parser := NewInputParser()
	dir := t.TempDir()

	settingsPath := filepath.Join(dir, "settings.yaml")
	catalogPath := filepath.Join(dir, "catalog.yaml")
	planPath := filepath.Join(dir, "plan.yaml")

	require.NoError(t, SaveYAML(parser.CreateExampleSettings(), settingsPath))
	require.NoError(t, SaveYAML(parser.CreateExampleCatalog(), catalogPath))
	require.NoError(t, SaveYAML(parser.CreateExamplePlan(), planPath))

	settings, err := parser.LoadSettings(settingsPath)
	require.NoError(t, err)
	want := parser.CreateExampleSettings()
	assert.Equal(t, want.Name, settings.Name)
	assert.Equal(t, want.TotalPeriods, settings.TotalPeriods)
	assert.Equal(t, want.Financing.AllowCapitalFunds, settings.Financing.AllowCapitalFunds)
	assert.Equal(t, want.CostSavingsCarryover, settings.CostSavingsCarryover)
	assert.True(t, want.AnnualBudget.Equal(settings.AnnualBudget))
	assert.True(t, want.Financing.LoanRate.Equal(settings.Financing.LoanRate))
	assert.True(t, want.Baseline.ElectricityUseKWh.Equal(settings.Baseline.ElectricityUseKWh))

	catalog, err := parser.LoadCatalog(catalogPath)
	require.NoError(t, err)
	assert.Equal(t, len(simulation.DefaultProjects()), catalog.Len())

	plan, err := parser.LoadPlan(planPath)
	require.NoError(t, err)
	assert.Equal(t, parser.CreateExamplePlan(), plan)

	// the example plan only names catalog projects
	for _, period := range plan.Periods {
		for _, sel := range period.Select {
			_, err := catalog.Lookup(sel.Project)
			assert.NoError(t, err, sel.Project)
		}
	}
}

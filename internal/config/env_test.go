package config

import (
	"testing"

	"github.com/rpgo/carbonsim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("CARBONSIM_TOTAL_PERIODS", "6")
	t.Setenv("CARBONSIM_ANNUAL_BUDGET", "99000.50")
	t.Setenv("CARBONSIM_CARRYOVER", "yes")
	t.Setenv("CARBONSIM_COST_SAVINGS_CARRYOVER", "always")

	settings := NewInputParser().CreateExampleSettings()
	require.NoError(t, ApplyEnvOverrides(settings))

	assert.Equal(t, 6, settings.TotalPeriods)
	assert.Equal(t, 1, settings.GameYearInterval, "unset variables leave the setting alone")
	assert.True(t, settings.AnnualBudget.Equal(decimal.RequireFromString("99000.50")))
	assert.Equal(t, domain.CarryoverYes, settings.Carryover)
	assert.Equal(t, domain.CostSavingsAlways, settings.CostSavingsCarryover)
}

func TestApplyEnvOverrides_Errors(t *testing.T) {
	t.Run("bad integer", func(t *testing.T) {
		t.Setenv("CARBONSIM_GAME_YEAR_INTERVAL", "two")
		err := ApplyEnvOverrides(&domain.GameSettings{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse env")
	})
	t.Run("bad budget", func(t *testing.T) {
		t.Setenv("CARBONSIM_ANNUAL_BUDGET", "lots")
		err := ApplyEnvOverrides(&domain.GameSettings{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CARBONSIM_ANNUAL_BUDGET")
	})
}

func TestLoadSettings_EnvOverridesFile(t *testing.T) {
	t.Setenv("CARBONSIM_PROJECT_LIMIT", "2")
	t.Setenv("CARBONSIM_CARRYOVER", "maybe")

	parser := NewInputParser()
	path := writeTemp(t, "settings_*.yaml", "annual_budget: 50000\nproject_limit: 5\n"+
		"baseline:\n  natural_gas_mmbtu: 100\n")

	_, err := parser.LoadSettings(path)
	require.Error(t, err, "overrides are validated like file values")
	assert.Contains(t, err.Error(), "carryover must be")

	t.Setenv("CARBONSIM_CARRYOVER", "no")
	settings, err := parser.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 2, settings.ProjectLimit)
}

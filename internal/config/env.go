package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rpgo/carbonsim/internal/domain"
	"github.com/shopspring/decimal"
)

// EnvOverrides holds settings that may be supplied through the environment.
// Zero values leave the file's setting untouched.
type EnvOverrides struct {
	TotalPeriods         int    `env:"CARBONSIM_TOTAL_PERIODS"`
	GameYearInterval     int    `env:"CARBONSIM_GAME_YEAR_INTERVAL"`
	AnnualBudget         string `env:"CARBONSIM_ANNUAL_BUDGET"`
	ProjectLimit         int    `env:"CARBONSIM_PROJECT_LIMIT"`
	Carryover            string `env:"CARBONSIM_CARRYOVER"`
	CostSavingsCarryover string `env:"CARBONSIM_COST_SAVINGS_CARRYOVER"`
}

// ParseEnv populates target from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ApplyEnvOverrides copies any CARBONSIM_* values onto settings
func ApplyEnvOverrides(settings *domain.GameSettings) error {
	var o EnvOverrides
	if err := ParseEnv(&o); err != nil {
		return err
	}

	if o.TotalPeriods != 0 {
		settings.TotalPeriods = o.TotalPeriods
	}
	if o.GameYearInterval != 0 {
		settings.GameYearInterval = o.GameYearInterval
	}
	if o.ProjectLimit != 0 {
		settings.ProjectLimit = o.ProjectLimit
	}
	if o.AnnualBudget != "" {
		budget, err := decimal.NewFromString(o.AnnualBudget)
		if err != nil {
			return fmt.Errorf("parse env: CARBONSIM_ANNUAL_BUDGET: %w", err)
		}
		settings.AnnualBudget = budget
	}
	if o.Carryover != "" {
		settings.Carryover = domain.CarryoverPolicy(o.Carryover)
	}
	if o.CostSavingsCarryover != "" {
		settings.CostSavingsCarryover = domain.CostSavingsCarryoverPolicy(o.CostSavingsCarryover)
	}
	return nil
}

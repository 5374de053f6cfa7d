package cli

import (
	"fmt"

	"github.com/rpgo/carbonsim/internal/config"
	"github.com/rpgo/carbonsim/internal/domain"
	"github.com/rpgo/carbonsim/internal/logging"
	"github.com/rpgo/carbonsim/internal/simulation"
)

// loadEngine builds an engine from the given files. An empty settings path
// uses the example settings and an empty catalog path the built-in projects.
func loadEngine(settingsPath, catalogPath string) (*simulation.Engine, error) {
	parser := config.NewInputParser()

	var settings *domain.GameSettings
	if settingsPath == "" {
		settings = parser.CreateExampleSettings()
		if err := config.ApplyEnvOverrides(settings); err != nil {
			return nil, err
		}
		if err := parser.ValidateSettings(settings); err != nil {
			return nil, fmt.Errorf("settings validation failed: %w", err)
		}
	} else {
		s, err := parser.LoadSettings(settingsPath)
		if err != nil {
			return nil, err
		}
		settings = s
	}

	catalog := simulation.DefaultCatalog()
	if catalogPath != "" {
		c, err := parser.LoadCatalog(catalogPath)
		if err != nil {
			return nil, err
		}
		catalog = c
	}

	engine, err := simulation.NewEngine(catalog, *settings)
	if err != nil {
		return nil, err
	}
	engine.SetLogger(logging.NewAdapter(logging.ComponentLogger(logger, "engine")))

	logger.Debug().
		Int("projects", catalog.Len()).
		Int("periods", engine.Settings.TotalPeriods).
		Int("interval", engine.Settings.GameYearInterval).
		Msg("engine ready")
	return engine, nil
}

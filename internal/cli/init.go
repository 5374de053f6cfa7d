package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rpgo/carbonsim/internal/config"
)

// Example file names written by init.
const (
	SettingsFile = "settings.yaml"
	CatalogFile  = "catalog.yaml"
	PlanFile     = "plan.yaml"
)

func newInitCmd() *cobra.Command {
	var (
		dir   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write example settings, catalog and plan files",
		Example: `  # Create the example files in ./game
  carbonsim init --dir game

  # Overwrite existing files
  carbonsim init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parser := config.NewInputParser()
			files := []struct {
				name string
				v    any
			}{
				{SettingsFile, parser.CreateExampleSettings()},
				{CatalogFile, parser.CreateExampleCatalog()},
				{PlanFile, parser.CreateExamplePlan()},
			}

			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}

			if !force {
				for _, f := range files {
					path := filepath.Join(dir, f.name)
					_, err := os.Stat(path)
					if err == nil {
						return errors.New(path + " already exists, use --force to overwrite")
					}
					if !os.IsNotExist(err) {
						return fmt.Errorf("cannot access %s: %w", path, err)
					}
				}
			}

			for _, f := range files {
				path := filepath.Join(dir, f.name)
				if err := config.SaveYAML(f.v, path); err != nil {
					return err
				}
				cmd.Printf("Wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "directory to write the example files into")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")

	return cmd
}

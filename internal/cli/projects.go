package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/carbonsim/internal/output"
)

func newProjectsCmd() *cobra.Command {
	var (
		settingsPath string
		catalogPath  string
		showHidden   bool
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List the projects available in the first period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := loadEngine(settingsPath, catalogPath)
			if err != nil {
				return err
			}
			st, err := engine.NewGame()
			if err != nil {
				return err
			}
			list, err := engine.ListAvailableProjects(st)
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(list, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode projects: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Period %s, budget %s\n\n", engine.PeriodLabel(st.CurrentYear()), output.FormatCurrency(st.Stats.FinancesAvailable))
			return output.WriteProjectList(cmd.OutOrStdout(), list, showHidden)
		},
	}

	cmd.Flags().StringVar(&settingsPath, "settings", "", "settings file (default: example settings)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "project catalog file (default: built-in projects)")
	cmd.Flags().BoolVar(&showHidden, "all", false, "include projects that are not yet visible")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the project list as JSON")

	return cmd
}

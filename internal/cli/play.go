package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rpgo/carbonsim/internal/config"
	"github.com/rpgo/carbonsim/internal/output"
)

func newPlayCmd() *cobra.Command {
	var (
		settingsPath string
		catalogPath  string
		planPath     string
		format       string
		outputDir    string
		finish       bool
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a scripted plan and print the end-of-game report",
		Long: `Runs a play plan period by period: deselections, then selections with their
financing, then either a step back or an advance to the next period. Rejected
intents are reported on stderr and play continues.`,
		Example: `  # Play the example plan and print the console report
  carbonsim play --plan plan.yaml

  # Play every remaining period after the plan ends and save a CSV report
  carbonsim play --plan plan.yaml --finish --format csv --output-dir reports`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output.GetFormatterByName(format) == nil && !(outputDir != "" && output.NormalizeFormatName(format) == "all") {
				return fmt.Errorf("%w: %q. Try one of: %s", output.ErrUnsupportedFormat, format, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			plan, err := config.NewInputParser().LoadPlan(planPath)
			if err != nil {
				return err
			}
			engine, err := loadEngine(settingsPath, catalogPath)
			if err != nil {
				return err
			}

			res, err := engine.RunPlan(*plan, finish)
			if err != nil {
				return err
			}
			for _, rej := range res.Rejections {
				cmd.PrintErrf("rejected: %s\n", rej.String())
			}
			logger.Info().
				Str("outcome", string(res.Outcome)).
				Int("periods", res.State.PeriodsPlayed()).
				Int("rejections", len(res.Rejections)).
				Msg("plan finished")

			report, err := engine.BuildReport(plan.Name, res.State)
			if err != nil {
				return err
			}

			if outputDir != "" {
				paths, err := output.SaveReport(report, format, outputDir)
				if err != nil {
					return err
				}
				for _, p := range paths {
					cmd.Printf("Report written to %s\n", p)
				}
				return nil
			}
			return output.GenerateReport(cmd.OutOrStdout(), report, format)
		},
	}

	cmd.Flags().StringVar(&settingsPath, "settings", "", "settings file (default: example settings)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "project catalog file (default: built-in projects)")
	cmd.Flags().StringVar(&planPath, "plan", "", "play plan file")
	cmd.Flags().StringVar(&format, "format", "console", "report format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "write the report to a timestamped file in this directory")
	cmd.Flags().BoolVar(&finish, "finish", false, "advance through the remaining periods once the plan runs out")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

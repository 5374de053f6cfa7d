package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rpgo/carbonsim/internal/logging"
)

// EnvLogLevel sets the log level when --log-level is not given.
const EnvLogLevel = "CARBONSIM_LOG_LEVEL"

// setupLogging configures logging based on environment and CLI flags.
func setupLogging(cmd *cobra.Command) error {
	format, _ := cmd.Flags().GetString("log-format")
	if format != logging.FormatConsole && format != logging.FormatJSON {
		return fmt.Errorf("log-format must be %q or %q, got %q", logging.FormatConsole, logging.FormatJSON, format)
	}

	level, _ := cmd.Flags().GetString("log-level")
	if level == "" {
		level = os.Getenv(EnvLogLevel)
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = "debug"
	}

	logger = logging.ComponentLogger(logging.NewLogger(logging.Config{
		Level:  level,
		Format: format,
		Out:    cmd.ErrOrStderr(),
	}), "cli")
	logger.Debug().Str("command", cmd.Name()).Msg("command started")
	return nil
}

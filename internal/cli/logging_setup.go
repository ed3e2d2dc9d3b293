package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/tablekit/internal/config"
	"github.com/rshade/tablekit/internal/logging"
)

// setupLogging initializes the global logger from cfg, writing the console
// stream to the command's stderr, and stores the CLI logger in the command
// context.
func setupLogging(cmd *cobra.Command, cfg *config.Config) error {
	if err := config.InitLogger(cfg.Logging, cmd.ErrOrStderr()); err != nil {
		return err
	}
	attachLogger(cmd)

	logger.Debug().Str("command", cmd.Name()).Msg("command started")
	return nil
}

// attachLogger refreshes the package logger from the global one and puts
// it in the command context.
func attachLogger(cmd *cobra.Command) {
	logger = logging.ComponentLogger(config.GetLogger(), "cli")
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
}

// useFileOnlyLogging reroutes logging to a file so nothing is written to
// the terminal while a full-screen program owns it.
func useFileOnlyLogging(cmd *cobra.Command, cfg *config.Config) (string, error) {
	lc := cfg.Logging
	if lc.File == "" {
		path, err := config.DefaultLogPath()
		if err != nil {
			return "", err
		}
		lc.File = path
	}

	if err := config.InitLogger(lc, nil); err != nil {
		return "", err
	}
	attachLogger(cmd)
	return lc.File, nil
}

// cleanupLogging closes the log file handle, if any.
func cleanupLogging() {
	config.CloseLogFile()
}

package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/tablekit/internal/config"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the tablekit CLI.
// It loads configuration, wires up logging and registers the demo and
// config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit env lookup for testability.
func NewRootCmdWithEnv(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tablekit",
		Short:   "Scrollable table body with a custom scrollbar",
		Long:    "tablekit: a terminal table body with a mirrored scrollbar, drag and track-click scrolling and infinite loading",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, lookupEnv)
			if err != nil {
				return err
			}
			config.SetGlobalConfig(cfg)
			return setupLogging(cmd, cfg)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			cleanupLogging()
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "config file (default $TABLEKIT_HOME/config.yaml or ~/.tablekit/config.yaml)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("log-file", "", "write logs to this file")
	cmd.AddCommand(newDemoCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Browse 10,000 generated records with infinite scrolling
  tablekit demo

  # Page through records served from SQLite, 25 per page
  tablekit demo --source sqlite --page 1 --page-size 25

  # Show the effective configuration
  tablekit config show

  # Validate a configuration file
  tablekit config validate --config ./tablekit.yaml`

// loadConfig loads the config file named by --config (or the default one)
// and applies the environment and flag overrides.
func loadConfig(cmd *cobra.Command, lookupEnv func(string) (string, bool)) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(lookupEnv)

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Logging.Level = "debug"
	}
	if logFile, _ := cmd.Flags().GetString("log-file"); logFile != "" {
		cfg.Logging.File = logFile
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

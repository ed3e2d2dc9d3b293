package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/tablekit/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file (--config, or ~/.tablekit/config.yaml) for
syntax and semantic correctness, including the config schema version.`,
		Example: `  # Validate current configuration
  tablekit config validate

  # Validate a specific file and show the effective values
  tablekit config validate --config ./tablekit.yaml --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate re-validates the loaded configuration. Loading already
// rejects invalid files, so reaching here with a config means it parsed.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	cmd.Printf("Configuration is valid (version %s)\n", cfg.Version)

	if verbose {
		printVerboseDetails(cmd, cfg)
	}
	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Scrollbar idle hide: %s\n", cfg.Scroll.IdleHide())
	cmd.Printf("  Frame interval: %s\n", cfg.Scroll.FrameInterval())
	cmd.Printf("  Fetch threshold: %g rows\n", cfg.Scroll.FetchThreshold)
	cmd.Printf("  Page size: %d\n", cfg.Table.PageSize)
	cmd.Printf("  Auto slicing: %t\n", !cfg.Table.DisableAutoSlicing)
	cmd.Printf("  Batch size: %d\n", cfg.Table.BatchSize)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/tablekit/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration after file, environment and flag overrides.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Example: `  # Show defaults merged with ~/.tablekit/config.yaml
  tablekit config show

  # Show the effect of an environment override
  TABLEKIT_LOG_LEVEL=debug tablekit config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.GetGlobalConfig().Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/arrow-rush/config"
)

// NewConfigCommand creates the command that prints the effective configuration
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	var listEnv bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if listEnv {
				for _, k := range config.EnvKeys() {
					fmt.Fprintln(out, k)
				}
				return nil
			}
			cfg, err := loadConfig(cmd, rootOpts)
			if err != nil {
				return err
			}
			return cfg.Write(out)
		},
	}

	cmd.Flags().BoolVar(&listEnv, "env", false, "list recognized environment variables instead")

	return cmd
}

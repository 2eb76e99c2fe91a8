// Package cli wires the cobra command tree
package cli

import (
	"github.com/spf13/cobra"

	"github.com/lixenwraith/arrow-rush/config"
	"github.com/lixenwraith/arrow-rush/report"
)

// RootOptions holds global flags for all commands
type RootOptions struct {
	ConfigFile string
	EnvFiles   []string
	LogFile    string
	Seed       uint64
	Format     string
}

// NewRootCommand creates the arrow-rush command tree
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "arrow-rush",
		Short: "Arrow Rush - timed arrow sequence game",
		Long: `Reproduce arrow sequences before the line timer runs out.

Each correct arrow scores, each finished line earns a bonus, and the match
ends when the match countdown reaches zero.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := report.ParseFormat(opts.Format)
			return err
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "YAML config file")
	cmd.PersistentFlags().StringSliceVar(&opts.EnvFiles, "env-file", nil, "dotenv files (default ./.env if present)")
	cmd.PersistentFlags().StringVar(&opts.LogFile, "log", "", "log file (default discard)")
	cmd.PersistentFlags().Uint64Var(&opts.Seed, "seed", 0, "generator seed (0 = random)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")

	cmd.AddCommand(NewPlayCommand(opts))
	cmd.AddCommand(NewSimulateCommand(opts))
	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewGradeCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// loadConfig resolves file, dotenv and environment layers, then global flags
func loadConfig(cmd *cobra.Command, opts *RootOptions) (config.Config, error) {
	var envFiles []string
	if len(opts.EnvFiles) > 0 {
		envFiles = opts.EnvFiles
	}
	cfg, err := config.Load(config.Options{File: opts.ConfigFile, EnvFiles: envFiles})
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = opts.Seed
	}
	if flags.Changed("log") {
		cfg.LogFile = opts.LogFile
	}
	return cfg, nil
}

func outputFormat(opts *RootOptions) report.Format {
	f, _ := report.ParseFormat(opts.Format)
	return f
}

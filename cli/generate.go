package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/arrow-rush/report"
	"github.com/lixenwraith/arrow-rush/sequence"
)

// GeneratedLine is the JSON form of one generated line
type GeneratedLine struct {
	Strategy string   `json:"strategy"`
	Steps    []string `json:"steps"`
	Accents  []bool   `json:"accents,omitempty"`
}

type generateOptions struct {
	Strategy   string
	Difficulty int
	Count      int
	Length     int
}

// NewGenerateCommand creates the sequence inspection command
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print generated arrow lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, rootOpts)
			if err != nil {
				return err
			}
			sc := cfg.SequenceConfig()
			if cmd.Flags().Changed("strategy") {
				if sc.Strategy, err = sequence.ParseStrategy(opts.Strategy); err != nil {
					return err
				}
			}
			if opts.Count < 1 || opts.Difficulty < 1 || opts.Length < 0 {
				return fmt.Errorf("count and difficulty must be positive, length non-negative")
			}

			rng := newRand(cfg.Seed)
			gen := sequence.NewGenerator(sc, rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64())))

			lines := make([]sequence.Line, opts.Count)
			for i := range lines {
				length := opts.Length
				if length == 0 {
					length = gen.RandomLength()
				}
				lines[i] = gen.GenerateLine(length, opts.Difficulty)
			}
			return writeLines(cmd.OutOrStdout(), outputFormat(rootOpts), lines)
		},
	}

	cmd.Flags().StringVarP(&opts.Strategy, "strategy", "s", "auto", "sequence strategy")
	cmd.Flags().IntVarP(&opts.Difficulty, "difficulty", "d", 1, "difficulty level")
	cmd.Flags().IntVarP(&opts.Count, "count", "n", 5, "number of lines")
	cmd.Flags().IntVarP(&opts.Length, "length", "l", 0, "arrows per line (0 = random within config bounds)")

	return cmd
}

func writeLines(w io.Writer, f report.Format, lines []sequence.Line) error {
	if f == report.FormatJSON {
		out := make([]GeneratedLine, len(lines))
		for i, l := range lines {
			steps := make([]string, len(l.Steps))
			for j, d := range l.Steps {
				steps[j] = d.String()
			}
			out[i] = GeneratedLine{Strategy: l.Strategy.String(), Steps: steps, Accents: l.Accents}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for i, l := range lines {
		fmt.Fprintf(w, "%3d  %-8s %s", i+1, l.Strategy, l.Steps)
		if len(l.Accents) > 0 {
			fmt.Fprintf(w, "  accents %s", accentMarks(l.Accents))
		}
		fmt.Fprintln(w)
	}
	return nil
}

// accentMarks renders strong beats as x and weak beats as .
func accentMarks(accents []bool) string {
	var b strings.Builder
	for _, a := range accents {
		if a {
			b.WriteByte('x')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

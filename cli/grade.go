package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/arrow-rush/report"
	"github.com/lixenwraith/arrow-rush/timing"
)

// GradeResult is one classified timing
type GradeResult struct {
	Input       string  `json:"input"`
	Beat        int64   `json:"beat,omitempty"`
	DeviationMs float64 `json:"deviation_ms"`
	Grade       string  `json:"grade"`
	Multiplier  float64 `json:"multiplier"`
}

type gradeOptions struct {
	Offset time.Duration
	BPM    float64
}

// NewGradeCommand creates the timing inspection command
func NewGradeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &gradeOptions{}

	cmd := &cobra.Command{
		Use:   "grade <duration>...",
		Short: "Classify timing deltas or beat-grid instants",
		Long: `Classify each duration argument against the timing windows.

Without --bpm each argument is a signed delta from the expected instant.
With --bpm each argument is an elapsed time since line start and is
aligned to the nearest beat before grading.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, rootOpts)
			if err != nil {
				return err
			}
			windows := cfg.Engine.Windows.Calibrated(opts.Offset)

			results := make([]GradeResult, 0, len(args))
			for _, arg := range args {
				d, err := time.ParseDuration(arg)
				if err != nil {
					return fmt.Errorf("parse %q: %w", arg, err)
				}
				results = append(results, gradeOne(windows, opts.BPM, arg, d))
			}
			return writeGrades(cmd, outputFormat(rootOpts), results)
		},
	}

	cmd.Flags().DurationVar(&opts.Offset, "offset", 0, "calibration offset added to every window")
	cmd.Flags().Float64Var(&opts.BPM, "bpm", 0, "align arguments to a beat grid at this tempo")

	return cmd
}

func gradeOne(w timing.Windows, bpm float64, input string, d time.Duration) GradeResult {
	r := GradeResult{Input: input}
	deviation := d
	if bpm > 0 {
		beat := timing.NearestBeat(bpm, d, 0)
		r.Beat = beat.Index
		deviation = beat.Deviation
	}
	g := w.Grade(deviation)
	if deviation < 0 {
		deviation = -deviation
	}
	r.DeviationMs = float64(deviation) / float64(time.Millisecond)
	r.Grade = g.String()
	r.Multiplier = g.Multiplier()
	return r
}

func writeGrades(cmd *cobra.Command, f report.Format, results []GradeResult) error {
	w := cmd.OutOrStdout()
	if f == report.FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	for _, r := range results {
		fmt.Fprintf(w, "%-10s %-8s x%.1f  (%.0fms", r.Input, r.Grade, r.Multiplier, r.DeviationMs)
		if r.Beat > 0 {
			fmt.Fprintf(w, " from beat %d", r.Beat)
		}
		fmt.Fprintln(w, ")")
	}
	return nil
}

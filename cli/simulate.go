package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/arrow-rush/config"
	"github.com/lixenwraith/arrow-rush/engine"
	"github.com/lixenwraith/arrow-rush/events"
	"github.com/lixenwraith/arrow-rush/report"
	"github.com/lixenwraith/arrow-rush/status"
)

// ErrInvalidSimulation is returned for out-of-range bot parameters
var ErrInvalidSimulation = errors.New("invalid simulation parameters")

// SimulationParams tunes the bot player
type SimulationParams struct {
	Accuracy float64       // Probability of pressing the expected arrow
	Reaction time.Duration // Virtual time between consecutive presses
	Matches  int
	Trace    io.Writer // Receives one log line per event; nil discards
}

func (p SimulationParams) validate() error {
	switch {
	case p.Accuracy < 0 || p.Accuracy > 1:
		return fmt.Errorf("%w: accuracy %.2f outside [0,1]", ErrInvalidSimulation, p.Accuracy)
	case p.Reaction <= 0:
		return fmt.Errorf("%w: reaction %v must be positive", ErrInvalidSimulation, p.Reaction)
	case p.Matches < 1:
		return fmt.Errorf("%w: matches %d < 1", ErrInvalidSimulation, p.Matches)
	}
	return nil
}

// Simulation is the outcome of RunSimulation
type Simulation struct {
	Summaries []events.MatchSummary
	Status    *status.Registry
}

// RunSimulation plays matches headlessly on virtual time
// The run is deterministic for a fixed non-zero cfg.Seed, apart from match IDs
func RunSimulation(cfg config.Config, p SimulationParams) (Simulation, error) {
	if err := p.validate(); err != nil {
		return Simulation{}, err
	}

	sched := engine.NewManualScheduler(nil)
	reg := status.NewRegistry()
	eng, err := buildEngine(cfg, sched, sched.Clock(), reg)
	if err != nil {
		return Simulation{}, err
	}

	router := events.NewRouter[engine.Snapshot](eng.Events())
	if p.Trace != nil {
		router.Register(engine.NewLogHandler(log.New(p.Trace, "", 0)))
	}

	// The bot draws from its own stream so accuracy changes do not perturb the lines
	bot := newRand(cfg.Seed ^ 0x5bd1e995)
	sim := Simulation{Status: reg}

	for range p.Matches {
		eng.Reset()
		eng.Start()
		router.DispatchAll(eng.Snapshot())

		for eng.Phase() == engine.PhaseRunning {
			snap := eng.Snapshot()
			switch {
			case snap.LineActive:
				sched.Advance(p.Reaction)
				// The line may have timed out or the match ended while the bot was reacting
				snap = eng.Snapshot()
				if snap.Phase == engine.PhaseRunning && snap.LineActive {
					dir := snap.Sequence[snap.Cursor]
					if bot.Float64() >= p.Accuracy {
						dir = dir.Opposite()
					}
					eng.SubmitInput(dir)
				}
			case snap.AwaitingLine:
				eng.RequestNewLine()
			default:
				if !sched.Step() {
					return sim, fmt.Errorf("simulation stalled in phase %s", eng.Phase())
				}
			}
			router.DispatchAll(eng.Snapshot())
		}

		sim.Summaries = append(sim.Summaries, eng.Summary())
	}
	return sim, nil
}

type simulateOptions struct {
	matchFlags
	SimulationParams
	Metrics     bool
	TraceEvents bool
}

// NewSimulateCommand creates the headless bot command
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play matches with a bot on virtual time",
		Long: `Run complete matches without a terminal. A bot presses the expected
arrow with the given accuracy after each reaction delay; time is simulated,
so a sixty second match finishes instantly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, rootOpts)
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, &cfg); err != nil {
				return err
			}

			params := opts.SimulationParams
			if opts.TraceEvents {
				params.Trace = cmd.ErrOrStderr()
			}
			sim, err := RunSimulation(cfg, params)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			format := outputFormat(rootOpts)
			for _, s := range sim.Summaries {
				if err := report.Write(out, format, s); err != nil {
					return err
				}
			}
			if opts.Metrics {
				for _, m := range sim.Status.Snapshot() {
					fmt.Fprintf(out, "%s=%s\n", m.Key, m.Value)
				}
			}
			return nil
		},
	}

	opts.bind(cmd)
	cmd.Flags().Float64Var(&opts.Accuracy, "accuracy", 0.9, "probability of a correct press (0-1)")
	cmd.Flags().DurationVar(&opts.Reaction, "reaction", 400*time.Millisecond, "delay between presses")
	cmd.Flags().IntVarP(&opts.Matches, "matches", "n", 1, "number of matches")
	cmd.Flags().BoolVar(&opts.Metrics, "metrics", false, "print engine metrics after the run")
	cmd.Flags().BoolVar(&opts.TraceEvents, "trace", false, "log every event to stderr")

	return cmd
}

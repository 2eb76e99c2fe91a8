package cli

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/arrow-rush/config"
	"github.com/lixenwraith/arrow-rush/engine"
	"github.com/lixenwraith/arrow-rush/sequence"
	"github.com/lixenwraith/arrow-rush/status"
	"github.com/lixenwraith/arrow-rush/timing"
)

// matchFlags are the per-command tuning overrides shared by play and simulate
type matchFlags struct {
	MatchSeconds int
	Strategy     string
	Graded       bool
	BPM          float64
}

func (m *matchFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&m.MatchSeconds, "match-seconds", 0, "match duration in seconds")
	cmd.Flags().StringVar(&m.Strategy, "strategy", "", "sequence strategy (auto|uniform|smart|pattern|mirror|complex|rhythm)")
	cmd.Flags().BoolVar(&m.Graded, "graded", false, "scale rewards by beat timing grade")
	cmd.Flags().Float64Var(&m.BPM, "bpm", 0, "beat grid tempo for timing grades")
}

// apply overrides cfg with every flag the user set, then revalidates
func (m *matchFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("match-seconds") {
		cfg.Engine.MatchSeconds = m.MatchSeconds
	}
	if flags.Changed("strategy") {
		s, err := sequence.ParseStrategy(m.Strategy)
		if err != nil {
			return err
		}
		cfg.Sequence.Strategy = s
	}
	if flags.Changed("graded") {
		cfg.Engine.GradedScoring = m.Graded
	}
	if flags.Changed("bpm") {
		cfg.Engine.BPM = m.BPM
	}
	return cfg.Validate()
}

// newRand seeds a PCG source; seed 0 draws one from the runtime source
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// buildEngine assembles an engine whose generator and rolls derive from cfg.Seed
func buildEngine(cfg config.Config, sched engine.Scheduler, clock timing.Clock, reg *status.Registry) (*engine.Engine, error) {
	rng := newRand(cfg.Seed)
	gen := sequence.NewGenerator(cfg.SequenceConfig(), rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64())))

	eng, err := engine.New(cfg.Engine, engine.Options{
		Scheduler: sched,
		Clock:     clock,
		Lines:     gen,
		Rand:      rng,
		Status:    reg,
	})
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}
	return eng, nil
}

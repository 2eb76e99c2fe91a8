package sequence

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zeroSource always yields 0, so every IntN over a power of two draws index 0 (Up)
// and every Float64 draw is 0
type zeroSource struct{}

func (zeroSource) Uint64() uint64 { return 0 }

// countingSource counts draws from a seeded PCG
type countingSource struct {
	src   *rand.PCG
	draws int
}

func (c *countingSource) Uint64() uint64 {
	c.draws++
	return c.src.Uint64()
}

func TestGuardAcceptsCandidateAfterShuffleBound(t *testing.T) {
	src := &countingSource{src: rand.NewPCG(17, 17)}
	g := NewGenerator(DefaultConfig(), rand.New(src))

	same := Sequence{Up, Up, Up, Up}
	g.push(same)
	src.draws = 0

	got := g.guard(StrategyRhythm, same.Clone())

	assert.Equal(t, same, got)
	assert.Equal(t, 1.0, got.Similarity(g.Last()))
	// A four-element Fisher-Yates shuffle draws three times per attempt
	assert.Equal(t, 3*g.cfg.MaxShuffleAttempts, src.draws)
}

func TestGuardDiscardedShufflesStillCount(t *testing.T) {
	src := &countingSource{src: rand.NewPCG(23, 5)}
	cfg := DefaultConfig()
	cfg.MaxShuffleAttempts = 4
	g := NewGenerator(cfg, rand.New(src))

	// Every shuffle of two ups and a down either repeats the previous line or breaks strictness
	prev := Sequence{Up, Down, Up}
	g.push(prev)
	src.draws = 0

	got := g.guard(StrategyUniform, prev.Clone())

	assert.Equal(t, prev, got)
	assert.False(t, got.HasAdjacentRepeat())
	assert.Equal(t, 2*cfg.MaxShuffleAttempts, src.draws)
}

func TestNextDistinctFallsBackToOpposite(t *testing.T) {
	g := NewGenerator(DefaultConfig(), rand.New(zeroSource{}))

	assert.Equal(t, Down, g.nextDistinct(Up), "every draw repeats up")
	assert.Equal(t, Up, g.nextDistinct(Down), "first draw already differs")
}

func TestSmartNextFallsBackToOpposite(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxResample = 1
	g := NewGenerator(cfg, rand.New(zeroSource{}))

	// A zero draw always lands on the first non-zero weight, which is up
	assert.Equal(t, Down, g.smartNext(Sequence{Up}, true))
	assert.Equal(t, Up, g.smartNext(Sequence{Up}, false), "non-strict draws may repeat")
	assert.Equal(t, Up, g.smartNext(Sequence{Left}, true))
}

func TestStrictStrategiesUnderDegenerateRandomness(t *testing.T) {
	for _, strategy := range []Strategy{StrategyUniform, StrategySmart} {
		t.Run(strategy.String(), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Strategy = strategy
			g := NewGenerator(cfg, rand.New(zeroSource{}))

			seq := g.build(strategy, 6).Steps
			require.Len(t, seq, 6)
			assert.Equal(t, Sequence{Up, Down, Up, Down, Up, Down}, seq)
		})
	}
}

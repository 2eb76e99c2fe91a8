package sequence

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T, strategy Strategy, seed uint64) *Generator {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Strategy = strategy
	return NewGenerator(cfg, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func TestGenerateLengthAndValidity(t *testing.T) {
	strategies := []Strategy{
		StrategyAuto, StrategyUniform, StrategySmart, StrategyPattern,
		StrategyMirror, StrategyComplex, StrategyRhythm,
	}

	for _, strategy := range strategies {
		t.Run(strategy.String(), func(t *testing.T) {
			g := newTestGenerator(t, strategy, 7)
			for difficulty := 1; difficulty <= 6; difficulty++ {
				for length := 1; length <= 12; length++ {
					seq := g.Generate(length, difficulty)
					require.Len(t, seq, length, "difficulty %d", difficulty)
					assert.True(t, seq.Valid(), "invalid arrows in %s", seq)
				}
			}
		})
	}
}

func TestGenerateNonPositiveLength(t *testing.T) {
	g := newTestGenerator(t, StrategyUniform, 1)
	assert.Len(t, g.Generate(0, 1), 1)
	assert.Len(t, g.Generate(-3, 1), 1)
}

func TestStrictStrategiesNeverRepeatAdjacent(t *testing.T) {
	for _, strategy := range []Strategy{StrategyUniform, StrategySmart, StrategyPattern} {
		t.Run(strategy.String(), func(t *testing.T) {
			g := newTestGenerator(t, strategy, 42)
			for i := 0; i < 500; i++ {
				length := 2 + i%7
				seq := g.Generate(length, 1+i%6)
				assert.False(t, seq.HasAdjacentRepeat(), "adjacent repeat in %s", seq)
			}
		})
	}
}

func TestAutoLowDifficultyNeverRepeatsAdjacent(t *testing.T) {
	g := newTestGenerator(t, StrategyAuto, 3)
	for i := 0; i < 300; i++ {
		line := g.GenerateLine(4+i%5, 1+i%4)
		assert.True(t, line.Strategy.Strict(), "difficulty <= 4 resolved to %s", line.Strategy)
		assert.False(t, line.Steps.HasAdjacentRepeat(), "adjacent repeat in %s", line.Steps)
	}
}

func TestMirrorReflection(t *testing.T) {
	g := newTestGenerator(t, StrategyMirror, 11)

	for i := 0; i < 200; i++ {
		length := 2 + i%8
		seq := g.Generate(length, 5)
		half := length / 2
		for j := 0; j < half; j++ {
			assert.Equal(t, seq[j].Opposite(), seq[2*half-1-j], "pair %d in %s", j, seq)
		}
		if length%2 == 0 {
			for j := 0; j < half; j++ {
				assert.Equal(t, seq[j].Opposite(), seq[length-1-j], "even pair %d in %s", j, seq)
			}
		}
	}
}

func TestRhythmAccents(t *testing.T) {
	g := newTestGenerator(t, StrategyRhythm, 5)
	line := g.GenerateLine(8, 5)

	require.Equal(t, StrategyRhythm, line.Strategy)
	require.Len(t, line.Accents, 8)
	strong := 0
	for _, a := range line.Accents {
		if a {
			strong++
		}
	}
	assert.Positive(t, strong)
	assert.Less(t, strong, 8)
}

func TestPatternSeedsFromTierTemplate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = StrategyPattern
	cfg.Templates = Templates{TierAdvanced: {{Up, Down, Left, Right}}}
	g := NewGenerator(cfg, rand.New(rand.NewPCG(9, 9)))

	seq := g.Generate(6, 5)
	assert.Equal(t, Sequence{Up, Down, Left, Right}, seq[:4])
	assert.False(t, seq.HasAdjacentRepeat())
}

func TestPatternDegradesWithoutTemplates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = StrategyPattern
	cfg.Templates = Templates{}
	g := NewGenerator(cfg, rand.New(rand.NewPCG(2, 3)))

	for i := 0; i < 50; i++ {
		seq := g.Generate(6, 1+i%6)
		require.Len(t, seq, 6)
		assert.False(t, seq.HasAdjacentRepeat())
	}
}

func TestHistoryBoundedFIFO(t *testing.T) {
	g := newTestGenerator(t, StrategyUniform, 21)

	var produced []Sequence
	for i := 0; i < 15; i++ {
		produced = append(produced, g.Generate(5, 1))
	}

	history := g.History()
	require.Len(t, history, 10)
	assert.Equal(t, produced[5:], history)
	assert.Equal(t, produced[14], g.Last())
}

func TestSimilarityGuardAvoidsRepeats(t *testing.T) {
	// A single two-step template makes every candidate identical before the guard runs
	cfg := DefaultConfig()
	cfg.Strategy = StrategyPattern
	cfg.Templates = Templates{TierBasic: {{Up, Down}}}
	g := NewGenerator(cfg, rand.New(rand.NewPCG(4, 4)))

	prev := g.Generate(2, 1)
	shuffledAway := 0
	for i := 0; i < 50; i++ {
		next := g.Generate(2, 1)
		if next.Similarity(prev) < cfg.SimilarityThreshold {
			shuffledAway++
		}
		require.False(t, next.HasAdjacentRepeat())
		prev = next
	}
	assert.Positive(t, shuffledAway, "guard never moved a candidate away from the previous line")
}

func TestResetClearsHistoryKeepsTemplates(t *testing.T) {
	g := newTestGenerator(t, StrategyAuto, 8)
	require.NoError(t, g.AddTemplate(TierBasic, Sequence{Left, Up}))
	g.Generate(5, 4)
	g.Generate(5, 4)

	g.Reset()

	stats := g.Stats()
	assert.Equal(t, 1, stats.Difficulty)
	assert.Zero(t, stats.HistorySize)
	assert.Zero(t, stats.LastLength)
	assert.Equal(t, 5, stats.Templates[TierBasic])
	assert.Nil(t, g.Last())
}

func TestAddTemplateValidation(t *testing.T) {
	g := newTestGenerator(t, StrategyAuto, 1)

	tests := []struct {
		name string
		tier Tier
		seq  Sequence
	}{
		{"empty", TierBasic, Sequence{}},
		{"unknown direction", TierBasic, Sequence{Up, Direction(9)}},
		{"adjacent repeat", TierIntermediate, Sequence{Up, Up, Down}},
		{"unknown tier", Tier(7), Sequence{Up, Down}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, g.AddTemplate(tt.tier, tt.seq), ErrInvalidTemplate)
		})
	}
}

func TestRandomLengthBounds(t *testing.T) {
	g := newTestGenerator(t, StrategyAuto, 13)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		n := g.RandomLength()
		require.GreaterOrEqual(t, n, 4)
		require.LessOrEqual(t, n, 8)
		seen[n] = true
	}
	assert.Len(t, seen, 5)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	bad := DefaultConfig()
	bad.MaxLength = 2
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = DefaultConfig()
	bad.SimilarityThreshold = 1.5
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)
}

func TestParseStrategyRoundTrip(t *testing.T) {
	for s := StrategyAuto; s < strategyCount; s++ {
		parsed, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	_, err := ParseStrategy("zigzag")
	assert.Error(t, err)
}

package sequence

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/arrow-rush/constants"
)

// Config tunes the generator, zero fields fall back to package defaults
type Config struct {
	MinLength int `yaml:"min_length"`
	MaxLength int `yaml:"max_length"`

	HistorySize         int     `yaml:"history_size"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	MaxShuffleAttempts  int     `yaml:"max_shuffle_attempts"`
	MaxResample         int     `yaml:"max_resample"`
	PatternChance       float64 `yaml:"pattern_chance"`

	Strategy Strategy     `yaml:"strategy"`
	Weights  WeightParams `yaml:"weights"`

	// Templates nil means built-in set; an empty tier degrades pattern lines to smart draws
	Templates Templates `yaml:"-"`
}

// DefaultConfig returns the stock generator tuning
func DefaultConfig() Config {
	return Config{
		MinLength:           constants.MinSequenceLength,
		MaxLength:           constants.MaxSequenceLength,
		HistorySize:         constants.GeneratorHistorySize,
		SimilarityThreshold: constants.SimilarityThreshold,
		MaxShuffleAttempts:  constants.MaxShuffleAttempts,
		MaxResample:         constants.MaxResampleAttempts,
		PatternChance:       constants.PatternChance,
		Strategy:            StrategyAuto,
		Weights: WeightParams{
			Repeat:       constants.RepeatWeight,
			Opposite:     constants.OppositeWeight,
			TripleRepeat: constants.TripleRepeatWeight,
		},
	}
}

// ErrInvalidConfig wraps every generator configuration failure
var ErrInvalidConfig = errors.New("invalid generator config")

// Validate checks ranges without applying defaults
func (c Config) Validate() error {
	switch {
	case c.MinLength < 1:
		return fmt.Errorf("%w: min length %d < 1", ErrInvalidConfig, c.MinLength)
	case c.MaxLength < c.MinLength:
		return fmt.Errorf("%w: max length %d < min length %d", ErrInvalidConfig, c.MaxLength, c.MinLength)
	case c.HistorySize < 1:
		return fmt.Errorf("%w: history size %d < 1", ErrInvalidConfig, c.HistorySize)
	case c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1:
		return fmt.Errorf("%w: similarity threshold %.2f outside (0,1]", ErrInvalidConfig, c.SimilarityThreshold)
	case c.PatternChance < 0 || c.PatternChance > 1:
		return fmt.Errorf("%w: pattern chance %.2f outside [0,1]", ErrInvalidConfig, c.PatternChance)
	case c.Strategy >= strategyCount:
		return fmt.Errorf("%w: %s", ErrInvalidConfig, c.Strategy)
	}
	return nil
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinLength <= 0 {
		c.MinLength = d.MinLength
	}
	if c.MaxLength < c.MinLength {
		c.MaxLength = max(d.MaxLength, c.MinLength)
	}
	if c.HistorySize <= 0 {
		c.HistorySize = d.HistorySize
	}
	if c.SimilarityThreshold <= 0 {
		c.SimilarityThreshold = d.SimilarityThreshold
	}
	if c.MaxShuffleAttempts <= 0 {
		c.MaxShuffleAttempts = d.MaxShuffleAttempts
	}
	if c.MaxResample <= 0 {
		c.MaxResample = d.MaxResample
	}
	if c.Weights == (WeightParams{}) {
		c.Weights = d.Weights
	}
	return c
}

// Stats is a read-only view of generator state
type Stats struct {
	Difficulty  int
	HistorySize int
	LastLength  int
	Templates   map[Tier]int
}

// Generator produces arrow lines with controlled randomness
// Not safe for concurrent use; owned by a single engine
type Generator struct {
	cfg        Config
	rng        *rand.Rand
	templates  Templates
	difficulty int
	history    []Sequence // FIFO, newest last
}

// NewGenerator creates a generator; a nil rng is seeded from the runtime source
func NewGenerator(cfg Config, rng *rand.Rand) *Generator {
	cfg = cfg.withDefaults()
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	templates := cfg.Templates
	if templates == nil {
		templates = DefaultTemplates()
	} else {
		templates = templates.Clone()
	}

	return &Generator{
		cfg:        cfg,
		rng:        rng,
		templates:  templates,
		difficulty: constants.StartDifficulty,
		history:    make([]Sequence, 0, cfg.HistorySize),
	}
}

// RandomLength draws a line length uniformly in [MinLength, MaxLength]
func (g *Generator) RandomLength() int {
	return g.cfg.MinLength + g.rng.IntN(g.cfg.MaxLength-g.cfg.MinLength+1)
}

// Generate returns a sequence of exactly length arrows
func (g *Generator) Generate(length, difficulty int) Sequence {
	return g.GenerateLine(length, difficulty).Steps
}

// GenerateLine produces a line, applies the similarity guard and records it in history
func (g *Generator) GenerateLine(length, difficulty int) Line {
	if length < 1 {
		length = 1
	}
	g.SetDifficulty(difficulty)

	strategy := g.resolve(g.difficulty)
	line := g.build(strategy, length)
	line.Steps = g.guard(strategy, line.Steps)

	g.push(line.Steps)
	return line
}

// Difficulty returns the current difficulty level
func (g *Generator) Difficulty() int {
	return g.difficulty
}

// SetDifficulty sets the level, clamped to at least 1
func (g *Generator) SetDifficulty(level int) {
	if level < 1 {
		level = 1
	}
	g.difficulty = level
}

// Last returns the most recently accepted sequence, nil if none
func (g *Generator) Last() Sequence {
	if len(g.history) == 0 {
		return nil
	}
	return g.history[len(g.history)-1].Clone()
}

// History returns recently accepted sequences, oldest first
func (g *Generator) History() []Sequence {
	out := make([]Sequence, len(g.history))
	for i, s := range g.history {
		out[i] = s.Clone()
	}
	return out
}

// Reset clears history and difficulty; templates are kept
func (g *Generator) Reset() {
	g.history = g.history[:0]
	g.difficulty = constants.StartDifficulty
}

// Stats reports difficulty, history size and template availability
func (g *Generator) Stats() Stats {
	lastLen := 0
	if n := len(g.history); n > 0 {
		lastLen = len(g.history[n-1])
	}
	return Stats{
		Difficulty:  g.difficulty,
		HistorySize: len(g.history),
		LastLength:  lastLen,
		Templates:   g.templates.Count(),
	}
}

// AddTemplate registers a custom seed pattern for a tier
// Templates must not repeat an arrow back to back so pattern lines stay strict
func (g *Generator) AddTemplate(tier Tier, tmpl Sequence) error {
	if tier > TierAdvanced {
		return fmt.Errorf("%w: unknown %s", ErrInvalidTemplate, tier)
	}
	if !tmpl.Valid() {
		return fmt.Errorf("%w: empty or unknown direction in %s", ErrInvalidTemplate, tmpl)
	}
	if tmpl.HasAdjacentRepeat() {
		return fmt.Errorf("%w: adjacent repeat in %s", ErrInvalidTemplate, tmpl)
	}
	g.templates[tier] = append(g.templates[tier], tmpl.Clone())
	return nil
}

// ===== STRATEGY SELECTION =====

func (g *Generator) resolve(difficulty int) Strategy {
	if g.cfg.Strategy != StrategyAuto {
		return g.cfg.Strategy
	}

	switch TierFor(difficulty) {
	case TierBasic:
		return StrategyUniform
	case TierIntermediate:
		if len(g.templates[TierIntermediate]) > 0 && g.rng.Float64() < g.cfg.PatternChance {
			return StrategyPattern
		}
		return StrategySmart
	default:
		return advancedStrategies[g.rng.IntN(len(advancedStrategies))]
	}
}

func (g *Generator) build(strategy Strategy, length int) Line {
	line := Line{Strategy: strategy}
	switch strategy {
	case StrategySmart:
		line.Steps = g.smart(length)
	case StrategyPattern:
		line.Steps = g.pattern(length, TierFor(g.difficulty))
	case StrategyMirror:
		line.Steps = g.mirror(length)
	case StrategyComplex:
		line.Steps = g.complex(length)
	case StrategyRhythm:
		line.Steps, line.Accents = g.rhythm(length)
	default:
		line.Strategy = StrategyUniform
		line.Steps = g.uniform(length)
	}
	return line
}

// ===== STRATEGIES =====

func (g *Generator) randomDirection() Direction {
	return Directions[g.rng.IntN(len(Directions))]
}

// nextDistinct resamples until the draw differs from prev, bounded, then takes the opposite
func (g *Generator) nextDistinct(prev Direction) Direction {
	for i := 0; i < g.cfg.MaxResample; i++ {
		if d := g.randomDirection(); d != prev {
			return d
		}
	}
	return prev.Opposite()
}

func (g *Generator) uniform(length int) Sequence {
	seq := make(Sequence, 0, length)
	seq = append(seq, g.randomDirection())
	for len(seq) < length {
		seq = append(seq, g.nextDistinct(seq[len(seq)-1]))
	}
	return seq
}

// smartNext draws from weights derived from partial
// When strict, a draw equal to the previous arrow is rejected (bounded)
func (g *Generator) smartNext(partial Sequence, strict bool) Direction {
	if len(partial) == 0 {
		return g.randomDirection()
	}
	prev := partial[len(partial)-1]
	w := g.cfg.Weights.For(partial)
	for i := 0; i < g.cfg.MaxResample; i++ {
		d := w.Pick(g.rng)
		if !strict || d != prev {
			return d
		}
	}
	return prev.Opposite()
}

func (g *Generator) smart(length int) Sequence {
	seq := make(Sequence, 0, length)
	for len(seq) < length {
		seq = append(seq, g.smartNext(seq, true))
	}
	return seq
}

func (g *Generator) pattern(length int, tier Tier) Sequence {
	set := g.templates[tier]
	if len(set) == 0 {
		return g.smart(length)
	}

	seed := set[g.rng.IntN(len(set))]
	seq := make(Sequence, 0, max(length, len(seed)))
	seq = append(seq, seed...)
	for len(seq) < length {
		seq = append(seq, g.smartNext(seq, true))
	}
	return seq[:length]
}

func (g *Generator) mirror(length int) Sequence {
	half := length / 2
	seq := make(Sequence, 0, length)
	for i := 0; i < half; i++ {
		seq = append(seq, g.randomDirection())
	}
	seq = appendReflection(seq, seq[:half])
	if length%2 == 1 {
		seq = append(seq, g.randomDirection())
	}
	return seq
}

// appendReflection appends the opposite of first in reverse order,
// so element i and element 2*len(first)-1-i are always opposite
func appendReflection(dst, first Sequence) Sequence {
	for i := len(first) - 1; i >= 0; i-- {
		dst = append(dst, first[i].Opposite())
	}
	return dst
}

func (g *Generator) complex(length int) Sequence {
	seq := make(Sequence, 0, length)
	for len(seq) < length && len(seq) < 2 {
		seq = append(seq, g.randomDirection())
	}
	for len(seq) < length {
		seq = append(seq, g.nextDistinct(seq[len(seq)-1]))
	}
	return seq
}

// rhythmPatterns: 1 = quick (weak), 2 = slow (strong)
var rhythmPatterns = [][]int{
	{1, 1, 2, 1},
	{2, 1, 1, 2},
	{1, 2, 1, 1},
}

func (g *Generator) rhythm(length int) (Sequence, []bool) {
	beat := rhythmPatterns[g.rng.IntN(len(rhythmPatterns))]
	seq := make(Sequence, length)
	accents := make([]bool, length)
	for i := range seq {
		seq[i] = g.randomDirection()
		accents[i] = beat[i%len(beat)] == 2
	}
	return seq, accents
}

// ===== SIMILARITY GUARD =====

// guard reshuffles a candidate that is too close to the previous line
// Shuffles breaking the strategy's structural invariant are discarded but still count as attempts
func (g *Generator) guard(strategy Strategy, seq Sequence) Sequence {
	prev := g.lastRef()
	if prev == nil {
		return seq
	}

	candidate := seq
	for attempt := 0; attempt < g.cfg.MaxShuffleAttempts; attempt++ {
		if candidate.Similarity(prev) < g.cfg.SimilarityThreshold {
			break
		}

		var shuffled Sequence
		if strategy == StrategyMirror {
			shuffled = g.reshuffleMirror(candidate)
		} else {
			shuffled = g.shuffle(candidate)
		}
		if strategy.Strict() && shuffled.HasAdjacentRepeat() {
			continue
		}
		candidate = shuffled
	}
	return candidate
}

// shuffle is a Fisher-Yates shuffle into a new slice
func (g *Generator) shuffle(seq Sequence) Sequence {
	out := seq.Clone()
	for i := len(out) - 1; i > 0; i-- {
		j := g.rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// reshuffleMirror shuffles the first half and rebuilds the reflection so the mirror holds
func (g *Generator) reshuffleMirror(seq Sequence) Sequence {
	half := len(seq) / 2
	first := g.shuffle(seq[:half])
	out := make(Sequence, 0, len(seq))
	out = append(out, first...)
	out = appendReflection(out, first)
	if len(seq)%2 == 1 {
		out = append(out, seq[len(seq)-1])
	}
	return out
}

// ===== HISTORY =====

func (g *Generator) lastRef() Sequence {
	if len(g.history) == 0 {
		return nil
	}
	return g.history[len(g.history)-1]
}

func (g *Generator) push(seq Sequence) {
	if len(g.history) >= g.cfg.HistorySize {
		copy(g.history, g.history[1:])
		g.history = g.history[:len(g.history)-1]
	}
	g.history = append(g.history, seq.Clone())
}

package constants

// Scoring
const (
	// CorrectReward is awarded per correct arrow
	CorrectReward = 10

	// LineBonus is awarded when a line is completed
	LineBonus = 50

	// ComboMilestone triggers the combo sound every N consecutive correct inputs
	ComboMilestone = 10
)

// Difficulty
const (
	// StartDifficulty is the generator difficulty at match start
	StartDifficulty = 1

	// MaxDifficulty caps the difficulty ramp
	MaxDifficulty = 6

	// LinesPerLevel is the number of completed lines per difficulty step, 0 disables the ramp
	LinesPerLevel = 5
)

// Sequence Generation
const (
	MinSequenceLength = 4
	MaxSequenceLength = 8

	// GeneratorHistorySize is the FIFO capacity of recently produced sequences
	GeneratorHistorySize = 10

	// SimilarityThreshold is the positional match fraction that triggers a reshuffle
	SimilarityThreshold = 0.6

	// MaxShuffleAttempts bounds the similarity guard
	MaxShuffleAttempts = 10

	// MaxResampleAttempts bounds every reject-and-resample loop in the generator
	MaxResampleAttempts = 16

	// PatternChance is the probability an intermediate line is seeded from a template
	PatternChance = 0.6
)

// Weighted Selection
const (
	RepeatWeight       = 0.3
	OppositeWeight     = 1.5
	TripleRepeatWeight = 0.1
)

// Rhythm Grading
const (
	// DefaultBPM is the beat grid used to grade input promptness
	DefaultBPM = 120.0
)

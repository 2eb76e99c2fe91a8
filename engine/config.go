package engine

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lixenwraith/arrow-rush/constants"
	"github.com/lixenwraith/arrow-rush/timing"
)

// ErrInvalidConfig wraps every engine configuration failure
var ErrInvalidConfig = errors.New("invalid engine config")

// Config is the caller-supplied match tuning, fixed for the engine's lifetime
type Config struct {
	MatchSeconds int `yaml:"match_seconds"`

	MinLineSeconds     int     `yaml:"min_line_seconds"`
	MaxLineSeconds     int     `yaml:"max_line_seconds"`
	LineFloorSeconds   int     `yaml:"line_floor_seconds"`
	LineSecondsPerStep int     `yaml:"line_seconds_per_step"`
	LineJitterSeconds  float64 `yaml:"line_jitter_seconds"`

	MinSequenceLength int `yaml:"min_sequence_length"`
	MaxSequenceLength int `yaml:"max_sequence_length"`

	CorrectReward int `yaml:"correct_reward"`
	LineBonus     int `yaml:"line_bonus"`

	// GradedScoring scales CorrectReward by the beat grade multiplier
	GradedScoring bool           `yaml:"graded_scoring"`
	BPM           float64        `yaml:"bpm"`
	Windows       timing.Windows `yaml:"windows"`

	CountdownInterval time.Duration `yaml:"countdown_interval"`
	NextLineDelay     time.Duration `yaml:"next_line_delay"`

	StartDifficulty int `yaml:"start_difficulty"`
	MaxDifficulty   int `yaml:"max_difficulty"`
	LinesPerLevel   int `yaml:"lines_per_level"`

	ComboMilestone int `yaml:"combo_milestone"`
}

// DefaultConfig returns the stock match rules
func DefaultConfig() Config {
	return Config{
		MatchSeconds:       constants.MatchSeconds,
		MinLineSeconds:     constants.MinLineSeconds,
		MaxLineSeconds:     constants.MaxLineSeconds,
		LineFloorSeconds:   constants.MinLineFloorSeconds,
		LineSecondsPerStep: constants.LineSecondsPerStep,
		LineJitterSeconds:  constants.LineTimeJitterSeconds,
		MinSequenceLength:  constants.MinSequenceLength,
		MaxSequenceLength:  constants.MaxSequenceLength,
		CorrectReward:      constants.CorrectReward,
		LineBonus:          constants.LineBonus,
		BPM:                constants.DefaultBPM,
		Windows:            timing.DefaultWindows(),
		CountdownInterval:  constants.CountdownInterval,
		NextLineDelay:      constants.NextLineDelay,
		StartDifficulty:    constants.StartDifficulty,
		MaxDifficulty:      constants.MaxDifficulty,
		LinesPerLevel:      constants.LinesPerLevel,
		ComboMilestone:     constants.ComboMilestone,
	}
}

// Validate checks every field; the zero Config is invalid
func (c Config) Validate() error {
	switch {
	case c.MatchSeconds < 1:
		return fmt.Errorf("%w: match seconds %d < 1", ErrInvalidConfig, c.MatchSeconds)
	case c.MinLineSeconds < 1:
		return fmt.Errorf("%w: min line seconds %d < 1", ErrInvalidConfig, c.MinLineSeconds)
	case c.MaxLineSeconds < c.MinLineSeconds:
		return fmt.Errorf("%w: max line seconds %d < min %d", ErrInvalidConfig, c.MaxLineSeconds, c.MinLineSeconds)
	case c.LineFloorSeconds < 1:
		return fmt.Errorf("%w: line floor seconds %d < 1", ErrInvalidConfig, c.LineFloorSeconds)
	case c.LineSecondsPerStep < 0:
		return fmt.Errorf("%w: line seconds per step %d < 0", ErrInvalidConfig, c.LineSecondsPerStep)
	case c.LineJitterSeconds < 0 || math.IsNaN(c.LineJitterSeconds) || math.IsInf(c.LineJitterSeconds, 0):
		return fmt.Errorf("%w: line jitter %v", ErrInvalidConfig, c.LineJitterSeconds)
	case c.MinSequenceLength < 1:
		return fmt.Errorf("%w: min sequence length %d < 1", ErrInvalidConfig, c.MinSequenceLength)
	case c.MaxSequenceLength < c.MinSequenceLength:
		return fmt.Errorf("%w: max sequence length %d < min %d", ErrInvalidConfig, c.MaxSequenceLength, c.MinSequenceLength)
	case c.CorrectReward < 0 || c.LineBonus < 0:
		return fmt.Errorf("%w: negative reward %d/%d", ErrInvalidConfig, c.CorrectReward, c.LineBonus)
	case c.BPM < 0 || math.IsNaN(c.BPM) || math.IsInf(c.BPM, 0):
		return fmt.Errorf("%w: bpm %v", ErrInvalidConfig, c.BPM)
	case c.CountdownInterval <= 0:
		return fmt.Errorf("%w: countdown interval %v", ErrInvalidConfig, c.CountdownInterval)
	case c.NextLineDelay < 0:
		return fmt.Errorf("%w: next line delay %v", ErrInvalidConfig, c.NextLineDelay)
	case c.StartDifficulty < 1:
		return fmt.Errorf("%w: start difficulty %d < 1", ErrInvalidConfig, c.StartDifficulty)
	case c.MaxDifficulty < c.StartDifficulty:
		return fmt.Errorf("%w: max difficulty %d < start %d", ErrInvalidConfig, c.MaxDifficulty, c.StartDifficulty)
	case c.LinesPerLevel < 0 || c.ComboMilestone < 0:
		return fmt.Errorf("%w: negative lines per level or combo milestone", ErrInvalidConfig)
	}
	if err := c.Windows.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// LineBudget computes the line countdown in whole seconds for length arrows
// jitter is a uniform draw in [-1, 1] scaled by LineJitterSeconds
func (c Config) LineBudget(length int, jitter float64) int {
	base := min(max(length*c.LineSecondsPerStep, c.MinLineSeconds), c.MaxLineSeconds)
	seconds := int(math.Floor(float64(base) + jitter*c.LineJitterSeconds))
	return max(seconds, c.LineFloorSeconds)
}

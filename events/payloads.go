package events

import (
	"time"

	"github.com/lixenwraith/arrow-rush/sequence"
	"github.com/lixenwraith/arrow-rush/timing"
)

// MatchStartPayload identifies a new match
type MatchStartPayload struct {
	MatchID      string
	MatchSeconds int
}

// NewLinePayload describes the line the player must reproduce
type NewLinePayload struct {
	Steps       sequence.Sequence
	Strategy    sequence.Strategy
	Accents     []bool
	LineSeconds int
	Difficulty  int
}

// CorrectPayload carries the accepted arrow and its beat grade
type CorrectPayload struct {
	Direction sequence.Direction
	Cursor    int // Cursor after advancing
	Grade     timing.Grade
	Reward    int
	Combo     int
}

// IncorrectPayload carries the rejected arrow
type IncorrectPayload struct {
	Expected sequence.Direction
	Got      sequence.Direction
	Cursor   int
}

// ComboPayload carries the consecutive-correct count at a milestone
type ComboPayload struct {
	Count int
}

// LineCompletePayload carries the completed line timing
type LineCompletePayload struct {
	Duration       time.Duration
	Bonus          int
	LinesCompleted int
}

// LevelUpPayload carries the new difficulty
type LevelUpPayload struct {
	Difficulty int
}

// TimeoutPayload carries the progress made before the line expired
type TimeoutPayload struct {
	Cursor int
	Length int
}

// ResumePayload reports whether a line was still active when play resumed
type ResumePayload struct {
	LineActive bool
}

// MatchSummary is the end-of-match report
type MatchSummary struct {
	MatchID         string    `json:"match_id"`
	Score           int       `json:"score"`
	Mistakes        int       `json:"mistakes"`
	LinesCompleted  int       `json:"lines_completed"`
	AverageLineTime float64   `json:"average_line_time"`
	LineDurations   []float64 `json:"line_durations"`
	BestCombo       int       `json:"best_combo"`
	Difficulty      int       `json:"difficulty"`
}

// AverageLineTime is the arithmetic mean of durations in seconds, 0 when empty
func AverageLineTime(durations []float64) float64 {
	if len(durations) == 0 {
		return 0
	}
	var sum float64
	for _, d := range durations {
		sum += d
	}
	return sum / float64(len(durations))
}

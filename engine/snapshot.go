package engine

import (
	"time"

	"github.com/lixenwraith/arrow-rush/events"
	"github.com/lixenwraith/arrow-rush/sequence"
	"github.com/lixenwraith/arrow-rush/timing"
)

// Feedback is the most recent player-facing signal
type Feedback struct {
	Type  events.EventType // EventNone when nothing was signalled
	Grade timing.Grade     // Only meaningful for EventCorrect
	At    time.Time
}

// Visible reports whether the feedback should still be shown at now
func (f Feedback) Visible(now time.Time, hold time.Duration) bool {
	if f.Type == events.EventNone {
		return false
	}
	// Game over stays until the next transition
	if f.Type == events.EventGameOver {
		return true
	}
	return now.Sub(f.At) < hold
}

// Snapshot is a read-only copy of match state for renderers and handlers
type Snapshot struct {
	MatchID string
	Phase   Phase

	IsPlaying bool // Running or Paused
	IsPaused  bool

	Score    int
	Mistakes int

	MatchTimeLeft int
	LineTimeLeft  int
	LineSeconds   int // Budget the current line started with

	Sequence sequence.Sequence
	Accents  []bool
	Strategy sequence.Strategy
	Cursor   int

	LineActive bool
	// AwaitingLine is set when play is running or paused with no line and no pending request
	AwaitingLine bool

	LinesCompleted int
	LineDurations  []float64

	Difficulty int
	Combo      int
	BestCombo  int

	Feedback Feedback
}

// AverageLineTime is the mean recorded line duration in seconds, 0 when none
func (s Snapshot) AverageLineTime() float64 {
	return events.AverageLineTime(s.LineDurations)
}

// Remaining returns the arrows still to enter on the active line
func (s Snapshot) Remaining() sequence.Sequence {
	if !s.LineActive || s.Cursor >= len(s.Sequence) {
		return nil
	}
	return s.Sequence[s.Cursor:]
}

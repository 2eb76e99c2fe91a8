package events

import (
	"time"
)

// EventType represents the type of match event
type EventType int

const (
	// EventNone is the zero value and is never emitted
	EventNone EventType = iota

	// EventMatchStart signals a fresh match leaving Idle
	// Trigger: Engine.Start from Idle
	// Consumer: SoundHandler, LogHandler | Payload: *MatchStartPayload
	EventMatchStart

	// EventNewLine signals a new arrow line became active
	// Trigger: Engine.RequestNewLine, delayed next-line timer
	// Consumer: LogHandler | Payload: *NewLinePayload
	EventNewLine

	// EventCorrect signals the arrow under the cursor was entered
	// Trigger: Engine.SubmitInput
	// Consumer: SoundHandler (graded tone) | Payload: *CorrectPayload
	EventCorrect

	// EventIncorrect signals a wrong arrow, cursor does not move
	// Trigger: Engine.SubmitInput
	// Consumer: SoundHandler | Payload: *IncorrectPayload
	EventIncorrect

	// EventCombo signals a consecutive-correct milestone
	// Trigger: every ComboMilestone correct inputs without a mistake
	// Consumer: SoundHandler | Payload: *ComboPayload
	EventCombo

	// EventLineComplete signals the last arrow of the line was entered
	// Trigger: Engine.SubmitInput on final arrow
	// Consumer: SoundHandler, LogHandler | Payload: *LineCompletePayload
	EventLineComplete

	// EventLevelUp signals a difficulty step
	// Trigger: LinesPerLevel completed lines | Payload: *LevelUpPayload
	EventLevelUp

	// EventTimeout signals the line countdown reached zero
	// Trigger: line countdown | Payload: *TimeoutPayload
	EventTimeout

	// EventPause signals both countdowns were suspended
	// Trigger: Engine.Pause | Payload: nil
	EventPause

	// EventResume signals countdowns were re-armed
	// Trigger: Engine.Start from Paused | Payload: *ResumePayload
	EventResume

	// EventGameOver signals the match countdown reached zero
	// Trigger: match countdown
	// Consumer: SoundHandler, LogHandler, cli | Payload: *MatchSummary
	EventGameOver

	// EventReset signals the engine returned to Idle
	// Trigger: Engine.Reset | Payload: nil
	EventReset

	eventTypeCount
)

// GameEvent represents a single match event with metadata
type GameEvent struct {
	Type      EventType
	Payload   any
	Seq       uint64 // Monotonic per engine, survives reset
	Timestamp time.Time
}

// Feedback reports whether the event is one of the player-facing feedback signals
func (t EventType) Feedback() bool {
	switch t {
	case EventCorrect, EventIncorrect, EventLineComplete, EventTimeout, EventGameOver:
		return true
	}
	return false
}

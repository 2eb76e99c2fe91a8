package constants

import "time"

// Match Defaults
const (
	// MatchSeconds is the default total match duration
	MatchSeconds = 60

	// MinLineSeconds and MaxLineSeconds clamp the base line time budget
	MinLineSeconds = 5
	MaxLineSeconds = 15

	// MinLineFloorSeconds is the lowest line budget after random perturbation
	MinLineFloorSeconds = 3

	// LineSecondsPerStep is the base time allotted per arrow in a line
	LineSecondsPerStep = 2

	// LineTimeJitterSeconds bounds the uniform perturbation applied to the line budget
	LineTimeJitterSeconds = 2.0
)

// Countdown & Transition Timing
const (
	// CountdownInterval is the period of both match and line countdowns
	CountdownInterval = time.Second

	// NextLineDelay is the pause between a finished line and the next request
	NextLineDelay = time.Second
)

// Event Loop
const (
	// LoopQueueSize is the buffered capacity of the engine loop action channel
	LoopQueueSize = 128

	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)

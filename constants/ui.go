package constants

import "time"

// Frame Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// FeedbackDisplayDuration is how long feedback text stays on screen
	FeedbackDisplayDuration = time.Second
)

// Warnings
const (
	// MatchWarningSeconds highlights the match timer at or below this value
	MatchWarningSeconds = 10

	// LineWarningSeconds highlights the line timer at or below this value
	LineWarningSeconds = 3
)

// Input Buffer
const (
	InputBufferSize   = 3
	InputBufferWindow = 200 * time.Millisecond

	// RapidInputThreshold classifies two inputs closer than this as rapid
	RapidInputThreshold = 50 * time.Millisecond
)

// Feedback Text
const (
	FeedbackCorrect  = "✓"
	FeedbackWrong    = "✗"
	FeedbackComplete = "LINE COMPLETE!"
	FeedbackTimeout  = "TIME OUT!"
	FeedbackGameOver = "GAME OVER"
)

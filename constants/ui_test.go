package constants

import "testing"

// TestLineBudgetFormula verifies the per-step budget clamps as expected across the length range
func TestLineBudgetFormula(t *testing.T) {
	tests := []struct {
		name     string
		length   int
		expected int
	}{
		{"Single arrow", 1, MinLineSeconds},
		{"Shortest line", MinSequenceLength, 8},
		{"Longest line", MaxSequenceLength, MaxLineSeconds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := min(max(tt.length*LineSecondsPerStep, MinLineSeconds), MaxLineSeconds)
			if base != tt.expected {
				t.Errorf("Expected base budget %d, got %d", tt.expected, base)
			}
		})
	}
}

// TestJitterNeverHitsFloorUnexpectedly verifies the floor is only reached at the lowest jitter
func TestJitterNeverHitsFloorUnexpectedly(t *testing.T) {
	lowest := float64(MinLineSeconds) - LineTimeJitterSeconds
	if lowest < MinLineFloorSeconds {
		t.Errorf("Lowest jittered budget %.1f is below the floor %d", lowest, MinLineFloorSeconds)
	}
}

func TestEventBufferMask(t *testing.T) {
	if EventQueueSize&(EventQueueSize-1) != 0 {
		t.Fatalf("EventQueueSize %d must be a power of two", EventQueueSize)
	}
	if EventBufferMask != EventQueueSize-1 {
		t.Errorf("Expected mask %d, got %d", EventQueueSize-1, EventBufferMask)
	}
}

func TestUITimingOrdering(t *testing.T) {
	if FrameUpdateInterval >= FeedbackDisplayDuration {
		t.Errorf("Frame interval %v must be shorter than feedback hold %v", FrameUpdateInterval, FeedbackDisplayDuration)
	}
	if RapidInputThreshold >= InputBufferWindow {
		t.Errorf("Rapid threshold %v must fit inside the buffer window %v", RapidInputThreshold, InputBufferWindow)
	}
	if MatchWarningSeconds >= MatchSeconds {
		t.Errorf("Match warning %ds must be below the match length %ds", MatchWarningSeconds, MatchSeconds)
	}
	if LineWarningSeconds > MinLineFloorSeconds {
		t.Errorf("Line warning %ds should not exceed the shortest line %ds", LineWarningSeconds, MinLineFloorSeconds)
	}
	if NextLineDelay < CountdownInterval/2 {
		t.Errorf("Next line delay %v is too short to read feedback", NextLineDelay)
	}
}

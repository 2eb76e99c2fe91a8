package input

import (
	"github.com/lixenwraith/arrow-rush/sequence"
)

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	IntentDirection // Arrow keys, hjkl, wasd
	IntentStart     // Space, Enter: start, resume, or restart after game over
	IntentPause     // p
	IntentReset     // r
	IntentNewLine   // n: request a line while awaiting one
	IntentMute      // m
	IntentQuit      // q, Esc, Ctrl+C
	IntentResize    // Terminal resize event
)

var intentNames = [...]string{"none", "direction", "start", "pause", "reset", "new-line", "mute", "quit", "resize"}

func (t IntentType) String() string {
	if int(t) < len(intentNames) {
		return intentNames[t]
	}
	return "unknown"
}

// Intent is a decoded terminal event
type Intent struct {
	Type      IntentType
	Direction sequence.Direction // Only for IntentDirection
}

package cli

import (
	"github.com/lixenwraith/arrow-rush/engine"
	"github.com/lixenwraith/arrow-rush/input"
)

// applyIntent maps a decoded key to engine transitions; it runs on the loop goroutine
// resumeNewLine requests a line right after resuming when none is active or pending
func applyIntent(e *engine.Engine, in input.Intent, resumeNewLine bool) {
	switch in.Type {
	case input.IntentDirection:
		e.SubmitInput(in.Direction)

	case input.IntentStart:
		if e.Phase() == engine.PhaseEnded {
			e.Reset()
		}
		e.Start()
		requestIfAwaiting(e, resumeNewLine)

	case input.IntentPause:
		e.TogglePause()
		requestIfAwaiting(e, resumeNewLine)

	case input.IntentReset:
		e.Reset()

	case input.IntentNewLine:
		// Never replaces an active line
		requestIfAwaiting(e, true)
	}
}

func requestIfAwaiting(e *engine.Engine, enabled bool) {
	if !enabled || e.Phase() != engine.PhaseRunning {
		return
	}
	if e.Snapshot().AwaitingLine {
		e.RequestNewLine()
	}
}

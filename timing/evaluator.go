package timing

import (
	"math"
	"time"
)

// Clock supplies the current instant; engine time providers satisfy it
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Beat is the result of aligning an input instant to a beat grid
type Beat struct {
	Index     int64         // Nearest beat number since session start
	Expected  time.Duration // Offset of that beat from session start
	Actual    time.Duration // Offset of the input from session start
	Deviation time.Duration // |Actual - Expected|
}

// Evaluator grades inputs relative to a timing session
// State is limited to the active flag and the session start instant
type Evaluator struct {
	clock   Clock
	windows Windows

	active bool
	start  time.Time
}

// NewEvaluator creates an evaluator; a nil clock uses wall time
func NewEvaluator(clock Clock, windows Windows) *Evaluator {
	if clock == nil {
		clock = systemClock{}
	}
	return &Evaluator{
		clock:   clock,
		windows: windows,
	}
}

// Windows returns the grading windows in use
func (e *Evaluator) Windows() Windows {
	return e.windows
}

// Grade classifies a timing delta
func (e *Evaluator) Grade(delta time.Duration) Grade {
	return e.windows.Grade(delta)
}

// StartSession records the current instant as the reference and activates grading
func (e *Evaluator) StartSession() {
	e.start = e.clock.Now()
	e.active = true
}

// StopSession deactivates grading and clears the reference instant
func (e *Evaluator) StopSession() {
	e.active = false
	e.start = time.Time{}
}

// Pause deactivates grading, keeping the reference instant
func (e *Evaluator) Pause() {
	e.active = false
}

// Resume reactivates grading if a session was started
func (e *Evaluator) Resume() {
	if !e.start.IsZero() {
		e.active = true
	}
}

// Active reports whether a session is running
func (e *Evaluator) Active() bool {
	return e.active
}

// Elapsed returns time since session start, 0 when inactive
func (e *Evaluator) Elapsed() time.Duration {
	if !e.active {
		return 0
	}
	return e.clock.Now().Sub(e.start)
}

// BeatSync aligns the current instant to the nearest beat of a bpm grid
// offset shifts the grid (positive = beats land later); ok is false when inactive or bpm <= 0
func (e *Evaluator) BeatSync(bpm float64, offset time.Duration) (Beat, bool) {
	if !e.active || bpm <= 0 || math.IsNaN(bpm) || math.IsInf(bpm, 0) {
		return Beat{}, false
	}
	return NearestBeat(bpm, e.Elapsed(), offset), true
}

// GradeBeat grades the current instant against the beat grid, Miss when no session is active
func (e *Evaluator) GradeBeat(bpm float64) Grade {
	beat, ok := e.BeatSync(bpm, 0)
	if !ok {
		return Miss
	}
	return e.windows.Grade(beat.Deviation)
}

// NearestBeat is the stateless beat alignment used by Evaluator.BeatSync
func NearestBeat(bpm float64, elapsed, offset time.Duration) Beat {
	beatDuration := float64(time.Minute) / bpm
	shifted := float64(elapsed - offset)
	index := int64(math.Round(shifted / beatDuration))
	if index < 0 {
		index = 0
	}
	expected := time.Duration(float64(index)*beatDuration) + offset

	deviation := elapsed - expected
	if deviation < 0 {
		deviation = -deviation
	}
	return Beat{
		Index:     index,
		Expected:  expected,
		Actual:    elapsed,
		Deviation: deviation,
	}
}

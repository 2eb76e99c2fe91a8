package engine

import (
	"sync/atomic"

	"github.com/lixenwraith/arrow-rush/events"
	"github.com/lixenwraith/arrow-rush/status"
	"github.com/lixenwraith/arrow-rush/timing"
)

// engineStats caches registry pointers so publishing is allocation-free
type engineStats struct {
	phase   *status.AtomicString
	matchID *status.AtomicString
	playing *atomic.Bool

	score      *atomic.Int64
	mistakes   *atomic.Int64
	matchLeft  *atomic.Int64
	lineLeft   *atomic.Int64
	lines      *atomic.Int64
	difficulty *atomic.Int64
	bestCombo  *atomic.Int64

	correct   *atomic.Int64
	incorrect *atomic.Int64
	timeouts  *atomic.Int64
	grades    []*atomic.Int64 // Indexed by timing.Grade

	avgLine *status.AtomicFloat
}

func newEngineStats(reg *status.Registry) *engineStats {
	s := &engineStats{
		phase:      reg.Strings.Get("match.phase"),
		matchID:    reg.Strings.Get("match.id"),
		playing:    reg.Bools.Get("match.playing"),
		score:      reg.Ints.Get("match.score"),
		mistakes:   reg.Ints.Get("match.mistakes"),
		matchLeft:  reg.Ints.Get("match.time_left"),
		lineLeft:   reg.Ints.Get("line.time_left"),
		lines:      reg.Ints.Get("line.completed"),
		difficulty: reg.Ints.Get("match.difficulty"),
		bestCombo:  reg.Ints.Get("input.best_combo"),
		correct:    reg.Ints.Get("input.correct"),
		incorrect:  reg.Ints.Get("input.incorrect"),
		timeouts:   reg.Ints.Get("line.timeouts"),
		avgLine:    reg.Floats.Get("line.avg_seconds"),
	}
	for _, g := range timing.Grades {
		s.grades = append(s.grades, reg.Ints.Get("grade."+g.String()))
	}
	return s
}

// publishStatus mirrors match state into the registry
// Input counters are cumulative across matches and written where they change
func (e *Engine) publishStatus() {
	s := e.stats
	s.phase.Store(e.phase.String())
	s.matchID.Store(e.matchID)
	s.playing.Store(e.phase == PhaseRunning || e.phase == PhasePaused)
	s.score.Store(int64(e.score))
	s.mistakes.Store(int64(e.mistakes))
	s.matchLeft.Store(int64(e.matchLeft))
	s.lineLeft.Store(int64(e.lineLeft))
	s.lines.Store(int64(e.linesCompleted))
	s.difficulty.Store(int64(e.difficulty))
	s.bestCombo.Store(int64(e.bestCombo))
	s.avgLine.Set(events.AverageLineTime(e.durations))
}

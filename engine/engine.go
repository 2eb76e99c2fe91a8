package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/arrow-rush/events"
	"github.com/lixenwraith/arrow-rush/sequence"
	"github.com/lixenwraith/arrow-rush/status"
	"github.com/lixenwraith/arrow-rush/timing"
)

// LineSource produces arrow lines; *sequence.Generator satisfies it
type LineSource interface {
	GenerateLine(length, difficulty int) sequence.Line
	Reset()
}

// Options carries the collaborators an Engine owns or shares
type Options struct {
	Scheduler Scheduler    // Required
	Clock     timing.Clock // nil: TimeProvider
	Lines     LineSource   // nil: sequence.Generator bounded by Config lengths
	Rand      *rand.Rand   // nil: runtime-seeded PCG
	Queue     *events.EventQueue
	Status    *status.Registry
}

// ErrNoScheduler is returned when Options.Scheduler is nil
var ErrNoScheduler = errors.New("engine requires a scheduler")

// InputResult classifies what SubmitInput did
type InputResult uint8

const (
	InputIgnored InputResult = iota
	InputCorrect
	InputIncorrect
	InputLineComplete
)

// Engine is the match state machine: Idle -> Running <-> Paused -> Ended
// Single owner, not goroutine-safe; Loop serializes access for interactive play
type Engine struct {
	cfg   Config
	clock timing.Clock
	sched Scheduler
	lines LineSource
	rng   *rand.Rand
	eval  *timing.Evaluator
	queue *events.EventQueue
	stats *engineStats

	phase     Phase
	matchID   string
	score     int
	mistakes  int
	matchLeft int
	lineLeft  int

	line        sequence.Line
	cursor      int
	lineActive  bool
	lineStart   time.Time
	lineSeconds int

	linesCompleted int
	durations      []float64
	difficulty     int
	combo          int
	bestCombo      int
	feedback       Feedback

	// Timer handles; a callback whose handle no longer matches is stale and returns
	matchTimer    Timer
	lineTimer     Timer
	nextLineTimer Timer

	// Countdown deadlines; each tick is armed from the previous deadline so callback latency does not accumulate
	matchDue time.Time
	lineDue  time.Time

	eventSeq uint64
}

// New validates cfg and builds an Idle engine
func New(cfg Config, opts Options) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if opts.Scheduler == nil {
		return nil, ErrNoScheduler
	}

	clock := opts.Clock
	if clock == nil {
		clock = NewTimeProvider()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	lines := opts.Lines
	if lines == nil {
		genCfg := sequence.DefaultConfig()
		genCfg.MinLength = cfg.MinSequenceLength
		genCfg.MaxLength = cfg.MaxSequenceLength
		lines = sequence.NewGenerator(genCfg, rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64())))
	}
	queue := opts.Queue
	if queue == nil {
		queue = events.NewEventQueue()
	}
	reg := opts.Status
	if reg == nil {
		reg = status.NewRegistry()
	}

	e := &Engine{
		cfg:        cfg,
		clock:      clock,
		sched:      opts.Scheduler,
		lines:      lines,
		rng:        rng,
		eval:       timing.NewEvaluator(clock, cfg.Windows),
		queue:      queue,
		stats:      newEngineStats(reg),
		difficulty: cfg.StartDifficulty,
	}
	e.publishStatus()
	return e, nil
}

// Config returns the configuration the engine was built with
func (e *Engine) Config() Config { return e.cfg }

// Events returns the queue feedback events are pushed to
func (e *Engine) Events() *events.EventQueue { return e.queue }

// Phase returns the current state
func (e *Engine) Phase() Phase { return e.phase }

// ===== TRANSITIONS =====

// Start begins a match from Idle or resumes from Paused; no-op otherwise
func (e *Engine) Start() {
	switch e.phase {
	case PhaseIdle:
		e.clearMatch()
		e.matchID = uuid.NewString()
		e.matchLeft = e.cfg.MatchSeconds
		e.phase = PhaseRunning
		e.armMatch(e.clock.Now())
		e.emit(events.EventMatchStart, &events.MatchStartPayload{
			MatchID:      e.matchID,
			MatchSeconds: e.cfg.MatchSeconds,
		})
		e.RequestNewLine()

	case PhasePaused:
		e.phase = PhaseRunning
		now := e.clock.Now()
		e.armMatch(now)
		if e.lineActive {
			e.eval.Resume()
			e.armLine(now)
		}
		e.emit(events.EventResume, &events.ResumePayload{LineActive: e.lineActive})
	}
	e.publishStatus()
}

// Pause suspends both countdowns and drops a pending next-line request; only while Running
func (e *Engine) Pause() {
	if e.phase != PhaseRunning {
		return
	}
	e.cancelTimers()
	e.eval.Pause()
	e.phase = PhasePaused
	e.emit(events.EventPause, nil)
	e.publishStatus()
}

// TogglePause pauses a running match or resumes a paused one
func (e *Engine) TogglePause() {
	switch e.phase {
	case PhaseRunning:
		e.Pause()
	case PhasePaused:
		e.Start()
	}
}

// RequestNewLine generates and activates the next line; ignored unless Running
func (e *Engine) RequestNewLine() {
	if e.phase != PhaseRunning {
		return
	}
	stopTimer(&e.nextLineTimer)
	stopTimer(&e.lineTimer)

	length := e.cfg.MinSequenceLength + e.rng.IntN(e.cfg.MaxSequenceLength-e.cfg.MinSequenceLength+1)
	e.line = e.lines.GenerateLine(length, e.difficulty)
	// Sources may clamp or pad; the budget follows what was actually produced
	e.lineSeconds = e.cfg.LineBudget(len(e.line.Steps), e.rng.Float64()*2-1)
	e.lineLeft = e.lineSeconds
	e.cursor = 0
	e.lineActive = len(e.line.Steps) > 0
	e.lineStart = e.clock.Now()

	if e.lineActive {
		e.eval.StartSession()
		e.armLine(e.lineStart)
	}
	e.emit(events.EventNewLine, &events.NewLinePayload{
		Steps:       e.line.Steps.Clone(),
		Strategy:    e.line.Strategy,
		Accents:     slices.Clone(e.line.Accents),
		LineSeconds: e.lineSeconds,
		Difficulty:  e.difficulty,
	})
	e.publishStatus()
}

// SubmitInput compares dir with the arrow under the cursor
// Ignored unless Running with an active line
func (e *Engine) SubmitInput(dir sequence.Direction) InputResult {
	if e.phase != PhaseRunning || !e.lineActive || !dir.Valid() {
		return InputIgnored
	}

	expected := e.line.Steps[e.cursor]
	if dir != expected {
		e.mistakes++
		e.combo = 0
		e.stats.incorrect.Add(1)
		e.signal(events.EventIncorrect, timing.Miss, &events.IncorrectPayload{
			Expected: expected,
			Got:      dir,
			Cursor:   e.cursor,
		})
		e.publishStatus()
		return InputIncorrect
	}

	grade := timing.Perfect
	if e.cfg.BPM > 0 {
		grade = e.eval.GradeBeat(e.cfg.BPM)
	}
	reward := e.cfg.CorrectReward
	if e.cfg.GradedScoring {
		reward = int(float64(reward)*grade.Multiplier() + 0.5)
	}

	e.score += reward
	e.cursor++
	e.combo++
	e.bestCombo = max(e.bestCombo, e.combo)
	e.stats.correct.Add(1)
	e.stats.grades[grade].Add(1)
	e.signal(events.EventCorrect, grade, &events.CorrectPayload{
		Direction: dir,
		Cursor:    e.cursor,
		Grade:     grade,
		Reward:    reward,
		Combo:     e.combo,
	})
	if e.cfg.ComboMilestone > 0 && e.combo%e.cfg.ComboMilestone == 0 {
		e.emit(events.EventCombo, &events.ComboPayload{Count: e.combo})
	}

	if e.cursor == len(e.line.Steps) {
		e.completeLine()
		e.publishStatus()
		return InputLineComplete
	}
	e.publishStatus()
	return InputCorrect
}

// Reset cancels every timer and returns to a zeroed Idle state from any phase
func (e *Engine) Reset() {
	e.cancelTimers()
	e.eval.StopSession()
	e.clearMatch()
	e.lines.Reset()
	e.phase = PhaseIdle
	e.emit(events.EventReset, nil)
	e.publishStatus()
}

// ===== LINE LIFECYCLE =====

func (e *Engine) completeLine() {
	duration := e.clock.Now().Sub(e.lineStart)
	e.durations = append(e.durations, duration.Seconds())
	e.score += e.cfg.LineBonus
	e.linesCompleted++
	e.lineActive = false
	stopTimer(&e.lineTimer)
	e.eval.StopSession()

	e.signal(events.EventLineComplete, timing.Perfect, &events.LineCompletePayload{
		Duration:       duration,
		Bonus:          e.cfg.LineBonus,
		LinesCompleted: e.linesCompleted,
	})

	if e.cfg.LinesPerLevel > 0 && e.linesCompleted%e.cfg.LinesPerLevel == 0 && e.difficulty < e.cfg.MaxDifficulty {
		e.difficulty++
		e.emit(events.EventLevelUp, &events.LevelUpPayload{Difficulty: e.difficulty})
	}

	e.scheduleNextLine()
}

func (e *Engine) timeoutLine() {
	e.mistakes++
	e.combo = 0
	e.lineActive = false
	e.eval.StopSession()
	e.stats.timeouts.Add(1)

	e.signal(events.EventTimeout, timing.Miss, &events.TimeoutPayload{
		Cursor: e.cursor,
		Length: len(e.line.Steps),
	})
	e.scheduleNextLine()
}

// scheduleNextLine requests a line after NextLineDelay if still Running at that moment
// Pause cancels the request; it is not replayed on resume
func (e *Engine) scheduleNextLine() {
	var t Timer
	t = e.sched.AfterFunc(e.cfg.NextLineDelay, func() {
		if e.nextLineTimer != t {
			return
		}
		e.nextLineTimer = nil
		if e.phase != PhaseRunning {
			return
		}
		e.RequestNewLine()
	})
	e.nextLineTimer = t
}

func (e *Engine) endMatch() {
	e.cancelTimers()
	e.eval.StopSession()
	e.lineActive = false
	e.matchLeft = 0
	e.phase = PhaseEnded

	summary := e.Summary()
	e.signal(events.EventGameOver, timing.Miss, &summary)
	e.publishStatus()
}

// ===== COUNTDOWNS =====

// armMatch schedules the next match tick one interval after from
func (e *Engine) armMatch(from time.Time) {
	stopTimer(&e.matchTimer)
	e.matchDue = from.Add(e.cfg.CountdownInterval)
	var t Timer
	t = e.sched.AfterFunc(max(e.matchDue.Sub(e.clock.Now()), 0), func() {
		if e.matchTimer != t {
			return
		}
		e.matchTimer = nil
		if e.phase != PhaseRunning {
			return
		}
		e.matchLeft--
		if e.matchLeft <= 0 {
			e.endMatch()
			return
		}
		e.armMatch(e.matchDue)
		e.publishStatus()
	})
	e.matchTimer = t
}

func (e *Engine) armLine(from time.Time) {
	stopTimer(&e.lineTimer)
	e.lineDue = from.Add(e.cfg.CountdownInterval)
	var t Timer
	t = e.sched.AfterFunc(max(e.lineDue.Sub(e.clock.Now()), 0), func() {
		if e.lineTimer != t {
			return
		}
		e.lineTimer = nil
		if e.phase != PhaseRunning || !e.lineActive {
			return
		}
		e.lineLeft--
		if e.lineLeft <= 0 {
			e.lineLeft = 0
			e.timeoutLine()
		} else {
			e.armLine(e.lineDue)
		}
		e.publishStatus()
	})
	e.lineTimer = t
}

func (e *Engine) cancelTimers() {
	stopTimer(&e.matchTimer)
	stopTimer(&e.lineTimer)
	stopTimer(&e.nextLineTimer)
}

// stopTimer stops and clears a handle so an already-queued callback sees itself as stale
func stopTimer(t *Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}

// ===== STATE =====

func (e *Engine) clearMatch() {
	e.matchID = ""
	e.score = 0
	e.mistakes = 0
	e.matchLeft = 0
	e.lineLeft = 0
	e.line = sequence.Line{}
	e.cursor = 0
	e.lineActive = false
	e.lineStart = time.Time{}
	e.matchDue = time.Time{}
	e.lineDue = time.Time{}
	e.lineSeconds = 0
	e.linesCompleted = 0
	e.durations = nil
	e.difficulty = e.cfg.StartDifficulty
	e.combo = 0
	e.bestCombo = 0
	e.feedback = Feedback{}
}

// Snapshot returns a deep copy of the current match state
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		MatchID:        e.matchID,
		Phase:          e.phase,
		IsPlaying:      e.phase == PhaseRunning || e.phase == PhasePaused,
		IsPaused:       e.phase == PhasePaused,
		Score:          e.score,
		Mistakes:       e.mistakes,
		MatchTimeLeft:  e.matchLeft,
		LineTimeLeft:   e.lineLeft,
		LineSeconds:    e.lineSeconds,
		Sequence:       e.line.Steps.Clone(),
		Accents:        slices.Clone(e.line.Accents),
		Strategy:       e.line.Strategy,
		Cursor:         e.cursor,
		LineActive:     e.lineActive,
		AwaitingLine:   e.awaitingLine(),
		LinesCompleted: e.linesCompleted,
		LineDurations:  slices.Clone(e.durations),
		Difficulty:     e.difficulty,
		Combo:          e.combo,
		BestCombo:      e.bestCombo,
		Feedback:       e.feedback,
	}
}

func (e *Engine) awaitingLine() bool {
	if e.phase != PhaseRunning && e.phase != PhasePaused {
		return false
	}
	return !e.lineActive && e.nextLineTimer == nil
}

// Summary reports the match totals; valid in any phase
func (e *Engine) Summary() events.MatchSummary {
	return events.MatchSummary{
		MatchID:         e.matchID,
		Score:           e.score,
		Mistakes:        e.mistakes,
		LinesCompleted:  e.linesCompleted,
		AverageLineTime: events.AverageLineTime(e.durations),
		LineDurations:   slices.Clone(e.durations),
		BestCombo:       e.bestCombo,
		Difficulty:      e.difficulty,
	}
}

// ===== EVENTS =====

func (e *Engine) emit(t events.EventType, payload any) {
	e.eventSeq++
	e.queue.Push(events.GameEvent{
		Type:      t,
		Payload:   payload,
		Seq:       e.eventSeq,
		Timestamp: e.clock.Now(),
	})
}

// signal emits a feedback event and records it for the snapshot
func (e *Engine) signal(t events.EventType, grade timing.Grade, payload any) {
	e.feedback = Feedback{Type: t, Grade: grade, At: e.clock.Now()}
	e.emit(t, payload)
}

package engine

import (
	"time"
)

// Timer is a cancellable handle returned by Scheduler.AfterFunc
type Timer interface {
	// Stop prevents the callback from running if it has not fired yet
	// Reports whether the call stopped the timer
	Stop() bool
}

// Scheduler runs callbacks after a delay on the engine's owning goroutine
// Implementations never run a callback concurrently with another engine call
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// ===== MANUAL SCHEDULER =====

// ManualScheduler fires timers against a MockTimeProvider when told to advance
// Single-threaded; callbacks run synchronously inside Advance/Step
type ManualScheduler struct {
	clock  *MockTimeProvider
	timers []*manualTimer
	seq    uint64
}

type manualTimer struct {
	at      time.Time
	seq     uint64
	fn      func()
	owner   *ManualScheduler
	stopped bool
	fired   bool
}

// NewManualScheduler creates a scheduler driving clock; a nil clock starts at the Unix epoch
func NewManualScheduler(clock *MockTimeProvider) *ManualScheduler {
	if clock == nil {
		clock = NewMockTimeProvider(time.Unix(0, 0))
	}
	return &ManualScheduler{clock: clock}
}

// Clock returns the virtual clock the scheduler advances
func (s *ManualScheduler) Clock() *MockTimeProvider {
	return s.clock
}

// Now returns the current virtual time
func (s *ManualScheduler) Now() time.Time {
	return s.clock.Now()
}

// AfterFunc schedules fn at now+d; timers with equal deadlines fire in scheduling order
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &manualTimer{
		at:    s.clock.Now().Add(d),
		seq:   s.seq,
		fn:    fn,
		owner: s,
	}
	s.timers = append(s.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.owner.remove(t)
	return true
}

// Pending returns the number of armed timers
func (s *ManualScheduler) Pending() int {
	return len(s.timers)
}

// NextDeadline returns the earliest armed deadline
func (s *ManualScheduler) NextDeadline() (time.Time, bool) {
	t := s.next()
	if t == nil {
		return time.Time{}, false
	}
	return t.at, true
}

// Advance moves virtual time forward by d, firing every timer due on the way
// Timers armed by callbacks fire too if their deadline falls inside the window
// Returns the number of callbacks run
func (s *ManualScheduler) Advance(d time.Duration) int {
	target := s.clock.Now().Add(d)
	fired := 0
	for {
		t := s.next()
		if t == nil || t.at.After(target) {
			break
		}
		s.fire(t)
		fired++
	}
	s.clock.SetTime(target)
	return fired
}

// Step jumps to the next deadline and fires that single timer
func (s *ManualScheduler) Step() bool {
	t := s.next()
	if t == nil {
		return false
	}
	s.fire(t)
	return true
}

func (s *ManualScheduler) fire(t *manualTimer) {
	s.remove(t)
	t.fired = true
	if t.at.After(s.clock.Now()) {
		s.clock.SetTime(t.at)
	}
	t.fn()
}

func (s *ManualScheduler) next() *manualTimer {
	var best *manualTimer
	for _, t := range s.timers {
		if best == nil || t.at.Before(best.at) || (t.at.Equal(best.at) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *ManualScheduler) remove(t *manualTimer) {
	for i, x := range s.timers {
		if x == t {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}

package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/arrow-rush/constants"
	"github.com/lixenwraith/arrow-rush/core"
	"github.com/lixenwraith/arrow-rush/events"
	"github.com/lixenwraith/arrow-rush/sequence"
)

// Loop owns an Engine on a single goroutine
// Inputs, commands and timer fires are queued FIFO and applied in arrival order
// After each action pending events are dispatched and a snapshot is published
type Loop struct {
	actions chan func(*Engine)
	updates chan struct{}

	snapshot atomic.Pointer[Snapshot]
	handlers []events.Handler[Snapshot]

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewLoop creates a stopped loop
func NewLoop() *Loop {
	l := &Loop{
		actions:  make(chan func(*Engine), constants.LoopQueueSize),
		updates:  make(chan struct{}, 1),
		stopChan: make(chan struct{}),
	}
	l.snapshot.Store(&Snapshot{})
	return l
}

// Scheduler returns a Scheduler whose callbacks run on the loop goroutine
func (l *Loop) Scheduler() Scheduler {
	return &LoopScheduler{loop: l}
}

// RegisterEventHandler adds an event handler, must be called before Start
func (l *Loop) RegisterEventHandler(h events.Handler[Snapshot]) {
	l.handlers = append(l.handlers, h)
}

// Start takes ownership of eng and begins processing; later calls are ignored
// eng must have been built with this loop's Scheduler
func (l *Loop) Start(eng *Engine) {
	if !l.running.CompareAndSwap(false, true) {
		return
	}
	router := events.NewRouter[Snapshot](eng.Events())
	for _, h := range l.handlers {
		router.Register(h)
	}
	l.publish(eng, router)

	l.wg.Add(1)
	core.Go(func() { l.run(eng, router) })
}

// Stop halts the loop; queued actions are discarded
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
		l.wg.Wait()
	})
}

// Do queues fn to run against the engine; false if the loop has stopped
func (l *Loop) Do(fn func(*Engine)) bool {
	select {
	case <-l.stopChan:
		return false
	default:
	}
	select {
	case l.actions <- fn:
		return true
	case <-l.stopChan:
		return false
	}
}

// Submit queues a direction input
func (l *Loop) Submit(dir sequence.Direction) bool {
	return l.Do(func(e *Engine) { e.SubmitInput(dir) })
}

// Snapshot returns the last published state; safe from any goroutine
func (l *Loop) Snapshot() Snapshot {
	return *l.snapshot.Load()
}

// Updates signals after each published snapshot; coalesced, capacity one
func (l *Loop) Updates() <-chan struct{} {
	return l.updates
}

func (l *Loop) run(eng *Engine, router *events.Router[Snapshot]) {
	defer l.wg.Done()
	for {
		select {
		case <-l.stopChan:
			return
		case fn := <-l.actions:
			fn(eng)
			l.publish(eng, router)
		}
	}
}

func (l *Loop) publish(eng *Engine, router *events.Router[Snapshot]) {
	snap := eng.Snapshot()
	l.snapshot.Store(&snap)
	router.DispatchAll(snap)

	select {
	case l.updates <- struct{}{}:
	default:
	}
}

// ===== LOOP SCHEDULER =====

// LoopScheduler arms wall-clock timers that post their callback into the loop
type LoopScheduler struct {
	loop *Loop
}

func (s *LoopScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, func() {
		s.loop.Do(func(*Engine) { fn() })
	})
}

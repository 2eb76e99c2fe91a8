package engine

import (
	"bytes"
	"log"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/arrow-rush/events"
	"github.com/lixenwraith/arrow-rush/sequence"
)

// recorder collects dispatched event types; safe to read after a loop barrier
type recorder struct {
	mu    sync.Mutex
	types []events.EventType
	last  Snapshot
}

func (r *recorder) EventTypes() []events.EventType { return events.AllTypes() }

func (r *recorder) HandleEvent(snap Snapshot, ev events.GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, ev.Type)
	r.last = snap
}

func (r *recorder) seen() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.EventType(nil), r.types...)
}

// barrier blocks until every action queued before it has been applied
func barrier(t *testing.T, l *Loop) {
	t.Helper()
	done := make(chan struct{})
	require.True(t, l.Do(func(*Engine) { close(done) }))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not drain")
	}
}

func TestLoopProcessesInArrivalOrder(t *testing.T) {
	sched := NewManualScheduler(nil)
	cfg := DefaultConfig()
	cfg.LineJitterSeconds = 0
	eng, err := New(cfg, Options{
		Scheduler: sched,
		Clock:     sched.Clock(),
		Lines:     &scriptedLines{lines: []sequence.Sequence{udlr}},
		Rand:      rand.New(rand.NewPCG(3, 4)),
	})
	require.NoError(t, err)

	l := NewLoop()
	rec := &recorder{}
	l.RegisterEventHandler(rec)
	l.Start(eng)
	defer l.Stop()

	l.Do(func(e *Engine) { e.Start() })
	l.Submit(sequence.Up)
	l.Submit(sequence.Left)
	// A countdown tick queued between inputs is applied in arrival order
	l.Do(func(*Engine) { sched.Advance(time.Second) })
	l.Submit(sequence.Down)
	barrier(t, l)

	snap := l.Snapshot()
	assert.Equal(t, 20, snap.Score)
	assert.Equal(t, 1, snap.Mistakes)
	assert.Equal(t, 2, snap.Cursor)
	assert.Equal(t, 59, snap.MatchTimeLeft)
	assert.Equal(t, 7, snap.LineTimeLeft)

	assert.Equal(t, []events.EventType{
		events.EventMatchStart, events.EventNewLine,
		events.EventCorrect, events.EventIncorrect, events.EventCorrect,
	}, rec.seen())

	select {
	case <-l.Updates():
	default:
		t.Fatal("no update signalled")
	}
}

func TestLoopWithWallClockTimers(t *testing.T) {
	l := NewLoop()
	cfg := DefaultConfig()
	cfg.MatchSeconds = 3
	cfg.CountdownInterval = 5 * time.Millisecond
	cfg.NextLineDelay = time.Millisecond
	eng, err := New(cfg, Options{Scheduler: l.Scheduler()})
	require.NoError(t, err)

	rec := &recorder{}
	l.RegisterEventHandler(rec)
	l.Start(eng)
	defer l.Stop()

	l.Do(func(e *Engine) { e.Start() })
	require.Eventually(t, func() bool {
		return l.Snapshot().Phase == PhaseEnded
	}, 2*time.Second, time.Millisecond)

	seen := rec.seen()
	require.NotEmpty(t, seen)
	assert.Equal(t, events.EventMatchStart, seen[0])
	assert.Contains(t, seen, events.EventGameOver)
}

func TestLoopStopRejectsActions(t *testing.T) {
	l := NewLoop()
	eng, err := New(DefaultConfig(), Options{Scheduler: l.Scheduler()})
	require.NoError(t, err)
	l.Start(eng)
	l.Stop()
	l.Stop()

	assert.False(t, l.Do(func(e *Engine) { e.Start() }))
	assert.False(t, l.Submit(sequence.Up))
	assert.Equal(t, PhaseIdle, l.Snapshot().Phase)
}

func TestLogHandlerFormatsEvents(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHandler(log.New(&buf, "", 0))

	h.HandleEvent(Snapshot{MatchID: "0123456789abcdef"}, events.GameEvent{
		Type: events.EventIncorrect,
		Seq:  7,
		Payload: &events.IncorrectPayload{
			Expected: sequence.Up,
			Got:      sequence.Left,
			Cursor:   2,
		},
	})
	h.HandleEvent(Snapshot{}, events.GameEvent{Type: events.EventPause, Seq: 8})

	assert.Equal(t,
		"match=01234567 seq=7 event=incorrect expected=up got=left cursor=2\n"+
			"match=- seq=8 event=pause \n",
		buf.String())
	assert.Len(t, h.EventTypes(), len(events.AllTypes()))
}

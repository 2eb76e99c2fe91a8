package status

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricMapCachesPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get("match.score")
	b := r.Ints.Get("match.score")
	require.Same(t, a, b)

	a.Store(90)
	assert.Equal(t, int64(90), r.Ints.Get("match.score").Load())
	assert.True(t, r.Ints.Has("match.score"))
	assert.False(t, r.Ints.Has("match.mistakes"))
}

func TestRegistrySnapshotSorted(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("match.score").Store(120)
	r.Floats.Get("line.avg_seconds").Set(2.346)
	r.Strings.Get("match.phase").Store("running")
	r.Bools.Get("match.playing").Store(true)

	assert.Equal(t, 4, r.TotalCount())
	assert.Equal(t, []Metric{
		{"line.avg_seconds", "2.35"},
		{"match.phase", "running"},
		{"match.playing", "true"},
		{"match.score", "120"},
	}, r.Snapshot())
}

func TestAtomicFloatConcurrentAdd(t *testing.T) {
	var f AtomicFloat
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()
	assert.InDelta(t, 400.0, f.Get(), 1e-9)
}

func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	assert.Empty(t, s.Load())
	s.Store("0123456789012345678901234567890123456789")
	assert.Len(t, s.Load(), MaxStringLen)
}

package input

import (
	"time"

	"github.com/lixenwraith/arrow-rush/constants"
	"github.com/lixenwraith/arrow-rush/sequence"
)

// Press is a timestamped direction input
type Press struct {
	Direction sequence.Direction
	At        time.Time
}

// Buffer keeps the most recent direction presses inside a sliding window
// Not safe for concurrent use; owned by the terminal event loop
type Buffer struct {
	size   int
	window time.Duration
	rapid  time.Duration
	items  []Press
	rapids int
}

// NewBuffer creates a buffer; non-positive arguments use the defaults
func NewBuffer(size int, window, rapid time.Duration) *Buffer {
	if size <= 0 {
		size = constants.InputBufferSize
	}
	if window <= 0 {
		window = constants.InputBufferWindow
	}
	if rapid <= 0 {
		rapid = constants.RapidInputThreshold
	}
	return &Buffer{
		size:   size,
		window: window,
		rapid:  rapid,
		items:  make([]Press, 0, size),
	}
}

// Push records a press and reports whether it followed the previous one faster than the rapid threshold
func (b *Buffer) Push(d sequence.Direction, at time.Time) bool {
	b.expire(at)

	rapid := false
	if n := len(b.items); n > 0 && at.Sub(b.items[n-1].At) < b.rapid {
		rapid = true
		b.rapids++
	}

	if len(b.items) == b.size {
		copy(b.items, b.items[1:])
		b.items = b.items[:b.size-1]
	}
	b.items = append(b.items, Press{Direction: d, At: at})
	return rapid
}

// Recent returns presses still inside the window at now, oldest first
func (b *Buffer) Recent(now time.Time) []Press {
	b.expire(now)
	return append([]Press(nil), b.items...)
}

// RapidCount returns how many rapid presses were seen since the last Clear
func (b *Buffer) RapidCount() int {
	return b.rapids
}

// Clear drops every press and the rapid counter
func (b *Buffer) Clear() {
	b.items = b.items[:0]
	b.rapids = 0
}

func (b *Buffer) expire(now time.Time) {
	i := 0
	for i < len(b.items) && now.Sub(b.items[i].At) > b.window {
		i++
	}
	if i > 0 {
		b.items = append(b.items[:0], b.items[i:]...)
	}
}

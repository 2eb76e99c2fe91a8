package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/arrow-rush/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.position >= o.duration {
		return 0, false
	}
	for i := range samples {
		if o.position >= o.duration {
			return i, true
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveTriangle:
			val = 1.0 - 4.0*math.Abs(o.phase-0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	releaseStart   int
	totalSamples   int
}

// NewEnvelope shapes s over duration; attack and release are clipped to fit
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		releaseStart:   total - rel,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		switch {
		case e.position >= e.totalSamples:
			vol = 0
		case e.position < e.attackSamples:
			vol = float64(e.position) / float64(e.attackSamples)
		case e.position >= e.releaseStart && e.releaseSamples > 0:
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain; math.Log2(0) is -Inf so zero gain is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// ===== TONES =====

// Note is one tone of a cue, delayed by Offset from the cue start
type Note struct {
	Freq     float64
	Duration time.Duration
	Wave     WaveType
	Offset   time.Duration
}

// Streamer renders the note with attack/release shaping
func (n Note) Streamer(rate beep.SampleRate) beep.Streamer {
	osc := n.source(rate)
	release := time.Duration(float64(n.Duration) * constants.ToneReleaseRatio)
	shaped := NewEnvelope(osc, n.Duration, constants.ToneAttack, release, rate)
	if n.Offset <= 0 {
		return shaped
	}
	return beep.Seq(beep.Silence(rate.N(n.Offset)), shaped)
}

// source prefers beep's sine generator; it rejects frequencies at or above Nyquist
func (n Note) source(rate beep.SampleRate) beep.Streamer {
	if n.Wave == WaveSine {
		if sine, err := generators.SineTone(rate, n.Freq); err == nil {
			return beep.Take(rate.N(n.Duration), sine)
		}
	}
	return NewOscillator(n.Freq, n.Duration, n.Wave, rate)
}

// End is the instant the note finishes relative to the cue start
func (n Note) End() time.Duration {
	return n.Offset + n.Duration
}

// Phrase is a set of possibly overlapping notes
type Phrase []Note

// Duration is the end of the latest note
func (p Phrase) Duration() time.Duration {
	var d time.Duration
	for _, n := range p {
		d = max(d, n.End())
	}
	return d
}

// Streamer mixes every note at gain
func (p Phrase) Streamer(rate beep.SampleRate, gain float64) beep.Streamer {
	if len(p) == 0 {
		return nil
	}
	parts := make([]beep.Streamer, len(p))
	for i, n := range p {
		parts[i] = n.Streamer(rate)
	}
	// Overlapping notes would clip at full scale
	perNote := 1.0 / math.Sqrt(float64(len(p)))
	return newVolume(newVolume(beep.Mix(parts...), perNote), gain)
}

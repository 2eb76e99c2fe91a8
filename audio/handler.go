package audio

import (
	"sync/atomic"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/arrow-rush/engine"
	"github.com/lixenwraith/arrow-rush/events"
)

// SoundHandler turns match events into cues
// Runs on the engine loop; mute may be toggled from any goroutine
type SoundHandler struct {
	out   Output
	cfg   Config
	rate  beep.SampleRate
	muted atomic.Bool
}

// NewSoundHandler renders cues at cfg's rate and volumes into out
func NewSoundHandler(out Output, cfg Config) *SoundHandler {
	h := &SoundHandler{
		out:  out,
		cfg:  cfg,
		rate: beep.SampleRate(cfg.SampleRate),
	}
	h.muted.Store(!cfg.Enabled)
	return h
}

// ToggleMute flips mute and returns the new state
func (h *SoundHandler) ToggleMute() bool {
	for {
		old := h.muted.Load()
		if h.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Muted reports whether cues are suppressed
func (h *SoundHandler) Muted() bool {
	return h.muted.Load()
}

func (h *SoundHandler) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventMatchStart,
		events.EventCorrect,
		events.EventIncorrect,
		events.EventCombo,
		events.EventLineComplete,
		events.EventLevelUp,
		events.EventTimeout,
		events.EventGameOver,
	}
}

func (h *SoundHandler) HandleEvent(_ engine.Snapshot, ev events.GameEvent) {
	if h.muted.Load() {
		return
	}
	if p := PhraseForEvent(ev); p != nil {
		h.out.Play(p.Streamer(h.rate, h.cfg.Gain()))
	}
}

// PhraseForEvent selects the notes an event should sound, nil for silent events
func PhraseForEvent(ev events.GameEvent) Phrase {
	switch ev.Type {
	case events.EventMatchStart:
		return PhraseFor(CueStart)
	case events.EventCorrect:
		if p, ok := ev.Payload.(*events.CorrectPayload); ok {
			return PhraseFor(GradeCue(p.Grade))
		}
		return PhraseFor(CueGood)
	case events.EventIncorrect:
		return PhraseFor(CueMiss)
	case events.EventCombo:
		if p, ok := ev.Payload.(*events.ComboPayload); ok {
			return ComboPhrase(p.Count)
		}
		return PhraseFor(CueCombo)
	case events.EventLineComplete:
		return PhraseFor(CueLineComplete)
	case events.EventLevelUp:
		return PhraseFor(CueLevelUp)
	case events.EventTimeout:
		return PhraseFor(CueTimeout)
	case events.EventGameOver:
		return PhraseFor(CueGameOver)
	}
	return nil
}

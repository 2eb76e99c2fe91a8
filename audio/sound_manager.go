package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/arrow-rush/constants"
)

// Output plays finished streamers
type Output interface {
	Play(s beep.Streamer)
}

// SoundManager owns the speaker and mixes every playing cue
type SoundManager struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates an uninitialized manager; Play is a no-op until Initialize succeeds
func NewSoundManager(sampleRate int) *SoundManager {
	if sampleRate <= 0 {
		sampleRate = constants.AudioSampleRate
	}
	return &SoundManager{
		rate:  beep.SampleRate(sampleRate),
		mixer: &beep.Mixer{},
	}
}

// SampleRate returns the rate streamers must be rendered at
func (sm *SoundManager) SampleRate() beep.SampleRate {
	return sm.rate
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sm.rate, sm.rate.N(constants.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Initialized reports whether the speaker is open
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Play adds s to the mixer
func (sm *SoundManager) Play(s beep.Streamer) {
	if s == nil {
		return
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Cleanup stops every sound and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

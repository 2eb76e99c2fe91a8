package constants

import "time"

// Audio Output
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// DefaultMasterVolume and DefaultSFXVolume scale every tone (0.0-1.0)
	DefaultMasterVolume = 1.0
	DefaultSFXVolume    = 0.8
)

// Tone Shaping
const (
	ToneAttack = 10 * time.Millisecond

	// ToneReleaseRatio is the fraction of a tone spent in release
	ToneReleaseRatio = 0.6

	// ArpeggioStep is the gap between arpeggio notes on a perfect hit
	ArpeggioStep = 50 * time.Millisecond
)

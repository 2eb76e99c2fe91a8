package audio

import (
	"fmt"

	"github.com/lixenwraith/arrow-rush/constants"
)

// Config controls tone synthesis and playback
type Config struct {
	Enabled      bool    `yaml:"enabled"`
	SampleRate   int     `yaml:"sample_rate"`
	MasterVolume float64 `yaml:"master_volume"`
	SFXVolume    float64 `yaml:"sfx_volume"`
}

// DefaultConfig returns audio enabled at stock volumes
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		SampleRate:   constants.AudioSampleRate,
		MasterVolume: constants.DefaultMasterVolume,
		SFXVolume:    constants.DefaultSFXVolume,
	}
}

// Validate rejects non-positive sample rates; volumes are clamped, not rejected
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("audio sample rate must be positive, got %d", c.SampleRate)
	}
	return nil
}

// Gain is the combined master and effect volume clamped to [0, 1]
func (c Config) Gain() float64 {
	return clamp01(c.MasterVolume) * clamp01(c.SFXVolume)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

package audio

import (
	"fmt"
	"time"

	"github.com/lixenwraith/arrow-rush/constants"
	"github.com/lixenwraith/arrow-rush/timing"
)

// Cue identifies a feedback sound
type Cue int

const (
	CuePerfect Cue = iota
	CueGood
	CueMiss
	CueCombo
	CueStart
	CueGameOver
	CueLineComplete
	CueTimeout
	CueLevelUp
	cueCount
)

var cueNames = [cueCount]string{
	"perfect", "good", "miss", "combo", "start", "game-over", "line-complete", "timeout", "level-up",
}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return fmt.Sprintf("cue(%d)", int(c))
	}
	return cueNames[c]
}

const ms = time.Millisecond

// basePhrases holds the fixed tone table
var basePhrases = [cueCount]Phrase{
	CuePerfect: {
		{Freq: 800, Duration: 100 * ms, Wave: WaveSine},
		{Freq: 800, Duration: 50 * ms, Wave: WaveSine, Offset: constants.ArpeggioStep},
		{Freq: 1000, Duration: 50 * ms, Wave: WaveSine, Offset: 2 * constants.ArpeggioStep},
	},
	CueGood: {{Freq: 600, Duration: 100 * ms, Wave: WaveSine}},
	CueMiss: {{Freq: 200, Duration: 200 * ms, Wave: WaveSaw}},
	CueCombo: {{Freq: 1000, Duration: 150 * ms, Wave: WaveTriangle}},
	CueStart: {{Freq: 440, Duration: 300 * ms, Wave: WaveSquare}},
	CueGameOver: {
		{Freq: 220, Duration: 500 * ms, Wave: WaveSine},
		{Freq: 180, Duration: 300 * ms, Wave: WaveSine, Offset: 200 * ms},
		{Freq: 160, Duration: 400 * ms, Wave: WaveSine, Offset: 500 * ms},
	},
	CueLineComplete: {
		{Freq: 440, Duration: 100 * ms, Wave: WaveSine},
		{Freq: 554, Duration: 100 * ms, Wave: WaveSine, Offset: 50 * ms},
		{Freq: 659, Duration: 100 * ms, Wave: WaveSine, Offset: 100 * ms},
		{Freq: 880, Duration: 100 * ms, Wave: WaveSine, Offset: 150 * ms},
	},
	CueTimeout: {
		{Freq: 400, Duration: 100 * ms, Wave: WaveSaw},
		{Freq: 350, Duration: 100 * ms, Wave: WaveSaw, Offset: 30 * ms},
		{Freq: 300, Duration: 100 * ms, Wave: WaveSaw, Offset: 60 * ms},
		{Freq: 250, Duration: 100 * ms, Wave: WaveSaw, Offset: 90 * ms},
		{Freq: 200, Duration: 100 * ms, Wave: WaveSaw, Offset: 120 * ms},
	},
	CueLevelUp: {
		{Freq: 261, Duration: 150 * ms, Wave: WaveTriangle},
		{Freq: 329, Duration: 150 * ms, Wave: WaveTriangle, Offset: 100 * ms},
		{Freq: 392, Duration: 150 * ms, Wave: WaveTriangle, Offset: 200 * ms},
		{Freq: 523, Duration: 150 * ms, Wave: WaveTriangle, Offset: 300 * ms},
	},
}

// PhraseFor returns the notes for a cue, nil for unknown cues
func PhraseFor(c Cue) Phrase {
	if c < 0 || c >= cueCount {
		return nil
	}
	return append(Phrase(nil), basePhrases[c]...)
}

// ComboPhrase layers higher tones on the combo cue as the streak grows
func ComboPhrase(count int) Phrase {
	p := PhraseFor(CueCombo)
	if count > 10 {
		p = append(p, Note{Freq: 1200, Duration: 100 * ms, Wave: WaveTriangle, Offset: 100 * ms})
	}
	if count > 20 {
		p = append(p, Note{Freq: 1400, Duration: 100 * ms, Wave: WaveTriangle, Offset: 200 * ms})
	}
	return p
}

// GradeCue maps a correct input's beat grade to its cue; off-beat hits still sound as good
func GradeCue(g timing.Grade) Cue {
	if g == timing.Perfect {
		return CuePerfect
	}
	return CueGood
}

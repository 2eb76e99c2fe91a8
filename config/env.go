package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/lixenwraith/arrow-rush/sequence"
)

// EnvPrefix namespaces every environment override
const EnvPrefix = "ARROW_RUSH_"

const defaultEnvFile = ".env"

type binding struct {
	key string
	set func(string) error
}

func intVar(p *int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*p = v
		return nil
	}
}

func floatVar(p *float64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*p = v
		return nil
	}
}

func boolVar(p *bool) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		*p = v
		return nil
	}
}

func durationVar(p *time.Duration) func(string) error {
	return func(s string) error {
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*p = v
		return nil
	}
}

func uintVar(p *uint64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return err
		}
		*p = v
		return nil
	}
}

func stringVar(p *string) func(string) error {
	return func(s string) error {
		*p = s
		return nil
	}
}

func strategyVar(p *sequence.Strategy) func(string) error {
	return func(s string) error {
		return p.UnmarshalText([]byte(s))
	}
}

// bindings lists every overridable field, keys without the prefix
func (c *Config) bindings() []binding {
	e := &c.Engine
	return []binding{
		{"MATCH_SECONDS", intVar(&e.MatchSeconds)},
		{"MIN_LINE_SECONDS", intVar(&e.MinLineSeconds)},
		{"MAX_LINE_SECONDS", intVar(&e.MaxLineSeconds)},
		{"MIN_SEQUENCE_LENGTH", intVar(&e.MinSequenceLength)},
		{"MAX_SEQUENCE_LENGTH", intVar(&e.MaxSequenceLength)},
		{"CORRECT_REWARD", intVar(&e.CorrectReward)},
		{"LINE_BONUS", intVar(&e.LineBonus)},
		{"GRADED_SCORING", boolVar(&e.GradedScoring)},
		{"BPM", floatVar(&e.BPM)},
		{"NEXT_LINE_DELAY", durationVar(&e.NextLineDelay)},
		{"START_DIFFICULTY", intVar(&e.StartDifficulty)},
		{"MAX_DIFFICULTY", intVar(&e.MaxDifficulty)},
		{"LINES_PER_LEVEL", intVar(&e.LinesPerLevel)},
		{"STRATEGY", strategyVar(&c.Sequence.Strategy)},
		{"AUDIO_ENABLED", boolVar(&c.Audio.Enabled)},
		{"MASTER_VOLUME", floatVar(&c.Audio.MasterVolume)},
		{"SFX_VOLUME", floatVar(&c.Audio.SFXVolume)},
		{"SEED", uintVar(&c.Seed)},
		{"LOG_FILE", stringVar(&c.LogFile)},
	}
}

// EnvKeys returns every recognized environment variable name
func EnvKeys() []string {
	var c Config
	bs := c.bindings()
	keys := make([]string, len(bs))
	for i, b := range bs {
		keys[i] = EnvPrefix + b.key
	}
	return keys
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	for _, b := range c.bindings() {
		raw, ok := lookup(EnvPrefix + b.key)
		if !ok || raw == "" {
			continue
		}
		if err := b.set(raw); err != nil {
			return fmt.Errorf("config: %s%s=%q: %w", EnvPrefix, b.key, raw, err)
		}
	}
	return nil
}

// readEnvFiles parses dotenv files without touching the process environment
// Later files override earlier ones
func readEnvFiles(files []string) (map[string]string, error) {
	optional := files == nil
	if optional {
		files = []string{defaultEnvFile}
	}

	out := make(map[string]string)
	for _, f := range files {
		vals, err := godotenv.Read(f)
		if err != nil {
			if optional && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("config: env file %s: %w", f, err)
		}
		for k, v := range vals {
			out[k] = v
		}
	}
	return out, nil
}

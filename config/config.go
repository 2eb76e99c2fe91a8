// Package config assembles the layered runtime configuration
//
// Precedence, lowest first: built-in defaults, YAML file, .env file,
// ARROW_RUSH_* process environment, command-line flags (applied by cli).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/arrow-rush/audio"
	"github.com/lixenwraith/arrow-rush/engine"
	"github.com/lixenwraith/arrow-rush/sequence"
)

// Config is the complete runtime configuration
type Config struct {
	Engine   engine.Config   `yaml:"engine"`
	Sequence sequence.Config `yaml:"sequence"`
	Audio    audio.Config    `yaml:"audio"`

	// Seed fixes the generator; 0 draws a random seed
	Seed uint64 `yaml:"seed"`
	// LogFile receives the standard logger; empty discards
	LogFile string `yaml:"log_file"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Engine:   engine.DefaultConfig(),
		Sequence: sequence.DefaultConfig(),
		Audio:    audio.DefaultConfig(),
	}
}

// Validate checks every section
func (c Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	if err := c.SequenceConfig().Validate(); err != nil {
		return err
	}
	if err := c.Audio.Validate(); err != nil {
		return err
	}
	return nil
}

// SequenceConfig returns the generator tuning with line lengths taken from the engine section
func (c Config) SequenceConfig() sequence.Config {
	s := c.Sequence
	s.MinLength = c.Engine.MinSequenceLength
	s.MaxLength = c.Engine.MaxSequenceLength
	return s
}

// Options selects the optional layers for Load
type Options struct {
	// File is a YAML config path; empty skips the file layer, a missing named file is an error
	File string
	// EnvFiles are dotenv files; nil tries ./.env and tolerates its absence
	EnvFiles []string
	// Lookup reads the process environment; nil uses os.LookupEnv
	Lookup func(string) (string, bool)
}

// Load applies defaults, file, dotenv and environment layers, then validates
func Load(opts Options) (Config, error) {
	cfg := Default()

	if opts.File != "" {
		if err := cfg.mergeFile(opts.File); err != nil {
			return cfg, err
		}
	}

	dotenv, err := readEnvFiles(opts.EnvFiles)
	if err != nil {
		return cfg, err
	}

	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	// Process environment wins over dotenv values
	merged := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.applyEnv(merged); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return c.Decode(data)
}

// Decode merges YAML over the current values; unknown keys are rejected
func (c *Config) Decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// Write encodes the configuration as YAML
func (c Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

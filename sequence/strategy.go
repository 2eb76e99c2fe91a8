package sequence

import (
	"fmt"
	"strings"
)

// Strategy selects how a line is generated
type Strategy uint8

const (
	// StrategyAuto picks a strategy from the difficulty tier
	StrategyAuto Strategy = iota
	// StrategyUniform draws uniformly, never repeating the previous arrow
	StrategyUniform
	// StrategySmart draws from weights biased toward alternation, never repeating
	StrategySmart
	// StrategyPattern seeds with a tier template and pads with smart draws
	StrategyPattern
	// StrategyMirror reflects a random first half into the second half
	StrategyMirror
	// StrategyComplex avoids repeats after two free leading arrows
	StrategyComplex
	// StrategyRhythm draws freely and attaches a strong/weak accent mask
	StrategyRhythm
	strategyCount
)

var strategyNames = [strategyCount]string{"auto", "uniform", "smart", "pattern", "mirror", "complex", "rhythm"}

// advancedStrategies are the techniques rolled for tier-advanced lines
var advancedStrategies = []Strategy{StrategyPattern, StrategyRhythm, StrategyComplex, StrategyMirror}

func (s Strategy) String() string {
	if s >= strategyCount {
		return fmt.Sprintf("strategy(%d)", uint8(s))
	}
	return strategyNames[s]
}

// Strict reports whether the strategy guarantees no two adjacent arrows are equal
func (s Strategy) Strict() bool {
	switch s {
	case StrategyUniform, StrategySmart, StrategyPattern:
		return true
	}
	return false
}

// ParseStrategy resolves a strategy name, case-insensitive
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range strategyNames {
		if n == name {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q (want one of %s)", name, strings.Join(strategyNames[:], ", "))
}

// MarshalText implements encoding.TextMarshaler for config files
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for config files
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

package sequence

import (
	"errors"
	"fmt"
)

// Tier groups templates by difficulty
type Tier uint8

const (
	TierBasic Tier = iota
	TierIntermediate
	TierAdvanced
)

func (t Tier) String() string {
	switch t {
	case TierBasic:
		return "basic"
	case TierIntermediate:
		return "intermediate"
	case TierAdvanced:
		return "advanced"
	}
	return fmt.Sprintf("tier(%d)", uint8(t))
}

// TierFor maps a difficulty level to its template tier
// 1-2 basic, 3-4 intermediate, 5+ advanced
func TierFor(difficulty int) Tier {
	switch {
	case difficulty >= 5:
		return TierAdvanced
	case difficulty >= 3:
		return TierIntermediate
	default:
		return TierBasic
	}
}

// Templates holds seed patterns per tier
type Templates map[Tier][]Sequence

// ErrInvalidTemplate is returned when a template is empty or holds an unknown direction
var ErrInvalidTemplate = errors.New("invalid template")

// DefaultTemplates returns a fresh copy of the built-in template set
func DefaultTemplates() Templates {
	return Templates{
		TierBasic: {
			{Up, Down},
			{Left, Right},
			{Up, Left},
			{Down, Right},
		},
		TierIntermediate: {
			{Up, Down, Up},
			{Left, Right, Left},
			{Up, Left, Down},
			{Right, Up, Right},
		},
		TierAdvanced: {
			{Up, Down, Left, Right},
			{Left, Up, Right, Down},
			{Down, Right, Up, Left},
			{Right, Down, Left, Up},
		},
	}
}

// Clone deep-copies the template set
func (t Templates) Clone() Templates {
	out := make(Templates, len(t))
	for tier, seqs := range t {
		cp := make([]Sequence, len(seqs))
		for i, s := range seqs {
			cp[i] = s.Clone()
		}
		out[tier] = cp
	}
	return out
}

// Count returns the number of templates per tier
func (t Templates) Count() map[Tier]int {
	out := make(map[Tier]int, len(t))
	for tier, seqs := range t {
		out[tier] = len(seqs)
	}
	return out
}

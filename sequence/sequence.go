package sequence

import "strings"

// Sequence is an ordered list of arrows the player must reproduce
type Sequence []Direction

// Clone returns an independent copy
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Valid reports whether the sequence is non-empty and every element is a direction
func (s Sequence) Valid() bool {
	if len(s) == 0 {
		return false
	}
	for _, d := range s {
		if !d.Valid() {
			return false
		}
	}
	return true
}

// HasAdjacentRepeat reports whether two neighbouring entries are equal
func (s Sequence) HasAdjacentRepeat() bool {
	for i := 1; i < len(s); i++ {
		if s[i] == s[i-1] {
			return true
		}
	}
	return false
}

// Similarity returns the fraction of positions where both sequences agree
// Sequences of different length (or empty) are never similar
func (s Sequence) Similarity(other Sequence) float64 {
	if len(s) == 0 || len(s) != len(other) {
		return 0
	}
	matches := 0
	for i := range s {
		if s[i] == other[i] {
			matches++
		}
	}
	return float64(matches) / float64(len(s))
}

// Equal reports element-wise equality
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Symbols renders the sequence as arrow glyphs
func (s Sequence) Symbols() string {
	var b strings.Builder
	for _, d := range s {
		b.WriteRune(d.Symbol())
	}
	return b.String()
}

func (s Sequence) String() string {
	names := make([]string, len(s))
	for i, d := range s {
		names[i] = d.String()
	}
	return "[" + strings.Join(names, " ") + "]"
}

// Line is one generated challenge: the arrows plus how they were produced
type Line struct {
	Steps    Sequence
	Strategy Strategy
	// Accents marks strong beats, set only by the rhythm strategy
	Accents []bool
}

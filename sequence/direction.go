package sequence

import (
	"fmt"
	"strings"
)

// Direction is one of the four arrow keys
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
	directionCount
)

// Directions lists all valid directions in index order
var Directions = [directionCount]Direction{Up, Down, Left, Right}

var directionNames = [directionCount]string{"up", "down", "left", "right"}

var directionSymbols = [directionCount]rune{'⬆', '⬇', '⬅', '➡'}

// Valid reports whether d is one of the four arrows
func (d Direction) Valid() bool {
	return d < directionCount
}

// Opposite returns the reflected direction (Up<->Down, Left<->Right)
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return d
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// Symbol returns the arrow glyph used by the renderer
func (d Direction) Symbol() rune {
	if !d.Valid() {
		return '?'
	}
	return directionSymbols[d]
}

// ParseDirection accepts full names and single-letter forms, case-insensitive
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

package timing

import (
	"fmt"
	"time"
)

// Grade classifies how close an input landed to its expected instant
type Grade uint8

const (
	Perfect Grade = iota
	Good
	Late
	Miss
	gradeCount
)

var gradeNames = [gradeCount]string{"perfect", "good", "late", "miss"}

var gradeMultipliers = [gradeCount]float64{1.0, 0.8, 0.5, 0.0}

func (g Grade) String() string {
	if g >= gradeCount {
		return fmt.Sprintf("grade(%d)", uint8(g))
	}
	return gradeNames[g]
}

// Multiplier returns the score multiplier for the grade, 0 for unknown grades
func (g Grade) Multiplier() float64 {
	if g >= gradeCount {
		return 0
	}
	return gradeMultipliers[g]
}

// Multiplier is the package-level form of Grade.Multiplier
func Multiplier(g Grade) float64 {
	return g.Multiplier()
}

// Grades lists every grade in order of quality
var Grades = [gradeCount]Grade{Perfect, Good, Late, Miss}

// Windows are the inclusive upper bounds of each non-miss grade
type Windows struct {
	Perfect time.Duration `yaml:"perfect"`
	Good    time.Duration `yaml:"good"`
	Max     time.Duration `yaml:"max"`
}

// DefaultWindows returns the 50/100/200ms grading windows
func DefaultWindows() Windows {
	return Windows{
		Perfect: 50 * time.Millisecond,
		Good:    100 * time.Millisecond,
		Max:     200 * time.Millisecond,
	}
}

// Grade maps a timing delta to a grade; the sign of delta is ignored
func (w Windows) Grade(delta time.Duration) Grade {
	if delta < 0 {
		delta = -delta
	}
	switch {
	case delta <= w.Perfect:
		return Perfect
	case delta <= w.Good:
		return Good
	case delta <= w.Max:
		return Late
	default:
		return Miss
	}
}

// Calibrated shifts every window by offset, flooring at zero
func (w Windows) Calibrated(offset time.Duration) Windows {
	shift := func(d time.Duration) time.Duration {
		return max(d+offset, 0)
	}
	return Windows{
		Perfect: shift(w.Perfect),
		Good:    shift(w.Good),
		Max:     shift(w.Max),
	}
}

// Validate checks the windows are ordered
func (w Windows) Validate() error {
	if w.Perfect < 0 || w.Good < w.Perfect || w.Max < w.Good {
		return fmt.Errorf("timing windows must satisfy 0 <= perfect <= good <= max, got %v/%v/%v", w.Perfect, w.Good, w.Max)
	}
	return nil
}

// GradeDelta classifies delta against the default windows
func GradeDelta(delta time.Duration) Grade {
	return DefaultWindows().Grade(delta)
}

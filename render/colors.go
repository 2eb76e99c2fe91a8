package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/arrow-rush/sequence"
)

// RGB color definitions
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbText       = tcell.NewRGBColor(220, 220, 220) // Near white
	RgbDim        = tcell.NewRGBColor(110, 110, 120) // Gray for labels and hints
	RgbTitle      = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbWarning    = tcell.NewRGBColor(255, 80, 80)   // Red timers

	RgbArrowDone    = tcell.NewRGBColor(0, 130, 0)     // Dark green
	RgbArrowCurrent = tcell.NewRGBColor(255, 255, 0)   // Bright yellow
	RgbArrowPending = tcell.NewRGBColor(140, 190, 255) // Bright blue
	RgbArrowAccent  = tcell.NewRGBColor(255, 120, 255) // Pink for strong beats

	RgbFeedbackGood  = tcell.NewRGBColor(50, 255, 50)  // Bright green
	RgbFeedbackBad   = tcell.NewRGBColor(255, 80, 80)  // Red
	RgbFeedbackBonus = tcell.NewRGBColor(0, 200, 200)  // Cyan
	RgbOverlayBg     = tcell.NewRGBColor(40, 42, 60)   // Slightly lifted background
	RgbOverlayBorder = tcell.NewRGBColor(180, 180, 180) // Gray
)

// Single-cell arrow glyphs; the emoji forms render two cells wide on some terminals
var arrowGlyphs = map[sequence.Direction]rune{
	sequence.Up:    '↑',
	sequence.Down:  '↓',
	sequence.Left:  '←',
	sequence.Right: '→',
}

// Glyph returns the on-screen rune for a direction
func Glyph(d sequence.Direction) rune {
	if g, ok := arrowGlyphs[d]; ok {
		return g
	}
	return '?'
}

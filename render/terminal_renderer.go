package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/arrow-rush/constants"
	"github.com/lixenwraith/arrow-rush/engine"
	"github.com/lixenwraith/arrow-rush/events"
	"github.com/lixenwraith/arrow-rush/report"
)

// Row positions relative to the top of the play area
const (
	rowTitle    = 0
	rowStats    = 2
	rowTimers   = 3
	rowSequence = 5
	rowStrategy = 6
	rowFeedback = 8
	rowHint     = 10
)

const helpText = "arrows/hjkl/wasd move  space start  p pause  n next  r reset  m mute  q quit"

// View is everything a frame needs
type View struct {
	Snapshot engine.Snapshot
	Muted    bool
	Now      time.Time
}

// TerminalRenderer draws match state onto a tcell screen
type TerminalRenderer struct {
	screen tcell.Screen
	hold   time.Duration
	base   tcell.Style
}

// NewTerminalRenderer creates a renderer; feedback stays visible for hold, defaulting to one second
func NewTerminalRenderer(screen tcell.Screen, hold time.Duration) *TerminalRenderer {
	if hold <= 0 {
		hold = constants.FeedbackDisplayDuration
	}
	return &TerminalRenderer{
		screen: screen,
		hold:   hold,
		base:   tcell.StyleDefault.Background(RgbBackground).Foreground(RgbText),
	}
}

// RenderFrame clears the screen, draws the view and shows it
func (r *TerminalRenderer) RenderFrame(v View) {
	r.screen.SetStyle(r.base)
	r.screen.Clear()

	s := v.Snapshot
	r.drawTitle(s, v.Muted)
	r.drawStats(s)
	r.drawTimers(s)
	r.drawSequence(s)
	r.drawFeedback(s, v.Now)
	r.drawHint(s)

	_, h := r.screen.Size()
	r.drawText(0, h-1, helpText, r.base.Foreground(RgbDim))

	if s.Phase == engine.PhaseEnded {
		r.drawGameOver(s)
	}

	r.screen.Show()
}

func (r *TerminalRenderer) drawTitle(s engine.Snapshot, muted bool) {
	w, _ := r.screen.Size()
	r.drawText(1, rowTitle, "ARROW RUSH", r.base.Foreground(RgbTitle).Bold(true))

	status := strings.ToUpper(s.Phase.String())
	if muted {
		status += "  MUTED"
	}
	r.drawText(w-runewidth.StringWidth(status)-1, rowTitle, status, r.base.Foreground(RgbDim))
}

func (r *TerminalRenderer) drawStats(s engine.Snapshot) {
	combo := fmt.Sprintf("Combo: %s (best %s)", report.Score(s.Combo), report.Score(s.BestCombo))
	parts := []string{
		"Score: " + report.Score(s.Score),
		"Mistakes: " + report.Score(s.Mistakes),
		"Lines: " + report.Score(s.LinesCompleted),
		fmt.Sprintf("Level: %d", s.Difficulty),
		combo,
	}
	r.drawText(1, rowStats, strings.Join(parts, "   "), r.base)
}

func (r *TerminalRenderer) drawTimers(s engine.Snapshot) {
	x := 1
	label := r.base.Foreground(RgbDim)

	x = r.drawText(x, rowTimers, "Time: ", label)
	matchStyle := r.base
	if s.IsPlaying && s.MatchTimeLeft <= constants.MatchWarningSeconds {
		matchStyle = r.base.Foreground(RgbWarning).Bold(true)
	}
	x = r.drawText(x, rowTimers, report.Clock(s.MatchTimeLeft), matchStyle)

	if !s.LineActive {
		return
	}
	x = r.drawText(x, rowTimers, "   Line: ", label)
	lineStyle := r.base
	if s.LineTimeLeft <= constants.LineWarningSeconds {
		lineStyle = r.base.Foreground(RgbWarning).Bold(true)
	}
	r.drawText(x, rowTimers, fmt.Sprintf("%ds", s.LineTimeLeft), lineStyle)
}

// SequenceOrigin returns the column of the first arrow for a line of n arrows on a screen w wide
func SequenceOrigin(w, n int) int {
	// Arrows are separated by a single space
	span := 2*n - 1
	x := (w - span) / 2
	if x < 0 {
		return 0
	}
	return x
}

func (r *TerminalRenderer) drawSequence(s engine.Snapshot) {
	if !s.LineActive || len(s.Sequence) == 0 {
		return
	}
	w, _ := r.screen.Size()
	x0 := SequenceOrigin(w, len(s.Sequence))

	for i, d := range s.Sequence {
		style := r.base
		switch {
		case i < s.Cursor:
			style = style.Foreground(RgbArrowDone)
		case i == s.Cursor:
			style = style.Foreground(RgbArrowCurrent).Bold(true).Reverse(true)
		default:
			style = style.Foreground(RgbArrowPending)
			if i < len(s.Accents) && s.Accents[i] {
				style = style.Foreground(RgbArrowAccent).Underline(true)
			}
		}
		r.screen.SetContent(x0+2*i, rowSequence, Glyph(d), nil, style)
	}

	r.drawCentered(rowStrategy, s.Strategy.String(), r.base.Foreground(RgbDim))
}

// FeedbackText returns the message and whether it reads as positive
func FeedbackText(f engine.Feedback) (string, bool) {
	switch f.Type {
	case events.EventCorrect:
		return constants.FeedbackCorrect + " " + strings.ToUpper(f.Grade.String()), true
	case events.EventIncorrect:
		return constants.FeedbackWrong, false
	case events.EventLineComplete:
		return constants.FeedbackComplete, true
	case events.EventTimeout:
		return constants.FeedbackTimeout, false
	case events.EventGameOver:
		return constants.FeedbackGameOver, false
	}
	return "", false
}

func (r *TerminalRenderer) drawFeedback(s engine.Snapshot, now time.Time) {
	if s.Phase == engine.PhaseEnded || !s.Feedback.Visible(now, r.hold) {
		return
	}
	text, positive := FeedbackText(s.Feedback)
	if text == "" {
		return
	}
	color := RgbFeedbackBad
	switch {
	case s.Feedback.Type == events.EventLineComplete:
		color = RgbFeedbackBonus
	case positive:
		color = RgbFeedbackGood
	}
	r.drawCentered(rowFeedback, text, r.base.Foreground(color).Bold(true))
}

// HintText returns the guidance line for the current phase
func HintText(s engine.Snapshot) string {
	switch {
	case s.Phase == engine.PhaseIdle:
		return "Press SPACE to start"
	case s.IsPaused:
		return "PAUSED - press SPACE or P to resume"
	case s.AwaitingLine:
		return "Press N for the next line"
	case s.Phase == engine.PhaseRunning && !s.LineActive:
		return "Get ready..."
	}
	return ""
}

func (r *TerminalRenderer) drawHint(s engine.Snapshot) {
	if hint := HintText(s); hint != "" {
		r.drawCentered(rowHint, hint, r.base.Foreground(RgbDim))
	}
}

// GameOverLines returns the overlay content for an ended match
func GameOverLines(s engine.Snapshot) []string {
	return []string{
		constants.FeedbackGameOver,
		"",
		"Final Score:       " + report.Score(s.Score),
		"Mistakes:          " + report.Score(s.Mistakes),
		"Lines Completed:   " + report.Score(s.LinesCompleted),
		"Average Line Time: " + report.Seconds(s.AverageLineTime()),
		"Best Combo:        " + report.Score(s.BestCombo),
		"",
		"SPACE to play again, Q to quit",
	}
}

func (r *TerminalRenderer) drawGameOver(s engine.Snapshot) {
	lines := GameOverLines(s)
	w, h := r.screen.Size()

	inner := 0
	for _, l := range lines {
		inner = max(inner, runewidth.StringWidth(l))
	}
	boxW := inner + 4
	boxH := len(lines) + 2
	x0 := max((w-boxW)/2, 0)
	y0 := max((h-boxH)/2, 0)

	fill := tcell.StyleDefault.Background(RgbOverlayBg).Foreground(RgbText)
	border := fill.Foreground(RgbOverlayBorder)
	for y := y0; y < y0+boxH; y++ {
		for x := x0; x < x0+boxW; x++ {
			ch := ' '
			switch {
			case (y == y0 || y == y0+boxH-1) && (x == x0 || x == x0+boxW-1):
				ch = '+'
			case y == y0 || y == y0+boxH-1:
				ch = '-'
			case x == x0 || x == x0+boxW-1:
				ch = '|'
			}
			st := fill
			if ch != ' ' {
				st = border
			}
			r.screen.SetContent(x, y, ch, nil, st)
		}
	}

	for i, l := range lines {
		st := fill
		if i == 0 {
			st = fill.Foreground(RgbWarning).Bold(true)
		}
		r.drawText(x0+2, y0+1+i, l, st)
	}
}

func (r *TerminalRenderer) drawCentered(y int, text string, style tcell.Style) {
	w, _ := r.screen.Size()
	x := max((w-runewidth.StringWidth(text))/2, 0)
	r.drawText(x, y, text, style)
}

// drawText writes text clipped to the screen and returns the column after it
func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style) int {
	w, h := r.screen.Size()
	if y < 0 || y >= h {
		return x
	}
	for _, ch := range text {
		if x >= w {
			break
		}
		if x >= 0 {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x += runewidth.RuneWidth(ch)
	}
	return x
}

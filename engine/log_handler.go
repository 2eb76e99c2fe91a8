package engine

import (
	"fmt"
	"log"

	"github.com/lixenwraith/arrow-rush/events"
)

// LogHandler writes every match event to a standard logger
type LogHandler struct {
	logger *log.Logger
}

// NewLogHandler logs through l, or the standard logger when nil
func NewLogHandler(l *log.Logger) *LogHandler {
	if l == nil {
		l = log.Default()
	}
	return &LogHandler{logger: l}
}

func (h *LogHandler) EventTypes() []events.EventType {
	return events.AllTypes()
}

func (h *LogHandler) HandleEvent(snap Snapshot, ev events.GameEvent) {
	id := snap.MatchID
	if len(id) > 8 {
		id = id[:8]
	}
	if id == "" {
		id = "-"
	}
	h.logger.Printf("match=%s seq=%d event=%s %s", id, ev.Seq, ev.Type, DescribeEvent(ev))
}

// DescribeEvent renders an event payload as key=value pairs
func DescribeEvent(ev events.GameEvent) string {
	switch p := ev.Payload.(type) {
	case *events.MatchStartPayload:
		return fmt.Sprintf("id=%s seconds=%d", p.MatchID, p.MatchSeconds)
	case *events.NewLinePayload:
		return fmt.Sprintf("steps=%s strategy=%s seconds=%d difficulty=%d", p.Steps, p.Strategy, p.LineSeconds, p.Difficulty)
	case *events.CorrectPayload:
		return fmt.Sprintf("dir=%s cursor=%d grade=%s reward=%d combo=%d", p.Direction, p.Cursor, p.Grade, p.Reward, p.Combo)
	case *events.IncorrectPayload:
		return fmt.Sprintf("expected=%s got=%s cursor=%d", p.Expected, p.Got, p.Cursor)
	case *events.ComboPayload:
		return fmt.Sprintf("count=%d", p.Count)
	case *events.LineCompletePayload:
		return fmt.Sprintf("duration=%.2fs bonus=%d lines=%d", p.Duration.Seconds(), p.Bonus, p.LinesCompleted)
	case *events.LevelUpPayload:
		return fmt.Sprintf("difficulty=%d", p.Difficulty)
	case *events.TimeoutPayload:
		return fmt.Sprintf("progress=%d/%d", p.Cursor, p.Length)
	case *events.ResumePayload:
		return fmt.Sprintf("line_active=%t", p.LineActive)
	case *events.MatchSummary:
		return fmt.Sprintf("score=%d mistakes=%d lines=%d avg=%.2fs", p.Score, p.Mistakes, p.LinesCompleted, p.AverageLineTime)
	case nil:
		return ""
	default:
		return fmt.Sprintf("payload=%v", p)
	}
}

package events

import (
	"fmt"
	"strings"
)

var typeNames = [eventTypeCount]string{
	EventNone:         "none",
	EventMatchStart:   "match-start",
	EventNewLine:      "new-line",
	EventCorrect:      "correct",
	EventIncorrect:    "incorrect",
	EventCombo:        "combo",
	EventLineComplete: "line-complete",
	EventLevelUp:      "level-up",
	EventTimeout:      "timeout",
	EventPause:        "pause",
	EventResume:       "resume",
	EventGameOver:     "game-over",
	EventReset:        "reset",
}

var nameToType = func() map[string]EventType {
	m := make(map[string]EventType, len(typeNames))
	for i, name := range typeNames {
		m[name] = EventType(i)
	}
	return m
}()

// String returns the wire name of the event type
func (t EventType) String() string {
	if t < 0 || t >= eventTypeCount {
		return fmt.Sprintf("event(%d)", int(t))
	}
	return typeNames[t]
}

// GetEventType returns the EventType for a given name, case-insensitive
func GetEventType(name string) (EventType, bool) {
	et, ok := nameToType[strings.ToLower(strings.TrimSpace(name))]
	if !ok || et == EventNone {
		return EventNone, false
	}
	return et, true
}

// AllTypes returns every emitted event type in declaration order
func AllTypes() []EventType {
	out := make([]EventType, 0, eventTypeCount-1)
	for t := EventNone + 1; t < eventTypeCount; t++ {
		out = append(out, t)
	}
	return out
}

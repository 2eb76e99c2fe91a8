package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/arrow-rush/sequence"
)

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (arrows, Enter, Esc, Ctrl+*)
	SpecialKeys map[tcell.Key]Intent

	// Printable runes, matched case-insensitively
	Runes map[rune]Intent
}

func dir(d sequence.Direction) Intent {
	return Intent{Type: IntentDirection, Direction: d}
}

// DefaultKeyTable returns the default bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Intent{
			tcell.KeyUp:     dir(sequence.Up),
			tcell.KeyDown:   dir(sequence.Down),
			tcell.KeyLeft:   dir(sequence.Left),
			tcell.KeyRight:  dir(sequence.Right),
			tcell.KeyEnter:  {Type: IntentStart},
			tcell.KeyEscape: {Type: IntentQuit},
			tcell.KeyCtrlC:  {Type: IntentQuit},
			tcell.KeyCtrlQ:  {Type: IntentQuit},
		},
		Runes: map[rune]Intent{
			// vi
			'k': dir(sequence.Up),
			'j': dir(sequence.Down),
			'h': dir(sequence.Left),
			'l': dir(sequence.Right),
			// wasd
			'w': dir(sequence.Up),
			's': dir(sequence.Down),
			'a': dir(sequence.Left),
			'd': dir(sequence.Right),

			' ': {Type: IntentStart},
			'p': {Type: IntentPause},
			'r': {Type: IntentReset},
			'n': {Type: IntentNewLine},
			'm': {Type: IntentMute},
			'q': {Type: IntentQuit},
		},
	}
}

// Map decodes a tcell event; unbound keys and other events map to IntentNone
func (kt *KeyTable) Map(ev tcell.Event) Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyRune {
			if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
				return Intent{}
			}
			return kt.Runes[unicode.ToLower(ev.Rune())]
		}
		return kt.SpecialKeys[ev.Key()]
	case *tcell.EventResize:
		return Intent{Type: IntentResize}
	}
	return Intent{}
}

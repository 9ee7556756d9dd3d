package keys

import (
	"unicode"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
)

// FromKeyPress converts a bubbletea key press. Presses carrying modifiers
// other than shift, and keys outside the supported set, map to Unbound.
func FromKeyPress(msg tea.KeyPressMsg) KeyCode {
	if msg.Mod&^tea.ModShift != 0 {
		return Unbound
	}
	switch msg.Code {
	case tea.KeyLeft:
		return Left
	case tea.KeyRight:
		return Right
	case tea.KeyUp:
		return Up
	case tea.KeyDown:
		return Down
	case tea.KeyEnter:
		return Enter
	case tea.KeyEscape:
		return Escape
	case tea.KeySpace:
		return Char(' ')
	}
	if r, ok := singlePrintable(msg.Text); ok {
		return Char(r)
	}
	if msg.Mod == 0 && unicode.IsPrint(msg.Code) {
		return Char(msg.Code)
	}
	return Unbound
}

func singlePrintable(text string) (rune, bool) {
	if text == "" {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(text)
	if size != len(text) || r == utf8.RuneError || !unicode.IsPrint(r) {
		return 0, false
	}
	return r, true
}

// Package keys defines the closed set of physical keys that can be bound to
// game actions, independent of any terminal input library.
package keys

import (
	"fmt"
	"unicode"
)

type Kind uint8

const (
	KindUnbound Kind = iota
	KindLeft
	KindRight
	KindUp
	KindDown
	KindChar
	KindEscape
	KindEnter
)

// KeyCode is a comparable key value. The zero value is Unbound.
type KeyCode struct {
	kind Kind
	char rune
}

var (
	Unbound = KeyCode{}
	Left    = KeyCode{kind: KindLeft}
	Right   = KeyCode{kind: KindRight}
	Up      = KeyCode{kind: KindUp}
	Down    = KeyCode{kind: KindDown}
	Escape  = KeyCode{kind: KindEscape}
	Enter   = KeyCode{kind: KindEnter}
)

// Char returns the KeyCode for a character key. Characters are compared
// exactly, so Char('a') and Char('A') are different keys.
func Char(r rune) KeyCode {
	return KeyCode{kind: KindChar, char: r}
}

func (k KeyCode) Kind() Kind {
	return k.kind
}

// Rune returns the character of a character key.
func (k KeyCode) Rune() (rune, bool) {
	if k.kind != KindChar {
		return 0, false
	}
	return k.char, true
}

func (k KeyCode) IsUnbound() bool {
	return k.kind == KindUnbound
}

func (k KeyCode) String() string {
	switch k.kind {
	case KindUnbound:
		return "Null"
	case KindLeft:
		return "Left"
	case KindRight:
		return "Right"
	case KindUp:
		return "Up"
	case KindDown:
		return "Down"
	case KindEscape:
		return "Esc"
	case KindEnter:
		return "Enter"
	case KindChar:
		return fmt.Sprintf("Char(%q)", k.char)
	default:
		return fmt.Sprintf("KeyCode(%d)", k.kind)
	}
}

const (
	glyphEnter       = '↵'
	glyphEscape      = '␛'
	glyphLeft        = '←'
	glyphRight       = '→'
	glyphUp          = '↑'
	glyphDown        = '↓'
	glyphSpace       = '·'
	glyphPlaceholder = '�'
)

// DisplayRune returns the single glyph used to show the key in help text.
// Every value, including Unbound, has a glyph.
func (k KeyCode) DisplayRune() rune {
	switch k.kind {
	case KindEnter:
		return glyphEnter
	case KindEscape:
		return glyphEscape
	case KindLeft:
		return glyphLeft
	case KindRight:
		return glyphRight
	case KindUp:
		return glyphUp
	case KindDown:
		return glyphDown
	case KindChar:
		if k.char == ' ' {
			return glyphSpace
		}
		return unicode.ToUpper(k.char)
	default:
		return glyphPlaceholder
	}
}

// KeyString returns the key name bubbletea reports for this key, or "" for
// Unbound.
func (k KeyCode) KeyString() string {
	switch k.kind {
	case KindLeft:
		return "left"
	case KindRight:
		return "right"
	case KindUp:
		return "up"
	case KindDown:
		return "down"
	case KindEscape:
		return "esc"
	case KindEnter:
		return "enter"
	case KindChar:
		if k.char == ' ' {
			return "space"
		}
		return string(k.char)
	default:
		return ""
	}
}

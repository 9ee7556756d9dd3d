package keys

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDisplayRune(t *testing.T) {
	tests := []struct {
		code KeyCode
		want rune
	}{
		{Enter, '↵'},
		{Escape, '␛'},
		{Left, '←'},
		{Right, '→'},
		{Up, '↑'},
		{Down, '↓'},
		{Char(' '), '·'},
		{Char('a'), 'A'},
		{Char('Q'), 'Q'},
		{Char('7'), '7'},
		{Char('ß'), 'ß'},
		{Unbound, '�'},
		{KeyCode{kind: Kind(200)}, '�'},
	}
	for _, tt := range tests {
		if got := tt.code.DisplayRune(); got != tt.want {
			t.Fatalf("DisplayRune(%s) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestCharIsCaseSensitive(t *testing.T) {
	if Char('a') == Char('A') {
		t.Fatalf("expected distinct character keys")
	}
	if Char('a') != Char('a') {
		t.Fatalf("expected equal character keys")
	}
	if !Unbound.IsUnbound() || !(KeyCode{}).IsUnbound() {
		t.Fatalf("zero value should be unbound")
	}
	if r, ok := Char('x').Rune(); !ok || r != 'x' {
		t.Fatalf("unexpected rune: %q %v", r, ok)
	}
	if _, ok := Left.Rune(); ok {
		t.Fatalf("arrow key should not carry a rune")
	}
}

func TestUnmarshalKeyCode(t *testing.T) {
	tests := []struct {
		raw  string
		want KeyCode
	}{
		{`"Left"`, Left},
		{`"Right"`, Right},
		{`"Up"`, Up},
		{`"Down"`, Down},
		{`"Null"`, Unbound},
		{`"Esc"`, Escape},
		{`"Enter"`, Enter},
		{`{"char_key":"a"}`, Char('a')},
		{`{"char_key":" "}`, Char(' ')},
		{` {"char_key": "é"} `, Char('é')},
	}
	for _, tt := range tests {
		var got KeyCode
		if err := json.Unmarshal([]byte(tt.raw), &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("Unmarshal(%s) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestUnmarshalKeyCodeRejectsInvalid(t *testing.T) {
	for _, raw := range []string{
		`"left"`,
		`"Space"`,
		`{"char_key":"ab"}`,
		`{"char_key":""}`,
		`{"char_key":1}`,
		`{"char_key":"a","extra":true}`,
		`{"Char":"a"}`,
		`null`,
		`3`,
	} {
		var got KeyCode
		err := json.Unmarshal([]byte(raw), &got)
		if err == nil {
			t.Fatalf("expected error for %s, got %s", raw, got)
		}
	}
	var got KeyCode
	if err := json.Unmarshal([]byte(`"Home"`), &got); !errors.Is(err, ErrInvalidKeyCode) {
		t.Fatalf("expected ErrInvalidKeyCode, got %v", err)
	}
}

func TestMarshalKeyCode(t *testing.T) {
	for _, code := range []KeyCode{Unbound, Left, Right, Up, Down, Escape, Enter, Char('a'), Char(' ')} {
		data, err := json.Marshal(code)
		if err != nil {
			t.Fatalf("Marshal(%s): %v", code, err)
		}
		var back KeyCode
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if back != code {
			t.Fatalf("round trip %s -> %s -> %s", code, data, back)
		}
	}
	data, _ := json.Marshal(Char('w'))
	if string(data) != `{"char_key":"w"}` {
		t.Fatalf("unexpected char encoding: %s", data)
	}
}

func TestKeyString(t *testing.T) {
	tests := map[KeyCode]string{
		Left:       "left",
		Enter:      "enter",
		Escape:     "esc",
		Char(' '):  "space",
		Char('a'):  "a",
		Char('A'):  "A",
		Unbound:    "",
		Down:       "down",
		Char('\''): "'",
	}
	for code, want := range tests {
		if got := code.KeyString(); got != want {
			t.Fatalf("KeyString(%s) = %q, want %q", code, got, want)
		}
	}
}

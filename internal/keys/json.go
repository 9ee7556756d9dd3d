package keys

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

var ErrInvalidKeyCode = errors.New("invalid key code")

const charKeyField = "char_key"

var keyCodeByName = map[string]KeyCode{
	"Left":  Left,
	"Right": Right,
	"Up":    Up,
	"Down":  Down,
	"Null":  Unbound,
	"Esc":   Escape,
	"Enter": Enter,
}

type charKey struct {
	Char string `json:"char_key"`
}

// MarshalJSON writes named keys as strings and character keys as
// {"char_key": "x"}.
func (k KeyCode) MarshalJSON() ([]byte, error) {
	if k.kind == KindChar {
		return json.Marshal(charKey{Char: string(k.char)})
	}
	switch k.kind {
	case KindUnbound, KindLeft, KindRight, KindUp, KindDown, KindEscape, KindEnter:
		return json.Marshal(k.String())
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidKeyCode, k)
}

func (k *KeyCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("%w: empty value", ErrInvalidKeyCode)
	}
	switch data[0] {
	case '"':
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		code, ok := keyCodeByName[name]
		if !ok {
			return fmt.Errorf("%w: unknown key %q", ErrInvalidKeyCode, name)
		}
		*k = code
		return nil
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return err
		}
		raw, ok := fields[charKeyField]
		if !ok || len(fields) != 1 {
			return fmt.Errorf("%w: expected a single %q field", ErrInvalidKeyCode, charKeyField)
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return fmt.Errorf("%w: %s must be a string", ErrInvalidKeyCode, charKeyField)
		}
		if utf8.RuneCountInString(value) != 1 {
			return fmt.Errorf("%w: %s must be exactly one character, got %q", ErrInvalidKeyCode, charKeyField, value)
		}
		r, _ := utf8.DecodeRuneInString(value)
		*k = Char(r)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidKeyCode, data)
	}
}

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"tetris/internal/keys"
)

var (
	ErrMissingField   = errors.New("missing required field")
	ErrDuplicateField = errors.New("duplicate field")
)

var defaultRestartKey = keys.Char('r')

// Binding is a primary key plus an optional alternate.
type Binding struct {
	Primary   keys.KeyCode
	Alternate keys.KeyCode
}

func NewBinding(primary, alternate keys.KeyCode) Binding {
	return Binding{Primary: primary, Alternate: alternate}
}

// Matches reports whether event is the primary or alternate key. An Unbound
// event never matches.
func Matches(event keys.KeyCode, b Binding) bool {
	if event.IsUnbound() {
		return false
	}
	return event == b.Primary || event == b.Alternate
}

func (b Binding) Matches(event keys.KeyCode) bool {
	return Matches(event, b)
}

// Keys returns the bound keys, skipping Unbound slots.
func (b Binding) Keys() []keys.KeyCode {
	out := make([]keys.KeyCode, 0, 2)
	for _, code := range []keys.KeyCode{b.Primary, b.Alternate} {
		if !code.IsUnbound() {
			out = append(out, code)
		}
	}
	return out
}

// String renders "<primary>[, <alternate>]" with display glyphs.
func (b Binding) String() string {
	var sb strings.Builder
	sb.WriteRune(b.Primary.DisplayRune())
	if !b.Alternate.IsUnbound() {
		sb.WriteString(", ")
		sb.WriteRune(b.Alternate.DisplayRune())
	}
	return sb.String()
}

type bindingJSON struct {
	Key *keys.KeyCode `json:"key"`
	Alt *keys.KeyCode `json:"alt,omitempty"`
}

func (b Binding) MarshalJSON() ([]byte, error) {
	primary := b.Primary
	out := bindingJSON{Key: &primary}
	if !b.Alternate.IsUnbound() {
		alt := b.Alternate
		out.Alt = &alt
	}
	return json.Marshal(out)
}

func (b *Binding) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data)
	if err != nil {
		return err
	}
	primary, ok, err := decodeKey(fields, "key")
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: key", ErrMissingField)
	}
	alternate, _, err := decodeKey(fields, "alt")
	if err != nil {
		return err
	}
	*b = Binding{Primary: primary, Alternate: alternate}
	return nil
}

// Config is the fully resolved set of game key bindings.
type Config struct {
	Left     Binding
	Right    Binding
	Rotate   Binding
	SoftDrop Binding
	HardDrop Binding

	Pause keys.KeyCode
	Quit  keys.KeyCode
	// Continue and Restart are used by the pause menu.
	Continue keys.KeyCode
	Restart  keys.KeyCode
}

type configJSON struct {
	Left     *Binding      `json:"left"`
	Right    *Binding      `json:"right"`
	Rotate   *Binding      `json:"rotate"`
	SoftDrop *Binding      `json:"soft_drop"`
	HardDrop *Binding      `json:"hard_drop"`
	Pause    *keys.KeyCode `json:"pause,omitempty"`
	Quit     *keys.KeyCode `json:"quit,omitempty"`
	Continue *keys.KeyCode `json:"continue,omitempty"`
	Restart  *keys.KeyCode `json:"restart,omitempty"`
}

// Parse decodes a tetris.json document. The five movement bindings are
// required; pause, quit and continue default to Unbound and restart to 'r'.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data)
	if err != nil {
		return err
	}
	var out Config
	required := []struct {
		name string
		dst  *Binding
	}{
		{"left", &out.Left},
		{"right", &out.Right},
		{"rotate", &out.Rotate},
		{"soft_drop", &out.SoftDrop},
		{"hard_drop", &out.HardDrop},
	}
	for _, field := range required {
		raw, ok := lookup(fields, field.name)
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingField, field.name)
		}
		if err := json.Unmarshal(raw, field.dst); err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
	}
	optional := []struct {
		name     string
		dst      *keys.KeyCode
		fallback keys.KeyCode
	}{
		{"pause", &out.Pause, keys.Unbound},
		{"quit", &out.Quit, keys.Unbound},
		{"continue", &out.Continue, keys.Unbound},
		{"restart", &out.Restart, defaultRestartKey},
	}
	for _, field := range optional {
		code, ok, err := decodeKey(fields, field.name)
		if err != nil {
			return err
		}
		if !ok {
			code = field.fallback
		}
		*field.dst = code
	}
	*c = out
	return nil
}

func (c Config) MarshalJSON() ([]byte, error) {
	optional := func(code keys.KeyCode) *keys.KeyCode {
		if code.IsUnbound() {
			return nil
		}
		return &code
	}
	return json.Marshal(configJSON{
		Left:     &c.Left,
		Right:    &c.Right,
		Rotate:   &c.Rotate,
		SoftDrop: &c.SoftDrop,
		HardDrop: &c.HardDrop,
		Pause:    optional(c.Pause),
		Quit:     optional(c.Quit),
		Continue: optional(c.Continue),
		// restart is always written: omitting it would bring back the 'r' default
		Restart: &c.Restart,
	})
}

// decodeObject splits a JSON object into its members. Keys are matched
// exactly later on, so a duplicate key is an error rather than last-wins.
func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}
	fields := map[string]json.RawMessage{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		if _, dup := fields[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateField, name)
		}
		fields[name] = value
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON object")
	}
	return fields, nil
}

// lookup treats a null member the same as an absent one.
func lookup(fields map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	raw, ok := fields[name]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	return raw, true
}

func decodeKey(fields map[string]json.RawMessage, name string) (keys.KeyCode, bool, error) {
	raw, ok := lookup(fields, name)
	if !ok {
		return keys.Unbound, false, nil
	}
	var code keys.KeyCode
	if err := json.Unmarshal(raw, &code); err != nil {
		return keys.Unbound, false, fmt.Errorf("%s: %w", name, err)
	}
	return code, true, nil
}

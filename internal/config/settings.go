package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	ScoresBackendSQLite = "sqlite"
	ScoresBackendBbolt  = "bbolt"

	defaultLogLevel      = "info"
	defaultScoresBackend = ScoresBackendSQLite
)

// Settings holds the optional process settings read from settings.toml.
type Settings struct {
	Logging     LoggingSettings     `toml:"logging"`
	Scores      ScoresSettings      `toml:"scores"`
	Keybindings KeybindingsSettings `toml:"keybindings"`
}

type LoggingSettings struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type ScoresSettings struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

type KeybindingsSettings struct {
	Path string `toml:"path"`
}

func DefaultSettings() Settings {
	return Settings{
		Logging: LoggingSettings{
			Level: defaultLogLevel,
		},
		Scores: ScoresSettings{
			Backend: defaultScoresBackend,
		},
	}
}

// LoadSettings reads settings.toml for app. A missing or empty file yields
// the defaults.
func LoadSettings(app AppID) (Settings, error) {
	path, err := SettingsPath(app)
	if err != nil {
		return Settings{}, err
	}
	return loadSettingsFromPath(path)
}

func loadSettingsFromPath(path string) (Settings, error) {
	cfg := DefaultSettings()
	if err := readTOML(path, &cfg); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

func (s Settings) LogLevel() string {
	level := strings.TrimSpace(s.Logging.Level)
	if level == "" {
		return defaultLogLevel
	}
	return level
}

// LogPath returns the configured log file, or the default under the data
// directory.
func (s Settings) LogPath(app AppID) (string, error) {
	if path := strings.TrimSpace(s.Logging.File); path != "" {
		return resolveSettingsPath(app, path)
	}
	return LogPath(app)
}

func (s Settings) ScoresBackend() string {
	switch strings.ToLower(strings.TrimSpace(s.Scores.Backend)) {
	case ScoresBackendBbolt:
		return ScoresBackendBbolt
	default:
		return ScoresBackendSQLite
	}
}

func (s Settings) ScoresPath(app AppID) (string, error) {
	if path := strings.TrimSpace(s.Scores.Path); path != "" {
		return resolveSettingsPath(app, path)
	}
	return ScoresDBPath(app)
}

// ResolveKeybindingsPath returns the tetris.json location, honoring an
// override in [keybindings] path.
func (s Settings) ResolveKeybindingsPath(app AppID) (string, error) {
	if path := strings.TrimSpace(s.Keybindings.Path); path != "" {
		return resolveSettingsPath(app, path)
	}
	return ConfigPath(app)
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

// resolveSettingsPath expands "~/" and resolves relative paths against the
// config directory.
func resolveSettingsPath(app AppID, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is required")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := userHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	dir, err := ConfigDir(app)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, path), nil
}

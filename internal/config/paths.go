package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

const (
	ConfigFileName   = "tetris.json"
	SettingsFileName = "settings.toml"
	ScoresDBFileName = "tetris_high_scores.db"
	LogFileName      = "tetris.log"
)

var ErrLocationUnresolvable = errors.New("config location could not be resolved")

// AppID names the application for platform directory lookup.
type AppID struct {
	Organization string
	Application  string
}

var DefaultApp = AppID{Application: "Tetris Tui"}

var (
	userConfigDir = os.UserConfigDir
	userHomeDir   = os.UserHomeDir
)

func (a AppID) dirName() (string, error) {
	app := pathSegment(a.Application)
	if app == "" {
		return "", fmt.Errorf("%w: application name is required", ErrLocationUnresolvable)
	}
	if org := pathSegment(a.Organization); org != "" {
		return filepath.Join(org, app), nil
	}
	return app, nil
}

// pathSegment lowercases name and drops whitespace and anything that could
// escape a single directory level. Inner dots are kept for reverse-domain
// names; leading dots are trimmed so "." and ".." resolve to "".
func pathSegment(name string) string {
	seg := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return -1
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_', r == '.':
			return unicode.ToLower(r)
		default:
			return -1
		}
	}, name)
	return strings.TrimLeft(seg, ".")
}

// ConfigDir returns the per-application directory under the platform
// configuration root.
func ConfigDir(app AppID) (string, error) {
	name, err := app.dirName()
	if err != nil {
		return "", err
	}
	root, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLocationUnresolvable, err)
	}
	if strings.TrimSpace(root) == "" {
		return "", fmt.Errorf("%w: empty config root", ErrLocationUnresolvable)
	}
	return filepath.Join(root, name), nil
}

// ConfigPath returns the path of the key-binding file.
func ConfigPath(app AppID) (string, error) {
	dir, err := ConfigDir(app)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// SettingsPath returns the path of the optional TOML settings file.
func SettingsPath(app AppID) (string, error) {
	dir, err := ConfigDir(app)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// DataDir returns the per-application data directory. On Linux and other
// XDG platforms this is $XDG_DATA_HOME or ~/.local/share.
func DataDir(app AppID) (string, error) {
	name, err := app.dirName()
	if err != nil {
		return "", err
	}
	if xdg := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdg != "" && filepath.IsAbs(xdg) {
		return filepath.Join(xdg, name), nil
	}
	switch runtime.GOOS {
	case "windows", "darwin", "ios", "plan9":
		root, err := userConfigDir()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrLocationUnresolvable, err)
		}
		return filepath.Join(root, name), nil
	}
	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLocationUnresolvable, err)
	}
	if strings.TrimSpace(home) == "" {
		return "", fmt.Errorf("%w: empty home directory", ErrLocationUnresolvable)
	}
	return filepath.Join(home, ".local", "share", name), nil
}

// ScoresDBPath returns the default path of the high score database.
func ScoresDBPath(app AppID) (string, error) {
	dir, err := DataDir(app)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ScoresDBFileName), nil
}

// LogPath returns the default log file path.
func LogPath(app AppID) (string, error) {
	dir, err := DataDir(app)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogFileName), nil
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"tetris/internal/config"
)

const (
	configFormatJSON = "json"
	configFormatTOML = "toml"
)

var errUnsupportedFormat = errors.New("invalid format: must be json or toml")

type configOutput struct {
	SettingsPath    string              `json:"settings_path,omitempty" toml:"settings_path,omitempty"`
	KeybindingsPath string              `json:"keybindings_path,omitempty" toml:"keybindings_path,omitempty"`
	Source          string              `json:"source" toml:"source"`
	Logging         loggingOutput       `json:"logging" toml:"logging"`
	Scores          scoresOutput        `json:"scores" toml:"scores"`
	Keybindings     map[string][]string `json:"keybindings" toml:"keybindings"`
}

type loggingOutput struct {
	Level string `json:"level" toml:"level"`
	File  string `json:"file,omitempty" toml:"file,omitempty"`
}

type scoresOutput struct {
	Backend string `json:"backend" toml:"backend"`
	Path    string `json:"path,omitempty" toml:"path,omitempty"`
}

type configOptions struct {
	defaults bool
	format   string
	path     bool
}

func newConfigCommand(wiring commandWiring) *cobra.Command {
	opts := configOptions{}
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration (or the defaults)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd.OutOrStdout(), wiring, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.defaults, "default", false, "print default config values")
	cmd.Flags().StringVar(&opts.format, "format", configFormatJSON, "output format: json|toml")
	cmd.Flags().BoolVar(&opts.path, "path", false, "print the key-binding file path and exit")
	return cmd
}

func runConfig(out io.Writer, wiring commandWiring, opts configOptions) error {
	format, err := resolveConfigFormat(opts.format)
	if err != nil {
		return err
	}
	env := openEnvironment(wiring)
	defer env.Close()

	if opts.path {
		path, err := env.keybindingsPath(wiring.app)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, path)
		return err
	}
	return writeConfigOutput(out, format, buildConfigOutput(env, wiring.app, opts.defaults))
}

func buildConfigOutput(env *environment, app config.AppID, defaults bool) configOutput {
	settings := env.settings
	cfg := config.Default()
	source := config.SourceEmbedded
	if defaults {
		settings = config.DefaultSettings()
	} else {
		var report config.Report
		cfg, report = env.loadConfig(app)
		source = report.Source
	}

	out := configOutput{
		Source:      source.String(),
		Logging:     loggingOutput{Level: settings.LogLevel()},
		Scores:      scoresOutput{Backend: settings.ScoresBackend()},
		Keybindings: keybindingNames(cfg),
	}
	// Paths are informational; an unresolvable location leaves them empty.
	out.SettingsPath, _ = config.SettingsPath(app)
	out.KeybindingsPath, _ = settings.ResolveKeybindingsPath(app)
	out.Logging.File, _ = settings.LogPath(app)
	out.Scores.Path, _ = settings.ScoresPath(app)
	return out
}

// keybindingNames lists the bound key names for every action.
func keybindingNames(cfg config.Config) map[string][]string {
	out := make(map[string][]string, len(config.ActionOrder))
	for _, action := range config.ActionOrder {
		names := []string{}
		for _, code := range cfg.Binding(action).Keys() {
			names = append(names, code.KeyString())
		}
		out[action.String()] = names
	}
	return out
}

func writeConfigOutput(out io.Writer, format string, payload any) error {
	switch format {
	case configFormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	case configFormatTOML:
		data, err := toml.Marshal(payload)
		if err != nil {
			return err
		}
		if len(data) == 0 || data[len(data)-1] != '\n' {
			data = append(data, '\n')
		}
		_, err = out.Write(data)
		return err
	default:
		return errUnsupportedFormat
	}
}

func resolveConfigFormat(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", configFormatJSON:
		return configFormatJSON, nil
	case configFormatTOML:
		return configFormatTOML, nil
	default:
		return "", errUnsupportedFormat
	}
}

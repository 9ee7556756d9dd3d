package game

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"tetris/internal/config"
)

var (
	playingActions = []config.Action{
		config.ActionLeft,
		config.ActionRight,
		config.ActionRotate,
		config.ActionSoftDrop,
		config.ActionHardDrop,
		config.ActionPause,
		config.ActionQuit,
	}
	pausedActions = []config.Action{
		config.ActionPause,
		config.ActionQuit,
		config.ActionContinue,
		config.ActionRestart,
	}
)

// helpBindings converts the configured actions into bubbles bindings for
// the footer. Actions without any bound key are left out.
func helpBindings(cfg config.Config, actions []config.Action) []key.Binding {
	out := make([]key.Binding, 0, len(actions))
	for _, action := range actions {
		codes := cfg.Binding(action).Keys()
		if len(codes) == 0 {
			continue
		}
		names := make([]string, 0, len(codes))
		glyphs := make([]string, 0, len(codes))
		for _, code := range codes {
			names = append(names, code.KeyString())
			glyphs = append(glyphs, string(code.DisplayRune()))
		}
		out = append(out, key.NewBinding(
			key.WithKeys(names...),
			key.WithHelp(strings.Join(glyphs, "/"), strings.ToLower(action.Label())),
		))
	}
	return out
}

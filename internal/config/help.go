package config

import "fmt"

// HelpMessage renders the bindings as display lines, framed by a blank line
// on each side. The result is always nine lines: blank, the five movement
// bindings, pause, quit, blank.
func HelpMessage(cfg Config) []string {
	lines := []string{""}
	for _, action := range []Action{ActionLeft, ActionRight, ActionRotate, ActionSoftDrop, ActionHardDrop} {
		lines = append(lines, fmt.Sprintf("%s: %s", action.Label(), cfg.Binding(action)))
	}
	lines = append(lines,
		fmt.Sprintf("%s: %c", ActionPause.Label(), cfg.Pause.DisplayRune()),
		fmt.Sprintf("%s: %c", ActionQuit.Label(), cfg.Quit.DisplayRune()),
		"",
	)
	return lines
}

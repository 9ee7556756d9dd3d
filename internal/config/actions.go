package config

import "tetris/internal/keys"

type Action int

const (
	ActionLeft Action = iota
	ActionRight
	ActionRotate
	ActionSoftDrop
	ActionHardDrop
	ActionPause
	ActionQuit
	ActionContinue
	ActionRestart
)

// ActionOrder is the order in which actions are checked against a key.
// When several actions share a key, the last one in this order wins.
var ActionOrder = []Action{
	ActionLeft,
	ActionRight,
	ActionRotate,
	ActionSoftDrop,
	ActionHardDrop,
	ActionPause,
	ActionQuit,
	ActionContinue,
	ActionRestart,
}

func (a Action) String() string {
	switch a {
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionRotate:
		return "rotate"
	case ActionSoftDrop:
		return "soft_drop"
	case ActionHardDrop:
		return "hard_drop"
	case ActionPause:
		return "pause"
	case ActionQuit:
		return "quit"
	case ActionContinue:
		return "continue"
	case ActionRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Label is the human readable action name used in help text.
func (a Action) Label() string {
	switch a {
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRotate:
		return "Rotate"
	case ActionSoftDrop:
		return "Soft Drop"
	case ActionHardDrop:
		return "Hard Drop"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	case ActionContinue:
		return "Continue"
	case ActionRestart:
		return "Restart"
	default:
		return "Unknown"
	}
}

// Binding returns the keys bound to action. Single-key actions are returned
// with an Unbound alternate.
func (c Config) Binding(action Action) Binding {
	switch action {
	case ActionLeft:
		return c.Left
	case ActionRight:
		return c.Right
	case ActionRotate:
		return c.Rotate
	case ActionSoftDrop:
		return c.SoftDrop
	case ActionHardDrop:
		return c.HardDrop
	case ActionPause:
		return Binding{Primary: c.Pause}
	case ActionQuit:
		return Binding{Primary: c.Quit}
	case ActionContinue:
		return Binding{Primary: c.Continue}
	case ActionRestart:
		return Binding{Primary: c.Restart}
	default:
		return Binding{}
	}
}

// Resolve maps a key to an action. Only the actions in scope are considered
// (all of ActionOrder when scope is empty), checked in ActionOrder; the last
// match wins.
func (c Config) Resolve(event keys.KeyCode, scope ...Action) (Action, bool) {
	allowed := map[Action]struct{}{}
	for _, action := range scope {
		allowed[action] = struct{}{}
	}
	var (
		found Action
		ok    bool
	)
	for _, action := range ActionOrder {
		if len(allowed) > 0 {
			if _, in := allowed[action]; !in {
				continue
			}
		}
		if c.Binding(action).Matches(event) {
			found, ok = action, true
		}
	}
	return found, ok
}

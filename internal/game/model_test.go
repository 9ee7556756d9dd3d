package game

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-runewidth"

	"tetris/internal/config"
	"tetris/internal/keys"
	"tetris/internal/scores"
)

func newTestModel(cfg config.Config) *Model {
	return New(cfg, config.HelpMessage(cfg), Options{Level: 3, FilledLines: 2})
}

func TestHandleKeyMovement(t *testing.T) {
	m := newTestModel(config.Default())
	for _, code := range []keys.KeyCode{keys.Left, keys.Char('a'), keys.Right, keys.Up, keys.Down, keys.Char(' ')} {
		if _, ok := m.HandleKey(code); !ok {
			t.Fatalf("expected %s to resolve", code)
		}
	}
	if m.Count(config.ActionLeft) != 2 || m.Count(config.ActionHardDrop) != 1 {
		t.Fatalf("unexpected counts: left=%d hard=%d", m.Count(config.ActionLeft), m.Count(config.ActionHardDrop))
	}
	if _, ok := m.HandleKey(keys.Char('A')); ok {
		t.Fatalf("'A' must not resolve with default bindings")
	}
	if _, ok := m.HandleKey(keys.Unbound); ok {
		t.Fatalf("Unbound must not resolve")
	}
}

func TestHandleKeyPauseMenu(t *testing.T) {
	m := newTestModel(config.Default())

	// continue and restart only apply while paused
	if _, ok := m.HandleKey(keys.Enter); ok {
		t.Fatalf("continue should be ignored while playing")
	}
	if action, _ := m.HandleKey(keys.Char('p')); action != config.ActionPause || m.Mode() != ModePaused {
		t.Fatalf("expected pause, got %v mode=%s", action, m.Mode())
	}
	if _, ok := m.HandleKey(keys.Left); ok {
		t.Fatalf("movement should be ignored while paused")
	}
	if action, _ := m.HandleKey(keys.Enter); action != config.ActionContinue || m.Mode() != ModePlaying {
		t.Fatalf("expected continue, got %v mode=%s", action, m.Mode())
	}

	m.HandleKey(keys.Left)
	m.HandleKey(keys.Char('p'))
	if action, _ := m.HandleKey(keys.Char('r')); action != config.ActionRestart {
		t.Fatalf("expected restart, got %v", action)
	}
	if m.Mode() != ModePlaying || m.Runs() != 2 || m.Count(config.ActionLeft) != 0 {
		t.Fatalf("restart should reset the run: mode=%s runs=%d", m.Mode(), m.Runs())
	}

	m.HandleKey(keys.Char('p'))
	m.HandleKey(keys.Char('p'))
	if m.Mode() != ModePlaying {
		t.Fatalf("pause key should toggle back to playing")
	}
}

func TestUpdateQuits(t *testing.T) {
	m := newTestModel(config.Default())
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if m.Mode() != ModeQuit {
		t.Fatalf("expected quit mode, got %s", m.Mode())
	}
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if _, ok := m.HandleKey(keys.Left); ok {
		t.Fatalf("no actions after quit")
	}
}

func TestUpdateIgnoresModifiedKeys(t *testing.T) {
	m := newTestModel(config.Default())
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Mod: tea.ModCtrl})
	if cmd != nil || m.Mode() != ModePlaying {
		t.Fatalf("ctrl+q must not match the quit binding")
	}
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.width != 120 || m.height != 40 {
		t.Fatalf("window size not tracked")
	}
}

func TestViewShowsHelpAndLeaderboard(t *testing.T) {
	cfg := config.Default()
	m := New(cfg, config.HelpMessage(cfg), Options{
		Leaderboard: []scores.Player{{Name: "ada", Score: 1200}, {Name: "bob", Score: 300}},
	})
	view := m.Render()
	for _, want := range []string{"Left: ←, A", "Hard Drop: ·", "Quit: Q", "ada", "1200", "←/A"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	m.HandleKey(keys.Char('p'))
	if view := m.Render(); !strings.Contains(view, "PAUSED") || !strings.Contains(view, "continue") {
		t.Fatalf("paused view missing pause menu:\n%s", view)
	}
}

func TestHelpBindingsSkipUnbound(t *testing.T) {
	cfg := config.Default()
	cfg.Pause = keys.Unbound
	bindings := helpBindings(cfg, playingActions)
	if len(bindings) != len(playingActions)-1 {
		t.Fatalf("expected unbound pause to be skipped, got %d bindings", len(bindings))
	}
	left := bindings[0]
	if got := left.Keys(); len(got) != 2 || got[0] != "left" || got[1] != "a" {
		t.Fatalf("unexpected left keys: %v", got)
	}
	if left.Help().Key != "←/A" || left.Help().Desc != "left" {
		t.Fatalf("unexpected left help: %+v", left.Help())
	}
}

func TestPadLines(t *testing.T) {
	lines := padLines([]string{"", "Left: ←, A", "Soft Drop: ↓, S"})
	for _, line := range lines {
		if runewidth.StringWidth(line) != runewidth.StringWidth(lines[2]) {
			t.Fatalf("lines not padded to common width: %q", lines)
		}
	}
}

// Package game hosts the terminal shell that consumes the installed key
// bindings. Gameplay itself lives elsewhere; the shell resolves key presses
// to actions and tracks run state.
package game

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"tetris/internal/config"
	"tetris/internal/keys"
	"tetris/internal/logging"
	"tetris/internal/scores"
)

type Mode int

const (
	ModePlaying Mode = iota
	ModePaused
	ModeQuit
)

func (m Mode) String() string {
	switch m {
	case ModePaused:
		return "paused"
	case ModeQuit:
		return "quit"
	default:
		return "playing"
	}
}

// Options configures the initial game run.
type Options struct {
	Level       int
	FilledLines int
	Leaderboard []scores.Player
	Logger      logging.Logger
}

type Model struct {
	cfg       config.Config
	helpLines []string
	opts      Options
	logger    logging.Logger

	mode    Mode
	last    config.Action
	hasLast bool
	counts  map[config.Action]int
	runs    int

	footer        help.Model
	playingKeys   []key.Binding
	pausedKeys    []key.Binding
	width, height int
}

// New builds a shell for cfg. helpLines are shown verbatim in the side panel.
func New(cfg config.Config, helpLines []string, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return &Model{
		cfg:         cfg,
		helpLines:   helpLines,
		opts:        opts,
		logger:      logger,
		counts:      map[config.Action]int{},
		runs:        1,
		footer:      help.New(),
		playingKeys: helpBindings(cfg, playingActions),
		pausedKeys:  helpBindings(cfg, pausedActions),
	}
}

// NewFromInstalled builds a shell from the process-wide configuration.
func NewFromInstalled(opts Options) *Model {
	return New(config.Current(), config.Help(), opts)
}

func Run(model *Model) error {
	p := tea.NewProgram(model)
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyPressMsg:
		if _, ok := m.HandleKey(keys.FromKeyPress(msg)); ok && m.mode == ModeQuit {
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

// HandleKey applies a key press to the shell state and returns the action
// it resolved to. Only the actions valid in the current mode are checked.
func (m *Model) HandleKey(code keys.KeyCode) (config.Action, bool) {
	if m.mode == ModeQuit {
		return 0, false
	}
	scope := playingActions
	if m.mode == ModePaused {
		scope = pausedActions
	}
	action, ok := m.cfg.Resolve(code, scope...)
	if !ok {
		return 0, false
	}
	m.last, m.hasLast = action, true

	switch action {
	case config.ActionQuit:
		m.mode = ModeQuit
	case config.ActionPause:
		if m.mode == ModePaused {
			m.mode = ModePlaying
		} else {
			m.mode = ModePaused
		}
	case config.ActionContinue:
		m.mode = ModePlaying
	case config.ActionRestart:
		m.counts = map[config.Action]int{}
		m.runs++
		m.mode = ModePlaying
	default:
		m.counts[action]++
	}
	m.logger.Debug("action", logging.F("action", action), logging.F("key", code), logging.F("mode", m.mode))
	return action, true
}

func (m *Model) Mode() Mode {
	return m.mode
}

func (m *Model) Count(action config.Action) int {
	return m.counts[action]
}

func (m *Model) Runs() int {
	return m.runs
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("241")).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

func (m *Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	v.WindowTitle = "Tetris"
	return v
}

// Render draws the shell as plain text.
func (m *Model) Render() string {
	controls := panelStyle.Render(titleStyle.Render("Controls") + "\n" + strings.Join(padLines(m.helpLines), "\n"))
	status := panelStyle.Render(m.statusView())
	board := panelStyle.Render(m.leaderboardView())

	body := lipgloss.JoinHorizontal(lipgloss.Top, controls, status, board)
	bindings := m.playingKeys
	if m.mode == ModePaused {
		bindings = m.pausedKeys
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.footer.ShortHelpView(bindings))
}

func (m *Model) statusView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Game"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Level: %d\n", m.opts.Level)
	fmt.Fprintf(&b, "Filled: %d\n", m.opts.FilledLines)
	fmt.Fprintf(&b, "Run: %d\n", m.runs)
	if m.mode == ModePaused {
		b.WriteString(pausedStyle.Render("PAUSED"))
		fmt.Fprintf(&b, "\n%s continue  %s restart\n", glyph(m.cfg.Continue), glyph(m.cfg.Restart))
	} else {
		b.WriteString(statusStyle.Render(m.mode.String()))
		b.WriteString("\n")
	}
	if m.hasLast {
		b.WriteString(statusStyle.Render("last: " + m.last.Label()))
	}
	return b.String()
}

func (m *Model) leaderboardView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("High Scores"))
	if len(m.opts.Leaderboard) == 0 {
		b.WriteString("\n" + statusStyle.Render("no scores yet"))
		return b.String()
	}
	names := make([]string, 0, len(m.opts.Leaderboard))
	for _, p := range m.opts.Leaderboard {
		names = append(names, p.Name)
	}
	names = padLines(names)
	for i, p := range m.opts.Leaderboard {
		fmt.Fprintf(&b, "\n%d. %s %7d", i+1, names[i], p.Score)
	}
	return b.String()
}

func glyph(code keys.KeyCode) string {
	return string(code.DisplayRune())
}

// padLines right-pads lines to a common display width.
func padLines(lines []string) []string {
	width := 0
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w > width {
			width = w
		}
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = runewidth.FillRight(line, width)
	}
	return out
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tetris/internal/config"
	"tetris/internal/game"
)

// Board geometry used to compute the smallest usable terminal.
const (
	PlayWidth  = 10
	PlayHeight = 20
	CellWidth  = 2
	StatsWidth = 18
	Distance   = 6

	MaxLevel       = 20
	MaxFilledLines = 10
)

var (
	errLevelOutOfRange  = fmt.Errorf("level must be between 0 and %d", MaxLevel)
	errTooManyLines     = fmt.Errorf("the number of lines already filled must be between 0 and %d", MaxFilledLines)
	errTerminalTooSmall = errors.New("terminal is too small")
)

type commandWiring struct {
	stdout       io.Writer
	stderr       io.Writer
	app          config.AppID
	terminalSize func() (width, height int, err error)
	install      func(cfg config.Config)
	runGame      func(model *game.Model) error
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdout:       stdout,
		stderr:       stderr,
		app:          config.DefaultApp,
		terminalSize: stdoutSize,
		install:      config.Install,
		runGame:      game.Run,
	}
}

func stdoutSize() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

func exitOnErr(label string, err error, stderr io.Writer) {
	if err == nil {
		return
	}
	fmt.Fprintf(stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}

type playOptions struct {
	level int
	lines int
}

func (o playOptions) validate() error {
	if o.lines < 0 || o.lines > MaxFilledLines {
		return errTooManyLines
	}
	if o.level < 0 || o.level > MaxLevel {
		return errLevelOutOfRange
	}
	return nil
}

func newRootCommand(wiring commandWiring) *cobra.Command {
	opts := playOptions{}
	root := &cobra.Command{
		Use:   "tetris",
		Short: "Play Tetris in the terminal",
		Long: `tetris runs the game in the current terminal.

Key bindings are read from tetris.json in the user config directory. The
file is created with the default bindings on first run; an unreadable or
invalid file falls back to the defaults with a warning.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), wiring, opts)
		},
	}
	root.SetOut(wiring.stdout)
	root.SetErr(wiring.stderr)
	root.Flags().IntVarP(&opts.level, "level", "l", 0, fmt.Sprintf("starting level (0-%d)", MaxLevel))
	root.Flags().IntVarP(&opts.lines, "lines", "n", 0, fmt.Sprintf("number of lines already filled (0-%d)", MaxFilledLines))

	root.AddCommand(newConfigCommand(wiring), newScoresCommand(wiring))
	return root
}

func requiredTerminalSize() (int, int) {
	playWidth := PlayWidth*CellWidth + 2
	return (StatsWidth+2+Distance)*2 + playWidth, PlayHeight + 2
}

func checkTerminalSize(width, height int) error {
	minWidth, minHeight := requiredTerminalSize()
	if width < minWidth || height < minHeight {
		return fmt.Errorf("%w: %dx%d, required %dx%d", errTerminalTooSmall, width, height, minWidth, minHeight)
	}
	return nil
}

func runPlay(ctx context.Context, wiring commandWiring, opts playOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}
	width, height, err := wiring.terminalSize()
	if err != nil {
		return fmt.Errorf("read terminal size: %w", err)
	}
	if err := checkTerminalSize(width, height); err != nil {
		return err
	}

	env := openEnvironment(wiring)
	defer env.Close()

	cfg, _ := env.loadConfig(wiring.app)
	wiring.install(cfg)

	model := game.NewFromInstalled(game.Options{
		Level:       opts.level,
		FilledLines: opts.lines,
		Leaderboard: env.leaderboard(ctx, wiring.app),
		Logger:      env.file,
	})
	env.file.Info("game starting", logFields(opts)...)
	return wiring.runGame(model)
}

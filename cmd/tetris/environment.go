package main

import (
	"context"
	"io"

	"tetris/internal/config"
	"tetris/internal/logging"
	"tetris/internal/scores"
)

// environment carries what every command needs after settings are read.
// logger reaches both the log file and stderr; file only the log file, and
// is the one handed to the UI once it owns the terminal.
type environment struct {
	settings config.Settings
	logger   logging.Logger
	file     logging.Logger
	closer   io.Closer
}

func openEnvironment(wiring commandWiring) *environment {
	console := logging.New(wiring.stderr, logging.Warn)
	settings, err := config.LoadSettings(wiring.app)
	if err != nil {
		console.Warn("using default settings", logging.Err(err))
		settings = config.DefaultSettings()
	}
	env := &environment{settings: settings, logger: console, file: logging.Nop()}

	path, err := settings.LogPath(wiring.app)
	if err == nil {
		var fileLogger logging.Logger
		fileLogger, env.closer, err = logging.OpenFile(path, logging.ParseLevel(settings.LogLevel()))
		if err == nil {
			env.file = fileLogger
			env.logger = logging.Multi(fileLogger, console)
		}
	}
	if err != nil {
		console.Warn("log file unavailable", logging.Err(err))
	}
	return env
}

func (e *environment) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

func (e *environment) keybindingsPath(app config.AppID) (string, error) {
	return e.settings.ResolveKeybindingsPath(app)
}

func (e *environment) loadConfig(app config.AppID) (config.Config, config.Report) {
	opts := []config.LoadOption{config.WithApp(app), config.WithLogger(e.logger)}
	// Without a resolvable path Load reports the location failure itself.
	if path, err := e.keybindingsPath(app); err == nil {
		opts = append(opts, config.WithPath(path))
	}
	return config.LoadWithReport(opts...)
}

func (e *environment) openScores(ctx context.Context, app config.AppID) (scores.Repository, error) {
	path, err := e.settings.ScoresPath(app)
	if err != nil {
		return nil, err
	}
	return scores.Open(ctx, e.settings.ScoresBackend(), path)
}

// leaderboard returns the top scores, or nil when the store is unavailable.
func (e *environment) leaderboard(ctx context.Context, app config.AppID) []scores.Player {
	repo, err := e.openScores(ctx, app)
	if err != nil {
		e.logger.Warn("high scores unavailable", logging.Err(err))
		return nil
	}
	defer repo.Close()
	top, err := repo.Top(ctx, scores.DefaultTopN)
	if err != nil {
		e.logger.Warn("high scores unavailable", logging.F("backend", repo.Backend()), logging.Err(err))
		return nil
	}
	return top
}

func logFields(opts playOptions) []logging.Field {
	return []logging.Field{
		logging.F("start_level", opts.level),
		logging.F("filled_lines", opts.lines),
	}
}

// Package scores persists high scores as a ranked list of (name, score).
package scores

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	BackendSQLite = "sqlite"
	BackendBbolt  = "bbolt"

	// DefaultTopN is the size of the leaderboard shown by the game.
	DefaultTopN = 5
)

var (
	ErrRankOutOfRange = errors.New("rank out of range")
	ErrNameRequired   = errors.New("player name is required")
	ErrNegativeScore  = errors.New("score must not be negative")
	ErrUnknownBackend = errors.New("unknown scores backend")
)

type Player struct {
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository ranks players by score, highest first. Equal scores keep
// insertion order.
type Repository interface {
	EnsureSchema(ctx context.Context) error
	Record(ctx context.Context, name string, score int) error
	Count(ctx context.Context) (int, error)
	Top(ctx context.Context, n int) ([]Player, error)
	// Rank returns the player at a 1-based position.
	Rank(ctx context.Context, position int) (Player, error)
	Backend() string
	Close() error
}

// Open opens the repository for backend at path and ensures its schema.
func Open(ctx context.Context, backend, path string) (Repository, error) {
	var (
		repo Repository
		err  error
	)
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendSQLite, "":
		repo, err = NewSQLiteRepository(path)
	case BackendBbolt:
		repo, err = NewBboltRepository(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
	if err != nil {
		return nil, err
	}
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = repo.Close()
		return nil, err
	}
	return repo, nil
}

func normalizeEntry(name string, score int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	if score < 0 {
		return "", ErrNegativeScore
	}
	return name, nil
}

func checkPosition(position int) error {
	if position < 1 {
		return fmt.Errorf("%w: %d", ErrRankOutOfRange, position)
	}
	return nil
}

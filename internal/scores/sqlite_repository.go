package scores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = "2006-01-02 15:04:05"

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(path string) (Repository, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("scores db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create scores directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scores database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to scores database: %w", err)
	}
	return &sqliteRepository{db: db}, nil
}

func (r *sqliteRepository) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS high_scores (
		id INTEGER PRIMARY KEY,
		player_name TEXT,
		score INTEGER,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_high_scores_score ON high_scores(score DESC);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize scores schema: %w", err)
	}
	return nil
}

func (r *sqliteRepository) Record(ctx context.Context, name string, score int) error {
	name, err := normalizeEntry(name, score)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO high_scores (player_name, score, created_at) VALUES (?, ?, ?)",
		name, score, time.Now().UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to record score: %w", err)
	}
	return nil
}

func (r *sqliteRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM high_scores").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count scores: %w", err)
	}
	return count, nil
}

func (r *sqliteRepository) Top(ctx context.Context, n int) ([]Player, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT player_name, score, created_at FROM high_scores ORDER BY score DESC, id ASC LIMIT ?",
		n,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query top scores: %w", err)
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read top scores: %w", err)
	}
	return players, nil
}

func (r *sqliteRepository) Rank(ctx context.Context, position int) (Player, error) {
	if err := checkPosition(position); err != nil {
		return Player{}, err
	}
	row := r.db.QueryRowContext(ctx,
		"SELECT player_name, score, created_at FROM high_scores ORDER BY score DESC, id ASC LIMIT 1 OFFSET ?",
		position-1,
	)
	player, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Player{}, fmt.Errorf("%w: %d", ErrRankOutOfRange, position)
	}
	if err != nil {
		return Player{}, err
	}
	return player, nil
}

func (r *sqliteRepository) Backend() string {
	return BackendSQLite
}

func (r *sqliteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (Player, error) {
	var (
		player    Player
		name      sql.NullString
		createdAt sql.NullString
	)
	if err := row.Scan(&name, &player.Score, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Player{}, err
		}
		return Player{}, fmt.Errorf("failed to scan score: %w", err)
	}
	player.Name = name.String
	if createdAt.Valid {
		player.CreatedAt = parseSQLiteTime(createdAt.String)
	}
	return player, nil
}

func parseSQLiteTime(raw string) time.Time {
	for _, layout := range []string{sqliteTimeLayout, time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

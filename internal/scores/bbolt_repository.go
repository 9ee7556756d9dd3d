package scores

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketHighScores = []byte("high_scores")

type bboltRepository struct {
	db *bolt.DB
}

type bboltEntry struct {
	id     uint64
	player Player
}

func NewBboltRepository(path string) (Repository, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("scores db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	return &bboltRepository{db: db}, nil
}

func (r *bboltRepository) EnsureSchema(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketHighScores)
		return err
	})
}

func (r *bboltRepository) Record(ctx context.Context, name string, score int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := normalizeEntry(name, score)
	if err != nil {
		return err
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketHighScores)
		if err != nil {
			return err
		}
		id, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		data, err := json.Marshal(Player{Name: name, Score: score, CreatedAt: time.Now().UTC()})
		if err != nil {
			return err
		}
		return bucket.Put(itob(id), data)
	})
}

func (r *bboltRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count := 0
	err := r.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketHighScores)
		if bucket == nil {
			return nil
		}
		count = bucket.Stats().KeyN
		return nil
	})
	return count, err
}

func (r *bboltRepository) Top(ctx context.Context, n int) ([]Player, error) {
	if n <= 0 {
		return nil, nil
	}
	entries, err := r.ranked(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) > n {
		entries = entries[:n]
	}
	players := make([]Player, 0, len(entries))
	for _, entry := range entries {
		players = append(players, entry.player)
	}
	return players, nil
}

func (r *bboltRepository) Rank(ctx context.Context, position int) (Player, error) {
	if err := checkPosition(position); err != nil {
		return Player{}, err
	}
	entries, err := r.ranked(ctx)
	if err != nil {
		return Player{}, err
	}
	if position > len(entries) {
		return Player{}, fmt.Errorf("%w: %d", ErrRankOutOfRange, position)
	}
	return entries[position-1].player, nil
}

// ranked loads every entry ordered by score descending, then by id.
func (r *bboltRepository) ranked(ctx context.Context) ([]bboltEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var entries []bboltEntry
	err := r.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketHighScores)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			var player Player
			if err := json.Unmarshal(v, &player); err != nil {
				return fmt.Errorf("decode score %x: %w", k, err)
			}
			entries = append(entries, bboltEntry{id: binary.BigEndian.Uint64(k), player: player})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].player.Score == entries[j].player.Score {
			return entries[i].id < entries[j].id
		}
		return entries[i].player.Score > entries[j].player.Score
	})
	return entries, nil
}

func (r *bboltRepository) Backend() string {
	return BackendBbolt
}

func (r *bboltRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

package scores

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openBackends(t *testing.T) map[string]Repository {
	t.Helper()
	ctx := context.Background()
	repos := map[string]Repository{}
	for _, backend := range []string{BackendSQLite, BackendBbolt} {
		repo, err := Open(ctx, backend, filepath.Join(t.TempDir(), "scores", backend+".db"))
		if err != nil {
			t.Fatalf("Open(%s): %v", backend, err)
		}
		t.Cleanup(func() { _ = repo.Close() })
		repos[backend] = repo
	}
	return repos
}

func TestRepositoryRanking(t *testing.T) {
	ctx := context.Background()
	for backend, repo := range openBackends(t) {
		t.Run(backend, func(t *testing.T) {
			if repo.Backend() != backend {
				t.Fatalf("unexpected backend name: %q", repo.Backend())
			}
			count, err := repo.Count(ctx)
			if err != nil || count != 0 {
				t.Fatalf("expected empty repository, got %d %v", count, err)
			}
			if _, err := repo.Rank(ctx, 1); !errors.Is(err, ErrRankOutOfRange) {
				t.Fatalf("expected ErrRankOutOfRange on empty repository, got %v", err)
			}

			entries := []struct {
				name  string
				score int
			}{
				{"ada", 300},
				{"bob", 1200},
				{"cy", 50},
				{"dee", 1200},
				{"eve", 700},
				{"fay", 0},
			}
			for _, e := range entries {
				if err := repo.Record(ctx, e.name, e.score); err != nil {
					t.Fatalf("Record(%s): %v", e.name, err)
				}
			}

			count, err = repo.Count(ctx)
			if err != nil || count != len(entries) {
				t.Fatalf("unexpected count: %d %v", count, err)
			}

			top, err := repo.Top(ctx, DefaultTopN)
			if err != nil {
				t.Fatalf("Top: %v", err)
			}
			wantNames := []string{"bob", "dee", "eve", "ada", "cy"}
			if len(top) != len(wantNames) {
				t.Fatalf("unexpected top length: %d", len(top))
			}
			for i, name := range wantNames {
				if top[i].Name != name {
					t.Fatalf("top[%d] = %s, want %s (%+v)", i, top[i].Name, name, top)
				}
				if i > 0 && top[i].Score > top[i-1].Score {
					t.Fatalf("top not sorted by score: %+v", top)
				}
			}

			all, err := repo.Top(ctx, 100)
			if err != nil || len(all) != len(entries) {
				t.Fatalf("expected all entries, got %d %v", len(all), err)
			}
			if none, err := repo.Top(ctx, 0); err != nil || len(none) != 0 {
				t.Fatalf("expected no entries for n=0, got %v %v", none, err)
			}

			first, err := repo.Rank(ctx, 1)
			if err != nil || first.Name != "bob" || first.Score != 1200 {
				t.Fatalf("unexpected rank 1: %+v %v", first, err)
			}
			last, err := repo.Rank(ctx, len(entries))
			if err != nil || last.Name != "fay" {
				t.Fatalf("unexpected last rank: %+v %v", last, err)
			}
			if first.CreatedAt.IsZero() {
				t.Fatalf("expected created_at to be set")
			}
			for _, pos := range []int{0, -1, len(entries) + 1} {
				if _, err := repo.Rank(ctx, pos); !errors.Is(err, ErrRankOutOfRange) {
					t.Fatalf("Rank(%d): expected ErrRankOutOfRange, got %v", pos, err)
				}
			}
		})
	}
}

func TestRepositoryRejectsInvalidEntries(t *testing.T) {
	ctx := context.Background()
	for backend, repo := range openBackends(t) {
		t.Run(backend, func(t *testing.T) {
			if err := repo.Record(ctx, "   ", 10); !errors.Is(err, ErrNameRequired) {
				t.Fatalf("expected ErrNameRequired, got %v", err)
			}
			if err := repo.Record(ctx, "neg", -1); !errors.Is(err, ErrNegativeScore) {
				t.Fatalf("expected ErrNegativeScore, got %v", err)
			}
			if err := repo.Record(ctx, "  padded  ", 10); err != nil {
				t.Fatalf("Record: %v", err)
			}
			player, err := repo.Rank(ctx, 1)
			if err != nil || player.Name != "padded" {
				t.Fatalf("expected trimmed name, got %+v %v", player, err)
			}
		})
	}
}

func TestRepositoryPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	for _, backend := range []string{BackendSQLite, BackendBbolt} {
		t.Run(backend, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scores.db")
			repo, err := Open(ctx, backend, path)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			if err := repo.Record(ctx, "ada", 42); err != nil {
				t.Fatalf("Record: %v", err)
			}
			if err := repo.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			repo, err = Open(ctx, backend, path)
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			defer repo.Close()
			if err := repo.EnsureSchema(ctx); err != nil {
				t.Fatalf("EnsureSchema must be idempotent: %v", err)
			}
			count, err := repo.Count(ctx)
			if err != nil || count != 1 {
				t.Fatalf("unexpected count after reopen: %d %v", count, err)
			}
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), "postgres", filepath.Join(t.TempDir(), "x.db"))
	if !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
	if _, err := NewSQLiteRepository(" "); err == nil {
		t.Fatalf("expected error for empty sqlite path")
	}
	if _, err := NewBboltRepository(""); err == nil {
		t.Fatalf("expected error for empty bbolt path")
	}
}

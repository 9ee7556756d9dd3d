package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tetris/internal/scores"
)

func newScoresCommand(wiring commandWiring) *cobra.Command {
	top := scores.DefaultTopN
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "List the high scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScoresList(cmd.Context(), cmd.OutOrStdout(), wiring, top)
		},
	}
	cmd.Flags().IntVar(&top, "top", scores.DefaultTopN, "number of entries to show")
	cmd.AddCommand(&cobra.Command{
		Use:   "record NAME SCORE",
		Short: "Record a score",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid score %q: %w", args[1], err)
			}
			return runScoresRecord(cmd.Context(), cmd.OutOrStdout(), wiring, args[0], score)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rank POSITION",
		Short: "Show the player at a leaderboard position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid position %q: %w", args[0], err)
			}
			return runScoresRank(cmd.Context(), cmd.OutOrStdout(), wiring, position)
		},
	})
	return cmd
}

func withScores(ctx context.Context, wiring commandWiring, fn func(scores.Repository) error) error {
	env := openEnvironment(wiring)
	defer env.Close()
	repo, err := env.openScores(ctx, wiring.app)
	if err != nil {
		return err
	}
	defer repo.Close()
	return fn(repo)
}

func runScoresList(ctx context.Context, out io.Writer, wiring commandWiring, top int) error {
	if top <= 0 {
		return fmt.Errorf("--top must be positive, got %d", top)
	}
	return withScores(ctx, wiring, func(repo scores.Repository) error {
		players, err := repo.Top(ctx, top)
		if err != nil {
			return err
		}
		if len(players) == 0 {
			_, err := fmt.Fprintln(out, "no scores yet")
			return err
		}
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RANK\tNAME\tSCORE\tDATE")
		for i, p := range players {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", i+1, p.Name, p.Score, p.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		return w.Flush()
	})
}

func runScoresRecord(ctx context.Context, out io.Writer, wiring commandWiring, name string, score int) error {
	return withScores(ctx, wiring, func(repo scores.Repository) error {
		if err := repo.Record(ctx, name, score); err != nil {
			return err
		}
		count, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		position, err := placement(ctx, repo, score, count)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "recorded %d for %s at rank %d (%d scores stored)\n", score, name, position, count)
		return err
	})
}

func runScoresRank(ctx context.Context, out io.Writer, wiring commandWiring, position int) error {
	return withScores(ctx, wiring, func(repo scores.Repository) error {
		p, err := repo.Rank(ctx, position)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "#%d %s %d (%s)\n", position, p.Name, p.Score, p.CreatedAt.Local().Format("2006-01-02 15:04"))
		return err
	})
}

// placement returns the position of a score that was just recorded. Equal
// scores keep insertion order, so it is the last position holding at least
// score.
func placement(ctx context.Context, repo scores.Repository, score, count int) (int, error) {
	position := 0
	for i := 1; i <= count; i++ {
		p, err := repo.Rank(ctx, i)
		if err != nil {
			return 0, err
		}
		if p.Score < score {
			break
		}
		position = i
	}
	return position, nil
}

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagScoresMode  string
	flagScoresLimit int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best runs of each mode.

Examples:
  snake scores
  snake scores --mode endless --limit 20
  snake scores --mode campaign --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresMode, "mode", "", "Only this mode: campaign or endless (default: both)")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show per mode")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the runs of the selected mode(s)")
}

func runScores(cmd *cobra.Command, _ []string) error {
	gameIDs := []string{snake.IDCampaign, snake.IDEndless}
	if flagScoresMode != "" {
		id, err := modeGameID(flagScoresMode)
		if err != nil {
			return err
		}
		gameIDs = []string{id}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	for i, id := range gameIDs {
		if i > 0 {
			fmt.Fprintln(out)
		}

		if flagClear {
			n, err := store.ClearRuns(id)
			if err != nil {
				return err
			}
			logger.Info("cleared scores", "game", id, "runs", n)
			fmt.Fprintf(out, "Cleared %d runs of %s.\n", n, registry.Title(id))
			continue
		}

		if err := printScores(out, store, id, flagScoresLimit); err != nil {
			return err
		}
	}
	return nil
}

func printScores(out io.Writer, store *storage.Store, gameID string, limit int) error {
	runs, err := store.TopRuns(gameID, limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", registry.Title(gameID))
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-6s  %-5s  %-6s  %-12s  %s\n", "Rank", "Score", "Level", "Length", "Player", "Date")
	fmt.Fprintf(out, "  %-4s  %-6s  %-5s  %-6s  %-12s  %s\n", "----", "-----", "-----", "------", "------", "----")
	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-6d  %-5d  %-6d  %-12s  %s\n",
			i+1, r.Score, r.Level, r.Length, r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	st, err := store.GameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nBest: %d  Runs: %d  Avg: %.1f  Best level: %d  Longest snake: %d\n",
		st.HighScore, st.Runs, st.AvgScore, st.BestLevel, st.LongestSnake)
	return nil
}

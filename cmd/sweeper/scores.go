package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

var flagRecent int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and round statistics",
	Long: `Display the top 10 scores, the win record per difficulty and the
most recent rounds.

Examples:
  sweeper scores
  sweeper scores --recent 20
  sweeper scores --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 5, "Number of recent rounds to show")
}

func runScores(_ *cobra.Command, _ []string) {
	const gameID = "sweeper"

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Println("High Scores - Sweeper")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'sweeper play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Cleared", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-------", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Average: %.1f  Scored rounds: %d\n", stats.HighScore, stats.AvgScore, stats.GamesCount)
	}

	byVariant, err := store.RoundStatsByVariant(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving round stats: %v\n", err)
		return
	}
	if len(byVariant) > 0 {
		fmt.Println()
		fmt.Printf("  %-8s  %-6s  %-6s  %-6s  %s\n", "Board", "Played", "Won", "Rate", "Best")
		for _, st := range byVariant {
			fmt.Printf("  %-8s  %-6d  %-6d  %5.0f%%  %d\n", st.Variant, st.Played, st.Won, st.WinRate()*100, st.BestReveals)
		}
	}

	if flagRecent <= 0 {
		return
	}
	rounds, err := store.RecentRounds(gameID, flagRecent)
	if err != nil || len(rounds) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Recent rounds:")
	for _, r := range rounds {
		result := "lost"
		if r.Won {
			result = "won"
		}
		fmt.Printf("  %s  %-8s  %-4s  %d/%d cleared\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Variant, result, r.Revealed, r.Cells-r.Mines)
	}
}

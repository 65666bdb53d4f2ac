package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sweeper/internal/config"
	"github.com/vovakirdan/tui-sweeper/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List games and difficulty presets",
	Long:  `Shows the registered games and the boards each difficulty preset plays on.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Difficulties:")
	fmt.Println()
	for _, d := range config.Difficulties() {
		board, ok := sweeperCfg.PresetBoard(d)
		if !ok {
			continue
		}
		marker := " "
		if d == sweeperCfg.Difficulty {
			marker = "*"
		}
		fmt.Printf("%s %-8s  %s\n", marker, d, board.Describe())
	}

	fmt.Println()
	fmt.Println("Run 'sweeper play --difficulty <name>' to play.")
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sweeper/internal/games/sweeper"
	"github.com/vovakirdan/tui-sweeper/internal/platform/tui"
	"github.com/vovakirdan/tui-sweeper/internal/registry"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start a round on the configured board.

Controls:
  Arrows/WASD/HJKL  - Move cursor
  Enter/Space/Click - Clear tile
  X                 - Give up (detonate every mine)
  R                 - Restart
  P/Esc             - Pause
  Ctrl+S            - Screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy    - 9x9, 10 mines
  normal  - 16x16, 40 mines
  hard    - 24x24, 99 mines
  classic - 24x24, 16 mines (default)

Examples:
  sweeper play
  sweeper play --difficulty easy
  sweeper play --seed 42
  sweeper play --config ./my-sweeper.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := runtimeConfig()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	gameLogger, closeLog := tuiLogger()
	defer closeLog()
	sweeper.SetLogger(gameLogger)

	game, err := registry.Create("sweeper")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg, gameLogger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

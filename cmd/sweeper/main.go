// sweeper is a terminal minesweeper built on a small stage machine.
//
// Usage:
//
//	sweeper list              - List games and difficulties
//	sweeper play              - Play a round
//	sweeper menu              - Pick a difficulty interactively
//	sweeper serve             - Start SSH server for remote play
//	sweeper bridge            - Serve the round protocol over WebSocket
//	sweeper scores            - Show high scores and round statistics
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <path>       - Custom sweeper.yaml
//	--difficulty <name>   - easy, normal, hard or classic
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-sweeper/internal/games/sweeper"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sweeper",
	Short: "Sweeper - clear a minefield in your terminal",
	Long: `Sweeper is a terminal minesweeper. Click a tile (or move the cursor
and press Enter) to clear it; zero tiles clear their neighbourhood.
Hit a bomb and the round is over.

Available commands:
  list     - Show games and difficulty presets
  play     - Play a round directly
  menu     - Interactive difficulty picker
  serve    - Start SSH server for remote play
  bridge   - WebSocket bridge for external renderers
  scores   - View high scores and round statistics

Examples:
  sweeper play
  sweeper play --difficulty easy
  sweeper menu
  sweeper serve --ssh :2222
  sweeper bridge --addr :8080
  sweeper scores`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom sweeper config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, classic")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write game logs to this file while the TUI is running")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(bridgeCmd)
	rootCmd.AddCommand(scoresCmd)
}

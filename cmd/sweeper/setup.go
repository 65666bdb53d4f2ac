package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sweeper/internal/config"
	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/games/sweeper"
)

var (
	logger     *log.Logger
	sweeperCfg config.SweeperConfig
)

// setup builds the logger and loads the board configuration before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "sweeper",
		Level:           level,
	})

	sweeperCfg, err = config.LoadSweeper(flagConfig)
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		preset, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return err
		}
		if err := config.ApplySweeperPreset(&sweeperCfg, preset); err != nil {
			return err
		}
	}
	logger.Debug("config loaded", "command", cmd.Name(), "difficulty", sweeperCfg.Difficulty, "board", sweeperCfg.Board.Describe())

	// Registry factories read these
	sweeper.SetConfig(sweeperCfg)
	sweeper.SetLogger(logger)
	return nil
}

// tuiLogger returns a logger that does not write over the alt screen.
// Logs go to --log-file when set and are dropped otherwise. The returned
// closer must be called when the program exits.
func tuiLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "sweeper",
		Level:           logger.GetLevel(),
	})
	return l, func() { f.Close() }
}

// runtimeConfig sizes the screen from the controlling terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

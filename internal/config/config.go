// Package config provides YAML-based configuration loading and
// difficulty presets for the sweeper.
package config

import (
	"errors"
	"fmt"
)

// WinRule selects how a cleared board is detected.
type WinRule string

const (
	// WinAllSafe ends the round once every non-mine tile is revealed.
	WinAllSafe WinRule = "all_safe"
	// WinNoFine ends the round once no unrevealed Fine tile remains;
	// hidden Danger tiles may still be on the board.
	WinNoFine WinRule = "no_fine"
)

// Valid reports whether r names a known rule.
func (r WinRule) Valid() bool {
	return r == WinAllSafe || r == WinNoFine
}

// SweeperConfig contains all configuration for the sweeper game.
type SweeperConfig struct {
	Board      BoardConfig                      `yaml:"board"`
	Layout     LayoutConfig                     `yaml:"layout"`
	Rules      RulesConfig                      `yaml:"rules"`
	Difficulty DifficultyPreset                 `yaml:"difficulty"`
	Presets    map[DifficultyPreset]BoardConfig `yaml:"presets"`
}

// BoardConfig defines the grid and mine count.
type BoardConfig struct {
	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`
	Mines   int `yaml:"mines"`
}

// Cells returns rows*columns.
func (b BoardConfig) Cells() int {
	return b.Rows * b.Columns
}

// LayoutConfig defines where each tile sits in world space.
// Positions are reported on detonation events for external renderers.
type LayoutConfig struct {
	BlockSize   float64 `yaml:"block_size"`
	BlockOffset float64 `yaml:"block_offset"`
}

// RulesConfig defines gameplay rules.
type RulesConfig struct {
	Win            WinRule `yaml:"win"`
	SafeFirstClick bool    `yaml:"safe_first_click"`
}

var (
	ErrInvalidBoard   = errors.New("config: rows and columns must be positive")
	ErrInvalidMines   = errors.New("config: invalid mine count")
	ErrInvalidWinRule = errors.New("config: unknown win rule")
	ErrInvalidLayout  = errors.New("config: block size and offset must be positive")
)

// Validate checks the configuration for values the game cannot run with.
func (c SweeperConfig) Validate() error {
	if err := c.Board.Validate(); err != nil {
		return err
	}
	if !c.Rules.Win.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidWinRule, c.Rules.Win)
	}
	if c.Layout.BlockSize <= 0 || c.Layout.BlockOffset <= 0 {
		return ErrInvalidLayout
	}
	if c.Difficulty != "" {
		if _, err := ParseDifficulty(string(c.Difficulty)); err != nil {
			return err
		}
	}
	for name, b := range c.Presets {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("config: preset %q: %w", name, err)
		}
	}
	return nil
}

// Validate checks a single board definition. At least one tile must stay
// free of mines.
func (b BoardConfig) Validate() error {
	if b.Rows <= 0 || b.Columns <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidBoard, b.Rows, b.Columns)
	}
	if b.Mines < 0 || b.Mines >= b.Cells() {
		return fmt.Errorf("%w: %d mines on %d cells", ErrInvalidMines, b.Mines, b.Cells())
	}
	return nil
}

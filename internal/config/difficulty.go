package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named board size.
type DifficultyPreset string

const (
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyClassic DifficultyPreset = "classic" // 24x24 with 16 bombs
)

var builtinPresets = map[DifficultyPreset]BoardConfig{
	DifficultyEasy:    {Rows: 9, Columns: 9, Mines: 10},
	DifficultyNormal:  {Rows: 16, Columns: 16, Mines: 40},
	DifficultyHard:    {Rows: 24, Columns: 24, Mines: 99},
	DifficultyClassic: {Rows: 24, Columns: 24, Mines: 16},
}

// Difficulties returns the preset names in menu order.
func Difficulties() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyClassic}
}

// ParseDifficulty converts a user supplied name into a preset.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := builtinPresets[p]; !ok {
		return "", fmt.Errorf("config: unknown difficulty %q (expected easy, normal, hard or classic)", s)
	}
	return p, nil
}

// PresetBoard returns the board for a preset. Presets defined in the
// config file take precedence over the built-in ones.
func (c SweeperConfig) PresetBoard(preset DifficultyPreset) (BoardConfig, bool) {
	if b, ok := c.Presets[preset]; ok {
		return b, true
	}
	b, ok := builtinPresets[preset]
	return b, ok
}

// ApplySweeperPreset replaces the board with the preset's board.
func ApplySweeperPreset(cfg *SweeperConfig, preset DifficultyPreset) error {
	b, ok := cfg.PresetBoard(preset)
	if !ok {
		return fmt.Errorf("config: unknown difficulty %q", preset)
	}
	cfg.Board = b
	cfg.Difficulty = preset
	return nil
}

// Describe returns a short label such as "16x16, 40 mines".
func (b BoardConfig) Describe() string {
	return fmt.Sprintf("%dx%d, %d mines", b.Columns, b.Rows, b.Mines)
}

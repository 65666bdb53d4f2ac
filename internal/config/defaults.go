package config

import (
	_ "embed"
)

//go:embed defaults/sweeper.yaml
var defaultSweeperYAML []byte

// DefaultSweeperConfig returns the default sweeper configuration.
// The board matches the classic preset.
func DefaultSweeperConfig() SweeperConfig {
	return SweeperConfig{
		Board: BoardConfig{
			Rows:    24,
			Columns: 24,
			Mines:   16,
		},
		Layout: LayoutConfig{
			BlockSize:   20,
			BlockOffset: 35,
		},
		Rules: RulesConfig{
			Win:            WinAllSafe,
			SafeFirstClick: true,
		},
		Difficulty: DifficultyClassic,
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "sweeper":
		return defaultSweeperYAML
	default:
		return nil
	}
}

package sweeper

import "fmt"

// Stage is the phase of a round.
type Stage uint8

const (
	StageNewGame    Stage = iota // Board is empty; the first click places mines
	StageMapSet                  // Mines are placed and the round is live
	StageKillScreen              // A mine went off or the player gave up
	StageWinScreen               // The board was cleared
)

var stageNames = [...]string{
	StageNewGame:    "new_game",
	StageMapSet:     "map_set",
	StageKillScreen: "kill_screen",
	StageWinScreen:  "win_screen",
}

// String returns the snake_case name used in logs and on the wire.
func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("stage(%d)", uint8(s))
}

// MarshalText encodes the stage by name.
func (s Stage) MarshalText() ([]byte, error) {
	if int(s) >= len(stageNames) {
		return nil, fmt.Errorf("sweeper: unknown stage %d", uint8(s))
	}
	return []byte(stageNames[s]), nil
}

// UnmarshalText decodes a stage name.
func (s *Stage) UnmarshalText(text []byte) error {
	for i, name := range stageNames {
		if name == string(text) {
			*s = Stage(i)
			return nil
		}
	}
	return fmt.Errorf("sweeper: unknown stage %q", text)
}

// IsTerminal reports whether the round is over.
func (s Stage) IsTerminal() bool {
	return s == StageKillScreen || s == StageWinScreen
}

// CanTransition reports whether moving from s to next is allowed.
// Every stage except NewGame itself may go back to NewGame through a reset.
func (s Stage) CanTransition(next Stage) bool {
	switch next {
	case StageNewGame:
		return s != StageNewGame
	case StageMapSet:
		return s == StageNewGame
	case StageKillScreen, StageWinScreen:
		return s == StageMapSet
	default:
		return false
	}
}

package sweeper

import "github.com/vovakirdan/tui-sweeper/internal/minefield"

// Event is something the stage machine reports back to its caller.
// The set of events is closed.
type Event interface {
	// Name is the stable wire name of the event.
	Name() string
	event()
}

// Position is a tile's location in world space, board centred on the origin.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TileCleared reports one tile moving from hidden to revealed.
type TileCleared struct {
	Index int
	Kind  minefield.TileKind
}

// BombTriggered reports the mine the player clicked.
type BombTriggered struct {
	Index    int
	Position Position
}

// GameOver is emitted when the round is lost.
type GameOver struct{}

// GameWon is emitted when the board is cleared.
type GameWon struct{}

// StageChanged reports a stage transition.
type StageChanged struct {
	From Stage
	To   Stage
}

func (TileCleared) Name() string   { return "tile_cleared" }
func (BombTriggered) Name() string { return "bomb_triggered" }
func (GameOver) Name() string      { return "game_over" }
func (GameWon) Name() string       { return "game_won" }
func (StageChanged) Name() string  { return "stage_changed" }

func (TileCleared) event()   {}
func (BombTriggered) event() {}
func (GameOver) event()      {}
func (GameWon) event()       {}
func (StageChanged) event()  {}

package sweeper

import "github.com/vovakirdan/tui-sweeper/internal/minefield"

// HiddenCell is how an unrevealed tile appears in a masked board view.
const HiddenCell = "hidden"

// BoardView is what a player is allowed to see of a round: revealed tiles
// by kind, everything else masked until the round is over.
type BoardView struct {
	Stage    Stage    `json:"stage"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Bombs    int      `json:"bombs"`
	Revealed int      `json:"revealed"`
	Cells    []string `json:"cells"`
}

// View returns the masked board. Once the round has ended every tile is
// shown as it is.
func (m *Machine) View() BoardView {
	rows, cols := m.field.Dimensions()
	terminal := m.stage.IsTerminal()

	cells := make([]string, m.field.Len())
	for idx, cell := range m.field.Cells() {
		if cell.IsRevealed() || terminal {
			cells[idx] = cell.String()
		} else {
			cells[idx] = HiddenCell
		}
	}

	return BoardView{
		Stage:    m.stage,
		Width:    cols,
		Height:   rows,
		Bombs:    m.field.BombCount(),
		Revealed: m.revealed,
		Cells:    cells,
	}
}

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Stage    Stage
	Cursor   int
	Revealed int
	Bombs    int
	Board    []minefield.TileKind
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tick,
		Stage:    g.machine.CurrentStage(),
		Cursor:   g.cursor,
		Revealed: g.machine.Revealed(),
		Bombs:    g.machine.BombCount(),
		Board:    g.machine.Board(),
	}
}

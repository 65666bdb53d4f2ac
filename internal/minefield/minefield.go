package minefield

import (
	"errors"
	"math/rand"
)

var (
	// ErrInvalidDimensions is returned for a board with a zero or negative side.
	ErrInvalidDimensions = errors.New("minefield: dimensions must be positive")
	// ErrNegativeMineCount is returned when asked to place fewer than zero mines.
	ErrNegativeMineCount = errors.New("minefield: mine count must not be negative")
	// ErrTooManyMines is returned when the mines would not leave a safe cell.
	ErrTooManyMines = errors.New("minefield: mine count leaves no safe cell")
	// ErrBombsAlreadySet is returned when SetBombs is called twice.
	ErrBombsAlreadySet = errors.New("minefield: mines already placed")
)

// Coord is a grid position. Row grows downward, Col grows rightward.
type Coord struct {
	Row int
	Col int
}

// Neighbor is one cell adjacent to a queried index.
type Neighbor struct {
	Coord Coord
	Index int
	Kind  TileKind
}

// neighborOffsets lists the 8 surrounding offsets as (dRow, dCol)
// in NW, N, NE, W, E, SW, S, SE order.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Minefield is a rectangular grid of tiles stored row-major.
type Minefield struct {
	width    int
	height   int
	bombs    int
	bombsSet bool
	cells    []TileKind
}

// New allocates a Fine-filled board.
func New(height, width int) (*Minefield, error) {
	if height <= 0 || width <= 0 {
		return nil, ErrInvalidDimensions
	}

	cells := make([]TileKind, height*width)
	for i := range cells {
		cells[i] = Fine
	}

	return &Minefield{
		width:  width,
		height: height,
		cells:  cells,
	}, nil
}

// MaxMines returns the largest mine count SetBombs accepts when reserving
// the given number of safe cells (at least one is always reserved).
func MaxMines(height, width, reserved int) int {
	if reserved < 1 {
		reserved = 1
	}
	n := height*width - reserved
	if n < 0 {
		return 0
	}
	return n
}

// SetBombs places count mines uniformly at random among the cells that are
// still Fine and not listed in safe, then annotates every remaining cell with
// its neighbour mine count. It may only be called once per board.
func (m *Minefield) SetBombs(count int, rng *rand.Rand, safe ...int) error {
	if m.bombsSet {
		return ErrBombsAlreadySet
	}
	if count < 0 {
		return ErrNegativeMineCount
	}

	reserved := make(map[int]bool, len(safe))
	for _, idx := range safe {
		if idx >= 0 && idx < len(m.cells) {
			reserved[idx] = true
		}
	}
	if count > MaxMines(m.height, m.width, len(reserved)) {
		return ErrTooManyMines
	}

	remaining := count
	for remaining > 0 {
		row, col := rng.Intn(m.height), rng.Intn(m.width)
		idx := row*m.width + col
		if reserved[idx] || m.cells[idx] != Fine {
			continue
		}
		m.cells[idx] = Boom
		remaining--
	}

	m.bombs = count
	m.bombsSet = true
	m.annotate()
	return nil
}

// annotate recomputes the danger count of every non-mine cell.
func (m *Minefield) annotate() {
	for idx, cell := range m.cells {
		if cell.IsMine() {
			continue
		}
		if n := m.bombCountAt(idx); n > 0 {
			m.cells[idx] = Danger(int(n))
		} else {
			m.cells[idx] = Fine
		}
	}
}

// bombCountAt counts mined neighbours, saturating at MaxDanger.
func (m *Minefield) bombCountAt(index int) uint8 {
	var count uint8
	for _, n := range m.Neighbors(index) {
		if n.Kind.IsMine() && count < MaxDanger {
			count++
		}
	}
	return count
}

// IndexToCoord converts a row-major index into a coordinate.
func (m *Minefield) IndexToCoord(index int) (Coord, bool) {
	if index < 0 || index >= len(m.cells) {
		return Coord{}, false
	}
	return Coord{Row: index / m.width, Col: index % m.width}, true
}

// CoordToIndex converts a coordinate into a row-major index.
func (m *Minefield) CoordToIndex(row, col int) (int, bool) {
	if !m.InBounds(row, col) {
		return 0, false
	}
	return row*m.width + col, true
}

// InBounds reports whether (row, col) lies on the board.
func (m *Minefield) InBounds(row, col int) bool {
	return row >= 0 && row < m.height && col >= 0 && col < m.width
}

// At returns the tile at index.
func (m *Minefield) At(index int) (TileKind, bool) {
	if index < 0 || index >= len(m.cells) {
		return TileKind{}, false
	}
	return m.cells[index], true
}

// AtCoords returns the tile at (row, col).
func (m *Minefield) AtCoords(row, col int) (TileKind, bool) {
	idx, ok := m.CoordToIndex(row, col)
	if !ok {
		return TileKind{}, false
	}
	return m.cells[idx], true
}

// Neighbors returns the in-bounds cells around index in NW, N, NE, W, E,
// SW, S, SE order. It returns nil for an index outside the board.
func (m *Minefield) Neighbors(index int) []Neighbor {
	c, ok := m.IndexToCoord(index)
	if !ok {
		return nil
	}

	result := make([]Neighbor, 0, len(neighborOffsets))
	for _, off := range neighborOffsets {
		row, col := c.Row+off[0], c.Col+off[1]
		idx, ok := m.CoordToIndex(row, col)
		if !ok {
			continue
		}
		result = append(result, Neighbor{
			Coord: Coord{Row: row, Col: col},
			Index: idx,
			Kind:  m.cells[idx],
		})
	}
	return result
}

// MarkDefused reveals a Fine or Danger tile in place and returns its new kind.
// Mines and already revealed tiles are left untouched and report false.
func (m *Minefield) MarkDefused(index int) (TileKind, bool) {
	cell, ok := m.At(index)
	if !ok || cell.IsMine() || cell.IsRevealed() {
		return cell, false
	}
	m.cells[index] = cell.Revealed()
	return m.cells[index], true
}

// Width returns the number of columns.
func (m *Minefield) Width() int { return m.width }

// Height returns the number of rows.
func (m *Minefield) Height() int { return m.height }

// Dimensions returns (height, width).
func (m *Minefield) Dimensions() (int, int) { return m.height, m.width }

// Len returns the number of cells.
func (m *Minefield) Len() int { return len(m.cells) }

// BombCount returns the number of mines placed.
func (m *Minefield) BombCount() int { return m.bombs }

// BombsSet reports whether SetBombs has run.
func (m *Minefield) BombsSet() bool { return m.bombsSet }

// Cells returns a copy of the board contents.
func (m *Minefield) Cells() []TileKind {
	out := make([]TileKind, len(m.cells))
	copy(out, m.cells)
	return out
}

// CountKind returns how many cells carry the given kind tag.
func (m *Minefield) CountKind(k Kind) int {
	n := 0
	for _, cell := range m.cells {
		if cell.Kind == k {
			n++
		}
	}
	return n
}

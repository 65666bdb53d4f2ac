package minefield

import (
	"testing"

	"github.com/zyedidia/generic/mapset"
)

// expectedRegion computes, by brute force, the Fine component around seed
// plus its Danger border.
func expectedRegion(m *Minefield, seed int) map[int]bool {
	region := map[int]bool{seed: true}
	queue := []int{seed}
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		for _, n := range m.Neighbors(idx) {
			if region[n.Index] || n.Kind.IsMine() {
				continue
			}
			region[n.Index] = true
			if n.Kind.IsFine() {
				queue = append(queue, n.Index)
			}
		}
	}
	return region
}

func TestFloodClearSingleMineCorner(t *testing.T) {
	// 4x4 with a mine in the top-left corner:
	//   * 1 . .
	//   1 1 . .
	//   . . . .
	//   . . . .
	m := minedBoard(t, 4, 4, Coord{0, 0})
	hidden := NewHiddenSet(m)

	reveals := m.FloodClear(hidden, 15)

	if len(reveals) != 15 {
		t.Fatalf("revealed %d cells, expected 15", len(reveals))
	}
	if hidden.Size() != 1 || !hidden.Has(0) {
		t.Errorf("hidden set should contain only the mine, size = %d", hidden.Size())
	}
	if cell, _ := m.At(0); cell != Boom {
		t.Errorf("mine changed to %v", cell)
	}
	if cell, _ := m.At(5); cell != Defused(1) {
		t.Errorf("cell 5 = %v, expected defused(1)", cell)
	}
}

func TestFloodClearDangerSeedRevealsOnlyItself(t *testing.T) {
	m := minedBoard(t, 4, 4, Coord{0, 0})
	hidden := NewHiddenSet(m)

	reveals := m.FloodClear(hidden, 1)
	if len(reveals) != 1 || reveals[0].Index != 1 {
		t.Fatalf("reveals = %v, expected only index 1", reveals)
	}
	if reveals[0].Kind != Defused(1) {
		t.Errorf("revealed kind = %v, expected defused(1)", reveals[0].Kind)
	}
	if hidden.Size() != 15 {
		t.Errorf("hidden size = %d, expected 15", hidden.Size())
	}
}

func TestFloodClearStopsAtDangerWall(t *testing.T) {
	// A vertical wall of mines in column 2 splits the board.
	m := minedBoard(t, 3, 5, Coord{0, 2}, Coord{1, 2}, Coord{2, 2})
	hidden := NewHiddenSet(m)

	m.FloodClear(hidden, 0)

	for row := 0; row < 3; row++ {
		for col := 3; col < 5; col++ {
			idx, _ := m.CoordToIndex(row, col)
			if !hidden.Has(idx) {
				t.Errorf("cell (%d,%d) beyond the wall was revealed", row, col)
			}
		}
		idx, _ := m.CoordToIndex(row, 1)
		if hidden.Has(idx) {
			t.Errorf("danger border (%d,1) was not revealed", row)
		}
	}
}

func TestFloodClearMineSeedIsNoop(t *testing.T) {
	m := minedBoard(t, 3, 3, Coord{1, 1})
	hidden := NewHiddenSet(m)

	if reveals := m.FloodClear(hidden, 4); reveals != nil {
		t.Errorf("clicking a mine through FloodClear revealed %v", reveals)
	}
	if hidden.Size() != 9 {
		t.Errorf("hidden size = %d, expected 9", hidden.Size())
	}
}

func TestFloodClearRevealedSeedIsNoop(t *testing.T) {
	m := minedBoard(t, 3, 3, Coord{0, 0})
	hidden := NewHiddenSet(m)
	m.FloodClear(hidden, 8)

	if reveals := m.FloodClear(hidden, 8); len(reveals) != 0 {
		t.Errorf("second FloodClear revealed %d cells", len(reveals))
	}
}

func TestFloodClearCompleteness(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		m := mustNew(t, 12, 12)
		if err := m.SetBombs(20, newRNG(seed)); err != nil {
			t.Fatalf("SetBombs failed: %v", err)
		}

		start := -1
		for idx := 0; idx < m.Len(); idx++ {
			if cell, _ := m.At(idx); cell.IsFine() {
				start = idx
				break
			}
		}
		if start < 0 {
			continue
		}

		want := expectedRegion(m, start)
		hidden := NewHiddenSet(m)
		reveals := m.FloodClear(hidden, start)

		got := mapset.New[int]()
		for _, r := range reveals {
			got.Put(r.Index)
			if r.Kind.Kind != KindDefused {
				t.Errorf("seed %d: reveal of %d has kind %v", seed, r.Index, r.Kind)
			}
		}
		if got.Size() != len(reveals) {
			t.Errorf("seed %d: duplicate reveals", seed)
		}
		if got.Size() != len(want) {
			t.Errorf("seed %d: revealed %d cells, expected %d", seed, got.Size(), len(want))
		}
		for idx := range want {
			if !got.Has(idx) {
				t.Errorf("seed %d: cell %d should have been revealed", seed, idx)
			}
		}
		if m.CountKind(KindBoom) != 20 {
			t.Errorf("seed %d: flood clear touched a mine", seed)
		}
	}
}

func TestFloodClearLargeOpenBoard(t *testing.T) {
	// A big empty board must clear without recursion limits.
	m := mustNew(t, 300, 300)
	if err := m.SetBombs(0, newRNG(1)); err != nil {
		t.Fatalf("SetBombs failed: %v", err)
	}
	hidden := NewHiddenSet(m)
	reveals := m.FloodClear(hidden, 0)
	if len(reveals) != m.Len() {
		t.Errorf("revealed %d cells, expected %d", len(reveals), m.Len())
	}
	if hidden.Size() != 0 {
		t.Errorf("hidden size = %d, expected 0", hidden.Size())
	}
}

func TestNewHiddenSetSkipsRevealed(t *testing.T) {
	m := minedBoard(t, 2, 2, Coord{0, 0})
	m.MarkDefused(3)
	hidden := NewHiddenSet(m)
	if hidden.Size() != 3 || hidden.Has(3) {
		t.Errorf("hidden set size = %d, has(3) = %v", hidden.Size(), hidden.Has(3))
	}
}

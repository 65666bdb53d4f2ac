package minefield

import "github.com/zyedidia/generic/mapset"

// Reveal records one cell moving from hidden to revealed.
type Reveal struct {
	Index int
	Kind  TileKind // Kind after reveal (always KindDefused)
}

// NewHiddenSet returns the set of every index that is not yet revealed.
func NewHiddenSet(m *Minefield) mapset.Set[int] {
	hidden := mapset.New[int]()
	for idx, cell := range m.cells {
		if !cell.IsRevealed() {
			hidden.Put(idx)
		}
	}
	return hidden
}

// FloodClear reveals seed and, when seed is Fine, the whole Fine region
// connected to it plus the Danger cells bordering that region. Danger cells
// are revealed but never expanded. Mines are never revealed; a mined or
// already revealed seed yields no reveals.
//
// Every revealed index is removed from hidden and marked Defused on the board.
// The result is in traversal order, which is stable for a given board.
func (m *Minefield) FloodClear(hidden mapset.Set[int], seed int) []Reveal {
	cell, ok := m.At(seed)
	if !ok || cell.IsMine() || !hidden.Has(seed) {
		return nil
	}

	var reveals []Reveal
	reveal := func(idx int) {
		hidden.Remove(idx)
		if kind, changed := m.MarkDefused(idx); changed {
			reveals = append(reveals, Reveal{Index: idx, Kind: kind})
		}
	}

	reveal(seed)
	if cell.IsDanger() {
		return reveals
	}

	stack := []int{seed}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, n := range m.Neighbors(idx) {
			if !hidden.Has(n.Index) {
				continue
			}
			switch n.Kind.Kind {
			case KindFine:
				reveal(n.Index)
				stack = append(stack, n.Index)
			case KindDanger:
				reveal(n.Index)
			}
		}
	}

	return reveals
}

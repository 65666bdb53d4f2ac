// Package minefield holds the board model for the sweeper game: grid layout,
// mine placement, neighbour queries and the flood-clear traversal.
// It has no dependency on rendering or the platform layer.
package minefield

import "fmt"

// Kind is the tag of a TileKind.
type Kind uint8

const (
	KindFine    Kind = iota // No mine and no mined neighbours
	KindDanger              // No mine, 1..8 mined neighbours
	KindBoom                // A mine
	KindDefused             // Revealed by the player
)

// String returns a lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case KindFine:
		return "fine"
	case KindDanger:
		return "danger"
	case KindBoom:
		return "boom"
	case KindDefused:
		return "defused"
	default:
		return "unknown"
	}
}

// MaxDanger is the largest possible neighbour mine count on a 2-D grid.
const MaxDanger = 8

// TileKind is the content of a single cell.
// Count is meaningful for KindDanger (1..8) and KindDefused (0..8).
type TileKind struct {
	Kind  Kind
	Count uint8
}

var (
	// Fine is an untouched cell with no mined neighbours.
	Fine = TileKind{Kind: KindFine}
	// Boom is a mine.
	Boom = TileKind{Kind: KindBoom}
)

// Danger returns a danger tile for n mined neighbours.
// n is clamped to 1..8; callers with n == 0 should use Fine.
func Danger(n int) TileKind {
	return TileKind{Kind: KindDanger, Count: clampCount(n, 1)}
}

// Defused returns a revealed tile that had n mined neighbours.
func Defused(n int) TileKind {
	return TileKind{Kind: KindDefused, Count: clampCount(n, 0)}
}

func clampCount(n, lo int) uint8 {
	if n < lo {
		n = lo
	}
	if n > MaxDanger {
		n = MaxDanger
	}
	return uint8(n)
}

// IsMine reports whether the tile is a mine.
func (t TileKind) IsMine() bool {
	return t.Kind == KindBoom
}

// IsDanger reports whether the tile is an unrevealed danger tile.
func (t TileKind) IsDanger() bool {
	return t.Kind == KindDanger
}

// IsFine reports whether the tile is an unrevealed tile with no mined neighbours.
func (t TileKind) IsFine() bool {
	return t.Kind == KindFine
}

// IsRevealed reports whether the player has already cleared the tile.
func (t TileKind) IsRevealed() bool {
	return t.Kind == KindDefused
}

// Revealed returns the defused form of a Fine or Danger tile.
// Mines and already defused tiles are returned unchanged.
func (t TileKind) Revealed() TileKind {
	switch t.Kind {
	case KindFine:
		return Defused(0)
	case KindDanger:
		return Defused(int(t.Count))
	default:
		return t
	}
}

// String renders the tile as "fine", "danger(3)", "boom" or "defused(2)".
func (t TileKind) String() string {
	switch t.Kind {
	case KindDanger, KindDefused:
		return fmt.Sprintf("%s(%d)", t.Kind, t.Count)
	default:
		return t.Kind.String()
	}
}

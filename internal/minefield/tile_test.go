package minefield

import "testing"

func TestTileKindString(t *testing.T) {
	tests := []struct {
		kind     TileKind
		expected string
	}{
		{Fine, "fine"},
		{Boom, "boom"},
		{Danger(3), "danger(3)"},
		{Defused(0), "defused(0)"},
		{Defused(5), "defused(5)"},
	}

	for _, tc := range tests {
		if got := tc.kind.String(); got != tc.expected {
			t.Errorf("String() = %q, expected %q", got, tc.expected)
		}
	}
}

func TestDangerSaturates(t *testing.T) {
	if got := Danger(12); got.Count != MaxDanger {
		t.Errorf("Danger(12).Count = %d, expected %d", got.Count, MaxDanger)
	}
	if got := Danger(0); got.Count != 1 {
		t.Errorf("Danger(0).Count = %d, expected 1", got.Count)
	}
	if got := Defused(300); got.Count != MaxDanger {
		t.Errorf("Defused(300).Count = %d, expected %d", got.Count, MaxDanger)
	}
}

func TestRevealed(t *testing.T) {
	if got := Fine.Revealed(); got != Defused(0) {
		t.Errorf("Fine.Revealed() = %v, expected defused(0)", got)
	}
	if got := Danger(4).Revealed(); got != Defused(4) {
		t.Errorf("Danger(4).Revealed() = %v, expected defused(4)", got)
	}
	if got := Boom.Revealed(); got != Boom {
		t.Errorf("Boom.Revealed() = %v, expected boom", got)
	}
}

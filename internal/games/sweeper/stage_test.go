package sweeper

import (
	"encoding/json"
	"testing"

	"github.com/vovakirdan/tui-sweeper/internal/minefield"
)

func TestStageCanTransition(t *testing.T) {
	stages := []Stage{StageNewGame, StageMapSet, StageKillScreen, StageWinScreen}
	allowed := map[[2]Stage]bool{
		{StageNewGame, StageMapSet}:     true,
		{StageMapSet, StageKillScreen}:  true,
		{StageMapSet, StageWinScreen}:   true,
		{StageMapSet, StageNewGame}:     true,
		{StageKillScreen, StageNewGame}: true,
		{StageWinScreen, StageNewGame}:  true,
	}

	for _, from := range stages {
		for _, to := range stages {
			want := allowed[[2]Stage{from, to}]
			if got := from.CanTransition(to); got != want {
				t.Errorf("%v.CanTransition(%v) = %v, expected %v", from, to, got, want)
			}
		}
	}
}

func TestStageText(t *testing.T) {
	tests := []struct {
		stage Stage
		name  string
	}{
		{StageNewGame, "new_game"},
		{StageMapSet, "map_set"},
		{StageKillScreen, "kill_screen"},
		{StageWinScreen, "win_screen"},
	}

	for _, tc := range tests {
		if tc.stage.String() != tc.name {
			t.Errorf("String() = %q, expected %q", tc.stage.String(), tc.name)
		}
		data, err := json.Marshal(tc.stage)
		if err != nil {
			t.Fatal(err)
		}
		var back Stage
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatal(err)
		}
		if back != tc.stage {
			t.Errorf("decoded %s as %v", data, back)
		}
	}

	if Stage(9).String() != "stage(9)" {
		t.Errorf("unknown stage String() = %q", Stage(9).String())
	}
	var s Stage
	if err := s.UnmarshalText([]byte("lobby")); err == nil {
		t.Error("expected error for unknown stage name")
	}
}

func TestEventNames(t *testing.T) {
	events := map[string]Event{
		"tile_cleared":   TileCleared{Index: 1, Kind: minefield.Defused(2)},
		"bomb_triggered": BombTriggered{Index: 3},
		"game_over":      GameOver{},
		"game_won":       GameWon{},
		"stage_changed":  StageChanged{From: StageNewGame, To: StageMapSet},
	}
	for name, ev := range events {
		if ev.Name() != name {
			t.Errorf("%T.Name() = %q, expected %q", ev, ev.Name(), name)
		}
	}
}

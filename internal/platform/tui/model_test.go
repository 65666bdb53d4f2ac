package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sweeper/internal/config"
	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/games/sweeper"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func easyModel(t *testing.T, store *storage.Store, opts ...ModelOption) Model {
	t.Helper()
	cfg := config.DefaultSweeperConfig()
	if err := config.ApplySweeperPreset(&cfg, config.DifficultyEasy); err != nil {
		t.Fatal(err)
	}
	g := sweeper.NewWithConfig(cfg, nil)
	m := NewModel(g, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}, opts...)
	m.Init()
	return m
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{runeKey("s"), core.ActionDown, false},
		{runeKey("a"), core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, core.ActionConfirm, false},
		{runeKey("x"), core.ActionDetonate, false},
		{runeKey("r"), core.ActionRestart, false},
		{runeKey("p"), core.ActionPause, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runeKey("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey("z"), core.ActionNone, false},
	}

	for _, tc := range tests {
		action, quit := km.MapKey(tc.msg)
		if action != tc.action || quit != tc.quit {
			t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tc.msg.String(), action, quit, tc.action, tc.quit)
		}
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	release := tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	if km.MapMouseToFrame(release, &frame) || len(frame.Clicks) != 0 {
		t.Error("release should not produce a click")
	}
	right := tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}
	if km.MapMouseToFrame(right, &frame) {
		t.Error("right button should not produce a click")
	}
	press := tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	if !km.MapMouseToFrame(press, &frame) {
		t.Fatal("left press should produce a click")
	}
	if len(frame.Clicks) != 1 || frame.Clicks[0] != (core.Point{X: 3, Y: 4}) {
		t.Errorf("Clicks = %v, expected [(3,4)]", frame.Clicks)
	}
}

func TestModelSavesRoundOnce(t *testing.T) {
	store := openStore(t)
	m := easyModel(t, store)

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter}, TickMsg{})
	if m.State().GameOver {
		t.Skip("first click cleared the whole field")
	}
	m = send(m, runeKey("x"), TickMsg{}, TickMsg{}, TickMsg{})
	if !m.State().GameOver || m.State().Won {
		t.Fatalf("State() = %+v, expected a lost round", m.State())
	}

	rounds, err := store.RecentRounds("sweeper", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rounds) != 1 {
		t.Fatalf("saved %d rounds, expected 1", len(rounds))
	}
	if rounds[0].Variant != "easy" || rounds[0].Won || rounds[0].Cells != 81 {
		t.Errorf("round = %+v", rounds[0])
	}
	if high, _ := store.HighScore("sweeper"); high != rounds[0].Revealed {
		t.Errorf("HighScore() = %d, expected %d", high, rounds[0].Revealed)
	}

	// Restart opens a new round that is saved separately
	m = send(m, runeKey("r"), TickMsg{})
	if m.State().GameOver {
		t.Fatal("restart should start a new round")
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter}, TickMsg{}, runeKey("x"), TickMsg{})
	rounds, _ = store.RecentRounds("sweeper", 10)
	if m.State().GameOver && len(rounds) != 2 {
		t.Errorf("saved %d rounds after second game, expected 2", len(rounds))
	}
}

func TestModelBackAndQuit(t *testing.T) {
	m := easyModel(t, nil, Embedded())

	// Esc during play pauses instead of leaving
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc}, TickMsg{})
	if m.BackToMenu() {
		t.Fatal("esc during play should not leave the game")
	}
	if !m.State().Paused {
		t.Fatal("esc during play should pause")
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc while paused should go back to the menu")
	}

	next, cmd := m.Update(runeKey("q"))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if next.(Model).View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelMouseClickStartsRound(t *testing.T) {
	m := easyModel(t, nil)
	g := m.game.(*sweeper.Game)

	r := g.TileRect(40)
	m = send(m,
		tea.MouseMsg{X: r.X + 1, Y: r.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		TickMsg{},
	)
	if g.Machine().CurrentStage() == sweeper.StageNewGame {
		t.Error("mouse click should start the round")
	}
	if kind, _ := g.Machine().TileKindAt(40); !kind.IsRevealed() {
		t.Errorf("clicked tile = %v, expected revealed", kind)
	}
}

func TestModelResizeKeepsRound(t *testing.T) {
	m := easyModel(t, nil)
	g := m.game.(*sweeper.Game)

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter}, TickMsg{})
	revealed := g.Machine().Revealed()

	m = send(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if g.Machine().Revealed() != revealed {
		t.Error("resize should keep the round")
	}
	if !strings.Contains(m.View(), "S W E E P E R") {
		t.Error("view should contain the title")
	}
}

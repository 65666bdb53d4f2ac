// Package sweeper implements the minefield round: a stage machine that turns
// tile clicks into events, plus the terminal game built on top of it.
package sweeper

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/tui-sweeper/internal/config"
	"github.com/vovakirdan/tui-sweeper/internal/minefield"
)

// MachineConfig holds what a stage machine needs to run a round.
type MachineConfig struct {
	Rows           int
	Columns        int
	Mines          int
	BlockOffset    float64
	Win            config.WinRule
	SafeFirstClick bool
}

// MachineConfigFrom extracts the machine settings from a loaded config.
func MachineConfigFrom(cfg config.SweeperConfig) MachineConfig {
	return MachineConfig{
		Rows:           cfg.Board.Rows,
		Columns:        cfg.Board.Columns,
		Mines:          cfg.Board.Mines,
		BlockOffset:    cfg.Layout.BlockOffset,
		Win:            cfg.Rules.Win,
		SafeFirstClick: cfg.Rules.SafeFirstClick,
	}
}

// DefaultMachineConfig returns the settings of the default config.
func DefaultMachineConfig() MachineConfig {
	return MachineConfigFrom(config.DefaultSweeperConfig())
}

// Machine owns one round: the board, the set of hidden tiles and the stage.
// It is not safe for concurrent use.
type Machine struct {
	cfg    MachineConfig
	rng    *rand.Rand
	logger *log.Logger

	field     *minefield.Minefield
	hidden    mapset.Set[int]
	stage     Stage
	revealed  int
	detonated int // index of the mine that went off, -1 if none
}

// NewMachine validates cfg and returns a machine in StageNewGame.
// A nil rng is seeded from the clock; a nil logger discards output.
func NewMachine(cfg MachineConfig, rng *rand.Rand, logger *log.Logger) (*Machine, error) {
	if cfg.Win == "" {
		cfg.Win = config.WinAllSafe
	}
	if !cfg.Win.Valid() {
		return nil, fmt.Errorf("sweeper: %w: %q", config.ErrInvalidWinRule, cfg.Win)
	}
	if cfg.Mines < 0 {
		return nil, fmt.Errorf("sweeper: %w", minefield.ErrNegativeMineCount)
	}
	if cfg.Rows > 0 && cfg.Columns > 0 && cfg.Mines > minefield.MaxMines(cfg.Rows, cfg.Columns, 1) {
		return nil, fmt.Errorf("sweeper: %w: %d mines on %dx%d", minefield.ErrTooManyMines, cfg.Mines, cfg.Rows, cfg.Columns)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := &Machine{
		cfg:    cfg,
		rng:    rng,
		logger: logger,
	}
	if err := m.newBoard(); err != nil {
		return nil, fmt.Errorf("sweeper: %w", err)
	}
	return m, nil
}

func (m *Machine) newBoard() error {
	field, err := minefield.New(m.cfg.Rows, m.cfg.Columns)
	if err != nil {
		return err
	}
	m.field = field
	m.hidden = minefield.NewHiddenSet(field)
	m.stage = StageNewGame
	m.revealed = 0
	m.detonated = -1
	return nil
}

// Click handles a click on the tile at index.
func (m *Machine) Click(index int) []Event {
	if _, ok := m.field.At(index); !ok {
		m.logger.Warn("click outside the board", "index", index, "cells", m.field.Len())
		return nil
	}

	switch m.stage {
	case StageNewGame:
		events := m.placeMines(index)
		if m.stage != StageMapSet {
			return events
		}
		return append(events, m.clickLive(index)...)
	case StageMapSet:
		return m.clickLive(index)
	default:
		m.logger.Debug("click ignored", "stage", m.stage, "index", index)
		return nil
	}
}

// Tick processes the clicks gathered during one frame. Only the first
// click is honoured; the rest are dropped.
func (m *Machine) Tick(clicks []int) []Event {
	if len(clicks) == 0 {
		return nil
	}
	if len(clicks) > 1 {
		m.logger.Warn("dropping extra clicks", "honoured", clicks[0], "dropped", len(clicks)-1)
	}
	return m.Click(clicks[0])
}

// Reset discards the board and returns to StageNewGame with an all-Fine
// grid. Resetting an untouched board is a no-op.
func (m *Machine) Reset() []Event {
	from := m.stage
	if from == StageNewGame && !m.field.BombsSet() {
		return nil
	}
	if err := m.newBoard(); err != nil {
		// Unreachable: dimensions were checked by NewMachine.
		m.logger.Error("reset failed", "err", err)
		return nil
	}
	return []Event{StageChanged{From: from, To: StageNewGame}}
}

// Endgame ends a live round without a detonation.
func (m *Machine) Endgame() []Event {
	if m.stage != StageMapSet {
		m.logger.Debug("endgame ignored", "stage", m.stage)
		return nil
	}
	events := m.transition(StageKillScreen)
	return append(events, GameOver{})
}

func (m *Machine) placeMines(first int) []Event {
	var safe []int
	if m.cfg.SafeFirstClick {
		safe = []int{first}
	}
	if err := m.field.SetBombs(m.cfg.Mines, m.rng, safe...); err != nil {
		if errors.Is(err, minefield.ErrBombsAlreadySet) {
			m.logger.Warn("mines already placed", "stage", m.stage)
		} else {
			m.logger.Error("placing mines", "err", err, "mines", m.cfg.Mines)
		}
		return nil
	}
	m.logger.Debug("mines placed", "mines", m.field.BombCount(), "first", first)
	return m.transition(StageMapSet)
}

func (m *Machine) clickLive(index int) []Event {
	cell, _ := m.field.At(index)
	switch {
	case cell.IsRevealed():
		return nil
	case cell.IsMine():
		return m.detonate(index)
	}

	reveals := m.field.FloodClear(m.hidden, index)
	m.revealed += len(reveals)

	events := make([]Event, 0, len(reveals)+2)
	for _, r := range reveals {
		events = append(events, TileCleared{Index: r.Index, Kind: r.Kind})
	}
	if m.cleared() {
		events = append(events, m.transition(StageWinScreen)...)
		events = append(events, GameWon{})
	}
	return events
}

func (m *Machine) detonate(index int) []Event {
	m.detonated = index
	events := []Event{BombTriggered{Index: index, Position: m.PositionOf(index)}}
	events = append(events, m.transition(StageKillScreen)...)
	return append(events, GameOver{})
}

// cleared applies the configured win rule.
func (m *Machine) cleared() bool {
	switch m.cfg.Win {
	case config.WinNoFine:
		return m.field.CountKind(minefield.KindFine) == 0
	default:
		return m.revealed == m.field.Len()-m.field.BombCount()
	}
}

func (m *Machine) transition(to Stage) []Event {
	from := m.stage
	if !from.CanTransition(to) {
		m.logger.Error("invalid stage transition", "from", from, "to", to)
		return nil
	}
	m.stage = to
	m.logger.Debug("stage changed", "from", from, "to", to)
	return []Event{StageChanged{From: from, To: to}}
}

// TileKindAt returns the kind of the tile at index.
func (m *Machine) TileKindAt(index int) (minefield.TileKind, bool) {
	return m.field.At(index)
}

// CurrentStage returns the stage of the round.
func (m *Machine) CurrentStage() Stage {
	return m.stage
}

// BombCount returns the number of mines on the board (0 before the first click).
func (m *Machine) BombCount() int {
	return m.field.BombCount()
}

// ConfiguredMines returns the number of mines the next round will place.
func (m *Machine) ConfiguredMines() int {
	return m.cfg.Mines
}

// Dimensions returns (rows, columns).
func (m *Machine) Dimensions() (int, int) {
	return m.field.Dimensions()
}

// Revealed returns the number of revealed tiles.
func (m *Machine) Revealed() int {
	return m.revealed
}

// HiddenDangerCount returns how many Danger tiles are still hidden.
func (m *Machine) HiddenDangerCount() int {
	return m.field.CountKind(minefield.KindDanger)
}

// IsHidden reports whether the tile at index has not been revealed.
func (m *Machine) IsHidden(index int) bool {
	return m.hidden.Has(index)
}

// Detonated returns the mine that ended the round, if any.
func (m *Machine) Detonated() (int, bool) {
	return m.detonated, m.detonated >= 0
}

// Board returns a copy of the tiles in row-major order.
func (m *Machine) Board() []minefield.TileKind {
	return m.field.Cells()
}

// Config returns the machine settings.
func (m *Machine) Config() MachineConfig {
	return m.cfg
}

// PositionOf returns the world-space centre of the tile at index.
// Rows advance along X and columns along Y, with the board centred on the origin.
func (m *Machine) PositionOf(index int) Position {
	c, ok := m.field.IndexToCoord(index)
	if !ok {
		return Position{}
	}
	off := m.cfg.BlockOffset
	rows, cols := m.field.Dimensions()
	return Position{
		X: float64(c.Row)*off - float64(rows)*off/2,
		Y: float64(c.Col)*off - float64(cols)*off/2,
	}
}

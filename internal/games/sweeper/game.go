package sweeper

import (
	"io"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sweeper/internal/config"
	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/registry"
)

const (
	tileWidth  = 3  // Screen columns per tile
	hudHeight  = 2  // Title and status lines above the board
	blastTicks = 24 // How long the explosion ring stays on screen
)

// Package-level defaults used by the registry factory.
var (
	defaultsMu     sync.RWMutex
	selectedConfig = config.DefaultSweeperConfig()
	gameLogger     = log.New(io.Discard)
)

// SetConfig sets the configuration used by games created through the registry.
func SetConfig(cfg config.SweeperConfig) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	selectedConfig = cfg
}

// SetLogger sets the logger handed to games created through the registry.
func SetLogger(l *log.Logger) {
	if l == nil {
		return
	}
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	gameLogger = l
}

func currentDefaults() (config.SweeperConfig, *log.Logger) {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return selectedConfig, gameLogger
}

func init() {
	registry.Register("sweeper", func() registry.Game {
		return New()
	})
	registry.RegisterVariant("sweeper", func(option string) (registry.Game, error) {
		preset, err := config.ParseDifficulty(option)
		if err != nil {
			return nil, err
		}
		cfg, logger := currentDefaults()
		if err := config.ApplySweeperPreset(&cfg, preset); err != nil {
			return nil, err
		}
		return NewWithConfig(cfg, logger), nil
	})
}

// Game adapts the stage machine to the arcade platform: it maps the
// keyboard cursor and pointer clicks to tile indices and draws the board.
type Game struct {
	cfg     config.SweeperConfig
	logger  *log.Logger
	machine *Machine

	tick    uint64
	screenW int
	screenH int

	cursor    int
	intro     bool // Start screen is shown until the first input
	paused    bool
	tooSmall  bool
	blastTick int // Ticks since detonation, -1 when no blast is active
	lastTick  []Event

	// Board placement on screen, recomputed on reset and resize.
	boardX int
	boardY int
}

// New creates a sweeper game using the configuration set with SetConfig.
func New() *Game {
	cfg, logger := currentDefaults()
	return NewWithConfig(cfg, logger)
}

// NewWithConfig creates a sweeper game with an explicit configuration.
func NewWithConfig(cfg config.SweeperConfig, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		cfg:       cfg,
		logger:    logger,
		blastTick: -1,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "sweeper"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Sweeper"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	rng := rand.New(rand.NewSource(cfg.Seed))

	m, err := NewMachine(MachineConfigFrom(g.cfg), rng, g.logger)
	if err != nil {
		g.logger.Error("invalid board config, using defaults", "err", err)
		g.cfg = config.DefaultSweeperConfig()
		m, _ = NewMachine(DefaultMachineConfig(), rng, g.logger)
	}
	g.machine = m

	g.tick = 0
	g.paused = false
	g.intro = true
	g.blastTick = -1
	g.lastTick = nil

	rows, cols := m.Dimensions()
	g.cursor = (rows/2)*cols + cols/2

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize recomputes the board placement for a new screen size.
// The round in progress is kept.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	if g.machine == nil {
		return
	}

	rows, cols := g.machine.Dimensions()
	boxW := cols*tileWidth + 2
	boxH := rows + 2
	g.tooSmall = width < boxW || height < hudHeight+boxH+1

	g.boardX = (width-boxW)/2 + 1
	g.boardY = hudHeight + 1
}

// Machine exposes the underlying stage machine.
func (g *Game) Machine() *Machine {
	return g.machine
}

// LastEvents returns the events produced by the most recent Step.
func (g *Game) LastEvents() []Event {
	return g.lastTick
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.lastTick = nil

	if g.blastTick >= 0 && g.blastTick < blastTicks {
		g.blastTick++
	}

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	stage := g.machine.CurrentStage()

	if in.Has(core.ActionPause) && !stage.IsTerminal() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.lastTick = g.machine.Reset()
		g.intro = true
		g.blastTick = -1
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionDetonate) {
		g.lastTick = g.machine.Endgame()
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	var clicks []int
	for _, p := range in.Clicks {
		if idx, ok := g.TileAt(p.X, p.Y); ok {
			clicks = append(clicks, idx)
		}
	}
	if in.Has(core.ActionConfirm) {
		clicks = append(clicks, g.cursor)
	}
	if len(clicks) > 0 {
		g.intro = false
		g.cursor = clicks[0]
		g.lastTick = g.machine.Tick(clicks)
	}

	for _, ev := range g.lastTick {
		if _, ok := ev.(BombTriggered); ok {
			g.blastTick = 0
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	rows, cols := g.machine.Dimensions()
	row, col := g.cursor/cols, g.cursor%cols

	switch {
	case in.Has(core.ActionUp):
		row--
	case in.Has(core.ActionDown):
		row++
	case in.Has(core.ActionLeft):
		col--
	case in.Has(core.ActionRight):
		col++
	default:
		return
	}

	g.intro = false
	row = core.Clamp(row, 0, rows-1)
	col = core.Clamp(col, 0, cols-1)
	g.cursor = row*cols + col
}

// TileAt maps a screen position to a tile index.
func (g *Game) TileAt(x, y int) (int, bool) {
	rows, cols := g.machine.Dimensions()
	board := core.NewRect(g.boardX, g.boardY, cols*tileWidth, rows)
	if !board.Contains(x, y) {
		return 0, false
	}
	col := (x - g.boardX) / tileWidth
	row := y - g.boardY
	return row*cols + col, true
}

// TileRect returns the screen area covered by the tile at index.
func (g *Game) TileRect(index int) core.Rect {
	_, cols := g.machine.Dimensions()
	row, col := index/cols, index%cols
	return core.NewRect(g.boardX+col*tileWidth, g.boardY+row, tileWidth, 1)
}

// Cursor returns the tile index under the keyboard cursor.
func (g *Game) Cursor() int {
	return g.cursor
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.machine == nil {
		return core.GameState{}
	}
	stage := g.machine.CurrentStage()
	return core.GameState{
		Score:    g.machine.Revealed(),
		GameOver: stage.IsTerminal(),
		Won:      stage == StageWinScreen,
		Paused:   g.paused || g.tooSmall,
	}
}

// Summary reports the outcome of the current round.
func (g *Game) Summary() core.RoundSummary {
	rows, cols := g.machine.Dimensions()
	variant := string(g.cfg.Difficulty)
	if variant == "" {
		variant = "custom"
	}
	return core.RoundSummary{
		Variant:  variant,
		Won:      g.machine.CurrentStage() == StageWinScreen,
		Revealed: g.machine.Revealed(),
		Cells:    rows * cols,
		Mines:    g.machine.BombCount(),
		Ticks:    g.tick,
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Mouse/Arrows+Enter: Clear | X: Give up | R: Restart | P: Pause | Q: Quit"
}

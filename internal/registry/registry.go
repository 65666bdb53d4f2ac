// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-sweeper/internal/core"
)

// Game is the interface a playable game exposes to the platform.
// Games contain pure logic with no Bubble Tea dependency; the platform
// handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "sweeper").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when restarting after game over.
	// The RuntimeConfig provides screen dimensions and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one fixed tick.
	// Input arrives as platform-level actions plus pointer clicks.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, won, paused).
	State() core.GameState
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

// Variant creates a game instance with game-specific options applied,
// e.g. a difficulty preset. Games that take no options leave it unset.
type Variant func(option string) (Game, error)

var (
	factories = make(map[string]Factory)
	variants  = make(map[string]Variant)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f()
	titles[id] = g.Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// RegisterVariant attaches an option-aware constructor to a registered game.
func RegisterVariant(id string, v Variant) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; !exists {
		panic(fmt.Sprintf("registry: variant for unknown game %q", id))
	}
	variants[id] = v
}

// CreateWithOption instantiates a game with an option. An empty option
// or a game without variants falls back to Create.
func CreateWithOption(id, option string) (Game, error) {
	mu.RLock()
	v, ok := variants[id]
	mu.RUnlock()

	if !ok || option == "" {
		return Create(id)
	}
	g, err := v(option)
	if err != nil {
		return nil, fmt.Errorf("registry: %s: %w", id, err)
	}
	return g, nil
}

// Resizable is implemented by games that can adapt to a new screen size
// without losing their state. Other games are reset on resize.
type Resizable interface {
	Resize(width, height int)
}

// Summarizer is implemented by games that report per-round outcomes.
type Summarizer interface {
	Summary() core.RoundSummary
}

// Package registry provides a global registry for game factories.
// Game variants register themselves in init() functions, allowing the
// platform to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Game is the interface the platform drives each tick.
// Games contain pure logic with no Bubble Tea dependency; the platform
// handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier (e.g., "snake", "snake_endless").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when restarting after game over.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry under id.
// Panics if a game with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
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

// Title returns the registered title for id, or id itself if unknown.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	if t, ok := titles[id]; ok {
		return t
	}
	return id
}

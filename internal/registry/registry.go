// Package registry provides a global registry for game factories.
// Variants register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// ErrUnknownGame is returned by Create for IDs that were never registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is the interface every playable variant implements.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	core.Scene

	// ID returns a unique identifier for this game (e.g., "flappy").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display (e.g., "Flappy Bird").
	Title() string

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state (score, phase, paused).
	State() core.GameState

	// Events drains the side effects raised since the last call.
	Events() []core.Event
}

// Options carries per-launch settings from the CLI into a factory.
type Options struct {
	ConfigPath string      // Custom YAML config, empty for the search path
	Difficulty string      // Difficulty preset name, empty for the config default
	Logger     *log.Logger // Receives config warnings, log.Default() when nil
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func(opts Options) (Game, error)

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries []entry // registration order
)

// find returns the index of id in entries, or -1. Callers hold mu.
func find(id string) int {
	return slices.IndexFunc(entries, func(e entry) bool { return e.info.ID == id })
}

// Register adds a game factory to the registry. Variants call it from
// init(); registering an ID twice panics.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if find(id) >= 0 {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries = append(entries, entry{info: GameInfo{ID: id, Title: title}, factory: f})
}

// List returns every registered game in registration order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, len(entries))
	for i, e := range entries {
		out[i] = e.info
	}
	return out
}

// lookup returns the entry for id.
func lookup(id string) (entry, bool) {
	mu.RLock()
	defer mu.RUnlock()

	if i := find(id); i >= 0 {
		return entries[i], true
	}
	return entry{}, false
}

// Create instantiates a new game by its ID.
// Returns an error wrapping ErrUnknownGame if the ID is not registered.
func Create(id string, opts Options) (Game, error) {
	e, ok := lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return e.factory(opts)
}

// Title returns the display title for a registered game.
func Title(id string) (string, bool) {
	e, ok := lookup(id)
	return e.info.Title, ok
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	_, ok := lookup(id)
	return ok
}

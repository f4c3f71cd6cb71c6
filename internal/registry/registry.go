// Package registry provides a global registry of named preset scenarios.
// Presets register themselves in init() functions, allowing the CLI and the
// menu to discover them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-ecosim/internal/scenario"
)

// PresetInfo contains metadata about a registered preset.
type PresetInfo struct {
	ID    string
	Title string
}

// Factory builds a fresh copy of a preset scenario.
type Factory func() (scenario.Scenario, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a preset factory to the registry.
// Typically called from an init() function.
// Panics if a preset with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: preset %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// RegisterText registers a preset given in the compact numeric format.
// The literal is parsed on every Create so callers always get their own copy.
func RegisterText(id, title, literal string) {
	Register(id, title, func() (scenario.Scenario, error) {
		sc, err := scenario.ParseString(literal)
		if err != nil {
			return scenario.Scenario{}, err
		}
		sc.Name = id
		return sc, nil
	})
}

// List returns information about all registered presets, sorted by ID.
func List() []PresetInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PresetInfo, 0, len(factories))
	for id := range factories {
		result = append(result, PresetInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds the preset with the given ID.
// Returns an error if the ID is not registered.
func Create(id string) (scenario.Scenario, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return scenario.Scenario{}, fmt.Errorf("registry: unknown preset %q", id)
	}

	sc, err := f()
	if err != nil {
		return scenario.Scenario{}, fmt.Errorf("registry: preset %q: %w", id, err)
	}
	return sc, nil
}

// Exists checks if a preset with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

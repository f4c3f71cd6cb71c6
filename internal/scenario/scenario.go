// Package scenario builds initial populations for the simulator. Scenarios
// come from whitespace-separated text (typed by hand or stored as presets),
// from YAML files, or from a seeded random generator.
package scenario

import (
	"fmt"

	"github.com/vovakirdan/tui-ecosim/internal/core"
	"github.com/vovakirdan/tui-ecosim/internal/sim"
)

// Placement describes one initial entity.
type Placement struct {
	Species sim.Species
	Pos     core.Coord
	Dir     core.Dir
	Turn    int // turn period
}

// Scenario is a complete starting configuration: grid size, how many steps
// to run and the initial population.
type Scenario struct {
	Name       string
	Width      int
	Height     int
	Steps      int
	Placements []Placement
}

// Counts returns the number of prey and predator placements.
func (s Scenario) Counts() (prey, predators int) {
	for _, p := range s.Placements {
		if p.Species == sim.SpeciesPredator {
			predators++
		} else {
			prey++
		}
	}
	return prey, predators
}

// Describe returns a one-line summary of the scenario.
func (s Scenario) Describe() string {
	prey, preds := s.Counts()
	return fmt.Sprintf("%dx%d, %d prey, %d predators, %d steps", s.Width, s.Height, prey, preds, s.Steps)
}

// Build creates a simulation for the scenario under the given rules. Every
// placement goes through AddEntity, so out-of-range positions and bad turn
// periods are reported rather than wrapped.
func (s Scenario) Build(rules sim.Rules) (*sim.Simulation, error) {
	if s.Steps < 0 {
		return nil, fmt.Errorf("%w: negative step count %d", sim.ErrInvalidConfiguration, s.Steps)
	}

	w, err := sim.New(s.Width, s.Height, rules)
	if err != nil {
		return nil, err
	}

	for i, p := range s.Placements {
		e, err := sim.NewEntity(p.Species, p.Pos, p.Dir, p.Turn)
		if err != nil {
			return nil, fmt.Errorf("%s %d: %w", p.Species, i+1, err)
		}
		if _, err := w.AddEntity(e); err != nil {
			return nil, fmt.Errorf("%s %d: %w", p.Species, i+1, err)
		}
	}

	return w, nil
}

package scenario

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-ecosim/internal/core"
	"github.com/vovakirdan/tui-ecosim/internal/sim"
)

// RandomSpec bounds a randomly generated scenario.
type RandomSpec struct {
	Width     int
	Height    int
	Steps     int
	Prey      int
	Predators int
	MinTurn   int // inclusive lower bound for turn periods
	MaxTurn   int // inclusive upper bound for turn periods
}

// DefaultRandomSpec returns the generator bounds used when nothing is configured.
func DefaultRandomSpec() RandomSpec {
	return RandomSpec{
		Width:     10,
		Height:    10,
		Steps:     20,
		Prey:      12,
		Predators: 4,
		MinTurn:   1,
		MaxTurn:   5,
	}
}

// Validate checks the generator bounds.
func (r RandomSpec) Validate() error {
	switch {
	case r.Width <= 0 || r.Height <= 0:
		return fmt.Errorf("%w: random grid must be at least 1x1, got %dx%d", sim.ErrInvalidConfiguration, r.Width, r.Height)
	case r.Prey < 0 || r.Predators < 0:
		return fmt.Errorf("%w: negative population count", sim.ErrInvalidConfiguration)
	case r.Steps < 0:
		return fmt.Errorf("%w: negative step count %d", sim.ErrInvalidConfiguration, r.Steps)
	case r.MinTurn <= 0 || r.MaxTurn < r.MinTurn:
		return fmt.Errorf("%w: turn range [%d, %d] invalid", sim.ErrInvalidConfiguration, r.MinTurn, r.MaxTurn)
	}
	return nil
}

// Random generates a scenario with uniformly distributed positions,
// directions and turn periods. The same spec and seed always produce the
// same scenario; callers choose a time-based seed when they want variety.
func Random(spec RandomSpec, seed int64) (Scenario, error) {
	if err := spec.Validate(); err != nil {
		return Scenario{}, err
	}

	rng := rand.New(rand.NewSource(seed))
	sc := Scenario{
		Name:   fmt.Sprintf("random-%d", seed),
		Width:  spec.Width,
		Height: spec.Height,
		Steps:  spec.Steps,
	}

	place := func(species sim.Species) Placement {
		return Placement{
			Species: species,
			Pos:     core.C(rng.Intn(spec.Width), rng.Intn(spec.Height)),
			Dir:     core.Dir(rng.Intn(core.NumDirs)),
			Turn:    spec.MinTurn + rng.Intn(spec.MaxTurn-spec.MinTurn+1),
		}
	}

	for i := 0; i < spec.Prey; i++ {
		sc.Placements = append(sc.Placements, place(sim.SpeciesPrey))
	}
	for i := 0; i < spec.Predators; i++ {
		sc.Placements = append(sc.Placements, place(sim.SpeciesPredator))
	}

	return sc, nil
}

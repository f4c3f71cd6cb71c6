package sim

import "github.com/vovakirdan/tui-ecosim/internal/core"

// EntityView is a read-only copy of an entity's observable state.
type EntityView struct {
	ID         EntityID
	Species    Species
	Pos        core.Coord
	Dir        core.Dir
	TurnPeriod int
	Age        int
	Consumed   int
}

// IsPredator reports whether the viewed entity is a predator.
func (v EntityView) IsPredator() bool {
	return v.Species == SpeciesPredator
}

func viewOf(e *Entity) EntityView {
	return EntityView{
		ID:         e.id,
		Species:    e.species,
		Pos:        e.pos,
		Dir:        e.dir,
		TurnPeriod: e.turnPeriod,
		Age:        e.age,
		Consumed:   e.consumed,
	}
}

// Entities returns a snapshot of all live entities in population order.
func (s *Simulation) Entities() []EntityView {
	views := make([]EntityView, len(s.entities))
	for i, e := range s.entities {
		views[i] = viewOf(e)
	}
	return views
}

// Entity returns a snapshot of the entity with the given ID.
func (s *Simulation) Entity(id EntityID) (EntityView, bool) {
	e := s.find(id)
	if e == nil {
		return EntityView{}, false
	}
	return viewOf(e), true
}

// Census is the per-cell net population: +1 for every prey and -1 for every
// predator standing on the cell. Cells are stored in row-major order.
type Census struct {
	W   int
	H   int
	Net []int
}

// At returns the net count at (x, y). Out-of-range cells read as 0.
func (c Census) At(x, y int) int {
	if x < 0 || x >= c.W || y < 0 || y >= c.H {
		return 0
	}
	return c.Net[y*c.W+x]
}

// Census computes the net population of every cell.
func (s *Simulation) Census() Census {
	c := Census{
		W:   s.width,
		H:   s.height,
		Net: make([]int, s.width*s.height),
	}
	for _, e := range s.entities {
		i := e.pos.Y*s.width + e.pos.X
		if e.IsPredator() {
			c.Net[i]--
		} else {
			c.Net[i]++
		}
	}
	return c
}

// Package sim implements the predator/prey engine: the entity model and the
// five-phase step pipeline (move, predation, aging, reproduction, extinction)
// on a toroidal grid. The package is UI-agnostic and deterministic.
package sim

import (
	"fmt"

	"github.com/vovakirdan/tui-ecosim/internal/core"
)

// EntityID identifies an entity within one Simulation. IDs are never reused.
type EntityID uint64

// Species tags an entity's concrete kind.
type Species uint8

const (
	SpeciesPrey Species = iota
	SpeciesPredator
)

// String returns the species name.
func (s Species) String() string {
	if int(s) >= len(behaviors) {
		return "unknown"
	}
	return behaviors[s].name
}

// Entity is a single animal. Entities are created with NewPrey or NewPredator
// and become owned by a Simulation once added; after that only the
// Simulation mutates them.
type Entity struct {
	id      EntityID
	species Species

	pos         core.Coord
	dir         core.Dir
	turnPeriod  int
	turnCounter int
	moveSteps   int
	age         int

	// Prey: bit i set once ReproductionAges[i] has been used.
	usedOpportunities uint32

	// Predator: lifetime prey eaten and prior offspring count.
	consumed      int
	reproductions int
}

// NewPrey creates a prey at pos heading dir that turns clockwise every
// turnPeriod moves.
func NewPrey(pos core.Coord, dir core.Dir, turnPeriod int) (*Entity, error) {
	return newEntity(SpeciesPrey, pos, dir, turnPeriod)
}

// NewPredator creates a predator at pos heading dir that turns clockwise
// every turnPeriod moves.
func NewPredator(pos core.Coord, dir core.Dir, turnPeriod int) (*Entity, error) {
	return newEntity(SpeciesPredator, pos, dir, turnPeriod)
}

// NewEntity constructs an entity of the given species.
func NewEntity(species Species, pos core.Coord, dir core.Dir, turnPeriod int) (*Entity, error) {
	if species != SpeciesPrey && species != SpeciesPredator {
		return nil, fmt.Errorf("%w: unknown species %d", ErrInvalidConfiguration, species)
	}
	return newEntity(species, pos, dir, turnPeriod)
}

func newEntity(species Species, pos core.Coord, dir core.Dir, turnPeriod int) (*Entity, error) {
	if turnPeriod <= 0 {
		return nil, fmt.Errorf("%w: turn period must be positive, got %d", ErrInvalidConfiguration, turnPeriod)
	}
	if !dir.Valid() {
		return nil, fmt.Errorf("%w: invalid direction %d", ErrInvalidConfiguration, dir)
	}
	return &Entity{
		species:    species,
		pos:        pos,
		dir:        dir,
		turnPeriod: turnPeriod,
		moveSteps:  behaviorOf(species).moveSteps,
	}, nil
}

// ID returns the entity's identity, or 0 if it has not been added to a simulation.
func (e *Entity) ID() EntityID { return e.id }

// Species returns the entity's kind.
func (e *Entity) Species() Species { return e.species }

// Pos returns the current cell.
func (e *Entity) Pos() core.Coord { return e.pos }

// Dir returns the current heading.
func (e *Entity) Dir() core.Dir { return e.dir }

// TurnPeriod returns the number of moves between clockwise turns.
func (e *Entity) TurnPeriod() int { return e.turnPeriod }

// TurnCounter returns the moves made since the last turn.
func (e *Entity) TurnCounter() int { return e.turnCounter }

// MoveSteps returns the number of unit moves per movement phase.
func (e *Entity) MoveSteps() int { return e.moveSteps }

// Age returns the number of steps survived.
func (e *Entity) Age() int { return e.age }

// Consumed returns the lifetime prey eaten. Always 0 for prey.
func (e *Entity) Consumed() int { return e.consumed }

// Reproductions returns the number of offspring a predator has produced.
func (e *Entity) Reproductions() int { return e.reproductions }

// IsPredator reports whether the entity hunts.
func (e *Entity) IsPredator() bool { return behaviorOf(e.species).predator }

// IsHungry reports whether the entity eats co-located prey.
func (e *Entity) IsHungry() bool { return behaviorOf(e.species).hungry }

// Feed credits the entity with one prey eaten. No-op for prey.
func (e *Entity) Feed() { behaviorOf(e.species).feed(e) }

// CanReproduce reports whether the entity is eligible to spawn now.
func (e *Entity) CanReproduce(r Rules) bool { return behaviorOf(e.species).canReproduce(e, r) }

// IsDead reports whether the entity has reached its species' age limit.
func (e *Entity) IsDead(r Rules) bool { return behaviorOf(e.species).isDead(e, r) }

// SpawnOffspring records a reproduction event on the parent and returns the
// newborn: same species, cell, heading and turn period, with fresh counters.
func (e *Entity) SpawnOffspring(r Rules) *Entity {
	behaviorOf(e.species).markReproduced(e, r)
	return &Entity{
		species:    e.species,
		pos:        e.pos,
		dir:        e.dir,
		turnPeriod: e.turnPeriod,
		moveSteps:  e.moveSteps,
	}
}

// ReduceHunger lowers a predator's consumed count by amount, never below zero.
// The step pipeline never calls it.
func (e *Entity) ReduceHunger(amount int) {
	if !e.IsPredator() || amount <= 0 {
		return
	}
	e.consumed = max(0, e.consumed-amount)
}

// Advance applies one movement phase: MoveSteps unit moves with wrap-around,
// then a clockwise turn once TurnPeriod moves have accumulated.
func (e *Entity) Advance(width, height int) {
	for i := 0; i < e.moveSteps; i++ {
		e.pos = e.pos.Step(e.dir, width, height)
	}

	e.turnCounter++
	if e.turnCounter >= e.turnPeriod {
		e.dir = e.dir.Next()
		e.turnCounter = 0
	}
}

// String returns a short description for logs and test failures.
func (e *Entity) String() string {
	return fmt.Sprintf("%s#%d@%v %v age=%d", e.species, e.id, e.pos, e.dir, e.age)
}

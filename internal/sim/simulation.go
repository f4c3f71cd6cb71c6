package sim

import (
	"fmt"
	"slices"
)

// StepReport summarizes what happened during the most recent Step.
type StepReport struct {
	Tick uint64 // step number just completed, starting at 1

	PreyEaten     int // prey removed by predation
	PreyBorn      int
	PredatorsBorn int
	PreyDied      int // prey removed by old age
	PredatorsDied int

	// Population after the step.
	Prey      int
	Predators int
}

// Simulation owns a population of entities on a width x height torus and
// advances it one tick at a time.
//
// A Simulation is not safe for concurrent use. Entities handed to AddEntity
// belong to the Simulation from then on.
type Simulation struct {
	width    int
	height   int
	rules    Rules
	entities []*Entity
	nextID   EntityID
	tick     uint64
	last     StepReport
}

// New creates an empty simulation. Both dimensions must be at least 1.
func New(width, height int, rules Rules) (*Simulation, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidConfiguration, width, height)
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	rules.Prey.ReproductionAges = slices.Clone(rules.Prey.ReproductionAges)

	return &Simulation{
		width:  width,
		height: height,
		rules:  rules,
		nextID: 1,
	}, nil
}

// Width returns the grid width.
func (s *Simulation) Width() int { return s.width }

// Height returns the grid height.
func (s *Simulation) Height() int { return s.height }

// Rules returns the rule set in effect.
func (s *Simulation) Rules() Rules { return s.rules }

// Tick returns the number of completed steps.
func (s *Simulation) Tick() uint64 { return s.tick }

// Len returns the number of live entities.
func (s *Simulation) Len() int { return len(s.entities) }

// LastReport returns the report of the most recent Step. It is the zero
// value before the first step.
func (s *Simulation) LastReport() StepReport { return s.last }

// AddEntity takes ownership of e and assigns it an ID. The entity's position
// must already lie on the grid; it is not wrapped.
func (s *Simulation) AddEntity(e *Entity) (EntityID, error) {
	if e == nil {
		return 0, fmt.Errorf("%w: nil entity", ErrInvalidEntityState)
	}
	if e.id != 0 {
		return 0, fmt.Errorf("%w: entity %d already belongs to a simulation", ErrInvalidEntityState, e.id)
	}
	if !e.pos.In(s.width, s.height) {
		return 0, fmt.Errorf("%w: position %v outside %dx%d grid", ErrInvalidEntityState, e.pos, s.width, s.height)
	}
	if e.turnPeriod <= 0 {
		return 0, fmt.Errorf("%w: turn period must be positive, got %d", ErrInvalidEntityState, e.turnPeriod)
	}

	s.adopt(e)
	s.entities = append(s.entities, e)
	return e.id, nil
}

func (s *Simulation) adopt(e *Entity) {
	e.id = s.nextID
	s.nextID++
}

// Step advances the world by one tick. The phases always run in this order:
//
//  1. Move: every entity advances in its heading, wrapping at the edges
//  2. Predation: each predator eats every prey sharing its cell
//  3. Aging: every survivor gets one step older
//  4. Reproduction: eligible entities spawn one offspring each
//  5. Extinction: entities at their species' age limit are removed
//
// Each phase sees only the output of the previous one.
func (s *Simulation) Step() {
	report := StepReport{Tick: s.tick + 1}

	s.move()
	s.resolvePredation(&report)
	s.age()
	s.reproduce(&report)
	s.extinguish(&report)

	report.Prey, report.Predators = s.Counts()
	s.tick++
	s.last = report
}

func (s *Simulation) move() {
	for _, e := range s.entities {
		e.Advance(s.width, s.height)
	}
}

// resolvePredation credits every co-located predator/prey pair, then removes
// the eaten prey by identity. A prey shared by several predators credits each
// of them but is removed once.
func (s *Simulation) resolvePredation(report *StepReport) {
	eaten := make(map[EntityID]struct{})

	for _, pred := range s.entities {
		if !pred.IsHungry() {
			continue
		}
		for _, prey := range s.entities {
			if prey.IsPredator() {
				continue
			}
			if pred.pos == prey.pos {
				pred.Feed()
				eaten[prey.id] = struct{}{}
			}
		}
	}

	if len(eaten) == 0 {
		return
	}

	s.entities = slices.DeleteFunc(s.entities, func(e *Entity) bool {
		_, ok := eaten[e.id]
		return ok
	})
	report.PreyEaten = len(eaten)
}

func (s *Simulation) age() {
	for _, e := range s.entities {
		e.age++
	}
}

// reproduce evaluates the population as it stood when the phase began.
// Offspring are appended afterwards, so they are not evaluated this step.
func (s *Simulation) reproduce(report *StepReport) {
	var offspring []*Entity

	for _, e := range s.entities {
		if !e.CanReproduce(s.rules) {
			continue
		}
		child := e.SpawnOffspring(s.rules)
		s.adopt(child)
		offspring = append(offspring, child)

		if child.IsPredator() {
			report.PredatorsBorn++
		} else {
			report.PreyBorn++
		}
	}

	s.entities = append(s.entities, offspring...)
}

func (s *Simulation) extinguish(report *StepReport) {
	s.entities = slices.DeleteFunc(s.entities, func(e *Entity) bool {
		if !e.IsDead(s.rules) {
			return false
		}
		if e.IsPredator() {
			report.PredatorsDied++
		} else {
			report.PreyDied++
		}
		return true
	})
}

// ReduceHunger lowers the consumed count of the predator with the given ID.
// It is an optional hook; Step never calls it.
func (s *Simulation) ReduceHunger(id EntityID, amount int) error {
	e := s.find(id)
	if e == nil {
		return fmt.Errorf("%w: no entity with id %d", ErrInvalidEntityState, id)
	}
	if !e.IsPredator() {
		return fmt.Errorf("%w: entity %d is not a predator", ErrInvalidEntityState, id)
	}
	e.ReduceHunger(amount)
	return nil
}

func (s *Simulation) find(id EntityID) *Entity {
	for _, e := range s.entities {
		if e.id == id {
			return e
		}
	}
	return nil
}

// Counts returns the number of live prey and predators.
func (s *Simulation) Counts() (prey, predators int) {
	for _, e := range s.entities {
		if e.IsPredator() {
			predators++
		} else {
			prey++
		}
	}
	return prey, predators
}

package sim

// speciesBehavior is the per-species capability table. Entities dispatch
// through it by their Species tag.
type speciesBehavior struct {
	name           string
	predator       bool
	hungry         bool
	moveSteps      int
	feed           func(e *Entity)
	canReproduce   func(e *Entity, r Rules) bool
	markReproduced func(e *Entity, r Rules)
	isDead         func(e *Entity, r Rules) bool
}

var behaviors = [...]speciesBehavior{
	SpeciesPrey: {
		name:           "prey",
		moveSteps:      1,
		feed:           func(*Entity) {},
		canReproduce:   preyCanReproduce,
		markReproduced: preyMarkReproduced,
		isDead: func(e *Entity, r Rules) bool {
			return e.age >= r.Prey.MaxAge
		},
	},
	SpeciesPredator: {
		name:      "predator",
		predator:  true,
		hungry:    true,
		moveSteps: 2,
		feed: func(e *Entity) {
			e.consumed++
		},
		canReproduce: func(e *Entity, r Rules) bool {
			return e.consumed >= r.PredatorThreshold(e.reproductions)
		},
		markReproduced: func(e *Entity, _ Rules) {
			e.reproductions++
		},
		isDead: func(e *Entity, r Rules) bool {
			return e.age >= r.Predator.MaxAge
		},
	},
}

func behaviorOf(s Species) *speciesBehavior {
	if int(s) >= len(behaviors) {
		panic("sim: unknown species")
	}
	return &behaviors[s]
}

// preyOpportunity returns the index of an unused reproduction age matching
// the prey's current age, or -1.
func preyOpportunity(e *Entity, r Rules) int {
	for i, age := range r.Prey.ReproductionAges {
		if i >= maxOpportunities {
			break
		}
		if e.age == age && e.usedOpportunities&(1<<i) == 0 {
			return i
		}
	}
	return -1
}

func preyCanReproduce(e *Entity, r Rules) bool {
	return preyOpportunity(e, r) >= 0
}

func preyMarkReproduced(e *Entity, r Rules) {
	if i := preyOpportunity(e, r); i >= 0 {
		e.usedOpportunities |= 1 << i
	}
}

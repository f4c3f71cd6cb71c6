package sim

import "fmt"

// ReproductionPolicy selects how a predator's reproduction threshold evolves.
type ReproductionPolicy uint8

const (
	// ReproductionEscalating requires base*(1+n) prey eaten for the (n+1)th offspring.
	ReproductionEscalating ReproductionPolicy = iota
	// ReproductionConstant requires base prey eaten for every offspring.
	ReproductionConstant
)

// String returns the configuration name of the policy.
func (p ReproductionPolicy) String() string {
	switch p {
	case ReproductionEscalating:
		return "escalating"
	case ReproductionConstant:
		return "constant"
	default:
		return "unknown"
	}
}

// ParseReproductionPolicy converts a configuration name to a policy.
// An empty string selects the escalating policy.
func ParseReproductionPolicy(s string) (ReproductionPolicy, error) {
	switch s {
	case "", "escalating":
		return ReproductionEscalating, nil
	case "constant":
		return ReproductionConstant, nil
	}
	return ReproductionEscalating, fmt.Errorf("%w: unknown reproduction policy %q", ErrInvalidConfiguration, s)
}

// maxOpportunities bounds the number of prey reproduction ages so the
// per-entity "used" flags fit in a bitmask.
const maxOpportunities = 32

// PreyRules holds the life-cycle constants for prey.
type PreyRules struct {
	MaxAge           int   // prey with age >= MaxAge are removed
	ReproductionAges []int // each age is a one-shot reproduction opportunity
}

// PredatorRules holds the life-cycle constants for predators.
type PredatorRules struct {
	MaxAge        int // predators with age >= MaxAge are removed
	BaseThreshold int // prey eaten required for the first offspring
	Policy        ReproductionPolicy
}

// Rules parameterizes species behavior. DefaultRules matches the classic model:
// prey live 10 steps and breed at 5 and 10, predators live 20 steps and breed
// after 2, 4, 6... prey eaten.
type Rules struct {
	Prey     PreyRules
	Predator PredatorRules
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{
		Prey: PreyRules{
			MaxAge:           10,
			ReproductionAges: []int{5, 10},
		},
		Predator: PredatorRules{
			MaxAge:        20,
			BaseThreshold: 2,
			Policy:        ReproductionEscalating,
		},
	}
}

// Validate checks that the rules describe a well-formed model.
func (r Rules) Validate() error {
	if r.Prey.MaxAge <= 0 {
		return fmt.Errorf("%w: prey max age must be positive, got %d", ErrInvalidConfiguration, r.Prey.MaxAge)
	}
	if r.Predator.MaxAge <= 0 {
		return fmt.Errorf("%w: predator max age must be positive, got %d", ErrInvalidConfiguration, r.Predator.MaxAge)
	}
	if r.Predator.BaseThreshold <= 0 {
		return fmt.Errorf("%w: predator base threshold must be positive, got %d", ErrInvalidConfiguration, r.Predator.BaseThreshold)
	}
	if r.Predator.Policy != ReproductionEscalating && r.Predator.Policy != ReproductionConstant {
		return fmt.Errorf("%w: unknown reproduction policy %d", ErrInvalidConfiguration, r.Predator.Policy)
	}
	if len(r.Prey.ReproductionAges) > maxOpportunities {
		return fmt.Errorf("%w: at most %d prey reproduction ages, got %d",
			ErrInvalidConfiguration, maxOpportunities, len(r.Prey.ReproductionAges))
	}
	for _, age := range r.Prey.ReproductionAges {
		if age <= 0 {
			return fmt.Errorf("%w: prey reproduction age must be positive, got %d", ErrInvalidConfiguration, age)
		}
	}
	return nil
}

// PredatorThreshold returns the prey-eaten count a predator needs for its next
// offspring after the given number of prior reproductions.
func (r Rules) PredatorThreshold(reproductions int) int {
	if r.Predator.Policy == ReproductionConstant {
		return r.Predator.BaseThreshold
	}
	return r.Predator.BaseThreshold * (1 + reproductions)
}

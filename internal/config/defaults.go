package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-ecosim/internal/scenario"
	"github.com/vovakirdan/tui-ecosim/internal/sim"
)

//go:embed defaults/ecosim.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration. It matches the embedded
// defaults/ecosim.yaml.
func Default() Config {
	r := sim.DefaultRules()
	rs := scenario.DefaultRandomSpec()

	return Config{
		Rules: RulesConfig{
			Prey: PreyConfig{
				MaxAge:           r.Prey.MaxAge,
				ReproductionAges: r.Prey.ReproductionAges,
			},
			Predator: PredatorConfig{
				MaxAge:        r.Predator.MaxAge,
				BaseThreshold: r.Predator.BaseThreshold,
				Policy:        r.Predator.Policy.String(),
			},
		},
		Random: RandomConfig{
			Width:     rs.Width,
			Height:    rs.Height,
			Steps:     rs.Steps,
			Prey:      rs.Prey,
			Predators: rs.Predators,
			MinTurn:   rs.MinTurn,
			MaxTurn:   rs.MaxTurn,
		},
		Display: DisplayConfig{
			TickRate:    4,
			MinTickRate: 1,
			MaxTickRate: 30,
			Theme:       "default",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Package config provides YAML-based configuration loading for the
// simulator: the rule constants, the random generator bounds and the
// display pacing of the watch view.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-ecosim/internal/scenario"
	"github.com/vovakirdan/tui-ecosim/internal/sim"
)

// Config is the complete simulator configuration.
type Config struct {
	Rules   RulesConfig   `yaml:"rules"`
	Random  RandomConfig  `yaml:"random"`
	Display DisplayConfig `yaml:"display"`
}

// RulesConfig holds the per-species constants.
type RulesConfig struct {
	Prey     PreyConfig     `yaml:"prey"`
	Predator PredatorConfig `yaml:"predator"`
}

// PreyConfig defines prey lifecycle parameters.
type PreyConfig struct {
	MaxAge           int   `yaml:"max_age"`
	ReproductionAges []int `yaml:"reproduction_ages"`
}

// PredatorConfig defines predator lifecycle parameters.
type PredatorConfig struct {
	MaxAge        int    `yaml:"max_age"`
	BaseThreshold int    `yaml:"base_threshold"`
	Policy        string `yaml:"reproduction_policy"` // "escalating" or "constant"
}

// RandomConfig bounds the random scenario generator.
type RandomConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	Steps     int `yaml:"steps"`
	Prey      int `yaml:"prey"`
	Predators int `yaml:"predators"`
	MinTurn   int `yaml:"min_turn"`
	MaxTurn   int `yaml:"max_turn"`
}

// DisplayConfig controls the watch view.
type DisplayConfig struct {
	TickRate    int    `yaml:"tick_rate"` // steps per second
	MinTickRate int    `yaml:"min_tick_rate"`
	MaxTickRate int    `yaml:"max_tick_rate"`
	Theme       string `yaml:"theme"` // default, pastel or mono
}

// SimRules converts the rules section into engine rules.
func (c Config) SimRules() (sim.Rules, error) {
	policy, err := sim.ParseReproductionPolicy(c.Rules.Predator.Policy)
	if err != nil {
		return sim.Rules{}, fmt.Errorf("rules.predator.reproduction_policy: %w", err)
	}

	r := sim.Rules{
		Prey: sim.PreyRules{
			MaxAge:           c.Rules.Prey.MaxAge,
			ReproductionAges: append([]int(nil), c.Rules.Prey.ReproductionAges...),
		},
		Predator: sim.PredatorRules{
			MaxAge:        c.Rules.Predator.MaxAge,
			BaseThreshold: c.Rules.Predator.BaseThreshold,
			Policy:        policy,
		},
	}
	if err := r.Validate(); err != nil {
		return sim.Rules{}, err
	}
	return r, nil
}

// RandomSpec converts the random section into generator bounds.
func (c Config) RandomSpec() scenario.RandomSpec {
	return scenario.RandomSpec{
		Width:     c.Random.Width,
		Height:    c.Random.Height,
		Steps:     c.Random.Steps,
		Prey:      c.Random.Prey,
		Predators: c.Random.Predators,
		MinTurn:   c.Random.MinTurn,
		MaxTurn:   c.Random.MaxTurn,
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := c.SimRules(); err != nil {
		return err
	}
	if err := c.RandomSpec().Validate(); err != nil {
		return fmt.Errorf("random: %w", err)
	}

	d := c.Display
	if d.MinTickRate <= 0 || d.MaxTickRate < d.MinTickRate {
		return fmt.Errorf("%w: display tick rate bounds [%d, %d] invalid",
			sim.ErrInvalidConfiguration, d.MinTickRate, d.MaxTickRate)
	}
	if d.TickRate < d.MinTickRate || d.TickRate > d.MaxTickRate {
		return fmt.Errorf("%w: display.tick_rate %d outside [%d, %d]",
			sim.ErrInvalidConfiguration, d.TickRate, d.MinTickRate, d.MaxTickRate)
	}
	return nil
}

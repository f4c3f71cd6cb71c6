package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tui-ecosim/internal/sim"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	cfg, err := decode(DefaultYAML())
	if err != nil {
		t.Fatalf("decode(DefaultYAML()): %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, Default())
	}
}

func TestDefaultRulesMatchEngine(t *testing.T) {
	r, err := Default().SimRules()
	if err != nil {
		t.Fatalf("SimRules(): %v", err)
	}
	if !reflect.DeepEqual(r, sim.DefaultRules()) {
		t.Errorf("SimRules() = %+v, expected %+v", r, sim.DefaultRules())
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "custom.yaml", `
rules:
  predator:
    reproduction_policy: constant
    base_threshold: 3
display:
  tick_rate: 10
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	r, err := cfg.SimRules()
	if err != nil {
		t.Fatalf("SimRules(): %v", err)
	}
	if r.Predator.Policy != sim.ReproductionConstant || r.Predator.BaseThreshold != 3 {
		t.Errorf("predator rules = %+v, expected constant/3", r.Predator)
	}
	if r.Prey.MaxAge != 10 || r.Predator.MaxAge != 20 {
		t.Errorf("untouched max ages = %d, %d, expected 10, 20", r.Prey.MaxAge, r.Predator.MaxAge)
	}
	if cfg.Display.TickRate != 10 {
		t.Errorf("Display.TickRate = %d, expected 10", cfg.Display.TickRate)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "missing.yaml")},
		{"malformed", writeConfig(t, dir, "bad.yaml", "rules: [")},
		{"invalid value", writeConfig(t, dir, "neg.yaml", "rules:\n  prey:\n    max_age: 0\n")},
		{"unknown policy", writeConfig(t, dir, "pol.yaml", "rules:\n  predator:\n    reproduction_policy: greedy\n")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(tc.path); err == nil {
				t.Errorf("Load(%s) should fail", tc.name)
			}
		})
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, filepath.Join(".ecosim", "config.yaml"), "random:\n  prey: 3\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Random.Prey != 3 {
		t.Errorf("Random.Prey = %d, expected 3", cfg.Random.Prey)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	// A broken user file is skipped.
	writeConfig(t, home, filepath.Join(".ecosim", "config.yaml"), "display: [")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load(\"\") = %+v, expected defaults", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"prey max age", func(c *Config) { c.Rules.Prey.MaxAge = 0 }},
		{"predator threshold", func(c *Config) { c.Rules.Predator.BaseThreshold = 0 }},
		{"random grid", func(c *Config) { c.Random.Width = 0 }},
		{"random turn range", func(c *Config) { c.Random.MinTurn, c.Random.MaxTurn = 4, 2 }},
		{"tick rate bounds", func(c *Config) { c.Display.MinTickRate = 0 }},
		{"tick rate outside bounds", func(c *Config) { c.Display.TickRate = 100 }},
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, expected nil", err)
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, sim.ErrInvalidConfiguration) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestRandomSpec(t *testing.T) {
	cfg := Default()
	cfg.Random.Predators = 7
	spec := cfg.RandomSpec()
	if spec.Predators != 7 || spec.Width != 10 {
		t.Errorf("RandomSpec() = %+v", spec)
	}
}

func TestPacing(t *testing.T) {
	p := NewPacing(DisplayConfig{TickRate: 4, MinTickRate: 1, MaxTickRate: 10})

	if p.Interval() != 250*time.Millisecond {
		t.Errorf("Interval() = %v, expected 250ms", p.Interval())
	}

	steps := []struct {
		action   func()
		expected int
	}{
		{p.Faster, 8},
		{p.Faster, 10},
		{p.Slower, 5},
		{p.Slower, 2},
		{p.Slower, 1},
		{p.Slower, 1},
	}
	for i, s := range steps {
		s.action()
		if p.Rate() != s.expected {
			t.Errorf("step %d: Rate() = %d, expected %d", i, p.Rate(), s.expected)
		}
	}

	p.SetRate(0)
	if p.Rate() != 1 {
		t.Errorf("SetRate(0) gave Rate() = %d, expected 1", p.Rate())
	}
}

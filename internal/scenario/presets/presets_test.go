package presets

import (
	"testing"

	"github.com/vovakirdan/tui-ecosim/internal/registry"
	"github.com/vovakirdan/tui-ecosim/internal/sim"
)

func TestBuiltinPresetsBuild(t *testing.T) {
	for _, id := range []string{DefaultID, "triad", "meadow"} {
		t.Run(id, func(t *testing.T) {
			sc, err := registry.Create(id)
			if err != nil {
				t.Fatalf("Create(%q): %v", id, err)
			}
			w, err := sc.Build(sim.DefaultRules())
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if w.Len() != len(sc.Placements) {
				t.Errorf("Len() = %d, expected %d", w.Len(), len(sc.Placements))
			}
			for i := 0; i < sc.Steps; i++ {
				w.Step()
			}
		})
	}
}

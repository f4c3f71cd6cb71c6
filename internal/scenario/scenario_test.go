package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-ecosim/internal/core"
	"github.com/vovakirdan/tui-ecosim/internal/sim"
)

func TestParseText(t *testing.T) {
	sc, err := ParseString("3 3 5\n 2 1\n 1 2 1 1\n 1 1 0 2\n 0 2 1 2\n")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	if sc.Width != 3 || sc.Height != 3 || sc.Steps != 5 {
		t.Errorf("header = %dx%d/%d, expected 3x3/5", sc.Width, sc.Height, sc.Steps)
	}

	expected := []Placement{
		{sim.SpeciesPrey, core.C(1, 2), core.DirRight, 1},
		{sim.SpeciesPrey, core.C(1, 1), core.DirUp, 2},
		{sim.SpeciesPredator, core.C(0, 2), core.DirRight, 2},
	}
	if len(sc.Placements) != len(expected) {
		t.Fatalf("len(Placements) = %d, expected %d", len(sc.Placements), len(expected))
	}
	for i, want := range expected {
		if sc.Placements[i] != want {
			t.Errorf("Placements[%d] = %+v, expected %+v", i, sc.Placements[i], want)
		}
	}
}

func TestParseTextSingleLine(t *testing.T) {
	sc, err := ParseString("4 4 20 1 1 0 0 1 100 0 3 0 100\n")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	prey, preds := sc.Counts()
	if prey != 1 || preds != 1 {
		t.Errorf("Counts() = %d, %d, expected 1, 1", prey, preds)
	}
	if sc.Placements[1].Pos != core.C(0, 3) || sc.Placements[1].Turn != 100 {
		t.Errorf("predator placement = %+v", sc.Placements[1])
	}
}

func TestParseTextErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "width"},
		{"truncated header", "3 3", "steps"},
		{"non-integer", "3 x 5 0 0", "not an integer"},
		{"truncated placement", "3 3 5 1 0 1 2", "prey 1 direction"},
		{"bad direction", "3 3 5 1 0 1 2 7 1", "direction 7"},
		{"direction past uint8", "3 3 1 1 0 0 0 256 1", "direction 256"},
		{"direction wraps to right", "3 3 1 1 0 0 0 257 1", "direction 257"},
		{"negative count", "3 3 5 -1 0", "negative"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseString(tc.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error = %q, expected it to mention %q", err, tc.want)
			}
		})
	}
}

func TestFormatTextRoundTrip(t *testing.T) {
	in := "3 3 5\n2 1\n1 2 1 1\n1 1 0 2\n0 2 1 2\n"
	sc, err := ParseString(in)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if got := FormatText(sc); got != in {
		t.Errorf("FormatText() = %q, expected %q", got, in)
	}
}

func TestBuild(t *testing.T) {
	sc, _ := ParseString("3 3 5 2 1 1 2 1 1 1 1 0 2 0 2 1 2")
	w, err := sc.Build(sim.DefaultRules())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if w.Len() != 3 || w.Width() != 3 || w.Height() != 3 {
		t.Errorf("built %dx%d with %d entities, expected 3x3 with 3", w.Width(), w.Height(), w.Len())
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"out of range", "3 3 5 1 0 3 0 1 1", sim.ErrInvalidEntityState},
		{"zero turn period", "3 3 5 1 0 0 0 1 0", sim.ErrInvalidConfiguration},
		{"zero width", "0 3 5 0 0", sim.ErrInvalidConfiguration},
		{"negative steps", "3 3 -1 0 0", sim.ErrInvalidConfiguration},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sc, err := ParseString(tc.input)
			if err != nil {
				t.Fatalf("ParseString: %v", err)
			}
			if _, err := sc.Build(sim.DefaultRules()); !errors.Is(err, tc.want) {
				t.Errorf("Build() error = %v, expected %v", err, tc.want)
			}
		})
	}
}

const sampleYAML = `name: pond
size: {w: 5, h: 4}
steps: 12
prey:
  - {x: 0, y: 0, dir: right, turn: 2}
  - {x: 4, y: 3, dir: "3"}
predators:
  - {x: 2, y: 2, dir: Up, turn: 4}
`

func TestParseYAML(t *testing.T) {
	sc, err := ParseYAML([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}

	if sc.Name != "pond" || sc.Width != 5 || sc.Height != 4 || sc.Steps != 12 {
		t.Errorf("scenario = %+v", sc)
	}
	expected := []Placement{
		{sim.SpeciesPrey, core.C(0, 0), core.DirRight, 2},
		{sim.SpeciesPrey, core.C(4, 3), core.DirLeft, 1},
		{sim.SpeciesPredator, core.C(2, 2), core.DirUp, 4},
	}
	for i, want := range expected {
		if sc.Placements[i] != want {
			t.Errorf("Placements[%d] = %+v, expected %+v", i, sc.Placements[i], want)
		}
	}
}

func TestParseYAMLBadDirection(t *testing.T) {
	_, err := ParseYAML([]byte("size: {w: 2, h: 2}\nprey:\n  - {x: 0, y: 0, dir: sideways}\n"))
	if err == nil || !strings.Contains(err.Error(), "sideways") {
		t.Errorf("ParseYAML error = %v, expected unknown direction", err)
	}
}

func TestParseYAMLExplicitZeroTurn(t *testing.T) {
	sc, err := ParseYAML([]byte("size: {w: 2, h: 2}\nsteps: 1\nprey:\n  - {x: 0, y: 0, dir: up, turn: 0}\n"))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if sc.Placements[0].Turn != 0 {
		t.Errorf("Turn = %d, expected explicit 0 to be kept", sc.Placements[0].Turn)
	}
	if _, err := sc.Build(sim.DefaultRules()); !errors.Is(err, sim.ErrInvalidConfiguration) {
		t.Errorf("Build() error = %v, expected ErrInvalidConfiguration", err)
	}
}

func TestMarshalYAMLRoundTrip(t *testing.T) {
	sc, _ := ParseYAML([]byte(sampleYAML))
	data, err := MarshalYAML(sc)
	if err != nil {
		t.Fatalf("MarshalYAML: %v", err)
	}
	back, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML(MarshalYAML()): %v", err)
	}
	if back.Describe() != sc.Describe() || len(back.Placements) != len(sc.Placements) {
		t.Errorf("round trip = %s, expected %s", back.Describe(), sc.Describe())
	}
}

func TestLoadFileAndLoader(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		return path
	}

	yamlPath := write("pond.yaml", sampleYAML)
	write("tiny.txt", "2 2 3 1 0 0 0 1 1")
	write("broken.yaml", "size: [")
	write("notes.md", "ignored")

	sc, err := LoadFile(yamlPath)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if sc.Name != "pond" {
		t.Errorf("Name = %q, expected pond", sc.Name)
	}

	all, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("LoadAll() returned %d scenarios, expected 2", len(all))
	}
	if all[0].Name != "pond" || all[1].Name != "tiny" {
		t.Errorf("LoadAll() names = %q, %q, expected pond, tiny", all[0].Name, all[1].Name)
	}

	if _, err := LoadFile(filepath.Join(dir, "notes.md")); err == nil {
		t.Error("LoadFile should reject unsupported extensions")
	}

	missing, err := NewLoader(filepath.Join(dir, "nope")).LoadAll()
	if err != nil || len(missing) != 0 {
		t.Errorf("LoadAll() on missing dir = %v, %v, expected empty", missing, err)
	}
}

func TestRandomDeterministic(t *testing.T) {
	spec := DefaultRandomSpec()
	a, err := Random(spec, 42)
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	b, _ := Random(spec, 42)

	if FormatText(a) != FormatText(b) {
		t.Error("same seed should produce identical scenarios")
	}

	prey, preds := a.Counts()
	if prey != spec.Prey || preds != spec.Predators {
		t.Errorf("Counts() = %d, %d, expected %d, %d", prey, preds, spec.Prey, spec.Predators)
	}
	for _, p := range a.Placements {
		if !p.Pos.In(spec.Width, spec.Height) {
			t.Errorf("placement %+v outside grid", p)
		}
		if p.Turn < spec.MinTurn || p.Turn > spec.MaxTurn {
			t.Errorf("turn period %d outside [%d, %d]", p.Turn, spec.MinTurn, spec.MaxTurn)
		}
		if !p.Dir.Valid() {
			t.Errorf("invalid direction %d", p.Dir)
		}
	}

	if _, err := a.Build(sim.DefaultRules()); err != nil {
		t.Errorf("Build() on random scenario: %v", err)
	}
}

func TestRandomRejectsBadSpec(t *testing.T) {
	bad := []RandomSpec{
		{Width: 0, Height: 3, MinTurn: 1, MaxTurn: 1},
		{Width: 3, Height: 3, Prey: -1, MinTurn: 1, MaxTurn: 1},
		{Width: 3, Height: 3, MinTurn: 0, MaxTurn: 2},
		{Width: 3, Height: 3, MinTurn: 3, MaxTurn: 2},
	}
	for i, spec := range bad {
		if _, err := Random(spec, 1); !errors.Is(err, sim.ErrInvalidConfiguration) {
			t.Errorf("spec %d: Random() error = %v, expected ErrInvalidConfiguration", i, err)
		}
	}
}

package telemetry

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-ecosim/internal/scenario"
	"github.com/vovakirdan/tui-ecosim/internal/sim"
)

func triad(t *testing.T) *sim.Simulation {
	t.Helper()
	sc, err := scenario.ParseString("3 3 5\n2 1\n1 2 1 1\n1 1 0 2\n0 2 1 2\n")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	s, err := sc.Build(sim.DefaultRules())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func TestCollectorCountsBalancedCellAsOccupied(t *testing.T) {
	sc, err := scenario.ParseString("3 3 1 1 1 1 1 0 5 1 1 2 5")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	s, err := sc.Build(sim.DefaultRules())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	c := NewCollector(nil)
	if err := c.Start(s); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := c.Rows()[0].Occupied; got != 1 {
		t.Errorf("Occupied = %d, expected 1 for one prey and one predator sharing a cell", got)
	}
}

func TestCollectorRecordsSteps(t *testing.T) {
	s := triad(t)
	var buf bytes.Buffer
	c := NewCollector(NewCSVWriter(&buf))

	if err := c.Start(s); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Step()
	if err := c.Observe(s); err != nil {
		t.Fatalf("Observe: %v", err)
	}

	rows := c.Rows()
	if len(rows) != 2 {
		t.Fatalf("len(Rows()) = %d, expected 2", len(rows))
	}

	expected := []StepStats{
		{Step: 0, Prey: 2, Predators: 1, Occupied: 3},
		{Step: 1, Prey: 1, Predators: 1, PreyEaten: 1, Occupied: 2},
	}
	for i, want := range expected {
		if rows[i] != want {
			t.Errorf("Rows()[%d] = %+v, expected %+v", i, rows[i], want)
		}
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("CSV has %d lines, expected header + 2 rows:\n%s", len(lines), buf.String())
	}
	header := "step,prey,predators,prey_born,predators_born,prey_died,predators_died,prey_eaten,occupied"
	if lines[0] != header {
		t.Errorf("header = %q, expected %q", lines[0], header)
	}
	if lines[2] != "1,1,1,0,0,0,0,1,2" {
		t.Errorf("row 1 = %q, expected %q", lines[2], "1,1,1,0,0,0,0,1,2")
	}

	back, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(back) != 2 || back[1] != rows[1] {
		t.Errorf("ReadCSV() = %+v, expected %+v", back, rows)
	}
}

func TestCreateCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "run.csv")

	cw, err := CreateCSV(path)
	if err != nil {
		t.Fatalf("CreateCSV: %v", err)
	}
	if err := cw.Write(StepStats{Step: 0, Prey: 1}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := cw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := cw.Close(); err != nil {
		t.Errorf("second Close() = %v, expected nil", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasPrefix(string(data), "step,prey,") {
		t.Errorf("file content = %q, expected CSV header", data)
	}
}

func TestCreateCSVDisabled(t *testing.T) {
	cw, err := CreateCSV("")
	if err != nil || cw != nil {
		t.Fatalf("CreateCSV(\"\") = %v, %v, expected nil, nil", cw, err)
	}
	// A nil writer is a no-op.
	if err := cw.Write(StepStats{}); err != nil {
		t.Errorf("nil Write() = %v, expected nil", err)
	}
	if err := cw.Close(); err != nil {
		t.Errorf("nil Close() = %v, expected nil", err)
	}
}

func TestSummarize(t *testing.T) {
	rows := []StepStats{
		{Step: 0, Prey: 4, Predators: 1},
		{Step: 1, Prey: 6, Predators: 1, PreyBorn: 2},
		{Step: 2, Prey: 2, Predators: 2, PredatorsBorn: 1, PreyEaten: 4},
		{Step: 3, Prey: 0, Predators: 2, PreyEaten: 1, PreyDied: 1},
	}

	s := Summarize(rows)

	floats := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"MeanPrey", s.MeanPrey, 3},
		{"StdDevPrey", s.StdDevPrey, math.Sqrt(20.0 / 3)},
		{"MeanPredators", s.MeanPredators, 1.5},
		{"StdDevPredators", s.StdDevPredators, math.Sqrt(1.0 / 3)},
	}
	for _, f := range floats {
		if math.Abs(f.got-f.expected) > 1e-9 {
			t.Errorf("%s = %v, expected %v", f.name, f.got, f.expected)
		}
	}

	if s.Steps != 3 {
		t.Errorf("Steps = %d, expected 3", s.Steps)
	}
	if s.PeakPrey != 6 || s.PeakPreyStep != 1 {
		t.Errorf("prey peak = %d at %d, expected 6 at 1", s.PeakPrey, s.PeakPreyStep)
	}
	if s.PeakPredators != 2 || s.PeakPredatorsStep != 2 {
		t.Errorf("predator peak = %d at %d, expected 2 at 2", s.PeakPredators, s.PeakPredatorsStep)
	}
	if s.TotalBorn != 3 || s.TotalEaten != 5 || s.TotalDied != 1 {
		t.Errorf("totals = born %d eaten %d died %d, expected 3/5/1", s.TotalBorn, s.TotalEaten, s.TotalDied)
	}
	if s.PreyExtinctAt != 3 || s.PredatorsExtinctAt != -1 {
		t.Errorf("extinction = %d/%d, expected 3/-1", s.PreyExtinctAt, s.PredatorsExtinctAt)
	}
	if !strings.Contains(s.String(), "extinct step 3") {
		t.Errorf("String() = %q, expected prey extinction at step 3", s.String())
	}
}

func TestSummarizeEdgeCases(t *testing.T) {
	empty := Summarize(nil)
	if empty.PreyExtinctAt != -1 || empty.PredatorsExtinctAt != -1 || empty.Steps != 0 {
		t.Errorf("Summarize(nil) = %+v", empty)
	}

	single := Summarize([]StepStats{{Step: 0, Prey: 3, Predators: 0}})
	if single.MeanPrey != 3 || single.StdDevPrey != 0 {
		t.Errorf("single row prey = %v (sd %v), expected 3 (sd 0)", single.MeanPrey, single.StdDevPrey)
	}
	if single.PredatorsExtinctAt != 0 {
		t.Errorf("PredatorsExtinctAt = %d, expected 0", single.PredatorsExtinctAt)
	}
}

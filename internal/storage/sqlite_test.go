package storage

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun(scenario string, finalPrey, finalPreds int) Run {
	return Run{
		Scenario:         scenario,
		Source:           "preset",
		Width:            3,
		Height:           3,
		Steps:            5,
		InitialPrey:      2,
		InitialPredators: 1,
		FinalPrey:        finalPrey,
		FinalPredators:   finalPreds,
		PeakPrey:         finalPrey + 1,
		PreyEaten:        1,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.ecosim/runs.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".ecosim", "runs.db")); os.IsNotExist(err) {
		t.Error("Database file was not created under the home directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []Run{
		sampleRun("triad", 1, 1),
		sampleRun("triad", 0, 1),
		sampleRun("meadow", 4, 0),
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Newest first
	if runs[0].Scenario != "meadow" {
		t.Errorf("Expected newest run to be meadow, got %q", runs[0].Scenario)
	}
	if runs[0].Outcome != OutcomePredatorsExtinct {
		t.Errorf("Outcome = %q, expected %q", runs[0].Outcome, OutcomePredatorsExtinct)
	}
	if runs[1].Outcome != OutcomePreyExtinct {
		t.Errorf("Outcome = %q, expected %q", runs[1].Outcome, OutcomePreyExtinct)
	}
	if runs[2].InitialPrey != 2 || runs[2].Width != 3 || runs[2].PreyEaten != 1 {
		t.Errorf("Round-tripped run = %+v", runs[2])
	}
	if runs[2].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	triad, err := store.RunsForScenario("triad", 10)
	if err != nil {
		t.Fatalf("RunsForScenario() failed: %v", err)
	}
	if len(triad) != 2 {
		t.Errorf("Expected 2 triad runs, got %d", len(triad))
	}
}

func TestStoreRecentRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(sampleRun("lone-pair", i, 1))
	}

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].FinalPrey != 4 || runs[2].FinalPrey != 2 {
		t.Errorf("Runs not newest first: %d..%d", runs[0].FinalPrey, runs[2].FinalPrey)
	}
}

func TestStoreExplicitOutcomeKept(t *testing.T) {
	store := openTestStore(t)

	r := sampleRun("triad", 1, 1)
	r.Outcome = OutcomeExtinct
	store.SaveRun(r)

	runs, _ := store.RecentRuns(1)
	if runs[0].Outcome != OutcomeExtinct {
		t.Errorf("Outcome = %q, expected %q", runs[0].Outcome, OutcomeExtinct)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(sampleRun("triad", 1, 1))
	store.SaveRun(sampleRun("meadow", 1, 1))

	if err := store.ClearRuns("triad"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	triad, _ := store.RunsForScenario("triad", 10)
	if len(triad) != 0 {
		t.Errorf("Expected 0 triad runs after clear, got %d", len(triad))
	}
	meadow, _ := store.RunsForScenario("meadow", 10)
	if len(meadow) != 1 {
		t.Error("Meadow runs should not be affected by clearing triad")
	}

	if err := store.ClearRuns(""); err != nil {
		t.Fatalf("ClearRuns(\"\") failed: %v", err)
	}
	all, _ := store.RecentRuns(10)
	if len(all) != 0 {
		t.Errorf("Expected 0 runs after clearing everything, got %d", len(all))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("Expected no stats for empty store, got %d", len(stats))
	}

	store.SaveRun(sampleRun("triad", 2, 1))
	store.SaveRun(sampleRun("triad", 0, 1))
	store.SaveRun(sampleRun("triad", 4, 2))
	store.SaveRun(sampleRun("meadow", 3, 0))

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}

	triad := stats["triad"]
	if triad == nil {
		t.Fatal("Expected stats for triad")
	}
	if triad.Runs != 3 || triad.Coexisted != 2 {
		t.Errorf("triad runs/coexisted = %d/%d, expected 3/2", triad.Runs, triad.Coexisted)
	}
	if math.Abs(triad.AvgFinalPrey-2) > 1e-9 {
		t.Errorf("AvgFinalPrey = %v, expected 2", triad.AvgFinalPrey)
	}
	if triad.MaxPeakPrey != 5 {
		t.Errorf("MaxPeakPrey = %d, expected 5", triad.MaxPeakPrey)
	}
	if stats["meadow"] == nil || stats["meadow"].Coexisted != 0 {
		t.Errorf("meadow stats = %+v", stats["meadow"])
	}
}

func TestOutcomeOf(t *testing.T) {
	tests := []struct {
		prey, preds int
		expected    Outcome
	}{
		{3, 2, OutcomeCoexist},
		{0, 2, OutcomePreyExtinct},
		{3, 0, OutcomePredatorsExtinct},
		{0, 0, OutcomeExtinct},
	}
	for _, tc := range tests {
		if got := OutcomeOf(tc.prey, tc.preds); got != tc.expected {
			t.Errorf("OutcomeOf(%d, %d) = %q, expected %q", tc.prey, tc.preds, got, tc.expected)
		}
	}
}

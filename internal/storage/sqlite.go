// Package storage provides SQLite-based history of finished simulation runs.
// Only outcomes are stored; simulation state is never persisted.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Outcome classifies how a run ended.
type Outcome string

const (
	OutcomeCoexist          Outcome = "coexist"
	OutcomePreyExtinct      Outcome = "prey-extinct"
	OutcomePredatorsExtinct Outcome = "predators-extinct"
	OutcomeExtinct          Outcome = "extinct"
)

// OutcomeOf classifies a final population.
func OutcomeOf(prey, predators int) Outcome {
	switch {
	case prey == 0 && predators == 0:
		return OutcomeExtinct
	case prey == 0:
		return OutcomePreyExtinct
	case predators == 0:
		return OutcomePredatorsExtinct
	default:
		return OutcomeCoexist
	}
}

// Run represents one finished simulation.
type Run struct {
	ID       int64
	Scenario string // preset ID, file base name or "random-<seed>"
	Source   string // "preset", "file", "random" or "manual"
	Seed     int64

	Width  int
	Height int
	Steps  int

	InitialPrey      int
	InitialPredators int
	FinalPrey        int
	FinalPredators   int
	PeakPrey         int
	PeakPredators    int
	PreyEaten        int

	Outcome   Outcome
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scenario TEXT NOT NULL,
			source TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			initial_prey INTEGER NOT NULL,
			initial_predators INTEGER NOT NULL,
			final_prey INTEGER NOT NULL,
			final_predators INTEGER NOT NULL,
			peak_prey INTEGER NOT NULL DEFAULT 0,
			peak_predators INTEGER NOT NULL DEFAULT 0,
			prey_eaten INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run. An empty Outcome is derived from the
// final population. Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.Outcome == "" {
		r.Outcome = OutcomeOf(r.FinalPrey, r.FinalPredators)
	}

	result, err := s.db.Exec(
		`INSERT INTO runs
		 (scenario, source, seed, width, height, steps,
		  initial_prey, initial_predators, final_prey, final_predators,
		  peak_prey, peak_predators, prey_eaten, outcome)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Scenario, r.Source, r.Seed, r.Width, r.Height, r.Steps,
		r.InitialPrey, r.InitialPredators, r.FinalPrey, r.FinalPredators,
		r.PeakPrey, r.PeakPredators, r.PreyEaten, string(r.Outcome),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, scenario, source, seed, width, height, steps,
		        initial_prey, initial_predators, final_prey, final_predators,
		        peak_prey, peak_predators, prey_eaten, outcome, created_at`

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RunsForScenario retrieves the most recent runs of one scenario, newest first.
func (s *Store) RunsForScenario(scenario string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE scenario = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		scenario, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var outcome string
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.Scenario, &r.Source, &r.Seed, &r.Width, &r.Height, &r.Steps,
			&r.InitialPrey, &r.InitialPredators, &r.FinalPrey, &r.FinalPredators,
			&r.PeakPrey, &r.PeakPredators, &r.PreyEaten, &outcome, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Outcome = Outcome(outcome)
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// ClearRuns deletes all runs of the given scenario, or every run when
// scenario is empty.
func (s *Store) ClearRuns(scenario string) error {
	var err error
	if scenario == "" {
		_, err = s.db.Exec("DELETE FROM runs")
	} else {
		_, err = s.db.Exec("DELETE FROM runs WHERE scenario = ?", scenario)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// ScenarioStats contains aggregated statistics for a scenario.
type ScenarioStats struct {
	Scenario      string
	Runs          int
	Coexisted     int // runs ending with both species alive
	AvgFinalPrey  float64
	AvgFinalPreds float64
	MaxPeakPrey   int
	LastRun       time.Time
}

// Stats retrieves aggregated statistics for every scenario that has runs.
func (s *Store) Stats() (map[string]*ScenarioStats, error) {
	rows, err := s.db.Query(
		`SELECT scenario, COUNT(*),
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		        AVG(final_prey), AVG(final_predators), MAX(peak_prey), MAX(created_at)
		 FROM runs
		 GROUP BY scenario`,
		string(OutcomeCoexist),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ScenarioStats)
	for rows.Next() {
		var st ScenarioStats
		var lastRun any
		if err := rows.Scan(&st.Scenario, &st.Runs, &st.Coexisted,
			&st.AvgFinalPrey, &st.AvgFinalPreds, &st.MaxPeakPrey, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTime(lastRun)
		stats[st.Scenario] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

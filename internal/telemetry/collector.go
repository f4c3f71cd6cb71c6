// Package telemetry records per-step population statistics, writes them as
// CSV and summarizes finished runs.
package telemetry

import (
	"github.com/vovakirdan/tui-ecosim/internal/core"
	"github.com/vovakirdan/tui-ecosim/internal/sim"
)

// StepStats is one row of run telemetry.
type StepStats struct {
	Step      uint64 `csv:"step"`
	Prey      int    `csv:"prey"`
	Predators int    `csv:"predators"`

	// Events during the step
	PreyBorn      int `csv:"prey_born"`
	PredatorsBorn int `csv:"predators_born"`
	PreyDied      int `csv:"prey_died"`
	PredatorsDied int `csv:"predators_died"`
	PreyEaten     int `csv:"prey_eaten"`

	// Cells holding at least one entity
	Occupied int `csv:"occupied"`
}

// Observer receives rows as they are recorded.
type Observer interface {
	Write(StepStats) error
}

// Collector accumulates StepStats rows for a single run.
type Collector struct {
	rows []StepStats
	out  Observer
}

// NewCollector creates a collector. out may be nil.
func NewCollector(out Observer) *Collector {
	return &Collector{out: out}
}

// Start records the initial population as step 0.
func (c *Collector) Start(s *sim.Simulation) error {
	prey, preds := s.Counts()
	return c.add(StepStats{
		Step:      s.Tick(),
		Prey:      prey,
		Predators: preds,
		Occupied:  occupied(s),
	})
}

// Observe records the outcome of the simulation's most recent step.
func (c *Collector) Observe(s *sim.Simulation) error {
	r := s.LastReport()
	return c.add(StepStats{
		Step:          r.Tick,
		Prey:          r.Prey,
		Predators:     r.Predators,
		PreyBorn:      r.PreyBorn,
		PredatorsBorn: r.PredatorsBorn,
		PreyDied:      r.PreyDied,
		PredatorsDied: r.PredatorsDied,
		PreyEaten:     r.PreyEaten,
		Occupied:      occupied(s),
	})
}

func (c *Collector) add(row StepStats) error {
	c.rows = append(c.rows, row)
	if c.out != nil {
		return c.out.Write(row)
	}
	return nil
}

// Rows returns the recorded rows in step order.
func (c *Collector) Rows() []StepStats {
	return c.rows
}

// Summary summarizes the rows collected so far.
func (c *Collector) Summary() Summary {
	return Summarize(c.rows)
}

// occupied counts distinct cells holding an entity. A cell where prey and
// predators balance out still counts.
func occupied(s *sim.Simulation) int {
	cells := make(map[core.Coord]struct{})
	for _, e := range s.Entities() {
		cells[e.Pos] = struct{}{}
	}
	return len(cells)
}

package telemetry

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Summary condenses a run's telemetry.
type Summary struct {
	Steps uint64 // last recorded step

	MeanPrey        float64
	StdDevPrey      float64
	MeanPredators   float64
	StdDevPredators float64

	PeakPrey          int
	PeakPreyStep      uint64
	PeakPredators     int
	PeakPredatorsStep uint64

	TotalBorn  int
	TotalDied  int // old age only
	TotalEaten int

	// Step at which each species first reached zero; -1 if it never did.
	PreyExtinctAt      int64
	PredatorsExtinctAt int64
}

// Summarize computes a Summary over rows in step order. Means and standard
// deviations are taken over every row, including step 0 when present.
func Summarize(rows []StepStats) Summary {
	s := Summary{PreyExtinctAt: -1, PredatorsExtinctAt: -1}
	if len(rows) == 0 {
		return s
	}

	prey := make([]float64, len(rows))
	preds := make([]float64, len(rows))

	for i, r := range rows {
		prey[i] = float64(r.Prey)
		preds[i] = float64(r.Predators)

		if r.Prey > s.PeakPrey {
			s.PeakPrey, s.PeakPreyStep = r.Prey, r.Step
		}
		if r.Predators > s.PeakPredators {
			s.PeakPredators, s.PeakPredatorsStep = r.Predators, r.Step
		}

		s.TotalBorn += r.PreyBorn + r.PredatorsBorn
		s.TotalDied += r.PreyDied + r.PredatorsDied
		s.TotalEaten += r.PreyEaten

		if r.Prey == 0 && s.PreyExtinctAt < 0 {
			s.PreyExtinctAt = int64(r.Step)
		}
		if r.Predators == 0 && s.PredatorsExtinctAt < 0 {
			s.PredatorsExtinctAt = int64(r.Step)
		}
	}

	s.Steps = rows[len(rows)-1].Step
	s.MeanPrey, s.StdDevPrey = meanStdDev(prey)
	s.MeanPredators, s.StdDevPredators = meanStdDev(preds)
	return s
}

// meanStdDev is stat.MeanStdDev with a zero deviation for a single sample.
func meanStdDev(x []float64) (mean, std float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	return stat.MeanStdDev(x, nil)
}

// String renders the summary as a short report.
func (s Summary) String() string {
	extinct := func(step int64) string {
		if step < 0 {
			return "never"
		}
		return fmt.Sprintf("step %d", step)
	}
	return fmt.Sprintf(
		"steps: %d\nprey: mean %.2f (sd %.2f), peak %d at step %d, extinct %s\n"+
			"predators: mean %.2f (sd %.2f), peak %d at step %d, extinct %s\n"+
			"born: %d, eaten: %d, died of age: %d",
		s.Steps,
		s.MeanPrey, s.StdDevPrey, s.PeakPrey, s.PeakPreyStep, extinct(s.PreyExtinctAt),
		s.MeanPredators, s.StdDevPredators, s.PeakPredators, s.PeakPredatorsStep, extinct(s.PredatorsExtinctAt),
		s.TotalBorn, s.TotalEaten, s.TotalDied,
	)
}

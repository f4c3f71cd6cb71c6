package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-ecosim/internal/registry"
	"github.com/vovakirdan/tui-ecosim/internal/scenario"
	"github.com/vovakirdan/tui-ecosim/internal/scenario/presets"
	"github.com/vovakirdan/tui-ecosim/internal/storage"
	"github.com/vovakirdan/tui-ecosim/internal/telemetry"
)

// Scenario sources recorded in the run history.
const (
	sourcePreset = "preset"
	sourceFile   = "file"
	sourceRandom = "random"
	sourceManual = "manual"
)

// scenarioFlags selects where a command's scenario comes from.
type scenarioFlags struct {
	preset string
	file   string
	random bool
	manual bool
	steps  int
}

// bind registers the scenario flags on cmd.
func (f *scenarioFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.preset, "preset", "", "Preset scenario ID (see 'ecosim list')")
	cmd.Flags().StringVar(&f.file, "file", "", "Scenario file (.yaml, .yml or .txt)")
	cmd.Flags().BoolVar(&f.random, "random", false, "Generate a random scenario from --seed")
	cmd.Flags().BoolVar(&f.manual, "manual", false, "Read a scenario in the numeric format from stdin")
	cmd.Flags().IntVar(&f.steps, "steps", -1, "Override the scenario's step count")
	cmd.MarkFlagsMutuallyExclusive("preset", "file", "random", "manual")
}

// resolvedScenario is a scenario plus where it came from.
type resolvedScenario struct {
	scenario.Scenario
	source string
	seed   int64
}

// resolve builds the selected scenario. Without a source flag the default
// preset is used.
func (f *scenarioFlags) resolve(st settings, stdin io.Reader) (resolvedScenario, error) {
	var (
		rs  resolvedScenario
		err error
	)

	switch {
	case f.file != "":
		rs.source = sourceFile
		rs.Scenario, err = scenario.LoadFile(f.file)
	case f.random:
		rs.source = sourceRandom
		rs.seed = seed()
		rs.Scenario, err = scenario.Random(st.cfg.RandomSpec(), rs.seed)
	case f.manual:
		rs.source = sourceManual
		rs.Scenario, err = readManual(stdin)
	default:
		id := f.preset
		if id == "" {
			id = presets.DefaultID
		}
		rs.source = sourcePreset
		rs.Scenario, err = registry.Create(id)
	}
	if err != nil {
		return resolvedScenario{}, err
	}

	if f.steps >= 0 {
		rs.Steps = f.steps
	}
	return rs, nil
}

// readManual reads a numeric-format scenario, prompting when stdin is a terminal.
func readManual(stdin io.Reader) (scenario.Scenario, error) {
	if file, ok := stdin.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		fmt.Fprintln(os.Stderr, "Enter: width height steps, then prey and predator counts,")
		fmt.Fprintln(os.Stderr, "then one 'x y dir turn' line per entity (dir 0=up 1=right 2=down 3=left).")
	}
	sc, err := scenario.ParseText(stdin)
	if err != nil {
		return scenario.Scenario{}, fmt.Errorf("manual input: %w", err)
	}
	sc.Name = "manual"
	return sc, nil
}

// recordRun stores a finished run in the history. Failures are logged.
func recordRun(store *storage.Store, rs resolvedScenario, rows []telemetry.StepStats) {
	if store == nil || len(rows) == 0 {
		return
	}

	sum := telemetry.Summarize(rows)
	first, last := rows[0], rows[len(rows)-1]
	run := storage.Run{
		Scenario:         rs.Name,
		Source:           rs.source,
		Seed:             rs.seed,
		Width:            rs.Width,
		Height:           rs.Height,
		Steps:            int(last.Step),
		InitialPrey:      first.Prey,
		InitialPredators: first.Predators,
		FinalPrey:        last.Prey,
		FinalPredators:   last.Predators,
		PeakPrey:         sum.PeakPrey,
		PeakPredators:    sum.PeakPredators,
		PreyEaten:        sum.TotalEaten,
	}

	id, err := store.SaveRun(run)
	if err != nil {
		logger.Warn("could not record run", "error", err)
		return
	}
	logger.Debug("run recorded", "id", id, "scenario", run.Scenario, "outcome", storage.OutcomeOf(run.FinalPrey, run.FinalPredators))
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

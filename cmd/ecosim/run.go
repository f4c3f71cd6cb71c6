package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ecosim/internal/render"
	"github.com/vovakirdan/tui-ecosim/internal/telemetry"
)

var (
	runSource   scenarioFlags
	runCSVPath  string
	runNoRecord bool
	runSummary  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Print a step-by-step transcript of a scenario",
	Long: `Run a scenario to completion and print the field after every step,
starting with the initial population as step 0.

Each cell prints as " *" when empty (or balanced), "+N" when prey
outnumber predators by N and "-N" when predators outnumber prey.

Examples:
  ecosim run
  ecosim run --preset triad
  ecosim run --file scenarios/pond.yaml --steps 50
  ecosim run --random --seed 7 --csv out/run.csv --summary
  ecosim run --manual < scenario.txt`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runSource.bind(runCmd)
	runCmd.Flags().StringVar(&runCSVPath, "csv", "", "Write per-step telemetry to this CSV file")
	runCmd.Flags().BoolVar(&runNoRecord, "no-record", false, "Do not record the run in the history database")
	runCmd.Flags().BoolVar(&runSummary, "summary", false, "Print population statistics after the transcript")
}

func runRun(cmd *cobra.Command, _ []string) error {
	st, err := loadSettings()
	if err != nil {
		return err
	}

	rs, err := runSource.resolve(st, cmd.InOrStdin())
	if err != nil {
		return err
	}

	world, err := rs.Build(st.rules)
	if err != nil {
		return err
	}
	logger.Info("starting run", "scenario", rs.Name, "source", rs.source, "size", rs.Describe())

	csvOut, err := telemetry.CreateCSV(runCSVPath)
	if err != nil {
		return err
	}
	// Closed explicitly below; this only covers early returns.
	defer csvOut.Close()

	// A nil *CSVWriter must not become a non-nil Observer.
	var observer telemetry.Observer
	if csvOut != nil {
		observer = csvOut
	}
	collector := telemetry.NewCollector(observer)

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	if err := collector.Start(world); err != nil {
		return err
	}
	fmt.Fprintln(out, render.Frame(world.Tick(), world))

	for i := 0; i < rs.Steps; i++ {
		world.Step()
		if err := collector.Observe(world); err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, render.Frame(world.Tick(), world))

		r := world.LastReport()
		logger.Debug("step",
			"tick", r.Tick,
			"prey", r.Prey,
			"predators", r.Predators,
			"eaten", r.PreyEaten,
			"born", r.PreyBorn+r.PredatorsBorn)
	}

	if err := csvOut.Close(); err != nil {
		return err
	}

	if runSummary {
		fmt.Fprintln(out)
		fmt.Fprintln(out, collector.Summary())
	}

	if !runNoRecord {
		store := openStore()
		if store != nil {
			defer store.Close()
		}
		recordRun(store, rs, collector.Rows())
	}

	prey, preds := world.Counts()
	logger.Info("run finished", "steps", world.Tick(), "prey", prey, "predators", preds)
	return nil
}

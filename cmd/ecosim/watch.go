package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ecosim/internal/platform/tui"
)

var (
	watchSource   scenarioFlags
	watchNoRecord bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Animate a scenario in the terminal",
	Long: `Animate a scenario step by step. Prey cells are green, predator
cells are red.

Controls:
  Space/P   - Pause or resume
  N/Right   - Single step while paused
  +/-       - Faster or slower
  R         - Restart the scenario
  Ctrl+S    - Save a text snapshot to ~/.ecosim/snapshots
  Q/Ctrl+C  - Quit

A run that reaches its last step is recorded in the history.

Examples:
  ecosim watch
  ecosim watch --preset meadow --fps 8
  ecosim watch --random --seed 3 --steps 200`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchSource.bind(watchCmd)
	watchCmd.Flags().BoolVar(&watchNoRecord, "no-record", false, "Do not record the run in the history database")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	st, err := loadSettings()
	if err != nil {
		return err
	}

	rs, err := watchSource.resolve(st, cmd.InOrStdin())
	if err != nil {
		return err
	}

	return watchScenario(st, rs, !watchNoRecord)
}

// watchScenario animates rs and records the run when it reaches its end.
func watchScenario(st settings, rs resolvedScenario, record bool) error {
	logger.Info("watching", "scenario", rs.Name, "source", rs.source, "size", rs.Describe())

	result, err := tui.RunWatch(rs.Scenario, st.rules, st.cfg.Display, runtimeConfig())
	if err != nil {
		return err
	}
	logger.Debug("watch ended", "finished", result.Finished, "restarts", result.Restarts, "rows", len(result.Rows))

	if !record || !result.Finished {
		return nil
	}
	store := openStore()
	if store == nil {
		return nil
	}
	defer store.Close()
	recordRun(store, rs, result.Rows)
	return nil
}

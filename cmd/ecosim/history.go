package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ecosim/internal/storage"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [scenario]",
	Short: "Show finished runs",
	Long: `Display recorded runs, newest first, followed by per-scenario
statistics. Give a scenario name to show only its runs.

Examples:
  ecosim history
  ecosim history triad --limit 5
  ecosim history random-42 --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to show")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete the recorded runs instead of showing them")
}

func runHistory(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) == 1 {
		name = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	if historyClear {
		if err := store.ClearRuns(name); err != nil {
			return err
		}
		logger.Info("history cleared", "scenario", name)
		return nil
	}

	var runs []storage.Run
	if name == "" {
		runs, err = store.RecentRuns(historyLimit)
	} else {
		runs, err = store.RunsForScenario(name, historyLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'ecosim run' or 'ecosim watch' to record one.")
		return nil
	}

	fmt.Fprintf(out, "  %-16s  %-7s  %-6s  %-5s  %-9s  %-9s  %s\n",
		"Scenario", "Source", "Size", "Steps", "Start", "End", "Outcome")
	fmt.Fprintf(out, "  %-16s  %-7s  %-6s  %-5s  %-9s  %-9s  %s\n",
		"--------", "------", "----", "-----", "-----", "---", "-------")
	for _, r := range runs {
		fmt.Fprintf(out, "  %-16s  %-7s  %-6s  %-5d  %-9s  %-9s  %s\n",
			r.Scenario,
			r.Source,
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			r.Steps,
			fmt.Sprintf("%d/%d", r.InitialPrey, r.InitialPredators),
			fmt.Sprintf("%d/%d", r.FinalPrey, r.FinalPredators),
			r.Outcome)
	}

	stats, err := store.Stats()
	if err != nil {
		return fmt.Errorf("computing stats: %w", err)
	}

	names := make([]string, 0, len(stats))
	for n := range stats {
		if name == "" || n == name {
			names = append(names, n)
		}
	}
	sort.Strings(names)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Per scenario (prey/predators at the end):")
	for _, n := range names {
		s := stats[n]
		fmt.Fprintf(out, "  %-16s  runs %-4d  coexisted %-4d  avg end %.1f/%.1f  peak prey %d  last %s\n",
			s.Scenario, s.Runs, s.Coexisted, s.AvgFinalPrey, s.AvgFinalPreds, s.MaxPeakPrey,
			s.LastRun.Format("2006-01-02 15:04"))
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ecosim/internal/registry"
	"github.com/vovakirdan/tui-ecosim/internal/scenario"
)

var listDir string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List preset and file scenarios",
	Long: `Shows the built-in presets and any scenario files (.yaml, .yml, .txt)
found under the scenario directory.

Examples:
  ecosim list
  ecosim list --dir ./scenarios`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listDir, "dir", "~/.ecosim/scenarios", "Directory searched for scenario files")
}

func runList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	presets := registry.List()
	fmt.Fprintln(out, "Presets:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range presets {
		maxIDLen = max(maxIDLen, len(p.ID))
	}

	fmt.Fprintf(out, "  %-*s  %-28s  %s\n", maxIDLen, "ID", "Title", "Population")
	fmt.Fprintf(out, "  %-*s  %-28s  %s\n", maxIDLen, "--", "-----", "----------")
	for _, p := range presets {
		desc := "?"
		if sc, err := registry.Create(p.ID); err == nil {
			desc = sc.Describe()
		}
		fmt.Fprintf(out, "  %-*s  %-28s  %s\n", maxIDLen, p.ID, p.Title, desc)
	}

	dir := expandHome(listDir)
	files, err := scenario.NewLoader(dir).LoadAll()
	if err != nil {
		return fmt.Errorf("scanning %s: %w", dir, err)
	}

	fmt.Fprintln(out)
	if len(files) == 0 {
		fmt.Fprintf(out, "No scenario files in %s.\n", dir)
	} else {
		fmt.Fprintf(out, "Scenario files in %s:\n", dir)
		fmt.Fprintln(out)
		for _, sc := range files {
			fmt.Fprintf(out, "  %-20s  %s\n", sc.Name, sc.Describe())
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'ecosim run --preset <id>' or 'ecosim watch --file <path>'.")
	return nil
}

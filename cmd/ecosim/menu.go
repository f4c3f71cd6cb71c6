package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ecosim/internal/platform/tui"
	"github.com/vovakirdan/tui-ecosim/internal/registry"
	"github.com/vovakirdan/tui-ecosim/internal/scenario"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Start ecosim in interactive menu mode.

Choose how to build a scenario, then watch it run. When the watch view
closes you return to the menu.

Menu entries:
  Manual input    - Type a scenario in the numeric format
  Preset          - Pick a built-in scenario
  Random          - Generate one from the configured random settings
  History         - Browse finished runs

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Select
  Esc          - Back
  Q            - Quit

Examples:
  ecosim menu
  ecosim menu --fps 10
  ecosim menu --db ./runs.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
	st, err := loadSettings()
	if err != nil {
		return err
	}

	cfg := runtimeConfig()

	for {
		res, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		cfg = res.Config
		if res.Quit {
			return nil
		}

		var rs resolvedScenario
		switch res.Choice {
		case tui.ChoiceHistory:
			store := openStore()
			goBack, histErr := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
			if store != nil {
				store.Close()
			}
			if histErr != nil {
				logger.Error("history view failed", "error", histErr)
			}
			if goBack {
				continue
			}
			return nil

		case tui.ChoicePreset:
			rs.source = sourcePreset
			rs.Scenario, err = registry.Create(res.PresetID)

		case tui.ChoiceRandom:
			rs.source = sourceRandom
			rs.seed = seed()
			rs.Scenario, err = scenario.Random(st.cfg.RandomSpec(), rs.seed)

		case tui.ChoiceManual:
			rs.source = sourceManual
			rs.Scenario, err = readManual(cmd.InOrStdin())

		default:
			return nil
		}
		if err != nil {
			// Bad input sends the user back to the menu.
			logger.Error("could not build scenario", "error", err)
			continue
		}

		if err := watchScenario(st, rs, true); err != nil {
			logger.Error("watch failed", "error", err)
		}
	}
}

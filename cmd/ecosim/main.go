// ecosim is a predator/prey population simulator for the terminal.
//
// Usage:
//
//	ecosim run               - Print a step-by-step transcript
//	ecosim watch             - Animate a scenario in the terminal
//	ecosim menu              - Interactive menu (manual, preset, random, history)
//	ecosim list              - List preset and file scenarios
//	ecosim history           - Show finished runs
//
// Global flags:
//
//	--seed <value>      - RNG seed for random scenarios (0 = time based)
//	--db <path>         - Run history database (default: ~/.ecosim/runs.db)
//	--config <path>     - Configuration file
//	--log-level <level> - debug, info, warn or error
//	--fps <rate>        - Watch speed in steps per second (0 = from config)
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-ecosim/internal/config"
	"github.com/vovakirdan/tui-ecosim/internal/core"
	"github.com/vovakirdan/tui-ecosim/internal/platform/tui"
	"github.com/vovakirdan/tui-ecosim/internal/sim"
	"github.com/vovakirdan/tui-ecosim/internal/storage"

	// Import presets to register them
	_ "github.com/vovakirdan/tui-ecosim/internal/scenario/presets"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ecosim",
	Short: "Predator/prey population simulator",
	Long: `ecosim simulates predators and prey on a wrap-around grid.

Every step, entities move, predators eat prey sharing their cell,
everyone ages, eligible entities reproduce and the old die.

Available commands:
  run      - Print a transcript of a scenario
  watch    - Animate a scenario
  menu     - Interactive menu
  list     - Show available scenarios
  history  - View finished runs

Examples:
  ecosim run --preset triad
  ecosim run --random --seed 42 --csv out/run.csv
  echo "3 3 5 1 1 0 0 1 1 2 2 0 1" | ecosim run --manual
  ecosim watch --preset meadow --fps 8
  ecosim menu`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		logger, err = newLogger(flagLogLevel)
		return err
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Watch speed in steps per second (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed for random scenarios (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ecosim/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
}

// newLogger creates the stderr logger; stdout is reserved for transcripts.
func newLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ecosim",
		Level:           lvl,
	})
	return l, nil
}

// settings bundles everything loaded from the config file.
type settings struct {
	cfg   config.Config
	rules sim.Rules
}

// loadSettings loads the config, converts the rules and applies the theme.
func loadSettings() (settings, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return settings{}, err
	}
	rules, err := cfg.SimRules()
	if err != nil {
		return settings{}, err
	}

	theme, ok := tui.ThemeByName(cfg.Display.Theme)
	if !ok {
		logger.Warn("unknown theme, using default", "theme", cfg.Display.Theme, "available", tui.ThemeNames())
		theme = tui.DefaultTheme()
	}
	tui.SetTheme(theme)

	logger.Debug("config loaded",
		"path", flagConfig,
		"policy", rules.Predator.Policy,
		"tick_rate", cfg.Display.TickRate)
	return settings{cfg: cfg, rules: rules}, nil
}

// seed returns --seed, or a time-based seed when it is 0.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// runtimeConfig builds the terminal configuration for TUI commands.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the run history. Storage is best-effort: on failure the
// error is logged and nil is returned.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history", "db", flagDBPath, "error", err)
		return nil
	}
	return store
}

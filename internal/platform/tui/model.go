package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-ecosim/internal/config"
	"github.com/vovakirdan/tui-ecosim/internal/core"
	"github.com/vovakirdan/tui-ecosim/internal/render"
	"github.com/vovakirdan/tui-ecosim/internal/scenario"
	"github.com/vovakirdan/tui-ecosim/internal/sim"
	"github.com/vovakirdan/tui-ecosim/internal/telemetry"
)

// chromeRows is the number of terminal rows used by the HUD and footer.
const chromeRows = 6

// WatchModel is the Bubble Tea model that animates one scenario.
type WatchModel struct {
	scenario  scenario.Scenario
	rules     sim.Rules
	world     *sim.Simulation
	collector *telemetry.Collector
	screen    *core.Screen
	pacing    *config.Pacing
	config    core.RuntimeConfig
	keyMapper *KeyMapper

	paused   bool
	finished bool // step limit reached
	quitting bool
	restarts int
	status   string // transient message shown in the footer
	err      error
}

// NewWatchModel builds the simulation for sc and records step 0.
func NewWatchModel(sc scenario.Scenario, rules sim.Rules, display config.DisplayConfig, cfg core.RuntimeConfig) (WatchModel, error) {
	pacing := config.NewPacing(display)
	if cfg.TickRate > 0 {
		pacing.SetRate(cfg.TickRate)
	}

	m := WatchModel{
		scenario:  sc,
		rules:     rules,
		pacing:    pacing,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	if err := m.reset(); err != nil {
		return WatchModel{}, err
	}
	return m, nil
}

// reset rebuilds the world from the scenario.
func (m *WatchModel) reset() error {
	world, err := m.scenario.Build(m.rules)
	if err != nil {
		return err
	}
	m.world = world
	m.fitScreen()
	m.collector = telemetry.NewCollector(nil)
	m.finished = m.scenario.Steps == 0
	return m.collector.Start(world)
}

// Init starts the tick loop.
func (m WatchModel) Init() tea.Cmd {
	return tickCmd(m.pacing.Interval())
}

// Update handles messages and updates the model state.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.fitScreen()
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m WatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch m.keyMapper.MapKeyToWatchAction(msg) {
	case WatchActionQuit:
		m.quitting = true
		return m, tea.Quit

	case WatchActionPause:
		m.paused = !m.paused

	case WatchActionStep:
		if m.paused {
			m.advance()
		}

	case WatchActionRestart:
		if err := m.reset(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.restarts++

	case WatchActionFaster:
		m.pacing.Faster()
		m.status = fmt.Sprintf("%d steps/s", m.pacing.Rate())

	case WatchActionSlower:
		m.pacing.Slower()
		m.status = fmt.Sprintf("%d steps/s", m.pacing.Rate())

	case WatchActionSnapshot:
		if path, err := m.saveSnapshot(); err == nil {
			m.status = "saved " + path
		} else {
			m.status = "snapshot failed: " + err.Error()
		}
	}

	return m, nil
}

// handleTick advances one step unless paused or finished. The tick loop
// keeps running so that un-pausing and restarting take effect immediately.
func (m WatchModel) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused {
		m.advance()
	}
	return m, tickCmd(m.pacing.Interval())
}

func (m *WatchModel) advance() {
	if m.finished {
		return
	}
	m.world.Step()
	//nolint:errcheck // Collector has no output sink here
	m.collector.Observe(m.world)
	if int(m.world.Tick()) >= m.scenario.Steps {
		m.finished = true
	}
}

// Frame returns the plain transcript entry for the current step.
func (m WatchModel) Frame() string {
	return render.Frame(m.world.Tick(), m.world)
}

// saveSnapshot writes the current frame to ~/.ecosim/snapshots.
func (m *WatchModel) saveSnapshot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".ecosim", "snapshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_step%d_%s.txt", m.scenario.Name, m.world.Tick(), timestamp)
	path := filepath.Join(dir, filename)

	return path, os.WriteFile(path, []byte(m.Frame()+"\n"), 0o600)
}

// View renders the current state to a string for display.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	render.Draw(m.screen, 0, 0, m.world)

	var b strings.Builder
	b.WriteString(m.hud())
	b.WriteString("\n\n")
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n\n")
	b.WriteString(m.footer())
	return b.String()
}

// fitScreen sizes the field buffer to the grid, clipped to the terminal.
func (m *WatchModel) fitScreen() {
	fw, fh := render.Size(m.world.Width(), m.world.Height())
	w := min(fw, m.config.ScreenW)
	h := min(fh, max(0, m.config.ScreenH-chromeRows))
	if m.screen == nil {
		m.screen = core.NewScreen(w, h)
		return
	}
	m.screen.Resize(w, h)
}

func (m WatchModel) hud() string {
	t := CurrentTheme()
	sep := t.HUDSeparator.Render("  |  ")
	prey, preds := m.world.Counts()

	state := "running"
	switch {
	case m.finished:
		state = "done"
	case m.paused:
		state = "paused"
	}

	return t.HUDTitle.Render(m.scenario.Name) + sep +
		t.HUDValue.Render(fmt.Sprintf("step %d/%d", m.world.Tick(), m.scenario.Steps)) + sep +
		t.Prey.Render(fmt.Sprintf("prey %d", prey)) + sep +
		t.Predator.Render(fmt.Sprintf("predators %d", preds)) + sep +
		t.HUDValue.Render(state)
}

func (m WatchModel) footer() string {
	t := CurrentTheme()
	controls := "space/p: pause  n: step  r: restart  +/-: speed  ctrl+s: snapshot  q: quit"
	if m.status != "" {
		return t.HUDControls.Render(controls) + "\n" + t.HUDValue.Render(m.status)
	}
	return t.HUDControls.Render(controls)
}

// Rows returns the telemetry recorded since the last restart.
func (m WatchModel) Rows() []telemetry.StepStats {
	return m.collector.Rows()
}

// Finished reports whether the run reached its step limit.
func (m WatchModel) Finished() bool {
	return m.finished
}

// WatchResult holds the outcome of an animated run.
type WatchResult struct {
	Rows     []telemetry.StepStats
	Finished bool
	Restarts int
}

// RunWatch starts the Bubble Tea program for sc and returns its telemetry.
func RunWatch(sc scenario.Scenario, rules sim.Rules, display config.DisplayConfig, cfg core.RuntimeConfig) (WatchResult, error) {
	model, err := NewWatchModel(sc, rules, display, cfg)
	if err != nil {
		return WatchResult{}, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return WatchResult{}, err
	}

	m, ok := finalModel.(WatchModel)
	if !ok {
		return WatchResult{}, nil
	}
	if m.err != nil {
		return WatchResult{}, m.err
	}

	return WatchResult{
		Rows:     m.Rows(),
		Finished: m.Finished(),
		Restarts: m.restarts,
	}, nil
}

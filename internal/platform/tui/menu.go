package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-ecosim/internal/core"
	"github.com/vovakirdan/tui-ecosim/internal/registry"
)

// MenuChoice identifies a top-level menu entry.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoiceManual
	ChoicePreset
	ChoiceRandom
	ChoiceHistory
	ChoiceQuit
)

// MenuItem represents a selectable entry in the main menu.
type MenuItem struct {
	Choice      MenuChoice
	Title       string
	Description string
}

// DefaultMenuItems returns the main menu entries in display order.
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{ChoiceManual, "Manual input", "Type a scenario in the numeric format"},
		{ChoicePreset, "Preset scenario", "Pick one of the built-in scenarios"},
		{ChoiceRandom, "Random generation", "Generate a population from the seed"},
		{ChoiceHistory, "Run history", "Browse finished runs"},
		{ChoiceQuit, "Quit", ""},
	}
}

// MenuModel is the Bubble Tea model for the main menu and the preset picker.
type MenuModel struct {
	items        []MenuItem
	presets      []registry.PresetInfo
	cursor       int
	presetCursor int
	inPresetPick bool
	width        int
	height       int
	config       core.RuntimeConfig
	keyMapper    *KeyMapper
	quitting     bool
	selected     *MenuItem // Set when user selects an entry
	presetID     string
}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:     DefaultMenuItems(),
		presets:   registry.List(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inPresetPick {
			return m.handlePresetKey(action)
		}
		return m.handleMainKey(action)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleMainKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		item := m.items[m.cursor]
		switch item.Choice {
		case ChoiceQuit:
			m.quitting = true
			return m, tea.Quit
		case ChoicePreset:
			if len(m.presets) > 0 {
				m.inPresetPick = true
				m.presetCursor = 0
			}
			return m, nil
		}
		m.selected = &item
		return m, tea.Quit // Exit menu to run the choice
	}

	return m, nil
}

func (m MenuModel) handlePresetKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.presetCursor > 0 {
			m.presetCursor--
		}
	case MenuActionDown:
		if m.presetCursor < len(m.presets)-1 {
			m.presetCursor++
		}
	case MenuActionSelect:
		item := m.items[m.cursor]
		m.selected = &item
		m.presetID = m.presets[m.presetCursor].ID
		return m, tea.Quit
	case MenuActionBack:
		m.inPresetPick = false
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inPresetPick {
		return m.viewPresetPick()
	}
	return m.viewMain()
}

func (m MenuModel) viewMain() string {
	t := CurrentTheme()
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(t.MenuTitle.Render(centerText("E C O S I M", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Predator / prey simulator", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		style := t.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = t.MenuItemActive
		}
		line := fmt.Sprintf("%s%d. %s", cursor, i+1, item.Title)
		b.WriteString(style.Render(centerText(line, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if desc := m.items[m.cursor].Description; desc != "" {
		b.WriteString(t.MenuDescription.Render(centerText(desc, m.width)))
	}
	b.WriteString("\n\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) viewPresetPick() string {
	t := CurrentTheme()
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(t.MenuTitle.Render(centerText("SELECT SCENARIO", m.width)))
	b.WriteString("\n\n")

	for i, p := range m.presets {
		cursor := "  "
		style := t.MenuItemNormal
		if i == m.presetCursor {
			cursor = "> "
			style = t.MenuItemActive
		}
		line := fmt.Sprintf("%s%2d. %s", cursor, i+1, p.Title)
		b.WriteString(style.Render(centerText(line, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// PresetID returns the preset picked in the scenario list.
func (m MenuModel) PresetID() string {
	return m.presetID
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice   MenuChoice
	PresetID string
	Config   core.RuntimeConfig
	Quit     bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	return m.Result(), nil
}

// Result converts the final menu state into a MenuResult.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.Config()}

	if m.IsQuitting() || m.Selected() == nil {
		result.Quit = true
		return result
	}

	result.Choice = m.Selected().Choice
	result.PresetID = m.PresetID()
	return result
}

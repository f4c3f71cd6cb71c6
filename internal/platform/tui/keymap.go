package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// WatchAction represents a watch-view action derived from input.
type WatchAction int

const (
	WatchActionNone WatchAction = iota
	WatchActionPause
	WatchActionStep
	WatchActionRestart
	WatchActionFaster
	WatchActionSlower
	WatchActionSnapshot
	WatchActionQuit
)

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// KeyMapper translates Bubble Tea key messages to UI actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKeyToWatchAction translates a key to a watch-view action.
func (km *KeyMapper) MapKeyToWatchAction(msg tea.KeyMsg) WatchAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return WatchActionQuit
	case " ", "p":
		return WatchActionPause
	case "n", "right":
		return WatchActionStep
	case "r":
		return WatchActionRestart
	case "+", "=":
		return WatchActionFaster
	case "-", "_":
		return WatchActionSlower
	case "ctrl+s":
		return WatchActionSnapshot
	}

	return WatchActionNone
}

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}

package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors used by the field renderer and the UI chrome.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorGray
)

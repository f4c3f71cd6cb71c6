// Package render turns a simulation census into text. Field and Frame produce
// the plain transcript format; Draw paints a colored field into a core.Screen
// for the terminal UI.
package render

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-ecosim/internal/core"
	"github.com/vovakirdan/tui-ecosim/internal/sim"
)

// CellWidth is the number of screen columns one grid cell occupies.
const CellWidth = 2

// Source is anything that can report a per-cell census.
type Source interface {
	Census() sim.Census
}

// Cell formats a single net count: " *" for an empty or balanced cell,
// "+N" when prey outnumber predators and "-N" otherwise.
func Cell(net int) string {
	if net == 0 {
		return " *"
	}
	return fmt.Sprintf("%+d", net)
}

// Field renders the census row by row, y growing downwards. Rows are joined
// with newlines; there is no trailing newline.
func Field(src Source) string {
	c := src.Census()

	var b strings.Builder
	b.Grow(c.H * (c.W*CellWidth + 1))
	for y := 0; y < c.H; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < c.W; x++ {
			b.WriteString(Cell(c.At(x, y)))
		}
	}
	return b.String()
}

// Frame renders one transcript entry: a "Step N:" header followed by the field.
func Frame(step uint64, src Source) string {
	return fmt.Sprintf("Step %d:\n%s", step, Field(src))
}

// CellColor picks the display color for a net count.
func CellColor(net int) core.Color {
	switch {
	case net > 0:
		return core.ColorGreen
	case net < 0:
		return core.ColorRed
	default:
		return core.ColorGray
	}
}

// Draw paints the field into dst with its top-left corner at (ox, oy).
// Cells that fall outside dst are clipped.
func Draw(dst *core.Screen, ox, oy int, src Source) {
	c := src.Census()
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			net := c.At(x, y)
			dst.DrawTextColor(ox+x*CellWidth, oy+y, Cell(net), CellColor(net))
		}
	}
}

// Size returns the screen footprint of a width x height field.
func Size(width, height int) (w, h int) {
	return width * CellWidth, height
}

// Package core provides fundamental types and utilities shared by the simulator,
// the renderers and the terminal platform. It has no external dependencies
// (especially no Bubble Tea) so the engine stays pure and testable.
package core

import "fmt"

// Coord represents a cell on the grid.
// X increases to the right, Y increases downward (screen coordinates).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Step returns the coordinate one unit step in direction d on a torus of
// the given size. No edge ever blocks movement.
func (c Coord) Step(d Dir, width, height int) Coord {
	dx, dy := d.Delta()
	return Wrap(c.Add(dx, dy), width, height)
}

// In reports whether the coordinate lies inside a width x height grid.
func (c Coord) In(width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}

// Wrap maps any coordinate onto a width x height torus.
func Wrap(c Coord, width, height int) Coord {
	return Coord{X: Mod(c.X, width), Y: Mod(c.Y, height)}
}

// Mod returns the non-negative remainder of a divided by n.
// n must be positive.
func Mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// Dir is a heading on the grid.
type Dir uint8

// Directions in clockwise order. Next follows this order.
const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// NumDirs is the number of distinct directions.
const NumDirs = 4

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Valid reports whether d is one of the four directions.
func (d Dir) Valid() bool {
	return d < NumDirs
}

// Next returns the clockwise successor: Up, Right, Down, Left, Up.
func (d Dir) Next() Dir {
	return (d + 1) % NumDirs
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// Up decreases Y, Down increases Y.
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// ParseDir converts a name ("up", "Right") or ordinal ("0".."3") to a Dir.
func ParseDir(s string) (Dir, error) {
	switch s {
	case "up", "Up", "UP", "0":
		return DirUp, nil
	case "right", "Right", "RIGHT", "1":
		return DirRight, nil
	case "down", "Down", "DOWN", "2":
		return DirDown, nil
	case "left", "Left", "LEFT", "3":
		return DirLeft, nil
	}
	return DirUp, fmt.Errorf("unknown direction %q", s)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

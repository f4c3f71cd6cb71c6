package sim

import "errors"

var (
	// ErrInvalidConfiguration is returned when grid dimensions, turn periods or
	// rules are outside their allowed ranges.
	ErrInvalidConfiguration = errors.New("sim: invalid configuration")

	// ErrInvalidEntityState is returned when an entity cannot be placed into a
	// simulation as given, e.g. its position lies outside the grid.
	ErrInvalidEntityState = errors.New("sim: invalid entity state")
)

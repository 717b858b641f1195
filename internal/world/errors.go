package world

import "errors"

var (
	// ErrInvalidParameter is returned when a generation parameter is out of
	// range. Generation aborts before touching the grid.
	ErrInvalidParameter = errors.New("world: invalid parameter")

	// ErrOutOfBounds is returned for coordinates outside the grid.
	// Generation code never produces one; seeing it means a topology bug.
	ErrOutOfBounds = errors.New("world: coordinate out of bounds")
)

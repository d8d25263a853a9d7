package mines

import "errors"

var (
	// ErrInvalidParams rejects construction when the mine count or the
	// board height is below the playable minimum.
	ErrInvalidParams = errors.New("invalid game parameters")

	// ErrTooManyMines rejects construction when the mines would fill or
	// overflow the board.
	ErrTooManyMines = errors.New("too many mines")

	// ErrOutOfBounds is returned by CellAt for coordinates outside the
	// grid. Mutating operations treat bad coordinates as no-ops instead.
	ErrOutOfBounds = errors.New("cell coordinates out of bounds")
)

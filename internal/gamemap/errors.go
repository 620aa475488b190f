package gamemap

import "errors"

var (
	// ErrOutOfBounds reports a coordinate outside the active window.
	ErrOutOfBounds = errors.New("gamemap: coordinate out of bounds")

	// ErrFull reports a tile already at its field capacity.
	ErrFull = errors.New("gamemap: tile field list full")

	// ErrUnknownType reports an id that does not resolve in its table.
	ErrUnknownType = errors.New("gamemap: unknown type id")
)

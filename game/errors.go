package game

import "github.com/pkg/errors"

// The error kinds every package in this module reports. Callers discriminate
// with errors.Cause.
var (
	// ErrInvalidArgument is returned for nil or malformed input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrRange is returned for an index or position out of bounds.
	ErrRange = errors.New("out of range")

	// ErrInconsistentState is returned for caller protocol violations:
	// undo without a prior apply, playing on an occupied point, liberty
	// queries on a non stone group, contradictory setup lists.
	ErrInconsistentState = errors.New("inconsistent state")

	// ErrSizeMismatch is returned when a zobrist table built for one board
	// size is used against a board of another size.
	ErrSizeMismatch = errors.New("board size mismatch")
)

package game

import "errors"

var (
	// ErrValidation indicates invalid construction input, such as a blank
	// player name or a negative bid.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidState indicates a lifecycle operation attempted in the
	// wrong state, such as starting a game twice or changing the count
	// before the game has started.
	ErrInvalidState = errors.New("invalid game state")
)

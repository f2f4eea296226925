package model

import "errors"

// Common errors used across the application
var (
	// Board errors
	ErrInvalidCoordinate = errors.New("coordinate is off the board")
	ErrAlreadyFiredAt    = errors.New("cell has already been fired at")
	ErrGameOver          = errors.New("all ships have been sunk")

	// Placement errors
	ErrPlacementExhausted = errors.New("no legal fleet placement found")
	ErrInvalidLayout      = errors.New("fleet layout is not legal")
	ErrUnknownPolicy      = errors.New("unknown placement policy")

	// Targeting errors
	ErrNoCellsRemaining  = errors.New("every cell has already been tried")
	ErrShotPending       = errors.New("previous shot has no result yet")
	ErrNoShotPending     = errors.New("no shot is awaiting a result")
	ErrInvalidShotResult = errors.New("shot result is inconsistent")
	ErrInvalidSnapshot   = errors.New("targeting snapshot is invalid")
	ErrUnknownStrategy   = errors.New("unknown targeting strategy")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
)

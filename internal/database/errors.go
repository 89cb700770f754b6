package database

import "errors"

var (
	// ErrRunNotFound is returned when a run ID does not exist.
	ErrRunNotFound = errors.New("run not found")

	// ErrNotEnoughRuns is returned when a comparison needs more runs than recorded.
	ErrNotEnoughRuns = errors.New("at least 2 recorded runs are required for comparison")
)

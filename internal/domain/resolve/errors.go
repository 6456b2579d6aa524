package resolve

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrResolution marks a required column role that could not be
	// determined and had no override. Fatal for the single operation,
	// not for a batch.
	ErrResolution = errors.New("column resolution failed")

	// ErrEmptyIntersection marks a catalog/history pair sharing no
	// competency columns. Raised at setup, before any per-learner work.
	ErrEmptyIntersection = errors.New("catalog and history share no competency columns")
)

package app

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrNotReady means Recommend or BatchAll ran before Setup.
	ErrNotReady = errors.New("service not set up")
)

package merge

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNoInput = errors.New("no tables to merge")
)

package tabular

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrLoad  = errors.New("load table failed")
	ErrWrite = errors.New("write table failed")
)

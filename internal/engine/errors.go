// Package engine is the credit exposure and settlement analytics kernel.
//
// Every function here is pure: no I/O, no clock reads, no shared state. "Now"
// is always an explicit parameter, so results are deterministic given the same
// inputs and replaying them is safe. Monetary math is decimal throughout;
// rounding to the currency minor unit happens at presentation, never here.
package engine

import (
	"errors"
	"fmt"
)

// ErrValidation is the base for every bad-input failure. Inputs are rejected
// before any computation; an engine call never partially applies.
var ErrValidation = errors.New("validation error")

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

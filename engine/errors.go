package engine

import "errors"

// ErrInvariantViolation is raised when an internal consistency check fails
// — never silently proceed past one, per SPEC_FULL.md §4.7/§7.
var ErrInvariantViolation = errors.New("rcipe stv invariant violation")

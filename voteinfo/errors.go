package voteinfo

import "errors"

// Sentinel errors for the three failure kinds a voteinfo stream can raise.
// Wrap with fmt.Errorf("...: %w", ErrX) so callers can still errors.Is them,
// matching the wrapping style used throughout the teacher's db.go.
var (
	ErrMalformedInput     = errors.New("malformed voteinfo input")
	ErrProtocolViolation  = errors.New("voteinfo protocol violation")
	ErrCapacityExceeded   = errors.New("voteinfo capacity exceeded")
)

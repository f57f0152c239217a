// Package ballot holds decoded ballot groups and the preference-level
// decoder used by the tally and engine packages each counting cycle.
package ballot

import "github.com/semog/rcipe/candidate"

// SentinelLevel is the preference level assigned to a candidate never
// mentioned in a ballot's pattern — worse than any marked level, matching
// the original implementation's unreachable-high-level convention.
const SentinelLevel = 200

// Event is one ranking event within a ballot's preference pattern: a
// candidate, and whether it ties with the immediately preceding event.
type Event struct {
	Candidate        candidate.Number
	TiedWithPrevious bool
}

// Pattern is an ordered preference pattern shared by every ballot folded
// into a group. Candidates never mentioned are implicitly tied for last
// place below every marked candidate (see DecodePreferences).
type Pattern struct {
	Events []Event
}

// MaxEvents bounds the length of a single group's encoded pattern,
// matching the capacity guard named in SPEC_FULL.md §4.2.
const MaxEvents = 10000

package ballot

import "github.com/semog/rcipe/voteinfo"

// FromCase builds a Store from a decoded voteinfo.Case, preserving the
// wire-order of ballot groups exactly (required for the surplus-
// redistribution determinism contract in SPEC_FULL.md §4.7).
func FromCase(c *voteinfo.Case) (*Store, error) {
	s := NewStore()
	for _, rg := range c.Groups {
		pat := Pattern{Events: make([]Event, len(rg.Preferences))}
		for i, p := range rg.Preferences {
			pat.Events[i] = Event{Candidate: p.Candidate, TiedWithPrevious: p.TiedWithPrevious}
		}
		if _, err := s.Add(rg.Count, pat); err != nil {
			return nil, err
		}
	}
	return s, nil
}

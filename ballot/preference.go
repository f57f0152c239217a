package ballot

import "github.com/semog/rcipe/candidate"

// DecodePreferences walks pat left to right and returns preference_level[c]
// for every candidate 1..n, per SPEC_FULL.md §4.3 / the distilled spec's
// four numbered rules:
//
//  1. current_level starts at 1.
//  2. On a candidate event, assign current_level, then advance it — unless
//     the *next* event is a tie marker, in which case the following
//     candidate shares this level.
//  3. A tie marker causes the next candidate to share the previous
//     candidate's level (the skip-increment in rule 2 is what makes that
//     happen; a tie marker never decrements current_level itself).
//  4. Any candidate never mentioned gets SentinelLevel, as if one final
//     tied group below every marked level.
func DecodePreferences(pat *Pattern, n int) []int {
	levels := make([]int, n+1)
	for c := 1; c <= n; c++ {
		levels[c] = SentinelLevel
	}

	currentLevel := 1
	for i, ev := range pat.Events {
		if int(ev.Candidate) >= 1 && int(ev.Candidate) <= n {
			levels[ev.Candidate] = currentLevel
		}
		nextIsTie := i+1 < len(pat.Events) && pat.Events[i+1].TiedWithPrevious
		if !nextIsTie {
			currentLevel++
		}
	}

	return levels
}

// TopTied returns the set of available candidates minimising preference
// level among levels, i.e. the group's top-tied set for this cycle.
func TopTied(levels []int, available []candidate.Number) []candidate.Number {
	if len(available) == 0 {
		return nil
	}
	best := SentinelLevel + 1
	for _, c := range available {
		if levels[c] < best {
			best = levels[c]
		}
	}
	var top []candidate.Number
	for _, c := range available {
		if levels[c] == best {
			top = append(top, c)
		}
	}
	return top
}

package ballot

import (
	"testing"

	"github.com/semog/rcipe/candidate"
)

func TestDecodePreferences_SimpleRanking(t *testing.T) {
	pat := Pattern{Events: []Event{
		{Candidate: 1},
		{Candidate: 2},
		{Candidate: 3},
	}}
	levels := DecodePreferences(&pat, 3)
	want := map[candidate.Number]int{1: 1, 2: 2, 3: 3}
	for c, w := range want {
		if levels[c] != w {
			t.Errorf("candidate %d: got level %d, want %d", c, levels[c], w)
		}
	}
}

func TestDecodePreferences_TieMarker(t *testing.T) {
	// 1 > {2=3} > 4 : candidate 3 ties with candidate 2.
	pat := Pattern{Events: []Event{
		{Candidate: 1},
		{Candidate: 2},
		{Candidate: 3, TiedWithPrevious: true},
		{Candidate: 4},
	}}
	levels := DecodePreferences(&pat, 4)
	if levels[1] != 1 {
		t.Errorf("candidate 1: got level %d, want 1", levels[1])
	}
	if levels[2] != levels[3] {
		t.Errorf("candidates 2 and 3 should tie, got %d and %d", levels[2], levels[3])
	}
	if levels[2] != 2 {
		t.Errorf("candidate 2: got level %d, want 2", levels[2])
	}
	if levels[4] != 3 {
		t.Errorf("candidate 4: got level %d, want 3", levels[4])
	}
}

func TestDecodePreferences_UnmarkedCandidatesGetSentinel(t *testing.T) {
	pat := Pattern{Events: []Event{{Candidate: 1}}}
	levels := DecodePreferences(&pat, 3)
	if levels[1] != 1 {
		t.Errorf("candidate 1: got level %d, want 1", levels[1])
	}
	for _, c := range []candidate.Number{2, 3} {
		if levels[c] != SentinelLevel {
			t.Errorf("candidate %d: got level %d, want sentinel %d", c, levels[c], SentinelLevel)
		}
	}
}

func TestTopTied(t *testing.T) {
	levels := []int{0, 1, 1, 2} // index 0 unused
	available := []candidate.Number{1, 2, 3}
	top := TopTied(levels, available)
	if len(top) != 2 {
		t.Fatalf("got %d top-tied candidates, want 2", len(top))
	}
	seen := map[candidate.Number]bool{}
	for _, c := range top {
		seen[c] = true
	}
	if !seen[1] || !seen[2] {
		t.Errorf("expected candidates 1 and 2 tied at top, got %v", top)
	}
}

package engine

import (
	"testing"

	"github.com/semog/rcipe/ballot"
	"github.com/semog/rcipe/candidate"
)

func groupOf(count int, ranking ...candidate.Number) *ballot.Group {
	events := make([]ballot.Event, len(ranking))
	for i, c := range ranking {
		events[i] = ballot.Event{Candidate: c}
	}
	return &ballot.Group{InitialCount: count, RemainingInfluence: count, Pattern: ballot.Pattern{Events: events}}
}

func TestRedistributeSurplus_ZeroesAtLeastQuotaMinusOne(t *testing.T) {
	groups := []*ballot.Group{
		groupOf(4, 1, 2),
		groupOf(3, 1, 3),
		groupOf(2, 1, 2),
	}
	available := []candidate.Number{1, 2, 3}

	h := 9 // total influence currently supporting candidate 1
	quota := 5

	if err := redistributeSurplus(groups, available, 3, 1, h, quota); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	zeroed := 0
	for _, g := range groups {
		if g.RemainingInfluence < 0 {
			t.Errorf("group remaining influence went negative: %d", g.RemainingInfluence)
		}
		zeroed += g.InitialCount - g.RemainingInfluence
	}

	if zeroed < quota-1 {
		t.Errorf("zeroed %d influence, want at least quota-1 = %d", zeroed, quota-1)
	}
}

// A single large supporting group must retain some influence after
// redistribution — if the skip interval collapses to exactly 1 (integer
// division truncating (H+surplus-1)/H instead of keeping it rational), the
// group is drained outright and the surplus never carries into later cycles.
func TestRedistributeSurplus_SkipIntervalKeepsFractionalPrecision(t *testing.T) {
	g := groupOf(100, 1)
	groups := []*ballot.Group{g}
	available := []candidate.Number{1}

	h, quota := 100, 60
	if err := redistributeSurplus(groups, available, 1, 1, h, quota); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if g.RemainingInfluence <= 0 {
		t.Errorf("group was fully drained (remaining %d), want some influence retained", g.RemainingInfluence)
	}
	zeroed := g.InitialCount - g.RemainingInfluence
	if zeroed < quota-1 {
		t.Errorf("zeroed %d influence, want at least quota-1 = %d", zeroed, quota-1)
	}
}

func TestRedistributeSurplus_NoOpWhenNoSurplus(t *testing.T) {
	groups := []*ballot.Group{groupOf(5, 1)}
	available := []candidate.Number{1}

	if err := redistributeSurplus(groups, available, 1, 1, 5, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if groups[0].RemainingInfluence != 5 {
		t.Errorf("got remaining influence %d, want unchanged 5", groups[0].RemainingInfluence)
	}
}

func TestRedistributeSurplus_OnlyWinnersSupportersAreTouched(t *testing.T) {
	supporter := groupOf(10, 1)
	nonSupporter := groupOf(10, 2)
	groups := []*ballot.Group{supporter, nonSupporter}
	available := []candidate.Number{1, 2}

	if err := redistributeSurplus(groups, available, 2, 1, 10, 6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nonSupporter.RemainingInfluence != 10 {
		t.Errorf("non-supporting group's influence changed: got %d, want 10", nonSupporter.RemainingInfluence)
	}
}

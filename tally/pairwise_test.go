package tally

import (
	"testing"

	"github.com/semog/rcipe/ballot"
	"github.com/semog/rcipe/candidate"
)

func TestPairwiseTable_StrictLoser(t *testing.T) {
	// Candidate 3 loses to both 1 and 2 on every ballot; 1 and 2 split.
	groups := []*ballot.Group{
		groupOf(5, 1, 2, 3),
		groupOf(5, 2, 1, 3),
	}
	considered := []candidate.Number{1, 2, 3}
	pt := NewPairwiseTable(considered)
	pt.Fill(groups, 3)

	loser, ok := pt.LosingCandidate()
	if !ok {
		t.Fatalf("expected a pairwise loser")
	}
	if loser != 3 {
		t.Errorf("got loser %d, want 3", loser)
	}
}

func TestPairwiseTable_TieMeansNoLoser(t *testing.T) {
	// Scenario 5 from SPEC_FULL.md §8: 50/50 split between two candidates.
	groups := []*ballot.Group{
		groupOf(5, 1, 2),
		groupOf(5, 2, 1),
	}
	considered := []candidate.Number{1, 2}
	pt := NewPairwiseTable(considered)
	pt.Fill(groups, 2)

	if _, ok := pt.LosingCandidate(); ok {
		t.Errorf("an exact tie must not produce a pairwise loser")
	}
}

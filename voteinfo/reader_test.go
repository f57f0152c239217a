package voteinfo

import (
	"strings"
	"testing"
)

func TestReader_DecodesSimpleCase(t *testing.T) {
	input := `-3 1 -4 1 -6 3
-7 -11 4 1 -14 2
-2`
	r := NewReader(strings.NewReader(input))
	c, ok, err := r.NextCase()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected a case, got none")
	}
	if c.CaseNumber != 1 || c.Question != 1 || c.NumCandidates != 3 {
		t.Errorf("got case %+v, want case=1 question=1 N=3", c)
	}
	if len(c.Groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(c.Groups))
	}
	g := c.Groups[0]
	if g.Count != 4 {
		t.Errorf("got repeat count %d, want 4", g.Count)
	}
	if len(g.Preferences) != 2 || g.Preferences[0].Candidate != 1 || g.Preferences[1].Candidate != 2 {
		t.Errorf("got preferences %+v, want [1, 2(tied)]", g.Preferences)
	}
	if !g.Preferences[1].TiedWithPrevious {
		t.Errorf("expected candidate 2 to tie with candidate 1")
	}

	if _, ok, err := r.NextCase(); err != nil || ok {
		t.Errorf("expected end of cases, got ok=%v err=%v", ok, err)
	}
}

func TestReader_SeatsAndOptionsHonoured(t *testing.T) {
	input := `-3 7 -4 1 -6 2 -67 3 -68 -50 -78 -77 2
-7 -11 5 1
-2`
	r := NewReader(strings.NewReader(input))
	c, ok, err := r.NextCase()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected a case")
	}
	if c.Seats != 3 {
		t.Errorf("got seats %d, want 3", c.Seats)
	}
	if !c.DroopRequested() {
		t.Errorf("expected Droop quota requested")
	}
	if !c.RequestIRVorSTV {
		t.Errorf("expected IRV/STV requested")
	}
	if !c.IgnoreSharedRankings {
		t.Errorf("expected ignore-shared-rankings requested")
	}
	if len(c.PreEliminated) != 1 || c.PreEliminated[0] != 2 {
		t.Errorf("got pre-eliminated %v, want [2]", c.PreEliminated)
	}
}

func TestReader_RejectsCandidateBeforeN(t *testing.T) {
	input := `-3 1 -4 1 1 -6 3`
	r := NewReader(strings.NewReader(input))
	if _, _, err := r.NextCase(); err == nil {
		t.Errorf("expected a protocol error for a candidate number before candidate count")
	}
}

func TestReader_RejectsDuplicateCandidateInBallot(t *testing.T) {
	input := `-3 1 -4 1 -6 3
-7 -11 2 1 1
-2`
	r := NewReader(strings.NewReader(input))
	if _, _, err := r.NextCase(); err == nil {
		t.Errorf("expected a protocol error for a repeated candidate in one ballot")
	}
}

func TestReader_RejectsNonIntegerToken(t *testing.T) {
	input := `-3 1 -4 banana -6 3`
	r := NewReader(strings.NewReader(input))
	if _, _, err := r.NextCase(); err == nil {
		t.Errorf("expected a malformed-input error for a non-integer token")
	}
}

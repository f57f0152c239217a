package candidate

import "testing"

func TestSet_DefaultsToAvailable(t *testing.T) {
	s := NewSet(3)
	if s.AvailableCount() != 3 {
		t.Errorf("got %d available, want 3", s.AvailableCount())
	}
}

func TestSet_StatusTransitionsAreExclusive(t *testing.T) {
	s := NewSet(2)
	s.SetStatus(1, Winner)
	s.SetStatus(2, Eliminated)

	if s.Status(1) != Winner {
		t.Errorf("candidate 1: got %v, want Winner", s.Status(1))
	}
	if s.Status(2) != Eliminated {
		t.Errorf("candidate 2: got %v, want Eliminated", s.Status(2))
	}
	if s.AvailableCount() != 0 {
		t.Errorf("got %d available, want 0", s.AvailableCount())
	}
	if len(s.Winners()) != 1 || s.Winners()[0] != 1 {
		t.Errorf("got winners %v, want [1]", s.Winners())
	}
	if len(s.Eliminated()) != 1 || s.Eliminated()[0] != 2 {
		t.Errorf("got eliminated %v, want [2]", s.Eliminated())
	}
}

func TestSet_Contains(t *testing.T) {
	s := NewSet(5)
	if !s.Contains(1) || !s.Contains(5) {
		t.Errorf("expected 1 and 5 to be contained in a 5-candidate set")
	}
	if s.Contains(0) || s.Contains(6) {
		t.Errorf("expected 0 and 6 to be out of range for a 5-candidate set")
	}
}

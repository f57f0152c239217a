package ballot

import "testing"

func TestStore_AddPreservesArrivalOrder(t *testing.T) {
	s := NewStore()
	i1, err := s.Add(3, Pattern{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	i2, err := s.Add(5, Pattern{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i1 != 0 || i2 != 1 {
		t.Errorf("got indices %d, %d, want 0, 1", i1, i2)
	}
	if s.Len() != 2 {
		t.Errorf("got %d groups, want 2", s.Len())
	}
	if s.Group(0).InitialCount != 3 || s.Group(1).InitialCount != 5 {
		t.Errorf("group counts out of order: %+v, %+v", s.Group(0), s.Group(1))
	}
}

func TestStore_TotalRemainingInfluence(t *testing.T) {
	s := NewStore()
	s.Add(3, Pattern{})
	s.Add(5, Pattern{})
	if got := s.TotalRemainingInfluence(); got != 8 {
		t.Errorf("got %d, want 8", got)
	}
	s.Group(0).RemainingInfluence = 0
	if got := s.TotalRemainingInfluence(); got != 5 {
		t.Errorf("got %d after zeroing group 0, want 5", got)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package places

import "testing"

func TestPlaceSetFirstSeenWins(t *testing.T) {
	s := NewPlaceSet()

	if !s.Accept("place-a", "term one") {
		t.Error("first occurrence should be accepted")
	}
	if s.Accept("place-a", "term two") {
		t.Error("repeat should be rejected, even from another term")
	}

	term, ok := s.Term("place-a")
	if !ok || term != "term one" {
		t.Errorf("Term() = %q, %v; want \"term one\", true", term, ok)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestPlaceSetDistinctIDs(t *testing.T) {
	s := NewPlaceSet()
	for _, id := range []string{"a", "b", "c"} {
		if !s.Accept(id, "term") {
			t.Errorf("Accept(%q) = false, want true", id)
		}
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if _, ok := s.Term("missing"); ok {
		t.Error("Term() for unknown ID should report false")
	}
}

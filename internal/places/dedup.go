// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package places

// PlaceSet tracks which place IDs a run has already accepted, mapping each to
// the first search term that produced it. Terms are processed in order and
// pagination is synchronous, so "first seen" is deterministic for a fixed
// upstream ordering. A PlaceSet grows monotonically and lives for one run.
type PlaceSet struct {
	firstSeen map[string]string
}

// NewPlaceSet returns an empty PlaceSet.
func NewPlaceSet() *PlaceSet {
	return &PlaceSet{firstSeen: make(map[string]string)}
}

// Accept records placeID under term the first time it is seen and reports
// whether it was accepted. Repeats are rejected regardless of term; the
// first-seen term stays recorded as provenance.
func (s *PlaceSet) Accept(placeID, term string) bool {
	if _, ok := s.firstSeen[placeID]; ok {
		return false
	}
	s.firstSeen[placeID] = term
	return true
}

// Term returns the term that first produced placeID.
func (s *PlaceSet) Term(placeID string) (string, bool) {
	term, ok := s.firstSeen[placeID]
	return term, ok
}

// Len returns the number of accepted place IDs.
func (s *PlaceSet) Len() int {
	return len(s.firstSeen)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"path/filepath"
	"testing"

	"github.com/pdiddy/placelist/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadEmpty(t *testing.T) {
	s := openTestStore(t)
	lr, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if lr != nil {
		t.Errorf("Load() = %+v, want nil on a fresh database", lr)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)

	rating := 4.2
	reviews := 57
	scope := types.Scope{Country: "United States", State: "Ohio", City: "Columbus"}
	result := types.RunResult{
		Results: []types.Record{
			{
				Country:      "United States",
				State:        "Ohio",
				City:         "Columbus",
				Name:         "Lice Busters LLC",
				FullAddress:  "1 Main St, Columbus, OH 43215, USA",
				Phone:        "(614) 555-0101",
				Website:      "https://licebusters.example.com",
				Rating:       &rating,
				TotalReviews: &reviews,
				Lat:          39.9612,
				Lng:          -82.9988,
				PlaceID:      "place-a",
				SourceQuery:  "lice clinic",
			},
			{
				Country:     "United States",
				State:       "Ohio",
				Name:        "No Details Clinic",
				PlaceID:     "place-b",
				SourceQuery: "lice removal",
			},
		},
		TotalResults: 7,
		DedupedCount: 2,
	}

	if err := s.Save(scope, result); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	lr, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if lr == nil {
		t.Fatal("Load() = nil after Save")
	}
	if lr.Scope != scope {
		t.Errorf("Scope = %+v, want %+v", lr.Scope, scope)
	}
	if lr.TotalResults != 7 {
		t.Errorf("TotalResults = %d, want 7", lr.TotalResults)
	}
	if lr.SavedAt.IsZero() {
		t.Error("SavedAt is zero, want save time")
	}
	if len(lr.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(lr.Results))
	}

	got := lr.Results[0]
	if got.PlaceID != "place-a" || got.Name != "Lice Busters LLC" || got.Phone != "(614) 555-0101" {
		t.Errorf("Results[0] = %+v", got)
	}
	if got.Rating == nil || *got.Rating != 4.2 || got.TotalReviews == nil || *got.TotalReviews != 57 {
		t.Errorf("Results[0] rating fields = %+v", got)
	}
	if got.Lat != 39.9612 || got.Lng != -82.9988 {
		t.Errorf("Results[0] coordinates = %v/%v", got.Lat, got.Lng)
	}
	if lr.Results[1].Rating != nil || lr.Results[1].TotalReviews != nil {
		t.Errorf("Results[1] rating fields should stay nil, got %+v", lr.Results[1])
	}
}

func TestSaveReplacesSlot(t *testing.T) {
	s := openTestStore(t)

	first := types.RunResult{
		Results: []types.Record{
			{State: "Ohio", Name: "A", PlaceID: "a", SourceQuery: "clinic"},
			{State: "Ohio", Name: "B", PlaceID: "b", SourceQuery: "clinic"},
			{State: "Ohio", Name: "C", PlaceID: "c", SourceQuery: "clinic"},
		},
		TotalResults: 3,
	}
	if err := s.Save(types.Scope{State: "Ohio"}, first); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	second := types.RunResult{
		Results: []types.Record{
			{State: "Texas", Name: "D", PlaceID: "d", SourceQuery: "removal"},
		},
		TotalResults: 1,
	}
	if err := s.Save(types.Scope{State: "Texas"}, second); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	lr, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if lr.Scope.State != "Texas" || lr.TotalResults != 1 {
		t.Errorf("slot = %+v, want the second run only", lr)
	}
	if len(lr.Results) != 1 || lr.Results[0].PlaceID != "d" {
		t.Errorf("Results = %+v, want the second run's records", lr.Results)
	}
}

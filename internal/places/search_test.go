// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package places

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/placelist/internal/httputil"
)

func swapSearchURL(t *testing.T, url string) {
	t.Helper()
	old := searchTextURL
	searchTextURL = url
	t.Cleanup(func() { searchTextURL = old })
}

func TestSearchPageRequestShape(t *testing.T) {
	var gotBody map[string]any
	var gotHeader http.Header
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()
	swapSearchURL(t, ts.URL)

	c := &SearchClient{Client: ts.Client(), APIKey: "test-key", UserAgent: "placelist/test"}
	if _, err := c.SearchPage(context.Background(), "clinic in Ohio, United States", "tok-2"); err != nil {
		t.Fatalf("SearchPage() error = %v", err)
	}

	if got := gotHeader.Get("X-Goog-Api-Key"); got != "test-key" {
		t.Errorf("X-Goog-Api-Key = %q", got)
	}
	if got := gotHeader.Get("X-Goog-FieldMask"); got != searchFieldMask {
		t.Errorf("X-Goog-FieldMask = %q", got)
	}
	if got := gotHeader.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if gotBody["textQuery"] != "clinic in Ohio, United States" {
		t.Errorf("textQuery = %v", gotBody["textQuery"])
	}
	if gotBody["pageSize"] != float64(searchPageSize) {
		t.Errorf("pageSize = %v, want %d", gotBody["pageSize"], searchPageSize)
	}
	if gotBody["pageToken"] != "tok-2" {
		t.Errorf("pageToken = %v", gotBody["pageToken"])
	}
}

func TestSearchPageOmitsEmptyPageToken(t *testing.T) {
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()
	swapSearchURL(t, ts.URL)

	c := &SearchClient{Client: ts.Client(), APIKey: "k"}
	if _, err := c.SearchPage(context.Background(), "q", ""); err != nil {
		t.Fatalf("SearchPage() error = %v", err)
	}
	if _, ok := gotBody["pageToken"]; ok {
		t.Error("first page request should not carry a pageToken")
	}
}

func TestSearchPageParsesResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"places": [
				{
					"id": "place-a",
					"displayName": {"text": "Lice Busters"},
					"formattedAddress": "1 Main St, Columbus, OH",
					"location": {"latitude": 39.96, "longitude": -82.99},
					"rating": 4.5,
					"userRatingCount": 12
				},
				{
					"id": "place-b",
					"displayName": {"text": "No Extras"}
				},
				{
					"displayName": {"text": "Missing ID"}
				}
			],
			"nextPageToken": "tok-next"
		}`))
	}))
	defer ts.Close()
	swapSearchURL(t, ts.URL)

	c := &SearchClient{Client: ts.Client(), APIKey: "k"}
	page, err := c.SearchPage(context.Background(), "q", "")
	if err != nil {
		t.Fatalf("SearchPage() error = %v", err)
	}

	// The ID-less item counts toward the raw total but yields no candidate.
	if page.RawCount != 3 {
		t.Errorf("RawCount = %d, want 3", page.RawCount)
	}
	if len(page.Candidates) != 2 {
		t.Fatalf("len(Candidates) = %d, want 2", len(page.Candidates))
	}
	if page.NextPageToken != "tok-next" {
		t.Errorf("NextPageToken = %q", page.NextPageToken)
	}

	a := page.Candidates[0]
	if a.PlaceID != "place-a" || a.Name != "Lice Busters" || a.FormattedAddress != "1 Main St, Columbus, OH" {
		t.Errorf("candidate a = %+v", a)
	}
	if a.Rating == nil || *a.Rating != 4.5 {
		t.Errorf("rating = %v, want 4.5", a.Rating)
	}
	if a.UserRatingCount == nil || *a.UserRatingCount != 12 {
		t.Errorf("userRatingCount = %v, want 12", a.UserRatingCount)
	}
	if a.Lat != 39.96 || a.Lng != -82.99 {
		t.Errorf("location = %v,%v", a.Lat, a.Lng)
	}

	b := page.Candidates[1]
	if b.Rating != nil || b.UserRatingCount != nil {
		t.Error("absent rating fields must stay nil, not zero")
	}
	if b.Lat != 0 || b.Lng != 0 {
		t.Errorf("missing location should default to 0, got %v,%v", b.Lat, b.Lng)
	}
}

func TestSearchPageUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"code": 403, "message": "API key invalid", "status": "PERMISSION_DENIED"}}`))
	}))
	defer ts.Close()
	swapSearchURL(t, ts.URL)

	c := &SearchClient{Client: ts.Client(), APIKey: "bad"}
	_, err := c.SearchPage(context.Background(), "q", "")

	var se *httputil.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *httputil.StatusError", err)
	}
	if se.Code != http.StatusForbidden || se.Status != "403" {
		t.Errorf("code/status = %d/%q", se.Code, se.Status)
	}
	if se.Message != "API key invalid" {
		t.Errorf("message = %q", se.Message)
	}
}

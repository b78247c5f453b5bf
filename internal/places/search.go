// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/placelist/internal/httputil"
)

// searchTextURL is the Places text-search endpoint. Declared as a var so
// tests can substitute an httptest server.
var searchTextURL = "https://places.googleapis.com/v1/places:searchText"

// searchPageSize is the fixed page size requested from the API.
const searchPageSize = 20

// searchFieldMask limits the search response to the fields the pipeline
// consumes, bounding payload size and billing.
const searchFieldMask = "places.id,places.displayName,places.formattedAddress,places.location,places.rating,places.userRatingCount,nextPageToken"

// Candidate is one raw search hit. Candidates are ephemeral: the orchestrator
// feeds them straight through dedup and discards repeats.
type Candidate struct {
	PlaceID          string
	Name             string
	FormattedAddress string
	Rating           *float64
	UserRatingCount  *int
	Lat              float64
	Lng              float64

	// SourceTerm is set by the orchestrator to the term whose search
	// produced this hit.
	SourceTerm string
}

// Page holds one page of search results. RawCount is the number of items the
// API returned, including any without a place ID; Candidates excludes those.
type Page struct {
	Candidates    []Candidate
	RawCount      int
	NextPageToken string
}

// SearchClient performs single-page text searches against the Places API.
type SearchClient struct {
	Client    *http.Client
	APIKey    string
	UserAgent string
}

// SearchPage fetches one page of text-search results for query. pageToken is
// empty for the first page. A non-2xx upstream status comes back as a
// *httputil.StatusError; the caller decides whether to keep going.
func (c *SearchClient) SearchPage(ctx context.Context, query, pageToken string) (*Page, error) {
	body := map[string]any{
		"textQuery": query,
		"pageSize":  searchPageSize,
	}
	if pageToken != "" {
		body["pageToken"] = pageToken
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, searchTextURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.APIKey)
	req.Header.Set("X-Goog-FieldMask", searchFieldMask)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	var str searchTextResponse
	if err := httputil.DoJSON(c.Client, req, &str); err != nil {
		return nil, err
	}

	page := &Page{
		RawCount:      len(str.Places),
		NextPageToken: str.NextPageToken,
	}
	for _, p := range str.Places {
		if p.ID == "" {
			continue
		}
		cand := Candidate{
			PlaceID:          p.ID,
			Name:             p.DisplayName.Text,
			FormattedAddress: p.FormattedAddress,
			Rating:           p.Rating,
			UserRatingCount:  p.UserRatingCount,
		}
		if p.Location != nil {
			cand.Lat = p.Location.Latitude
			cand.Lng = p.Location.Longitude
		}
		page.Candidates = append(page.Candidates, cand)
	}
	return page, nil
}

// Places API (New) JSON structures.
type searchTextResponse struct {
	Places        []searchPlace `json:"places"`
	NextPageToken string        `json:"nextPageToken"`
}

type searchPlace struct {
	ID               string        `json:"id"`
	DisplayName      localizedText `json:"displayName"`
	FormattedAddress string        `json:"formattedAddress"`
	Location         *searchLatLng `json:"location"`
	Rating           *float64      `json:"rating"`
	UserRatingCount  *int          `json:"userRatingCount"`
}

type localizedText struct {
	Text string `json:"text"`
}

type searchLatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the placelist pipeline.
package types

// DefaultCountry is assumed when the caller does not scope the run to a country.
const DefaultCountry = "United States"

// Scope is the geographic qualifier appended to every search query.
// State is required; City is optional; an empty Country falls back to
// DefaultCountry. A Scope is immutable for the duration of a run.
type Scope struct {
	Country string `json:"country" yaml:"country"`
	State   string `json:"state" yaml:"state"`
	City    string `json:"city,omitempty" yaml:"city,omitempty"`
}

// CountryOrDefault returns the scoped country, or DefaultCountry when unset.
func (s Scope) CountryOrDefault() string {
	if s.Country == "" {
		return DefaultCountry
	}
	return s.Country
}

// Record is one normalised business listing, the exported unit of a run.
// Rating and TotalReviews are nil when the upstream data omits them, which
// is distinct from zero. Lat/Lng default to 0 when the upstream location is
// missing; that fallback is lossy but deliberate.
type Record struct {
	Country      string   `json:"country" yaml:"country"`
	State        string   `json:"state" yaml:"state"`
	City         string   `json:"city" yaml:"city"`
	Name         string   `json:"name" yaml:"name"`
	FullAddress  string   `json:"full_address" yaml:"full_address"`
	Phone        string   `json:"phone" yaml:"phone"`
	Website      string   `json:"website" yaml:"website"`
	Rating       *float64 `json:"rating" yaml:"rating"`
	TotalReviews *int     `json:"total_reviews" yaml:"total_reviews"`
	Lat          float64  `json:"lat" yaml:"lat"`
	Lng          float64  `json:"lng" yaml:"lng"`
	PlaceID      string   `json:"place_id" yaml:"place_id"`

	// SourceQuery is the search term that first produced this place.
	SourceQuery string `json:"source_query" yaml:"source_query"`
}

// RunInput is the inbound contract of an extraction run.
type RunInput struct {
	Scope Scope `json:"scope" yaml:"scope"`

	// SearchTerms are processed sequentially, in order. Each must be
	// non-empty after trimming.
	SearchTerms []string `json:"search_terms" yaml:"search_terms"`

	// MaxResults caps the raw search hits per term. Values outside [1,60]
	// are clamped; zero means the default of 60.
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// RunResult is the sole artifact of an extraction run. Log is an ordered,
// append-only sequence of human-readable progress lines; it is never parsed.
// TotalResults counts raw search hits before dedup, so DedupedCount (always
// len(Results)) never exceeds it.
type RunResult struct {
	Log          []string `json:"log" yaml:"log"`
	Results      []Record `json:"results" yaml:"results"`
	TotalResults int      `json:"totalResults" yaml:"total_results"`
	DedupedCount int      `json:"dedupedCount" yaml:"deduped_count"`
}

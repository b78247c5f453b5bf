// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package places extracts business listings from the Google Places text-search
// API: it builds scoped queries, pages through results with pacing, dedups by
// place ID, enriches unique places with a details lookup, and returns a flat
// record set plus a run log.
package places

import (
	"strings"

	"github.com/pdiddy/placelist/pkg/types"
)

// BuildQuery composes the search query for one term: the term followed by
// " in " and the location phrase "City, State, Country" (or "State, Country"
// when the scope has no city). Pure; the caller validates the scope.
func BuildQuery(term string, scope types.Scope) string {
	parts := []string{}
	if city := strings.TrimSpace(scope.City); city != "" {
		parts = append(parts, city)
	}
	parts = append(parts, strings.TrimSpace(scope.State), scope.CountryOrDefault())
	return term + " in " + strings.Join(parts, ", ")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export serialises extraction records to CSV with a fixed column
// order, suitable for spreadsheet import.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/pdiddy/placelist/pkg/types"
)

// ErrNoResults signals that there is nothing to export. A header-only file
// is never written.
var ErrNoResults = errors.New("no extraction results to export")

// header is the fixed 13-column order of the export format.
var header = []string{
	"country", "state", "city", "name", "full_address", "phone", "website",
	"rating", "total_reviews", "lat", "lng", "place_id", "source_query",
}

// WriteCSV writes records to w in the fixed column order. Nil rating and
// review counts render as empty cells; quoting follows RFC 4180 (fields with
// commas, quotes, or newlines are double-quoted with inner quotes doubled).
func WriteCSV(w io.Writer, records []types.Record) error {
	if len(records) == 0 {
		return ErrNoResults
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Country,
			r.State,
			r.City,
			r.Name,
			r.FullAddress,
			r.Phone,
			r.Website,
			formatRating(r.Rating),
			formatCount(r.TotalReviews),
			formatCoord(r.Lat),
			formatCoord(r.Lng),
			r.PlaceID,
			r.SourceQuery,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename builds the attachment filename for a scope, e.g.
// "us-new-york-brooklyn-clinics.csv". Parts are lowercased, whitespace is
// collapsed to hyphens, and anything outside [a-z0-9-] is stripped.
func Filename(scope types.Scope) string {
	country := sanitisePart(scope.Country)
	if country == "" {
		country = "us"
	}
	name := country + "-" + sanitisePart(scope.State)
	if city := sanitisePart(scope.City); city != "" {
		name += "-" + city
	}
	return name + "-clinics.csv"
}

func formatRating(r *float64) string {
	if r == nil {
		return ""
	}
	return strconv.FormatFloat(*r, 'f', -1, 64)
}

func formatCount(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func sanitisePart(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsSpace(r):
			b.WriteRune('-')
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

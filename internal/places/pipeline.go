// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package places

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/placelist/internal/httputil"
	"github.com/pdiddy/placelist/pkg/types"
)

// MaxResultsCap bounds the per-term raw result cap. The API stops handing out
// continuation tokens after three pages anyway.
const MaxResultsCap = 60

// runLog is the ordered, append-only run log. Lines are mirrored to w as they
// are produced so callers can watch progress.
type runLog struct {
	lines []string
	w     io.Writer
}

func newRunLog(w io.Writer) *runLog {
	if w == nil {
		w = io.Discard
	}
	return &runLog{w: w}
}

func (l *runLog) printf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	l.lines = append(l.lines, line)
	fmt.Fprintln(l.w, line)
}

// Run drives one extraction: for each term it builds the scoped query, pages
// through search results with pacing, dedups hits by place ID, then enriches
// each unique place with a details lookup. The pipeline is strictly
// sequential; one outbound call is in flight at a time.
//
// Upstream failures never abort the run: a failed page stops that term's
// pagination, a failed details lookup falls back to the search-stage fields.
// The only errors returned are caller mistakes (missing state, no terms). A
// blank API key short-circuits with a single diagnostic log line and empty
// results. Progress lines stream to w; the full log is also returned in the
// RunResult.
func Run(ctx context.Context, client *http.Client, apiKey string, input types.RunInput, cfg types.ExtractionConfig, w io.Writer) (types.RunResult, error) {
	scope := types.Scope{
		Country: strings.TrimSpace(input.Scope.Country),
		State:   strings.TrimSpace(input.Scope.State),
		City:    strings.TrimSpace(input.Scope.City),
	}
	if scope.State == "" {
		return types.RunResult{}, fmt.Errorf("state is required")
	}
	var terms []string
	for _, t := range input.SearchTerms {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		return types.RunResult{}, fmt.Errorf("at least one search term is required")
	}

	rl := newRunLog(w)

	if strings.TrimSpace(apiKey) == "" {
		rl.printf("Error: Google Places API key is not set.")
		return types.RunResult{Log: rl.lines, Results: []types.Record{}}, nil
	}

	maxResults := input.MaxResults
	if maxResults <= 0 {
		maxResults = MaxResultsCap
	}
	if maxResults > MaxResultsCap {
		maxResults = MaxResultsCap
	}

	pacer := NewPacer(cfg.CallDelay, cfg.PageDelay)
	searcher := &SearchClient{Client: client, APIKey: apiKey, UserAgent: cfg.UserAgent}
	enricher := &DetailsClient{Client: client, APIKey: apiKey, UserAgent: cfg.UserAgent}

	seen := NewPlaceSet()
	var candidates []Candidate
	totalRaw := 0

	for _, term := range terms {
		query := BuildQuery(term, scope)
		rl.printf("[%s] Query: %s", term, query)

		totalForTerm := 0
		pageToken := ""
		for {
			pacer.BeforeCall()
			page, err := searcher.SearchPage(ctx, query, pageToken)
			if err != nil {
				rl.printf("[%s] API error: %s", term, errorLine(err))
				break
			}

			totalForTerm += page.RawCount
			totalRaw += page.RawCount
			for _, c := range page.Candidates {
				if !seen.Accept(c.PlaceID, term) {
					continue
				}
				c.SourceTerm = term
				candidates = append(candidates, c)
			}
			rl.printf("[%s] Page: %d results (total this term: %d)", term, page.RawCount, totalForTerm)

			pageToken = page.NextPageToken
			if pageToken == "" || totalForTerm >= maxResults {
				break
			}
			rl.printf("[%s] Waiting %s before next page...", term, pacer.PageDelay)
			pacer.BeforePage()
		}

		if totalForTerm >= maxResults {
			rl.printf("[%s] Reached max results (%d).", term, maxResults)
		}
	}

	rl.printf("Total results from search: %d. Unique places: %d. Fetching details...", totalRaw, len(candidates))

	results := make([]types.Record, 0, len(candidates))
	for i, c := range candidates {
		pacer.BeforeCall()
		rec := baseRecord(c, scope)

		d, err := enricher.FetchDetails(ctx, c.PlaceID)
		if err != nil {
			rl.printf("[%s] Details error: %s", c.PlaceID, errorLine(err))
		} else {
			mergeDetails(&rec, d, scope)
		}
		results = append(results, rec)

		if (i+1)%10 == 0 {
			rl.printf("Details: %d/%d done.", i+1, len(candidates))
		}
	}

	rl.printf("Done. Deduplicated count: %d.", len(results))
	return types.RunResult{
		Log:          rl.lines,
		Results:      results,
		TotalResults: totalRaw,
		DedupedCount: len(results),
	}, nil
}

// baseRecord builds a record from the search-stage fields alone, the shape a
// candidate keeps when its details lookup fails.
func baseRecord(c Candidate, scope types.Scope) types.Record {
	return types.Record{
		Country:      scope.CountryOrDefault(),
		State:        scope.State,
		Name:         c.Name,
		FullAddress:  c.FormattedAddress,
		Rating:       c.Rating,
		TotalReviews: c.UserRatingCount,
		Lat:          c.Lat,
		Lng:          c.Lng,
		PlaceID:      c.PlaceID,
		SourceQuery:  c.SourceTerm,
	}
}

// mergeDetails overlays the enrichment fields onto rec. Details win where
// present; address-component geography falls back to the run's scope.
func mergeDetails(rec *types.Record, d *Details, scope types.Scope) {
	if d.Name != "" {
		rec.Name = d.Name
	}
	if d.FormattedAddress != "" {
		rec.FullAddress = d.FormattedAddress
	}
	rec.Phone = d.Phone
	rec.Website = d.Website
	rec.City = d.City
	if d.State != "" {
		rec.State = d.State
	}
	if d.Country != "" {
		rec.Country = d.Country
	}
}

// errorLine renders an upstream failure for the run log: "status message"
// for translated HTTP errors, the plain error text otherwise.
func errorLine(err error) string {
	var se *httputil.StatusError
	if errors.As(err, &se) {
		return se.Status + " " + se.Message
	}
	return err.Error()
}

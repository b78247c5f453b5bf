// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/pdiddy/placelist/internal/export"
	"github.com/pdiddy/placelist/pkg/types"
)

// buildRequest is the inbound contract of POST /api/build.
type buildRequest struct {
	Country     string   `json:"country"`
	State       string   `json:"state"`
	City        string   `json:"city"`
	SearchTerms []string `json:"searchTerms"`
	MaxResults  int      `json:"maxResults"`
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	state := strings.TrimSpace(req.State)
	if state == "" {
		writeError(w, http.StatusBadRequest, "state is required")
		return
	}
	var terms []string
	for _, t := range req.SearchTerms {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		writeError(w, http.StatusBadRequest, "searchTerms must be a non-empty array")
		return
	}

	input := types.RunInput{
		Scope: types.Scope{
			Country: strings.TrimSpace(req.Country),
			State:   state,
			City:    strings.TrimSpace(req.City),
		},
		SearchTerms: terms,
		MaxResults:  req.MaxResults,
	}

	result, err := s.run(r.Context(), s.client, s.apiKey, input, s.extraction, io.Discard)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Every completed run replaces the slot, including runs with zero
	// results; the export path reports the empty slot as 404.
	if s.store != nil {
		if err := s.store.Save(input.Scope, result); err != nil {
			// The run itself succeeded; only the export slot is stale.
			log.Printf("saving last run: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "No extraction results to export. Run an extraction first.")
		return
	}
	last, err := s.store.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "reading last extraction failed")
		return
	}
	if last == nil || len(last.Results) == 0 {
		writeError(w, http.StatusNotFound, "No extraction results to export. Run an extraction first.")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, last.Results); err != nil {
		writeError(w, http.StatusInternalServerError, "rendering CSV failed")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(last.Scope)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

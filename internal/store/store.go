// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists the most recent extraction run in a single slot.
//
// The slot has no identity and no history: each completed run replaces it
// wholesale, and the export path reads whatever is there. Concurrent runs
// race on the slot and the last writer wins; callers needing run history or
// multi-tenant isolation must layer it on top.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/placelist/pkg/types"
)

// Store holds the single last-run slot in a SQLite database.
type Store struct {
	db *sql.DB
}

// LastRun is the slot contents: the scope that produced the run, its
// records in first-seen order, and when it was saved.
type LastRun struct {
	Scope        types.Scope
	Results      []types.Record
	TotalResults int
	SavedAt      time.Time
}

// Open opens or creates the store at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS last_run (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			country TEXT NOT NULL,
			state TEXT NOT NULL,
			city TEXT NOT NULL,
			total_results INTEGER NOT NULL,
			saved_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			position INTEGER PRIMARY KEY,
			country TEXT NOT NULL,
			state TEXT NOT NULL,
			city TEXT NOT NULL,
			name TEXT NOT NULL,
			full_address TEXT NOT NULL,
			phone TEXT NOT NULL,
			website TEXT NOT NULL,
			rating REAL,
			total_reviews INTEGER,
			lat REAL NOT NULL,
			lng REAL NOT NULL,
			place_id TEXT NOT NULL,
			source_query TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save replaces the slot wholesale with the given run, in one transaction.
func (s *Store) Save(scope types.Scope, result types.RunResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM last_run`); err != nil {
		return fmt.Errorf("clearing slot: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		return fmt.Errorf("clearing records: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO last_run (id, country, state, city, total_results, saved_at)
		 VALUES (1, ?, ?, ?, ?, ?)`,
		scope.Country, scope.State, scope.City,
		result.TotalResults, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO records (position, country, state, city, name, full_address,
		 phone, website, rating, total_reviews, lat, lng, place_id, source_query)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range result.Results {
		var rating sql.NullFloat64
		if r.Rating != nil {
			rating = sql.NullFloat64{Float64: *r.Rating, Valid: true}
		}
		var reviews sql.NullInt64
		if r.TotalReviews != nil {
			reviews = sql.NullInt64{Int64: int64(*r.TotalReviews), Valid: true}
		}
		_, err := stmt.Exec(
			i, r.Country, r.State, r.City, r.Name, r.FullAddress,
			r.Phone, r.Website, rating, reviews, r.Lat, r.Lng,
			r.PlaceID, r.SourceQuery,
		)
		if err != nil {
			return fmt.Errorf("inserting record %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Load returns the slot contents, or nil when no run has been saved yet.
func (s *Store) Load() (*LastRun, error) {
	var lr LastRun
	var savedAt string
	err := s.db.QueryRow(
		`SELECT country, state, city, total_results, saved_at FROM last_run WHERE id = 1`,
	).Scan(&lr.Scope.Country, &lr.Scope.State, &lr.Scope.City, &lr.TotalResults, &savedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading run: %w", err)
	}
	if t, parseErr := time.Parse(time.RFC3339, savedAt); parseErr == nil {
		lr.SavedAt = t
	}

	rows, err := s.db.Query(
		`SELECT country, state, city, name, full_address, phone, website,
		 rating, total_reviews, lat, lng, place_id, source_query
		 FROM records ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r types.Record
		var rating sql.NullFloat64
		var reviews sql.NullInt64
		err := rows.Scan(
			&r.Country, &r.State, &r.City, &r.Name, &r.FullAddress,
			&r.Phone, &r.Website, &rating, &reviews, &r.Lat, &r.Lng,
			&r.PlaceID, &r.SourceQuery,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		if rating.Valid {
			v := rating.Float64
			r.Rating = &v
		}
		if reviews.Valid {
			v := int(reviews.Int64)
			r.TotalReviews = &v
		}
		lr.Results = append(lr.Results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return &lr, nil
}

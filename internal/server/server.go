// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server provides the HTTP boundary in front of the extraction
// pipeline: a build endpoint that runs an extraction, an export endpoint
// that renders the last run as CSV, and an optional basic-auth gate.
package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pdiddy/placelist/internal/places"
	"github.com/pdiddy/placelist/internal/store"
	"github.com/pdiddy/placelist/pkg/types"
)

// runFunc runs one extraction. Tests substitute a stub for places.Run.
type runFunc func(ctx context.Context, client *http.Client, apiKey string, input types.RunInput, cfg types.ExtractionConfig, w io.Writer) (types.RunResult, error)

// Server is the HTTP service.
type Server struct {
	httpServer *http.Server
	store      *store.Store
	apiKey     string
	client     *http.Client
	extraction types.ExtractionConfig
	run        runFunc
}

// Config holds server configuration.
type Config struct {
	Server     types.ServerConfig
	Extraction types.ExtractionConfig

	// APIKey is the Places API key. Blank is allowed; builds then return a
	// diagnostic RunResult instead of an error.
	APIKey string

	// Store receives each completed run and feeds the export endpoint.
	Store *store.Store
}

// New creates a server instance.
func New(cfg Config) *Server {
	s := &Server{
		store:      cfg.Store,
		apiKey:     cfg.APIKey,
		extraction: cfg.Extraction,
		client:     &http.Client{Timeout: cfg.Extraction.Timeout},
		run:        places.Run,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/build", s.handleBuild)
	mux.HandleFunc("GET /api/export", s.handleExport)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: basicAuthGate(cfg.Server.BasicAuthCredentials, mux),
	}
	return s
}

// Handler returns the root handler, gate included.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("placelist listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-stop
	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Println("server stopped")
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/placelist/internal/places"
	"github.com/pdiddy/placelist/internal/store"
	"github.com/pdiddy/placelist/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "placelist/0.1"
	defaultDBPath    = "placelist.db"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Run an extraction for a set of search terms",
	Long: `Extract runs the pipeline for one geographic scope: each term is searched
in order, results are paged with pacing, deduplicated by place ID, and
enriched with a per-place details lookup. Progress streams to stderr.

The completed run replaces the last-run slot (see "export"). Pass --out to
additionally save the run to a YAML file.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("state", "", "state or province to scope searches to (required)")
	extractCmd.Flags().String("city", "", "city to scope searches to")
	extractCmd.Flags().String("country", "", "country to scope searches to (default \"United States\")")
	extractCmd.Flags().StringSlice("term", nil, "search term (repeatable, required)")
	extractCmd.Flags().Int("max-results", 0, "per-term raw result cap, 1-60 (default 60)")
	extractCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	extractCmd.Flags().Duration("call-delay", -1, "delay before each API call (default 200ms)")
	extractCmd.Flags().Duration("page-delay", -1, "extra delay before each continuation page (default 2s)")
	extractCmd.Flags().String("db", defaultDBPath, "last-run store database file")
	extractCmd.Flags().String("out", "", "also save the run to this YAML file")
	extractCmd.Flags().String("api-key", "", "Google Places API key (default: secret file or PLACELIST_GOOGLE_PLACES_API_KEY)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	state, _ := cmd.Flags().GetString("state")
	city, _ := cmd.Flags().GetString("city")
	country, _ := cmd.Flags().GetString("country")
	terms, _ := cmd.Flags().GetStringSlice("term")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	dbPath, _ := cmd.Flags().GetString("db")
	outPath, _ := cmd.Flags().GetString("out")

	cfg := extractionConfig(cmd)
	apiKey := placesAPIKey(cmd)

	input := types.RunInput{
		Scope:       types.Scope{Country: country, State: state, City: city},
		SearchTerms: terms,
		MaxResults:  maxResults,
	}

	client := &http.Client{Timeout: cfg.Timeout}
	result, err := places.Run(cmd.Context(), client, apiKey, input, cfg, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Printf("%d unique places (%d raw search hits)\n", result.DedupedCount, result.TotalResults)

	if dbPath != "" {
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer st.Close()
		if err := st.Save(input.Scope, result); err != nil {
			return fmt.Errorf("saving last run: %w", err)
		}
	}

	if outPath != "" {
		if err := places.WriteRunFile(outPath, input, result); err != nil {
			return err
		}
		fmt.Printf("Run saved to %s\n", outPath)
	}
	return nil
}

// extractionConfig builds the pipeline config from flags, applying defaults.
func extractionConfig(cmd *cobra.Command) types.ExtractionConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	callDelay, _ := cmd.Flags().GetDuration("call-delay")
	if callDelay < 0 {
		callDelay = places.DefaultCallDelay
	}
	pageDelay, _ := cmd.Flags().GetDuration("page-delay")
	if pageDelay < 0 {
		pageDelay = places.DefaultPageDelay
	}
	return types.ExtractionConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		CallDelay: callDelay,
		PageDelay: pageDelay,
	}
}

// placesAPIKey resolves the API key: flag, then PLACELIST_GOOGLE_PLACES_API_KEY,
// then the google-places-api-key secret file.
func placesAPIKey(cmd *cobra.Command) string {
	flagKey, _ := cmd.Flags().GetString("api-key")
	if flagKey != "" {
		return flagKey
	}
	return secretDefault("google-places-api-key", viper.GetString("google_places_api_key"))
}

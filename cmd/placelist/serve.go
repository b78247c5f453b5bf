// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/placelist/internal/server"
	"github.com/pdiddy/placelist/internal/store"
	"github.com/pdiddy/placelist/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP service",
	Long: `Serve starts the HTTP service: POST /api/build runs an extraction,
GET /api/export downloads the last run as CSV, GET /api/health reports
liveness.

When basic-auth credentials are configured ("user:password" in the
basic-auth-credentials secret file or PLACELIST_BASIC_AUTH_CREDENTIALS, or
split across PLACELIST_BASIC_AUTH_USER and PLACELIST_BASIC_AUTH_PASSWORD),
every route is gated behind them.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().String("db", defaultDBPath, "last-run store database file")
	serveCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	serveCmd.Flags().Duration("call-delay", -1, "delay before each API call (default 200ms)")
	serveCmd.Flags().Duration("page-delay", -1, "extra delay before each continuation page (default 2s)")
	serveCmd.Flags().String("api-key", "", "Google Places API key (default: secret file or PLACELIST_GOOGLE_PLACES_API_KEY)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	dbPath, _ := cmd.Flags().GetString("db")

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	srv := server.New(server.Config{
		Server: types.ServerConfig{
			Addr:                 addr,
			BasicAuthCredentials: server.CombineCredentials(
				secretDefault("basic-auth-credentials", viper.GetString("basic_auth_credentials")),
				viper.GetString("basic_auth_user"),
				viper.GetString("basic_auth_password"),
			),
		},
		Extraction: extractionConfig(cmd),
		APIKey:     placesAPIKey(cmd),
		Store:      st,
	})
	return srv.Start()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/placelist/internal/export"
	"github.com/pdiddy/placelist/internal/places"
	"github.com/pdiddy/placelist/internal/store"
	"github.com/pdiddy/placelist/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the last extraction run as CSV",
	Long: `Export renders extraction records to a CSV file with the fixed 13-column
layout. By default it reads the last-run slot; pass --run to export a saved
YAML run file instead.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("db", defaultDBPath, "last-run store database file")
	exportCmd.Flags().String("run", "", "export this YAML run file instead of the last-run slot")
	exportCmd.Flags().String("output", "", "output file path (default: derived from the run's scope)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	runPath, _ := cmd.Flags().GetString("run")
	outputPath, _ := cmd.Flags().GetString("output")

	var scope types.Scope
	var records []types.Record

	if runPath != "" {
		rf, err := places.ReadRunFile(runPath)
		if err != nil {
			return err
		}
		scope = rf.Input.Scope
		records = rf.Results
	} else {
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer st.Close()

		last, err := st.Load()
		if err != nil {
			return err
		}
		if last == nil {
			return fmt.Errorf("no extraction run saved yet; run \"placelist extract\" first")
		}
		scope = last.Scope
		records = last.Results
	}

	if outputPath == "" {
		outputPath = export.Filename(scope)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer f.Close()

	if err := export.WriteCSV(f, records); err != nil {
		return err
	}

	fmt.Printf("Exported %d records to %s\n", len(records), outputPath)
	return nil
}

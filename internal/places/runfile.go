// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package places

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/placelist/pkg/types"
)

// RunFile is the on-disk representation of a completed extraction run. The
// operator can save a run to a file and export or inspect it later without
// re-querying the API.
type RunFile struct {
	Input   types.RunInput `yaml:"input"`
	Log     []string       `yaml:"log,omitempty"`
	Results []types.Record `yaml:"results"`
	Summary RunSummary     `yaml:"summary"`
}

// RunSummary stores run statistics and a timestamp.
type RunSummary struct {
	TotalResults int       `yaml:"total_results"`
	DedupedCount int       `yaml:"deduped_count"`
	Timestamp    time.Time `yaml:"timestamp"`
}

// WriteRunFile saves a run's input and results to a YAML file.
func WriteRunFile(path string, input types.RunInput, result types.RunResult) error {
	rf := RunFile{
		Input:   input,
		Log:     result.Log,
		Results: result.Results,
		Summary: RunSummary{
			TotalResults: result.TotalResults,
			DedupedCount: result.DedupedCount,
			Timestamp:    time.Now(),
		},
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling run file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRunFile loads a previously saved run file from disk.
func ReadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run file: %w", err)
	}
	return &rf, nil
}

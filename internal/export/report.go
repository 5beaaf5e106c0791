// Copyright Halflink, 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// DownloadOutcome records what happened to one PDF during the fetch and
// highlight stage.
type DownloadOutcome struct {
	Identifier string `json:"identifier" yaml:"identifier"`
	URL        string `json:"url" yaml:"url"`

	// Status is "downloaded", "skipped" (already on disk) or "failed".
	Status string `json:"status" yaml:"status"`

	File            string `json:"file,omitempty" yaml:"file,omitempty"`
	HighlightedFile string `json:"highlighted_file,omitempty" yaml:"highlighted_file,omitempty"`
	Highlights      int    `json:"highlights" yaml:"highlights"`
	Error           string `json:"error,omitempty" yaml:"error,omitempty"`
}

// RunReport summarizes one search session for auditing.
type RunReport struct {
	RunID     string    `json:"run_id" yaml:"run_id"`
	StartedAt time.Time `json:"started_at" yaml:"started_at"`
	Terms     []string  `json:"terms" yaml:"terms"`
	Query     string    `json:"query" yaml:"query"`

	Records    int    `json:"records" yaml:"records"`
	Duplicates int    `json:"duplicates_removed" yaml:"duplicates_removed"`
	CSVPath    string `json:"csv_path,omitempty" yaml:"csv_path,omitempty"`
	RISPath    string `json:"ris_path,omitempty" yaml:"ris_path,omitempty"`

	Downloads []DownloadOutcome `json:"downloads,omitempty" yaml:"downloads,omitempty"`
}

// WriteReport writes the run report to path as YAML, replacing any
// previous report.
func WriteReport(report RunReport, path string) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshaling run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing run report %s: %w", path, err)
	}
	return nil
}

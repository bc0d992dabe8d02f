// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// QueryFile is the on-disk representation of a search and its results.
// A search can be saved to a file and reloaded later without re-querying
// the APIs.
type QueryFile struct {
	Query   string              `yaml:"query"`
	Config  QueryFileConfig     `yaml:"config"`
	Results []types.PaperRecord `yaml:"results"`
	Summary QuerySummary        `yaml:"summary"`
}

// QueryFileConfig stores the search configuration that produced the results.
type QueryFileConfig struct {
	TotalLimit     int     `yaml:"total_limit"`
	PerSourceLimit int     `yaml:"per_source_limit"`
	DedupThreshold float64 `yaml:"dedup_threshold"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total             int       `yaml:"total"`
	DuplicatesRemoved int       `yaml:"duplicates_removed"`
	ClientErrors      []string  `yaml:"client_errors,omitempty"`
	Timestamp         time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves a query and its results to a YAML file.
func WriteQueryFile(path, query string, cfg types.SearchConfig, out Output) error {
	qf := QueryFile{
		Query: query,
		Config: QueryFileConfig{
			TotalLimit:     cfg.TotalLimit,
			PerSourceLimit: cfg.PerSourceLimit,
			DedupThreshold: cfg.DedupThreshold,
		},
		Results: out.Records,
		Summary: QuerySummary{
			Total:             out.TotalFound,
			DuplicatesRemoved: out.DupsRemoved,
			ClientErrors:      out.ClientErrors,
			Timestamp:         time.Now().UTC(),
		},
	}

	data, err := yaml.Marshal(qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing query file: %w", err)
	}
	return nil
}

// ReadQueryFile loads a previously saved query file.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// Output reconstructs an aggregation Output from the saved file.
func (qf *QueryFile) Output() Output {
	return Output{
		Records:      qf.Results,
		TotalFound:   qf.Summary.Total,
		DupsRemoved:  qf.Summary.DuplicatesRemoved,
		ClientErrors: qf.Summary.ClientErrors,
	}
}

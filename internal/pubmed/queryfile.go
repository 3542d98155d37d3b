// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// QueryFile is the on-disk record of a fetch run. The researcher can save
// a run to a file and replay the same query later without retyping it.
type QueryFile struct {
	Query   string       `yaml:"query"`
	Config  QueryConfig  `yaml:"config"`
	Summary QuerySummary `yaml:"summary"`
}

// QueryConfig stores the search configuration that produced the results.
type QueryConfig struct {
	MaxResults int `yaml:"max_results"`
}

// QuerySummary stores run statistics and a timestamp.
type QuerySummary struct {
	IDsFound      int       `yaml:"ids_found"`
	PapersWritten int       `yaml:"papers_written"`
	OutputFile    string    `yaml:"output_file"`
	Timestamp     time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves a query and its run summary to a YAML file.
func WriteQueryFile(path, query string, maxResults, idsFound, papersWritten int, outputFile string) error {
	qf := QueryFile{
		Query: query,
		Config: QueryConfig{
			MaxResults: maxResults,
		},
		Summary: QuerySummary{
			IDsFound:      idsFound,
			PapersWritten: papersWritten,
			OutputFile:    outputFile,
			Timestamp:     time.Now(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
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

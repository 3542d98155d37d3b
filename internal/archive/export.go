// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paperscope/pkg/types"
)

// ExportEntry holds one archived paper with its run context.
type ExportEntry struct {
	types.Paper `yaml:",inline"`
	Run         *ExportRun `json:"run,omitempty" yaml:"run,omitempty"`
}

// ExportRun holds the run-level fields included in each export entry.
type ExportRun struct {
	ID        string    `json:"id" yaml:"id"`
	Query     string    `json:"query" yaml:"query"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// ExportYAML writes the whole archive to archiveDir/export.yaml.
func (s *Store) ExportYAML(ctx context.Context) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}

	path := filepath.Join(s.archiveDir, "export.yaml")
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the whole archive to archiveDir/export.json.
func (s *Store) ExportJSON(ctx context.Context) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}

	path := filepath.Join(s.archiveDir, "export.json")
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context) ([]ExportEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.pubmed_id, p.title, p.pub_date, p.non_academic_authors,
			p.company_affiliations, p.corresponding_email,
			r.id, r.query, r.created_at
		 FROM papers p
		 LEFT JOIN runs r ON p.run_id = r.id
		 ORDER BY r.created_at, p.rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	defer rows.Close()

	var entries []ExportEntry
	for rows.Next() {
		var (
			entry     ExportEntry
			run       ExportRun
			createdAt string
		)
		if err := rows.Scan(
			&entry.PubmedID, &entry.Title, &entry.PubDate,
			&entry.NonAcademicAuthors, &entry.CompanyAffiliations, &entry.CorrespondingEmail,
			&run.ID, &run.Query, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			run.CreatedAt = t
		}
		entry.Run = &run
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

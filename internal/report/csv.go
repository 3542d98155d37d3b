// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes enriched paper records to CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/pdiddy/paperscope/pkg/types"
)

// Header is the report column order. Downstream spreadsheets key on these
// exact names.
var Header = []string{
	"PubmedID",
	"Title",
	"Publication Date",
	"Non-academic Author(s)",
	"Company Affiliation(s)",
	"Corresponding Author Email",
}

// Row flattens a paper into Header order.
func Row(p types.Paper) []string {
	return []string{
		p.PubmedID,
		p.Title,
		p.PubDate,
		p.NonAcademicAuthors,
		p.CompanyAffiliations,
		p.CorrespondingEmail,
	}
}

// WriteCSV writes papers to path with a header row. An empty paper list is
// an error and creates no file.
func WriteCSV(papers []types.Paper, path string) error {
	if len(papers) == 0 {
		return fmt.Errorf("no papers to write")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, p := range papers {
		if err := w.Write(Row(p)); err != nil {
			return fmt.Errorf("writing row for %s: %w", p.PubmedID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

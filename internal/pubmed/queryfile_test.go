// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestQueryFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	err := WriteQueryFile(path, "cancer AND immunotherapy", 20, 18, 15, "output.csv")
	if err != nil {
		t.Fatalf("WriteQueryFile: %v", err)
	}

	qf, err := ReadQueryFile(path)
	if err != nil {
		t.Fatalf("ReadQueryFile: %v", err)
	}
	if qf.Query != "cancer AND immunotherapy" {
		t.Errorf("Query = %q, want %q", qf.Query, "cancer AND immunotherapy")
	}
	if qf.Config.MaxResults != 20 {
		t.Errorf("MaxResults = %d, want 20", qf.Config.MaxResults)
	}
	if qf.Summary.IDsFound != 18 {
		t.Errorf("IDsFound = %d, want 18", qf.Summary.IDsFound)
	}
	if qf.Summary.PapersWritten != 15 {
		t.Errorf("PapersWritten = %d, want 15", qf.Summary.PapersWritten)
	}
	if qf.Summary.OutputFile != "output.csv" {
		t.Errorf("OutputFile = %q, want %q", qf.Summary.OutputFile, "output.csv")
	}
	if qf.Summary.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestQueryFileYAMLFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	if err := WriteQueryFile(path, "crispr", 5, 5, 5, "crispr.csv"); err != nil {
		t.Fatalf("WriteQueryFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	for _, field := range []string{"query:", "max_results:", "ids_found:", "papers_written:", "output_file:", "timestamp:"} {
		if !strings.Contains(string(data), field) {
			t.Errorf("query file missing %q field:\n%s", field, data)
		}
	}
}

func TestReadQueryFileMissing(t *testing.T) {
	_, err := ReadQueryFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadQueryFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("query: [unclosed"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	_, err := ReadQueryFile(path)
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
	if !strings.Contains(err.Error(), "parsing query file") {
		t.Errorf("error = %q, should mention parsing", err.Error())
	}
}

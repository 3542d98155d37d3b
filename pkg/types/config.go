package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paperscope/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the PubMed search and fetch stages.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of PMIDs requested from esearch (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// APIKey is an optional NCBI API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Tool identifies this client to NCBI (sent as the tool parameter).
	Tool string `json:"tool,omitempty" yaml:"tool,omitempty"`

	// Email is the contact address sent with requests, per NCBI usage guidelines.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// ArchiveConfig holds settings for the run archive.
type ArchiveConfig struct {
	// ArchiveDir is the directory containing the archive database.
	ArchiveDir string `json:"archive_dir" yaml:"archive_dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

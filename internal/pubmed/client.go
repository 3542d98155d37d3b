// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed queries the NCBI E-utilities API: esearch.fcgi for
// lists of matching PMIDs and efetch.fcgi for full article records.
//
// The API documentation is available at:
// https://www.ncbi.nlm.nih.gov/books/NBK25499/
package pubmed

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/paperscope/internal/httputil"
	"github.com/pdiddy/paperscope/pkg/types"
)

// E-utilities endpoints. Declared as vars so tests can substitute
// httptest servers.
var (
	esearchBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	efetchBase  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
)

const defaultMaxResults = 20

// Client calls the E-utilities endpoints: one esearch call per query,
// one efetch call per PMID. No batching, no retries, no pagination.
type Client struct {
	HTTP *http.Client
	Cfg  types.SearchConfig
}

// NewClient returns a Client with an HTTP client honoring cfg.Timeout.
func NewClient(cfg types.SearchConfig) *Client {
	return &Client{
		HTTP: &http.Client{Timeout: cfg.Timeout},
		Cfg:  cfg,
	}
}

// SearchIDs queries esearch for the free-text query and returns matching
// PMIDs in the order the API reports them.
func (c *Client) SearchIDs(ctx context.Context, query string) ([]string, error) {
	maxResults := c.Cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	params := url.Values{
		"db":      {"pubmed"},
		"term":    {query},
		"retmode": {"json"},
		"retmax":  {strconv.Itoa(maxResults)},
	}
	c.addIdentity(params)

	body, err := httputil.Get(ctx, c.HTTP, esearchBase+"?"+params.Encode(), c.Cfg.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("esearch request: %w", err)
	}

	var er esearchResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", err)
	}
	return er.Result.IDList, nil
}

// FetchArticle retrieves one record by PMID. A nil article with a nil
// error means the identifier resolved to no record.
func (c *Client) FetchArticle(ctx context.Context, pmid string) (*PubmedArticle, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {pmid},
		"retmode": {"xml"},
	}
	c.addIdentity(params)

	body, err := httputil.Get(ctx, c.HTTP, efetchBase+"?"+params.Encode(), c.Cfg.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("efetch request for %s: %w", pmid, err)
	}

	var set PubmedArticleSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("parsing efetch response for %s: %w", pmid, err)
	}
	if len(set.Articles) == 0 {
		return nil, nil
	}
	return &set.Articles[0], nil
}

// addIdentity attaches the optional NCBI identification parameters.
// An API key raises the rate limit; tool and email identify the caller.
func (c *Client) addIdentity(params url.Values) {
	if c.Cfg.APIKey != "" {
		params.Set("api_key", c.Cfg.APIKey)
	}
	if c.Cfg.Tool != "" {
		params.Set("tool", c.Cfg.Tool)
	}
	if c.Cfg.Email != "" {
		params.Set("email", c.Cfg.Email)
	}
}

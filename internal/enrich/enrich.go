// Package enrich turns PMIDs into report-ready paper records: it fetches
// each PubMed record, classifies author affiliations, and collects company
// names and a corresponding email per paper.
package enrich

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/paperscope/internal/affiliation"
	"github.com/pdiddy/paperscope/internal/pubmed"
	"github.com/pdiddy/paperscope/pkg/types"
)

// Sentinel values written verbatim into report fields with no data.
const (
	NoTitle     = "No Title"
	UnknownYear = "Unknown Year"
	NoneListed  = "None"
	NotFound    = "Not found"
)

// Source fetches one article record per identifier. *pubmed.Client
// implements it; tests substitute a local fake.
type Source interface {
	FetchArticle(ctx context.Context, pmid string) (*pubmed.PubmedArticle, error)
}

// Papers fetches every PMID in order and builds one Paper per resolved
// record, printing per-item progress to w. Identifiers that resolve to no
// record are skipped. The first fetch error aborts the run.
func Papers(ctx context.Context, src Source, pmids []string, w io.Writer) ([]types.Paper, error) {
	var papers []types.Paper
	for i, pmid := range pmids {
		fmt.Fprintf(w, "fetching: %s (%d/%d)\n", pmid, i+1, len(pmids))
		art, err := src.FetchArticle(ctx, pmid)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", pmid, err)
		}
		if art == nil {
			fmt.Fprintf(w, "skipped: %s (no record)\n", pmid)
			continue
		}
		papers = append(papers, buildPaper(pmid, art))
	}
	return papers, nil
}

// buildPaper flattens one article record into a Paper. Authors without an
// affiliation string are not classified. The email slot is filled by the
// first affiliation whose text yields a match, scanning authors in order.
func buildPaper(pmid string, art *pubmed.PubmedArticle) types.Paper {
	a := art.MedlineCitation.Article

	title := a.ArticleTitle
	if title == "" {
		title = NoTitle
	}

	var names []string
	var companies []string
	email := NotFound
	for _, author := range a.AuthorList.Authors {
		aff := author.Affiliation()
		if aff == "" {
			continue
		}
		if affiliation.IsNonAcademic(aff) {
			names = append(names, author.FullName())
			companies = append(companies, affiliation.CompanyName(aff))
		}
		if email == NotFound {
			if m, ok := affiliation.Email(aff); ok {
				email = m
			}
		}
	}

	return types.Paper{
		PubmedID:            pmid,
		Title:               title,
		PubDate:             pubDate(a.Journal.JournalIssue.PubDate),
		NonAcademicAuthors:  joinOrNone(names),
		CompanyAffiliations: joinOrNone(dedupe(companies)),
		CorrespondingEmail:  email,
	}
}

// pubDate picks the year, falling back to the free-form MedlineDate used
// for seasonal and ranged issues.
func pubDate(pd pubmed.PubDate) string {
	switch {
	case pd.Year != "":
		return pd.Year
	case pd.MedlineDate != "":
		return pd.MedlineDate
	default:
		return UnknownYear
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return NoneListed
	}
	return strings.Join(items, ", ")
}

// dedupe removes duplicates preserving first-occurrence order, so repeated
// runs over the same record produce identical rows.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

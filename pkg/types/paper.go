// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Paper is one row of the report: a PubMed record reduced to the fields
// the pipeline cares about. Built once during enrichment, immutable
// afterwards.
type Paper struct {
	// PubmedID is the PubMed record identifier (PMID).
	PubmedID string `json:"pubmed_id" yaml:"pubmed_id"`

	// Title is the article title, or "No Title" when the record has none.
	Title string `json:"title" yaml:"title"`

	// PubDate is the publication year, the raw MedlineDate string when no
	// year is present, or "Unknown Year" when the record has neither.
	PubDate string `json:"pub_date" yaml:"pub_date"`

	// NonAcademicAuthors joins the display names of authors whose
	// affiliation failed the academic keyword test, or "None".
	NonAcademicAuthors string `json:"non_academic_authors" yaml:"non_academic_authors"`

	// CompanyAffiliations joins the deduplicated inferred company names
	// in first-occurrence order, or "None".
	CompanyAffiliations string `json:"company_affiliations" yaml:"company_affiliations"`

	// CorrespondingEmail is the first email found across the authors'
	// affiliation text, or "Not found".
	CorrespondingEmail string `json:"corresponding_email" yaml:"corresponding_email"`
}

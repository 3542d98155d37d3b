// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"encoding/xml"
	"strings"
)

// esearchResponse is the JSON envelope returned by esearch.fcgi with
// retmode=json. Counts arrive as strings; only the identifier list is
// consumed.
type esearchResponse struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	RetMax string   `json:"retmax"`
	IDList []string `json:"idlist"`
}

// PubmedArticleSet is the root element of an efetch.fcgi XML response.
// The nesting follows the PubMed DTD; only the subtree the pipeline
// reads is mapped.
type PubmedArticleSet struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []PubmedArticle `xml:"PubmedArticle"`
}

// PubmedArticle is a single record in the PubMed database.
type PubmedArticle struct {
	MedlineCitation MedlineCitation `xml:"MedlineCitation"`
}

// MedlineCitation carries the core bibliographic information.
type MedlineCitation struct {
	PMID    string  `xml:"PMID"`
	Article Article `xml:"Article"`
}

// Article holds the title, journal issue, and author list.
type Article struct {
	ArticleTitle string     `xml:"ArticleTitle"`
	Journal      Journal    `xml:"Journal"`
	AuthorList   AuthorList `xml:"AuthorList"`
}

// Journal wraps the issue that carries the publication date.
type Journal struct {
	JournalIssue JournalIssue `xml:"JournalIssue"`
}

// JournalIssue holds the publication date of the issue.
type JournalIssue struct {
	PubDate PubDate `xml:"PubDate"`
}

// PubDate is the publication date in one of PubMed's two shapes: a
// structured Year/Month/Day (or Season), or a single free-form
// MedlineDate string such as "2012 Jan-Feb".
type PubDate struct {
	Year        string `xml:"Year"`
	Month       string `xml:"Month"`
	Day         string `xml:"Day"`
	Season      string `xml:"Season"`
	MedlineDate string `xml:"MedlineDate"`
}

// AuthorList holds the record's authors in document order.
type AuthorList struct {
	Authors []Author `xml:"Author"`
}

// Author is one author with an optional list of affiliations.
type Author struct {
	LastName        string            `xml:"LastName"`
	ForeName        string            `xml:"ForeName"`
	AffiliationInfo []AffiliationInfo `xml:"AffiliationInfo"`
}

// AffiliationInfo carries one free-text affiliation string.
type AffiliationInfo struct {
	Affiliation string `xml:"Affiliation"`
}

// FullName returns "ForeName LastName" with surrounding whitespace
// trimmed, so an author without a forename displays as the last name
// alone.
func (a Author) FullName() string {
	return strings.TrimSpace(a.ForeName + " " + a.LastName)
}

// Affiliation returns the author's first listed affiliation, or ""
// when none is present.
func (a Author) Affiliation() string {
	if len(a.AffiliationInfo) == 0 {
		return ""
	}
	return a.AffiliationInfo[0].Affiliation
}

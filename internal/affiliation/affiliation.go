// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package affiliation classifies author affiliation strings and extracts
// company names and email addresses from them. All functions are pure:
// no I/O, no shared state.
package affiliation

import (
	"regexp"
	"strings"
)

// academicKeywords marks an affiliation as academic when any entry occurs
// as a substring of the lowercased text. Plain substring matching, no
// word-boundary checks: an affiliation naming no institution keyword
// counts as a company.
var academicKeywords = []string{
	"university",
	"college",
	"institute",
	"school",
	"hospital",
	"clinic",
	"center",
	"centre",
}

// emailPattern matches the first email-shaped substring. Best-effort
// syntactic match, not RFC 5322 validation.
var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// IsNonAcademic reports whether aff looks like a company affiliation:
// true when none of the academic keywords occurs in the lowercased text.
func IsNonAcademic(aff string) bool {
	lower := strings.ToLower(aff)
	for _, kw := range academicKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}

// CompanyName returns the first comma-separated segment of aff,
// unmodified: no trimming and no plausibility check.
func CompanyName(aff string) string {
	return strings.Split(aff, ",")[0]
}

// Email returns the first email-shaped substring of aff. ok is false
// when no match exists.
func Email(aff string) (email string, ok bool) {
	m := emailPattern.FindString(aff)
	return m, m != ""
}

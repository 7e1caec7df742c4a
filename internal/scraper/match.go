// Package scraper fetches published postings from the job board and matches
// them against free-text queries.
package scraper

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeQuery trims and case-folds a search query. An empty result means
// "match everything".
func NormalizeQuery(query string) string {
	return cases.Fold().String(strings.TrimSpace(query))
}

// MatchesQuery returns true if the normalized query appears (case-insensitive)
// in the title or in the raw description. Empty fields never match; an empty
// query matches every posting.
func MatchesQuery(title, description, query string) bool {
	if query == "" {
		return true
	}
	for _, field := range []string{title, description} {
		if field == "" {
			continue
		}
		if strings.Contains(cases.Fold().String(field), query) {
			return true
		}
	}
	return false
}

// Package search decides whether a unified request matches a free-text
// query. One literal substring, case-insensitive, OR across the candidate
// field set. The query is never tokenized.
package search

import (
	"strings"

	"jetdash/internal/airports"
	"jetdash/internal/model"
)

// Matches reports whether r matches query. An empty or whitespace-only
// query always matches.
func Matches(r model.UnifiedRequest, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, c := range candidates(r) {
		if c == "" {
			continue
		}
		if strings.Contains(strings.ToLower(c), q) {
			return true
		}
	}
	return false
}

// candidates assembles the searchable field set for a record: contact
// fields, route codes, status, type, id, plus resolved airport names and
// every string value inside the open data blob.
func candidates(r model.UnifiedRequest) []string {
	out := []string{
		r.ContactName,
		r.ContactEmail,
		r.Origin,
		r.Destination,
		r.Status,
		r.Type,
		r.ID,
	}
	for _, code := range []string{r.Origin, r.Destination} {
		if code == "" {
			continue
		}
		if a, ok := airports.ByCode(code); ok {
			out = append(out, a.Name, a.City, a.Country)
		}
	}
	for _, v := range r.Data {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

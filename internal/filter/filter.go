// Package filter applies the advanced-history query parameters over the
// in-memory expense cache.
package filter

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/dgouveia/contacasa/internal/database/repository"
)

// State holds the ephemeral, UI-local query parameters. Zero values mean
// "no constraint".
type State struct {
	Search    string
	Category  string
	UserID    string
	StartDate string // yyyy-mm-dd inclusive
	EndDate   string // yyyy-mm-dd inclusive
}

// maxSearchDistance is how many edits a search term may be away from a word
// in the description or location before it stops matching.
const maxSearchDistance = 2

// Apply returns the expenses matching every set constraint, preserving
// input order.
func Apply(expenses []repository.Expense, f State) []repository.Expense {
	var out []repository.Expense
	for _, e := range expenses {
		if !matches(e, f) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matches(e repository.Expense, f State) bool {
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.UserID != "" && e.UserID != f.UserID {
		return false
	}
	// ISO dates compare correctly as strings
	if f.StartDate != "" && e.Date < f.StartDate {
		return false
	}
	if f.EndDate != "" && e.Date > f.EndDate {
		return false
	}
	if f.Search != "" && !searchMatch(e, f.Search) {
		return false
	}
	return true
}

// searchMatch first tries a case-insensitive substring match on description
// and location, then falls back to a levenshtein pass per word so a small
// typo ("mercdo") still finds the record.
func searchMatch(e repository.Expense, term string) bool {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return true
	}
	haystack := strings.ToLower(e.Description + " " + e.Location)
	if strings.Contains(haystack, needle) {
		return true
	}
	if len(needle) <= maxSearchDistance {
		return false
	}
	for _, word := range strings.Fields(haystack) {
		if levenshtein.ComputeDistance(word, needle) <= maxSearchDistance {
			return true
		}
	}
	return false
}

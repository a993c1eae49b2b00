package film

import (
	"strings"

	"film_stats/internal/app"
)

// NormalizeSearchTerm lowercases and trims a raw search input
func NormalizeSearchTerm(term string) string {
	return strings.TrimSpace(strings.ToLower(term))
}

// FilterFilms returns the films whose title or director contains term,
// ignoring case. An empty term matches every film. The result keeps the
// order of the input and is always a fresh slice.
// Pure function: No I/O, returns new slice without modifying input
func FilterFilms(original []app.Film, term string) []app.Film {
	normalized := NormalizeSearchTerm(term)

	matches := make([]app.Film, 0, len(original))
	for _, f := range original {
		if MatchesSearchTerm(f, normalized) {
			matches = append(matches, f)
		}
	}
	return matches
}

// MatchesSearchTerm checks an already-normalized term against title and director
func MatchesSearchTerm(f app.Film, normalizedTerm string) bool {
	if strings.Contains(strings.ToLower(f.Title), normalizedTerm) {
		return true
	}
	return strings.Contains(strings.ToLower(DirectorOrEmpty(f)), normalizedTerm)
}

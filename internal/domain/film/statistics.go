package film

import (
	"sort"
	"strings"

	"film_stats/internal/app"
)

const (
	// DefaultTopN is the number of bars shown in each chart
	DefaultTopN = 10

	// UnknownDirector labels films with a missing or blank director
	UnknownDirector = "Unknown"
)

// DirectorLabel returns the trimmed director name used for grouping
func DirectorLabel(f app.Film) string {
	label := strings.TrimSpace(DirectorOrEmpty(f))
	if label == "" {
		return UnknownDirector
	}
	return label
}

// CountFilmsByDirector groups films by director label and counts them.
// Groups are returned in the order their director was first seen.
func CountFilmsByDirector(films []app.Film) []app.DirectorCount {
	index := make(map[string]int)
	var counts []app.DirectorCount

	for _, f := range films {
		label := DirectorLabel(f)
		if i, ok := index[label]; ok {
			counts[i].Count++
			continue
		}
		index[label] = len(counts)
		counts = append(counts, app.DirectorCount{Label: label, Count: 1})
	}
	return counts
}

// TopDirectors ranks directors by film count, highest first, and keeps the top n.
// Equal counts keep first-seen order.
// Pure function: No I/O, deterministic output from input
func TopDirectors(films []app.Film, n int) []app.DirectorCount {
	counts := CountFilmsByDirector(films)

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	return truncateDirectors(counts, n)
}

// CollectBoxOfficeByID parses each film's box office keyed by film ID.
// A later film with an ID already seen replaces the earlier entry (last write wins).
// Entries are returned in ascending ID order.
func CollectBoxOfficeByID(films []app.Film) []app.FilmBoxOffice {
	byID := make(map[int]app.FilmBoxOffice, len(films))
	for _, f := range films {
		byID[f.ID] = app.FilmBoxOffice{
			ID:        f.ID,
			Title:     f.Title,
			BoxOffice: BoxOfficeValue(f),
		}
	}

	entries := make([]app.FilmBoxOffice, 0, len(byID))
	for _, entry := range byID {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	return entries
}

// TopFilmsByBoxOffice ranks films by parsed box office, highest first, and keeps the top n.
// Equal values are ordered by ascending ID.
// Pure function: No I/O, deterministic output from input
func TopFilmsByBoxOffice(films []app.Film, n int) []app.FilmBoxOffice {
	entries := CollectBoxOfficeByID(films)

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].BoxOffice > entries[j].BoxOffice
	})

	if n <= 0 {
		return []app.FilmBoxOffice{}
	}
	if n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

func truncateDirectors(counts []app.DirectorCount, n int) []app.DirectorCount {
	if n <= 0 {
		return []app.DirectorCount{}
	}
	if counts == nil {
		return []app.DirectorCount{}
	}
	if n < len(counts) {
		counts = counts[:n]
	}
	return counts
}

package film

import (
	"math"
	"strconv"
	"strings"

	"film_stats/internal/app"
)

// ParseBoxOffice converts a display-formatted box office figure into a number.
// Thousands separators are stripped; anything that still fails to parse,
// including an empty value, counts as 0.
// Pure function: never returns an error, malformed input defaults to 0
func ParseBoxOffice(raw string) float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return 0
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

// BoxOfficeValue returns the parsed box office value of a film
func BoxOfficeValue(f app.Film) float64 {
	return ParseBoxOffice(string(f.BoxOffice))
}

// DirectorOrEmpty returns the film's director, or "" when it is missing
func DirectorOrEmpty(f app.Film) string {
	if f.Director == nil {
		return ""
	}
	return *f.Director
}

// CountryOrEmpty returns the film's country, or "" when it is missing
func CountryOrEmpty(f app.Film) string {
	if f.Country == nil {
		return ""
	}
	return *f.Country
}

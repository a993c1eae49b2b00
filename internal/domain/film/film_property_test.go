package film

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"film_stats/internal/app"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"golang.org/x/text/language"
)

// TestFilmPipelineProperties uses property-based testing to verify the filter,
// sort and aggregation invariants
func TestFilmPipelineProperties(t *testing.T) {
	sorter := NewSorter(language.English)

	properties := gopter.NewProperties(nil)

	// Property: filter result is a subset of the input and every row matches
	properties.Property("filter returns only matching films", prop.ForAll(
		func(films []app.Film, term string) bool {
			result := FilterFilms(films, term)
			if len(result) > len(films) {
				return false
			}

			normalized := NormalizeSearchTerm(term)
			for _, f := range result {
				title := strings.ToLower(f.Title)
				director := strings.ToLower(DirectorOrEmpty(f))
				if !strings.Contains(title, normalized) && !strings.Contains(director, normalized) {
					return false
				}
			}
			return isSubsequence(result, films)
		},
		genFilms(),
		gen.AlphaString().Map(func(s string) string {
			if len(s) > 3 {
				return s[:3]
			}
			return s
		}),
	))

	// Property: empty term keeps every film in order
	properties.Property("empty filter keeps everything in order", prop.ForAll(
		func(films []app.Film) bool {
			result := FilterFilms(films, "")
			return reflect.DeepEqual(result, append([]app.Film{}, films...))
		},
		genFilms(),
	))

	// Property: sorting by id is ascending and idempotent
	properties.Property("sort by id ascending and idempotent", prop.ForAll(
		func(films []app.Film) bool {
			once, err := sorter.SortFilms(films, ColumnID)
			if err != nil {
				return false
			}
			twice, err := sorter.SortFilms(once, ColumnID)
			if err != nil {
				return false
			}
			for i := 0; i+1 < len(once); i++ {
				if once[i].ID > once[i+1].ID {
					return false
				}
			}
			return reflect.DeepEqual(once, twice)
		},
		genFilms(),
	))

	// Property: sorting by box office is descending on the parsed value
	properties.Property("sort by box office descending", prop.ForAll(
		func(films []app.Film) bool {
			sorted, err := sorter.SortFilms(films, ColumnBoxOffice)
			if err != nil {
				return false
			}
			for i := 0; i+1 < len(sorted); i++ {
				if BoxOfficeValue(sorted[i]) < BoxOfficeValue(sorted[i+1]) {
					return false
				}
			}
			return len(sorted) == len(films)
		},
		genFilms(),
	))

	// Property: sorting never drops or invents films
	properties.Property("sort is a permutation", prop.ForAll(
		func(films []app.Film, colIndex int) bool {
			sorted, err := sorter.SortFilms(films, SortableColumns[colIndex])
			if err != nil {
				return false
			}
			return sameMultiset(sorted, films)
		},
		genFilms(),
		gen.IntRange(0, len(SortableColumns)-1),
	))

	// Property: director counts add up to the number of films
	properties.Property("director counts sum to film count", prop.ForAll(
		func(films []app.Film) bool {
			total := 0
			for _, entry := range CountFilmsByDirector(films) {
				total += entry.Count
			}
			return total == len(films)
		},
		genFilms(),
	))

	// Property: top directors are ranked by descending count and at most n long
	properties.Property("top directors ranked", prop.ForAll(
		func(films []app.Film) bool {
			top := TopDirectors(films, DefaultTopN)
			if len(top) > DefaultTopN {
				return false
			}
			for i := 0; i+1 < len(top); i++ {
				if top[i].Count < top[i+1].Count {
					return false
				}
			}
			return true
		},
		genFilms(),
	))

	// Property: top films are unique by id and ranked by descending box office
	properties.Property("top films unique and ranked", prop.ForAll(
		func(films []app.Film) bool {
			top := TopFilmsByBoxOffice(films, DefaultTopN)
			if len(top) > DefaultTopN {
				return false
			}
			seen := make(map[int]bool)
			for i, entry := range top {
				if seen[entry.ID] {
					return false
				}
				seen[entry.ID] = true
				if i+1 < len(top) && entry.BoxOffice < top[i+1].BoxOffice {
					return false
				}
			}
			return true
		},
		genFilms(),
	))

	// Property: malformed box office parses to zero
	properties.Property("malformed box office parses to zero", prop.ForAll(
		func(raw string) bool {
			return ParseBoxOffice("N/A"+raw) == 0
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// genFilm generates a single film with small id and director domains so
// duplicates and ties actually occur
func genFilm() gopter.Gen {
	return gen.Struct(reflect.TypeOf(app.Film{}), map[string]gopter.Gen{
		"ID":          gen.IntRange(1, 20),
		"Title":       gen.AlphaString(),
		"ReleaseYear": gen.IntRange(1920, 2025),
		"Director":    gen.PtrOf(gen.OneConstOf("Amy", "Bob", "Carol", " Amy ", "")),
		"BoxOffice":   genBoxOffice(),
		"Country":     gen.PtrOf(gen.OneConstOf("US", "UK", "France")),
	})
}

// genBoxOffice generates formatted, plain and malformed box office strings
func genBoxOffice() gopter.Gen {
	return gen.OneGenOf(
		gen.IntRange(0, 5000000).Map(func(n int) app.BoxOffice {
			return app.BoxOffice(formatThousands(n))
		}),
		gen.IntRange(0, 5000).Map(func(n int) app.BoxOffice {
			return app.BoxOffice(fmt.Sprintf("%d", n))
		}),
		gen.OneConstOf(app.BoxOffice("N/A"), app.BoxOffice(""), app.BoxOffice("unknown")),
	)
}

// genFilms generates a slice of films
func genFilms() gopter.Gen {
	return gen.SliceOf(genFilm()).Map(func(films []app.Film) []app.Film {
		if len(films) > 60 {
			return films[:60]
		}
		return films
	})
}

func formatThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isSubsequence reports whether sub appears in full in the same relative order
func isSubsequence(sub, full []app.Film) bool {
	j := 0
	for i := 0; i < len(full) && j < len(sub); i++ {
		if reflect.DeepEqual(full[i], sub[j]) {
			j++
		}
	}
	return j == len(sub)
}

func sameMultiset(a, b []app.Film) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int)
	for _, f := range a {
		counts[fmt.Sprintf("%#v|%s|%s", f, DirectorOrEmpty(f), CountryOrEmpty(f))]++
	}
	for _, f := range b {
		key := fmt.Sprintf("%#v|%s|%s", f, DirectorOrEmpty(f), CountryOrEmpty(f))
		counts[key]--
		if counts[key] < 0 {
			return false
		}
	}
	return true
}

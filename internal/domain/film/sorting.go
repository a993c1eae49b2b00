package film

import (
	"cmp"
	"errors"
	"fmt"
	"sort"
	"strings"

	"film_stats/internal/app"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrUnknownColumn is returned when a column name does not match any sortable column
var ErrUnknownColumn = errors.New("unknown column")

// Column identifies one of the sortable table columns
type Column int

const (
	ColumnID Column = iota
	ColumnTitle
	ColumnReleaseYear
	ColumnDirector
	ColumnBoxOffice
	ColumnCountry
)

// SortableColumns lists the table columns in display order
var SortableColumns = []Column{
	ColumnID,
	ColumnTitle,
	ColumnReleaseYear,
	ColumnDirector,
	ColumnBoxOffice,
	ColumnCountry,
}

// String returns the column's field name as used in the dataset
func (c Column) String() string {
	switch c {
	case ColumnID:
		return "id"
	case ColumnTitle:
		return "title"
	case ColumnReleaseYear:
		return "release_year"
	case ColumnDirector:
		return "director"
	case ColumnBoxOffice:
		return "box_office"
	case ColumnCountry:
		return "country"
	default:
		return "unknown"
	}
}

// Descending reports whether the column sorts high-to-low.
// box_office is the only descending column.
func (c Column) Descending() bool {
	return c == ColumnBoxOffice
}

// ParseColumn resolves a case-insensitive column name
func ParseColumn(name string) (Column, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, col := range SortableColumns {
		if col.String() == normalized {
			return col, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}

// Comparator is a three-way comparison between two films:
// negative when a sorts before b, positive when after, zero for ties
type Comparator func(a, b app.Film) int

// Sorter orders films by column using locale-aware collation for text columns.
// A Sorter is not safe for concurrent use; the collator keeps internal buffers.
type Sorter struct {
	collator *collate.Collator
}

// NewSorter creates a sorter collating strings for the given language
func NewSorter(tag language.Tag) *Sorter {
	return &Sorter{
		collator: collate.New(tag),
	}
}

// Comparator returns the comparator for a column
func (s *Sorter) Comparator(col Column) (Comparator, error) {
	switch col {
	case ColumnID:
		return func(a, b app.Film) int { return cmp.Compare(a.ID, b.ID) }, nil
	case ColumnTitle:
		return func(a, b app.Film) int { return s.collator.CompareString(a.Title, b.Title) }, nil
	case ColumnReleaseYear:
		return func(a, b app.Film) int { return cmp.Compare(a.ReleaseYear, b.ReleaseYear) }, nil
	case ColumnDirector:
		return func(a, b app.Film) int {
			return s.collator.CompareString(DirectorOrEmpty(a), DirectorOrEmpty(b))
		}, nil
	case ColumnBoxOffice:
		return func(a, b app.Film) int { return cmp.Compare(BoxOfficeValue(b), BoxOfficeValue(a)) }, nil
	case ColumnCountry:
		return func(a, b app.Film) int {
			return s.collator.CompareString(CountryOrEmpty(a), CountryOrEmpty(b))
		}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownColumn, int(col))
	}
}

// SortInPlace reorders films by column. The sort is stable, so films that
// compare equal keep their current relative order.
func (s *Sorter) SortInPlace(films []app.Film, col Column) error {
	compare, err := s.Comparator(col)
	if err != nil {
		return err
	}

	sort.SliceStable(films, func(i, j int) bool {
		return compare(films[i], films[j]) < 0
	})
	return nil
}

// SortFilms returns a new slice with films sorted by column
// Pure function: Does not modify input slice, returns new sorted slice
func (s *Sorter) SortFilms(films []app.Film, col Column) ([]app.Film, error) {
	sorted := make([]app.Film, len(films))
	copy(sorted, films)

	if err := s.SortInPlace(sorted, col); err != nil {
		return nil, err
	}
	return sorted, nil
}

package view

import (
	"errors"
	"fmt"

	"film_stats/internal/app"
	"film_stats/internal/domain/film"

	"github.com/rs/zerolog/log"
)

var (
	// ErrNotLoaded is returned by filter and sort before a dataset has been loaded
	ErrNotLoaded = errors.New("dataset not loaded")

	// ErrAlreadyLoaded is returned when Load is called a second time
	ErrAlreadyLoaded = errors.New("dataset already loaded")
)

// Status represents the lifecycle of the view state
type Status int

const (
	// Unloaded indicates no dataset has arrived yet
	Unloaded Status = iota

	// Loaded indicates Original and Current are populated
	Loaded
)

// String returns the string representation of a status
func (s Status) String() string {
	switch s {
	case Unloaded:
		return "Unloaded"
	case Loaded:
		return "Loaded"
	default:
		return "Unknown"
	}
}

// State holds the immutable original dataset and the current filtered/sorted view.
//
// Original never changes after Load. Current is replaced by every filter,
// which always starts again from Original, and reordered in place by every
// sort, which works on whatever subset Current holds at that moment.
// State is meant to be driven from a single goroutine.
type State struct {
	status   Status
	original []app.Film
	current  []app.Film
	sorter   *film.Sorter
}

// NewState creates an unloaded view state
func NewState(sorter *film.Sorter) *State {
	return &State{
		status: Unloaded,
		sorter: sorter,
	}
}

// Status returns the current lifecycle status
func (s *State) Status() Status {
	return s.status
}

// Load populates Original and Current with independent copies of films
func (s *State) Load(films []app.Film) error {
	if s.status == Loaded {
		return ErrAlreadyLoaded
	}

	s.original = cloneFilms(films)
	s.current = cloneFilms(films)
	s.status = Loaded

	log.Debug().
		Int("films", len(films)).
		Str("status", s.status.String()).
		Msg("View state loaded")

	return nil
}

// ApplyFilter re-derives Current from Original using term and returns a copy of it
func (s *State) ApplyFilter(term string) ([]app.Film, error) {
	if s.status != Loaded {
		return nil, ErrNotLoaded
	}

	s.current = film.FilterFilms(s.original, term)

	log.Debug().
		Str("term", term).
		Int("matches", len(s.current)).
		Int("total", len(s.original)).
		Msg("Applied filter")

	return cloneFilms(s.current), nil
}

// ApplySort reorders Current in place by column and returns a copy of it
func (s *State) ApplySort(col film.Column) ([]app.Film, error) {
	if s.status != Loaded {
		return nil, ErrNotLoaded
	}

	if err := s.sorter.SortInPlace(s.current, col); err != nil {
		return nil, fmt.Errorf("failed to sort by %s: %w", col, err)
	}

	log.Debug().
		Str("column", col.String()).
		Bool("descending", col.Descending()).
		Int("rows", len(s.current)).
		Msg("Applied sort")

	return cloneFilms(s.current), nil
}

// Original returns a copy of the dataset as loaded
func (s *State) Original() []app.Film {
	return cloneFilms(s.original)
}

// Current returns a copy of the working view
func (s *State) Current() []app.Film {
	return cloneFilms(s.current)
}

// cloneFilms copies the slice; Film values share no mutable state beyond
// the director/country pointers, which are never written through.
func cloneFilms(films []app.Film) []app.Film {
	out := make([]app.Film, len(films))
	copy(out, films)
	return out
}

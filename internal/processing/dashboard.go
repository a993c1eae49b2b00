package processing

import (
	"context"
	"errors"
	"fmt"

	"film_stats/internal/app"
	"film_stats/internal/domain/film"
	"film_stats/internal/domain/view"
	"film_stats/internal/filmsource"

	"github.com/rs/zerolog/log"
)

// Dashboard connects the dataset source, the view state and a renderer.
// Hosts wire their input events to Search and SortBy; every operation is
// followed by the matching render call. Charts are drawn once from the
// original dataset and never redrawn by Search or SortBy.
//
// Dashboard is not safe for concurrent use. Hosts deliver events from a
// single goroutine.
type Dashboard struct {
	source   FilmSourceInterface
	renderer Renderer
	state    *view.State
	topN     int

	activeTerm string
	activeSort *film.Column
}

// NewDashboard creates a dashboard in the Unloaded state
func NewDashboard(source FilmSourceInterface, renderer Renderer, sorter *film.Sorter, topN int) *Dashboard {
	if topN <= 0 {
		topN = film.DefaultTopN
	}

	return &Dashboard{
		source:   source,
		renderer: renderer,
		state:    view.NewState(sorter),
		topN:     topN,
	}
}

// Status returns the lifecycle status of the underlying view state
func (d *Dashboard) Status() view.Status {
	return d.state.Status()
}

// Columns returns the sortable columns in display order
func (d *Dashboard) Columns() []film.Column {
	return film.SortableColumns
}

// ActiveTerm returns the last search term applied
func (d *Dashboard) ActiveTerm() string {
	return d.activeTerm
}

// ActiveSort returns the column of the last sort applied since the last filter
func (d *Dashboard) ActiveSort() (film.Column, bool) {
	if d.activeSort == nil {
		return 0, false
	}
	return *d.activeSort, true
}

// Start fetches the dataset and presents it
func (d *Dashboard) Start(ctx context.Context) error {
	films, err := d.Fetch(ctx)
	return d.Present(ctx, films, err)
}

// Fetch loads the dataset from the source without touching the view state
func (d *Dashboard) Fetch(ctx context.Context) ([]app.Film, error) {
	films, err := d.source.FetchFilms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch films: %w", err)
	}
	return films, nil
}

// Present completes a fetch. On failure the error is rendered and the state
// stays Unloaded. On success the state is loaded and the table and both
// charts are rendered.
func (d *Dashboard) Present(ctx context.Context, films []app.Film, fetchErr error) error {
	if fetchErr != nil {
		log.Error().Err(fetchErr).Msg("Failed to load film dataset")

		if err := d.renderer.RenderError(ctx, userMessage(fetchErr)); err != nil {
			log.Error().Err(err).Msg("Failed to render load error")
		}
		return fetchErr
	}

	if err := d.state.Load(films); err != nil {
		return fmt.Errorf("failed to load view state: %w", err)
	}

	log.Info().
		Int("films", len(films)).
		Int("top_n", d.topN).
		Msg("Film dataset loaded")

	if err := d.renderer.RenderTable(ctx, d.state.Current(), d.Columns()); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	original := d.state.Original()

	directors := film.TopDirectors(original, d.topN)
	if err := d.renderer.RenderDirectorsChart(ctx, directors); err != nil {
		return fmt.Errorf("failed to render directors chart: %w", err)
	}

	topFilms := film.TopFilmsByBoxOffice(original, d.topN)
	if err := d.renderer.RenderFilmsChart(ctx, topFilms); err != nil {
		return fmt.Errorf("failed to render films chart: %w", err)
	}

	log.Debug().
		Int("directors", len(directors)).
		Int("top_films", len(topFilms)).
		Msg("Rendered initial dashboard")

	return nil
}

// Search re-filters the original dataset by term and re-renders the table.
// Any previous sort order is dropped.
func (d *Dashboard) Search(ctx context.Context, term string) error {
	rows, err := d.state.ApplyFilter(term)
	if err != nil {
		return fmt.Errorf("failed to apply filter: %w", err)
	}

	d.activeTerm = term
	d.activeSort = nil

	if err := d.renderer.RenderTable(ctx, rows, d.Columns()); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

// SortBy sorts the current rows by column and re-renders the table
func (d *Dashboard) SortBy(ctx context.Context, col film.Column) error {
	rows, err := d.state.ApplySort(col)
	if err != nil {
		return fmt.Errorf("failed to apply sort: %w", err)
	}

	d.activeSort = &col

	if err := d.renderer.RenderTable(ctx, rows, d.Columns()); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

// userMessage reports a load error by its own message, without the fetch
// wrapper. Any other error is reported as is.
func userMessage(err error) string {
	var loadErr *filmsource.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Error()
	}
	return err.Error()
}

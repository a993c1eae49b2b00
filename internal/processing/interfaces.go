package processing

import (
	"context"

	"film_stats/internal/app"
	"film_stats/internal/domain/film"
)

// FilmSourceInterface defines the dataset loader methods used by Dashboard
type FilmSourceInterface interface {
	FetchFilms(ctx context.Context) ([]app.Film, error)
}

// Renderer draws the dashboard. Implementations decide what "drawing" means:
// a terminal frame, spreadsheet tabs or a JSON snapshot.
type Renderer interface {
	// RenderTable draws the current rows; columns are the sortable headers in display order
	RenderTable(ctx context.Context, rows []app.Film, columns []film.Column) error

	// RenderDirectorsChart draws the top directors by film count, highest first
	RenderDirectorsChart(ctx context.Context, entries []app.DirectorCount) error

	// RenderFilmsChart draws the top films by box office, highest first
	RenderFilmsChart(ctx context.Context, entries []app.FilmBoxOffice) error

	// RenderError shows a failed load to the user
	RenderError(ctx context.Context, message string) error
}

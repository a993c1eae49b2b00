package filmsource

import (
	"context"

	"film_stats/internal/app"
)

// FilmSource defines the interface for loading the film dataset
// This separates infrastructure concerns from business logic
type FilmSource interface {
	FetchFilms(ctx context.Context) ([]app.Film, error)

	// Fetch tracking
	GetFetchCount() int64
}

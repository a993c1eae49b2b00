package mocks

import (
	"context"

	"film_stats/internal/app"
)

// MockFilmSource is a test double for the filmsource.Client
type MockFilmSource struct {
	// Responses to return
	Films []app.Film
	Error error

	// Call tracking
	FetchCalls int
}

// NewMockFilmSource creates a mock source returning films
func NewMockFilmSource(films []app.Film) *MockFilmSource {
	return &MockFilmSource{Films: films}
}

func (m *MockFilmSource) FetchFilms(ctx context.Context) ([]app.Film, error) {
	m.FetchCalls++
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Films, nil
}

func (m *MockFilmSource) GetFetchCount() int64 {
	return int64(m.FetchCalls)
}

package mocks

import (
	"context"
	"sync"

	"film_stats/internal/app"
	"film_stats/internal/domain/film"
)

// MockRenderer is a test double recording every render call
type MockRenderer struct {
	mu sync.Mutex

	// Errors to return
	RenderTableError          error
	RenderDirectorsChartError error
	RenderFilmsChartError     error
	RenderErrorError          error

	// Call tracking
	TableCalls     [][]app.Film
	Columns        []film.Column
	DirectorsCalls [][]app.DirectorCount
	FilmsCalls     [][]app.FilmBoxOffice
	ErrorMessages  []string
}

// NewMockRenderer creates a new mock renderer
func NewMockRenderer() *MockRenderer {
	return &MockRenderer{}
}

func (m *MockRenderer) RenderTable(ctx context.Context, rows []app.Film, columns []film.Column) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TableCalls = append(m.TableCalls, rows)
	m.Columns = columns
	return m.RenderTableError
}

func (m *MockRenderer) RenderDirectorsChart(ctx context.Context, entries []app.DirectorCount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DirectorsCalls = append(m.DirectorsCalls, entries)
	return m.RenderDirectorsChartError
}

func (m *MockRenderer) RenderFilmsChart(ctx context.Context, entries []app.FilmBoxOffice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FilmsCalls = append(m.FilmsCalls, entries)
	return m.RenderFilmsChartError
}

func (m *MockRenderer) RenderError(ctx context.Context, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorMessages = append(m.ErrorMessages, message)
	return m.RenderErrorError
}

// LastTable returns the rows of the most recent RenderTable call
func (m *MockRenderer) LastTable() []app.Film {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.TableCalls) == 0 {
		return nil
	}
	return m.TableCalls[len(m.TableCalls)-1]
}

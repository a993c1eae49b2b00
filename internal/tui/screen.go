// Package tui is the interactive terminal host for the film dashboard.
package tui

import (
	"context"

	"film_stats/internal/app"
	"film_stats/internal/domain/film"
	"film_stats/internal/processing"
)

// Screen is the renderer behind the terminal view. It keeps the last frame
// handed to it by the dashboard; Model.View draws from it.
type Screen struct {
	rows      []app.Film
	columns   []film.Column
	directors []app.DirectorCount
	films     []app.FilmBoxOffice
	errMsg    string
}

// NewScreen creates an empty screen
func NewScreen() *Screen {
	return &Screen{}
}

// RenderTable replaces the visible table rows
func (s *Screen) RenderTable(ctx context.Context, rows []app.Film, columns []film.Column) error {
	s.rows = append(make([]app.Film, 0, len(rows)), rows...)
	s.columns = append(make([]film.Column, 0, len(columns)), columns...)
	return nil
}

// RenderDirectorsChart replaces the directors chart
func (s *Screen) RenderDirectorsChart(ctx context.Context, entries []app.DirectorCount) error {
	s.directors = append(make([]app.DirectorCount, 0, len(entries)), entries...)
	return nil
}

// RenderFilmsChart replaces the box office chart
func (s *Screen) RenderFilmsChart(ctx context.Context, entries []app.FilmBoxOffice) error {
	s.films = append(make([]app.FilmBoxOffice, 0, len(entries)), entries...)
	return nil
}

// RenderError shows message in place of the dashboard
func (s *Screen) RenderError(ctx context.Context, message string) error {
	s.errMsg = message
	return nil
}

// Rows returns the rows of the last table render
func (s *Screen) Rows() []app.Film {
	return s.rows
}

// Error returns the last rendered error message, if any
func (s *Screen) Error() string {
	return s.errMsg
}

var _ processing.Renderer = (*Screen)(nil)

// Package report captures the rendered dashboard as a JSON snapshot that can
// be written to disk and published alongside the terminal view.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"film_stats/internal/app"
	"film_stats/internal/domain/film"

	"github.com/rs/zerolog/log"
)

// DirectorBar is one bar of the directors chart with its hover text
type DirectorBar struct {
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Tooltip string `json:"tooltip"`
}

// FilmBar is one bar of the box office chart with its hover text
type FilmBar struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	BoxOffice float64 `json:"box_office"`
	Tooltip   string  `json:"tooltip"`
}

// Snapshot is the last rendered state of the dashboard
type Snapshot struct {
	Generated time.Time     `json:"generated"`
	Source    string        `json:"source"`
	Error     string        `json:"error,omitempty"`
	Columns   []string      `json:"columns"`
	Rows      []app.Film    `json:"rows"`
	Directors []DirectorBar `json:"directors"`
	Films     []FilmBar     `json:"films"`
}

// Writer is a renderer that keeps the latest table and charts in memory
// and writes them out as JSON on Flush
type Writer struct {
	path   string
	source string
	now    func() time.Time

	mu       sync.Mutex
	snapshot Snapshot
}

// NewWriter creates a report writer for the given output path
func NewWriter(path, source string) *Writer {
	return &Writer{
		path:   path,
		source: source,
		now:    time.Now,
		snapshot: Snapshot{
			Columns:   []string{},
			Rows:      []app.Film{},
			Directors: []DirectorBar{},
			Films:     []FilmBar{},
		},
	}
}

// Path returns where Flush writes the report
func (w *Writer) Path() string {
	return w.path
}

// RenderTable records the visible rows
func (w *Writer) RenderTable(ctx context.Context, rows []app.Film, columns []film.Column) error {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.String()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.snapshot.Columns = names
	w.snapshot.Rows = append(make([]app.Film, 0, len(rows)), rows...)
	return nil
}

// RenderDirectorsChart records the directors chart
func (w *Writer) RenderDirectorsChart(ctx context.Context, entries []app.DirectorCount) error {
	bars := make([]DirectorBar, len(entries))
	for i, e := range entries {
		bars[i] = DirectorBar{
			Label:   e.Label,
			Count:   e.Count,
			Tooltip: DirectorTooltip(e),
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.snapshot.Directors = bars
	return nil
}

// RenderFilmsChart records the box office chart
func (w *Writer) RenderFilmsChart(ctx context.Context, entries []app.FilmBoxOffice) error {
	bars := make([]FilmBar, len(entries))
	for i, e := range entries {
		bars[i] = FilmBar{
			ID:        e.ID,
			Title:     e.Title,
			BoxOffice: e.BoxOffice,
			Tooltip:   FilmTooltip(e),
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.snapshot.Films = bars
	return nil
}

// RenderError records the load error
func (w *Writer) RenderError(ctx context.Context, message string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.snapshot.Error = message
	return nil
}

// Snapshot returns a copy of the current snapshot stamped with the current time
func (w *Writer) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.snapshot
	s.Generated = w.now().UTC()
	s.Source = w.source
	s.Columns = append(make([]string, 0, len(w.snapshot.Columns)), w.snapshot.Columns...)
	s.Rows = append(make([]app.Film, 0, len(w.snapshot.Rows)), w.snapshot.Rows...)
	s.Directors = append(make([]DirectorBar, 0, len(w.snapshot.Directors)), w.snapshot.Directors...)
	s.Films = append(make([]FilmBar, 0, len(w.snapshot.Films)), w.snapshot.Films...)
	return s
}

// Flush writes the snapshot to disk as indented JSON
func (w *Writer) Flush() error {
	data, err := json.MarshalIndent(w.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	if err := os.WriteFile(w.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", w.path, err)
	}

	log.Info().
		Str("path", w.path).
		Int("bytes", len(data)).
		Msg("Wrote film report")
	return nil
}

// DirectorTooltip formats the hover text for a directors chart bar
func DirectorTooltip(e app.DirectorCount) string {
	return fmt.Sprintf("Director: %s\nMovies: %d", e.Label, e.Count)
}

// FilmTooltip formats the hover text for a box office chart bar, in millions
func FilmTooltip(e app.FilmBoxOffice) string {
	return fmt.Sprintf("Film: %s\nBox Office: $%.1fM", e.Title, e.BoxOffice/1_000_000)
}

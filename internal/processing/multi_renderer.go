package processing

import (
	"context"

	"film_stats/internal/app"
	"film_stats/internal/domain/film"

	"golang.org/x/sync/errgroup"
)

// MultiRenderer fans each render call out to several renderers concurrently
// and waits for all of them. The first error is returned.
//
// Each renderer receives its own copy of the rows so none can observe another's
// mutations.
type MultiRenderer struct {
	renderers []Renderer
}

// NewMultiRenderer combines renderers; nil entries are skipped
func NewMultiRenderer(renderers ...Renderer) *MultiRenderer {
	m := &MultiRenderer{}
	for _, r := range renderers {
		if r != nil {
			m.renderers = append(m.renderers, r)
		}
	}
	return m
}

// Len returns the number of combined renderers
func (m *MultiRenderer) Len() int {
	return len(m.renderers)
}

func (m *MultiRenderer) RenderTable(ctx context.Context, rows []app.Film, columns []film.Column) error {
	return m.each(ctx, func(ctx context.Context, r Renderer) error {
		return r.RenderTable(ctx, append([]app.Film(nil), rows...), columns)
	})
}

func (m *MultiRenderer) RenderDirectorsChart(ctx context.Context, entries []app.DirectorCount) error {
	return m.each(ctx, func(ctx context.Context, r Renderer) error {
		return r.RenderDirectorsChart(ctx, append([]app.DirectorCount(nil), entries...))
	})
}

func (m *MultiRenderer) RenderFilmsChart(ctx context.Context, entries []app.FilmBoxOffice) error {
	return m.each(ctx, func(ctx context.Context, r Renderer) error {
		return r.RenderFilmsChart(ctx, append([]app.FilmBoxOffice(nil), entries...))
	})
}

func (m *MultiRenderer) RenderError(ctx context.Context, message string) error {
	return m.each(ctx, func(ctx context.Context, r Renderer) error {
		return r.RenderError(ctx, message)
	})
}

func (m *MultiRenderer) each(ctx context.Context, fn func(context.Context, Renderer) error) error {
	if len(m.renderers) == 1 {
		return fn(ctx, m.renderers[0])
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, r := range m.renderers {
		g.Go(func() error {
			return fn(gctx, r)
		})
	}
	return g.Wait()
}

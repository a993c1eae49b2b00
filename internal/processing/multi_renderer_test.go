package processing

import (
	"context"
	"errors"
	"testing"

	"film_stats/internal/app"
	"film_stats/internal/domain/film"
	"film_stats/internal/processing/mocks"
)

func TestMultiRendererFansOut(t *testing.T) {
	first := mocks.NewMockRenderer()
	second := mocks.NewMockRenderer()
	multi := NewMultiRenderer(first, nil, second)

	if multi.Len() != 2 {
		t.Fatalf("Expected nil renderers to be skipped, got %d", multi.Len())
	}

	ctx := context.Background()
	rows := []app.Film{{ID: 1}, {ID: 2}}

	if err := multi.RenderTable(ctx, rows, film.SortableColumns); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := multi.RenderDirectorsChart(ctx, []app.DirectorCount{{Label: "A", Count: 1}}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := multi.RenderFilmsChart(ctx, []app.FilmBoxOffice{{ID: 1, BoxOffice: 5}}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := multi.RenderError(ctx, "boom"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for i, r := range []*mocks.MockRenderer{first, second} {
		if len(r.TableCalls) != 1 || len(r.DirectorsCalls) != 1 || len(r.FilmsCalls) != 1 || len(r.ErrorMessages) != 1 {
			t.Errorf("Renderer %d did not receive every call", i)
		}
	}

	// Each renderer gets its own copy of the rows
	first.TableCalls[0][0].ID = 99
	if second.TableCalls[0][0].ID != 1 || rows[0].ID != 1 {
		t.Error("Expected renderers to receive independent row slices")
	}
}

func TestMultiRendererReturnsError(t *testing.T) {
	failing := mocks.NewMockRenderer()
	failing.RenderTableError = errors.New("sheet write failed")
	healthy := mocks.NewMockRenderer()

	multi := NewMultiRenderer(healthy, failing)
	err := multi.RenderTable(context.Background(), nil, film.SortableColumns)

	if !errors.Is(err, failing.RenderTableError) {
		t.Errorf("Expected sheet write error, got %v", err)
	}
}

func TestMultiRendererSingle(t *testing.T) {
	only := mocks.NewMockRenderer()
	multi := NewMultiRenderer(only)

	if err := multi.RenderError(context.Background(), "Empty dataset"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(only.ErrorMessages) != 1 || only.ErrorMessages[0] != "Empty dataset" {
		t.Errorf("Unexpected messages: %v", only.ErrorMessages)
	}
}

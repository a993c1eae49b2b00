package processing

import (
	"film_stats/internal/filmsource"
	"film_stats/internal/report"
	"film_stats/internal/sheets"
)

// Compile-time interface compliance checks
// These will cause compilation errors if the types don't implement the interfaces

var (
	_ FilmSourceInterface   = (*filmsource.Client)(nil)
	_ filmsource.FilmSource = (*filmsource.Client)(nil)
	_ Renderer              = (*sheets.DashboardManager)(nil)
	_ Renderer              = (*report.Writer)(nil)
	_ Renderer              = (*MultiRenderer)(nil)
)

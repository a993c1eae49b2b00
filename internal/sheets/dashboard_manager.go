package sheets

import (
	"context"
	"fmt"
	"time"

	"film_stats/internal/app"
	"film_stats/internal/config"
	"film_stats/internal/domain/film"

	"github.com/rs/zerolog/log"
)

// Sheet names used by the dashboard
const (
	FilmsSheet     = "Films"
	DirectorsSheet = "Top Directors"
	TopFilmsSheet  = "Top Films"
	StatusSheet    = "Status"
)

// DashboardManager renders the film dashboard into a spreadsheet.
// Each render replaces the contents of one tab.
type DashboardManager struct {
	api           SheetsAPI
	spreadsheetID string
	retry         config.RetryConfig
	now           func() time.Time
}

// NewDashboardManager creates a dashboard manager with the given API client
func NewDashboardManager(api SheetsAPI, spreadsheetID string, retry config.RetryConfig) *DashboardManager {
	return &DashboardManager{
		api:           api,
		spreadsheetID: spreadsheetID,
		retry:         retry,
		now:           time.Now,
	}
}

// EnsureSheet creates the named sheet if it doesn't exist
func (m *DashboardManager) EnsureSheet(ctx context.Context, sheetName string) error {
	exists, err := m.api.SheetExists(ctx, m.spreadsheetID, sheetName)
	if err != nil {
		return fmt.Errorf("failed to check if sheet %s exists: %w", sheetName, err)
	}
	if exists {
		return nil
	}

	log.Info().
		Str("sheet_name", sheetName).
		Msg("Creating dashboard sheet")

	if err := m.api.CreateSheet(ctx, m.spreadsheetID, sheetName); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheetName, err)
	}
	return nil
}

// RenderTable writes the visible rows to the Films tab
func (m *DashboardManager) RenderTable(ctx context.Context, rows []app.Film, columns []film.Column) error {
	values := make([][]interface{}, 0, len(rows)+1)
	values = append(values, ColumnHeaders(columns))
	for _, f := range rows {
		values = append(values, FilmRow(f, columns))
	}

	if err := m.replaceSheet(ctx, FilmsSheet, values, len(columns)); err != nil {
		return err
	}

	log.Debug().
		Int("rows", len(rows)).
		Msg("Rendered film table to sheet")
	return nil
}

// RenderDirectorsChart writes the top directors to the Top Directors tab
func (m *DashboardManager) RenderDirectorsChart(ctx context.Context, entries []app.DirectorCount) error {
	values := make([][]interface{}, 0, len(entries)+1)
	values = append(values, []interface{}{"Director", "Movies"})
	for _, e := range entries {
		values = append(values, []interface{}{e.Label, e.Count})
	}
	return m.replaceSheet(ctx, DirectorsSheet, values, 2)
}

// RenderFilmsChart writes the top films to the Top Films tab
func (m *DashboardManager) RenderFilmsChart(ctx context.Context, entries []app.FilmBoxOffice) error {
	values := make([][]interface{}, 0, len(entries)+1)
	values = append(values, []interface{}{"Film", "Box Office"})
	for _, e := range entries {
		values = append(values, []interface{}{e.Title, e.BoxOffice})
	}
	return m.replaceSheet(ctx, TopFilmsSheet, values, 2)
}

// RenderError writes the load error and when it happened to the Status tab
func (m *DashboardManager) RenderError(ctx context.Context, message string) error {
	values := [][]interface{}{
		{"Error", message},
		{"Updated", m.now().UTC().Format(time.RFC3339)},
	}
	return m.replaceSheet(ctx, StatusSheet, values, 2)
}

func (m *DashboardManager) replaceSheet(ctx context.Context, sheetName string, values [][]interface{}, cols int) error {
	return withRetry(ctx, m.retry, "write "+sheetName, func(ctx context.Context) error {
		if err := m.EnsureSheet(ctx, sheetName); err != nil {
			return err
		}

		if err := m.api.EnsureSheetCapacity(ctx, m.spreadsheetID, sheetName, len(values), cols); err != nil {
			return fmt.Errorf("failed to ensure capacity for %s: %w", sheetName, err)
		}

		clearRange := fmt.Sprintf("'%s'!A:%s", sheetName, columnLetter(cols))
		if err := m.api.ClearRange(ctx, m.spreadsheetID, clearRange); err != nil {
			return fmt.Errorf("failed to clear %s: %w", sheetName, err)
		}

		if err := m.api.UpdateRange(ctx, m.spreadsheetID, fmt.Sprintf("'%s'!A1", sheetName), values); err != nil {
			return fmt.Errorf("failed to write %s: %w", sheetName, err)
		}
		return nil
	})
}

// ColumnHeaders returns the header row for the given columns
func ColumnHeaders(columns []film.Column) []interface{} {
	headers := make([]interface{}, len(columns))
	for i, col := range columns {
		headers[i] = col.String()
	}
	return headers
}

// FilmRow converts a film into spreadsheet cells in column order.
// Box office is kept in its display form.
func FilmRow(f app.Film, columns []film.Column) []interface{} {
	row := make([]interface{}, len(columns))
	for i, col := range columns {
		switch col {
		case film.ColumnID:
			row[i] = f.ID
		case film.ColumnTitle:
			row[i] = f.Title
		case film.ColumnReleaseYear:
			row[i] = f.ReleaseYear
		case film.ColumnDirector:
			row[i] = film.DirectorOrEmpty(f)
		case film.ColumnBoxOffice:
			row[i] = string(f.BoxOffice)
		case film.ColumnCountry:
			row[i] = film.CountryOrEmpty(f)
		default:
			row[i] = ""
		}
	}
	return row
}

// columnLetter converts a 1-based column count to its A1 letter (1 -> A, 27 -> AA)
func columnLetter(n int) string {
	if n < 1 {
		return "A"
	}
	letters := ""
	for n > 0 {
		n--
		letters = string(rune('A'+n%26)) + letters
		n /= 26
	}
	return letters
}

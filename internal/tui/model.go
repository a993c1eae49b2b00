package tui

import (
	"context"
	"fmt"
	"strconv"

	"film_stats/internal/app"
	"film_stats/internal/domain/film"
	"film_stats/internal/domain/view"
	"film_stats/internal/processing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rs/zerolog/log"
)

type chartPanel int

const (
	panelDirectors chartPanel = iota
	panelFilms
)

func (p chartPanel) String() string {
	if p == panelFilms {
		return "Top Films by Box Office"
	}
	return "Top Directors by Number of Movies"
}

// fetchedMsg carries the result of the background dataset fetch
type fetchedMsg struct {
	films []app.Film
	err   error
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	selectedStyle = headerStyle.Reverse(true)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the bubbletea model for the dashboard. The fetch runs as a
// command; everything that touches the dashboard happens in Update.
type Model struct {
	ctx    context.Context
	dash   *processing.Dashboard
	screen *Screen

	search textinput.Model
	keys   keyMap
	help   help.Model

	cursorCol int
	offset    int
	panel     chartPanel
	loading   bool
	status    string

	width  int
	height int
}

// New creates the model. screen must be the renderer (or one of the
// renderers) dash draws into.
func New(ctx context.Context, dash *processing.Dashboard, screen *Screen) Model {
	search := textinput.New()
	search.Placeholder = "Search by title or director"
	search.Prompt = "Search: "
	search.Focus()

	return Model{
		ctx:     ctx,
		dash:    dash,
		screen:  screen,
		search:  search,
		keys:    defaultKeyMap(),
		help:    help.New(),
		loading: true,
		width:   100,
		height:  30,
	}
}

// Init starts the dataset fetch
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetch)
}

func (m Model) fetch() tea.Msg {
	films, err := m.dash.Fetch(m.ctx)
	return fetchedMsg{films: films, err: err}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchedMsg:
		m.loading = false
		if err := m.dash.Present(m.ctx, msg.films, msg.err); err != nil {
			m.status = err.Error()
			return m, nil
		}
		// Text typed while loading has not been applied yet
		if m.search.Value() != "" {
			m.applySearch()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampOffset()
		return m, nil

	case tea.KeyMsg:
		columns := m.dash.Columns()
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Left):
			if m.cursorCol > 0 {
				m.cursorCol--
			}
			return m, nil
		case key.Matches(msg, m.keys.Right):
			if m.cursorCol < len(columns)-1 {
				m.cursorCol++
			}
			return m, nil
		case key.Matches(msg, m.keys.Sort):
			m.sortBy(columns[m.cursorCol])
			return m, nil
		case key.Matches(msg, m.keys.Up):
			m.scroll(-1)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.scroll(1)
			return m, nil
		case key.Matches(msg, m.keys.PageUp):
			m.scroll(-m.pageSize())
			return m, nil
		case key.Matches(msg, m.keys.PageDown):
			m.scroll(m.pageSize())
			return m, nil
		case key.Matches(msg, m.keys.ClearSearch):
			if m.search.Value() != "" {
				m.search.SetValue("")
				m.applySearch()
			}
			return m, nil
		case key.Matches(msg, m.keys.Panel):
			if m.panel == panelDirectors {
				m.panel = panelFilms
			} else {
				m.panel = panelDirectors
			}
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		previous := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != previous {
			m.applySearch()
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) applySearch() {
	if m.dash.Status() != view.Loaded {
		return
	}

	if err := m.dash.Search(m.ctx, m.search.Value()); err != nil {
		log.Error().Err(err).Str("term", m.search.Value()).Msg("Search failed")
		m.status = err.Error()
		return
	}
	m.offset = 0
	m.status = ""
}

func (m *Model) sortBy(col film.Column) {
	if m.dash.Status() != view.Loaded {
		return
	}

	if err := m.dash.SortBy(m.ctx, col); err != nil {
		log.Error().Err(err).Stringer("column", col).Msg("Sort failed")
		m.status = err.Error()
		return
	}
	m.offset = 0
	m.status = ""
}

// tableHeight is how many data rows fit on screen alongside the chart
func (m Model) tableHeight() int {
	h := m.height - 22
	if h < 3 {
		return 3
	}
	return h
}

func (m Model) pageSize() int {
	return m.tableHeight()
}

func (m *Model) scroll(delta int) {
	m.offset += delta
	m.clampOffset()
}

func (m *Model) clampOffset() {
	maxOffset := len(m.screen.Rows()) - m.tableHeight()
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View renders the dashboard
func (m Model) View() string {
	title := titleStyle.Render("Film Dataset")

	if m.loading {
		return lipgloss.JoinVertical(lipgloss.Left, title, "", "Loading films...")
	}

	if msg := m.screen.Error(); msg != "" {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			errorStyle.Render("Error loading data: "+msg),
			"",
			m.help.View(m.keys),
		)
	}

	parts := []string{
		title,
		m.search.View(),
		m.renderTable(),
		statusStyle.Render(m.statusLine()),
		"",
		titleStyle.Render(m.panel.String()),
		m.renderChart(),
		"",
		m.help.View(m.keys),
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) statusLine() string {
	if m.status != "" {
		return m.status
	}

	rows := len(m.screen.Rows())
	if rows == 0 {
		return "No matching films"
	}

	end := m.offset + m.tableHeight()
	if end > rows {
		end = rows
	}
	return fmt.Sprintf("Showing %d-%d of %d films", m.offset+1, end, rows)
}

func (m Model) renderTable() string {
	columns := m.dash.Columns()
	active, sorted := m.dash.ActiveSort()

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.String()
		if sorted && col == active {
			if col.Descending() {
				headers[i] += " ▼"
			} else {
				headers[i] += " ▲"
			}
		}
	}

	rows := m.screen.Rows()
	start := min(m.offset, len(rows))
	end := min(start+m.tableHeight(), len(rows))

	visible := make([][]string, 0, end-start)
	for _, f := range rows[start:end] {
		visible = append(visible, cells(f, columns))
	}

	cursor := m.cursorCol
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("238"))).
		Headers(headers...).
		Rows(visible...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				if col == cursor {
					return selectedStyle
				}
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

func (m Model) renderChart() string {
	if m.panel == panelFilms {
		return RenderFilmBars(m.screen.films, m.width)
	}
	return RenderDirectorBars(m.screen.directors, m.width)
}

// cells formats a film as table cells in column order
func cells(f app.Film, columns []film.Column) []string {
	row := make([]string, len(columns))
	for i, col := range columns {
		switch col {
		case film.ColumnID:
			row[i] = strconv.Itoa(f.ID)
		case film.ColumnTitle:
			row[i] = f.Title
		case film.ColumnReleaseYear:
			row[i] = strconv.Itoa(f.ReleaseYear)
		case film.ColumnDirector:
			row[i] = film.DirectorOrEmpty(f)
		case film.ColumnBoxOffice:
			row[i] = string(f.BoxOffice)
		case film.ColumnCountry:
			row[i] = film.CountryOrEmpty(f)
		}
	}
	return row
}

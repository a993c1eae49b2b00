package tui

import (
	"fmt"
	"math"
	"strings"

	"film_stats/internal/app"

	"github.com/charmbracelet/lipgloss"
)

const maxLabelWidth = 24

var (
	directorBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#36A2EB"))
	filmBarStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6384"))
	chartLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
)

// barWidth scales value from the [lo, hi] axis onto 0..width cells
func barWidth(value, lo, hi float64, width int) int {
	if width <= 0 || hi <= lo {
		return 0
	}

	w := int(math.Round((value - lo) / (hi - lo) * float64(width)))
	if w < 0 {
		return 0
	}
	if w > width {
		return width
	}
	return w
}

// filmAxis returns the box office axis bounds: 30% below the smallest
// value up to 30% above the largest
func filmAxis(entries []app.FilmBoxOffice) (lo, hi float64) {
	if len(entries) == 0 {
		return 0, 0
	}

	lowest, highest := entries[0].BoxOffice, entries[0].BoxOffice
	for _, e := range entries[1:] {
		lowest = math.Min(lowest, e.BoxOffice)
		highest = math.Max(highest, e.BoxOffice)
	}
	return lowest * 0.3, highest * 1.3
}

// RenderDirectorBars draws the directors chart with an axis starting at zero
func RenderDirectorBars(entries []app.DirectorCount, width int) string {
	if len(entries) == 0 {
		return chartLabelStyle.Render("No directors")
	}

	labels := make([]string, len(entries))
	maxCount := 0
	for i, e := range entries {
		labels[i] = e.Label
		if e.Count > maxCount {
			maxCount = e.Count
		}
	}

	labelWidth := labelColumnWidth(labels)
	barSpace := width - labelWidth - 8

	var b strings.Builder
	for i, e := range entries {
		bar := strings.Repeat("█", barWidth(float64(e.Count), 0, float64(maxCount), barSpace))
		fmt.Fprintf(&b, "%s │%s %d\n",
			chartLabelStyle.Render(padLabel(labels[i], labelWidth)),
			directorBarStyle.Render(bar),
			e.Count)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderFilmBars draws the box office chart in millions
func RenderFilmBars(entries []app.FilmBoxOffice, width int) string {
	if len(entries) == 0 {
		return chartLabelStyle.Render("No films")
	}

	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Title
	}

	lo, hi := filmAxis(entries)
	labelWidth := labelColumnWidth(labels)
	barSpace := width - labelWidth - 12

	var b strings.Builder
	for i, e := range entries {
		bar := strings.Repeat("█", barWidth(e.BoxOffice, lo, hi, barSpace))
		fmt.Fprintf(&b, "%s │%s $%.1fM\n",
			chartLabelStyle.Render(padLabel(labels[i], labelWidth)),
			filmBarStyle.Render(bar),
			e.BoxOffice/1_000_000)
	}
	return strings.TrimRight(b.String(), "\n")
}

func labelColumnWidth(labels []string) int {
	w := 0
	for _, l := range labels {
		if n := lipgloss.Width(l); n > w {
			w = n
		}
	}
	if w > maxLabelWidth {
		return maxLabelWidth
	}
	return w
}

// padLabel truncates or right-pads label to exactly width cells
func padLabel(label string, width int) string {
	if lipgloss.Width(label) > width {
		runes := []rune(label)
		for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
			runes = runes[:len(runes)-1]
		}
		label = string(runes) + "…"
	}
	return label + strings.Repeat(" ", max(0, width-lipgloss.Width(label)))
}

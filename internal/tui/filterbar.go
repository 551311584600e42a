package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeremynwa/automated-tech-newsletter/internal/digest"
	"github.com/jeremynwa/automated-tech-newsletter/internal/filter"
)

// filterOptions is the navigable option list of filter mode: the range
// presets followed by the type toggles.
var filterRanges = filter.AllRanges()

func filterOptionCount() int {
	return len(filterRanges) + len(digest.AllClasses())
}

// renderFilterBar draws the always-visible summary row: current range,
// type states, and the active filter chips with their removal keys.
func (a *App) renderFilterBar(width int) string {
	sep := a.theme.Dim.Render(" · ")

	var parts []string
	parts = append(parts, a.theme.FilterActive.Render(filter.RangeLabel(a.state.Range())))

	for _, c := range digest.AllClasses() {
		style := a.theme.FilterOff
		if a.state.TypeEnabled(c) {
			style = a.theme.FilterActive
		}
		parts = append(parts, style.Render(digest.ClassName(c)))
	}

	row := strings.Join(parts, sep)

	if len(a.chips) > 0 {
		var chips []string
		for i, c := range a.chips {
			label := c.Label
			if i < 9 {
				label += " ✕" + string(rune('1'+i))
			}
			chips = append(chips, a.theme.Chip.Render(label))
		}
		row += "  " + strings.Join(chips, " ")
	}

	bar := lipgloss.NewStyle().Width(width).PaddingLeft(1)
	return bar.Render(truncateStr(row, width*3))
}

// renderFilterPanel draws filter mode: cursor-navigable presets and type
// toggles.
func (a *App) renderFilterPanel(width int) string {
	var rangeParts []string
	for i, r := range filterRanges {
		style := a.theme.FilterOff
		if a.state.Range() == r {
			style = a.theme.FilterActive
		}
		label := filter.RangeLabel(r)
		if a.filterCursor == i {
			label = "[" + label + "]"
		}
		rangeParts = append(rangeParts, style.Render(label))
	}

	var typeParts []string
	for i, c := range digest.AllClasses() {
		style := a.theme.FilterOff
		if a.state.TypeEnabled(c) {
			style = a.theme.FilterActive
		}
		label := digest.ClassName(c)
		if a.filterCursor == len(filterRanges)+i {
			label = "[" + label + "]"
		}
		typeParts = append(typeParts, style.Render(label))
	}

	lines := []string{
		a.theme.Dim.Render(" Range ") + strings.Join(rangeParts, " "),
		a.theme.Dim.Render(" Types ") + strings.Join(typeParts, " "),
		a.theme.Dim.Render(" ←/→ move · space toggle · / keyword · c date · esc apply"),
	}
	bar := lipgloss.NewStyle().Width(width)
	return bar.Render(strings.Join(lines, "\n"))
}

// toggleFilterOption applies the option under the filter cursor.
func (a *App) toggleFilterOption() {
	if a.filterCursor < len(filterRanges) {
		a.state.SetRange(filterRanges[a.filterCursor])
		return
	}
	idx := a.filterCursor - len(filterRanges)
	classes := digest.AllClasses()
	if idx < len(classes) {
		a.state.ToggleType(classes[idx])
	}
}

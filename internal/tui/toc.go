package tui

import (
	"strings"

	"github.com/jeremynwa/automated-tech-newsletter/internal/digest"
)

// tocEntry is one table-of-contents line. Entries are generated once at
// load and only shown or hidden afterwards, in sync with their day.
type tocEntry struct {
	day *digest.Day
}

func buildTOC(days []*digest.Day) []tocEntry {
	entries := make([]tocEntry, 0, len(days))
	for _, d := range days {
		entries = append(entries, tocEntry{day: d})
	}
	return entries
}

// renderTOC draws the sidebar. Entries whose day is hidden are dropped from
// the list; the entry for activeDay is highlighted.
func renderTOC(entries []tocEntry, activeDay *digest.Day, theme Theme, width, height int) string {
	var lines []string
	lines = append(lines, theme.Section.Render(truncateStr("Contents", width)))
	lines = append(lines, "")

	for _, e := range entries {
		if e.day.Visibility != digest.Visible {
			continue
		}
		label := truncateStr(e.day.Label, width-2)
		if e.day == activeDay {
			lines = append(lines, theme.TocActive.Render("> "+label))
		} else {
			lines = append(lines, theme.TocEntry.Render("  "+label))
		}
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

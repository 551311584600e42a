package tui

import (
	"strings"

	"github.com/jeremynwa/automated-tech-newsletter/internal/store"
)

// renderSavedView draws the saved-articles list in insertion order. It is
// independent of the current filter state: a saved article stays listed
// even when filtered out of the feed.
func (a *App) renderSavedView(width, height int) string {
	if len(a.savedList) == 0 {
		empty := a.theme.NoResults.Render("No Saved Articles") + "\n\n" +
			a.theme.Dim.Render("Save articles with s to read them later")
		return padLines(empty, height)
	}

	var lines []string
	cursorLine := 0
	for i, item := range a.savedList {
		if i == a.savedCursor {
			cursorLine = len(lines)
		}
		lines = append(lines, a.renderSavedItem(item, i == a.savedCursor, width)...)
	}
	return window(lines, cursorLine, height)
}

func (a *App) renderSavedItem(item store.SavedArticle, selected bool, width int) []string {
	var out []string

	meta := "Saved on " + item.SavedAt.Format("Jan 2, 2006") + " · From " + item.OriginDate
	out = append(out, "  "+a.theme.Dim.Render(truncateStr(meta, width-2)))

	marker := "  "
	style := a.theme.Title
	if selected {
		marker = "> "
		style = a.theme.TitleActive
	}
	title := item.Title
	if title == "" {
		title = "(untitled)"
	}
	out = append(out, style.Render(marker+truncateStr(title, width-4)))

	summary := wrapText(item.Summary, width-4)
	for i, l := range strings.Split(summary, "\n") {
		if l == "" {
			continue
		}
		if i >= summaryPreviewLines {
			out = append(out, "    "+a.theme.Dim.Render("..."))
			break
		}
		out = append(out, "    "+a.theme.Summary.Render(l))
	}

	if selected && item.Link != "" {
		out = append(out, "    "+a.theme.Link.Render(truncateStr(item.Link, width-4)))
	}
	out = append(out, "")
	return out
}

// reloadSaved refreshes the cached saved list and badge count.
func (a *App) reloadSaved() {
	list, err := a.db.List()
	if err != nil {
		a.err = err
		return
	}
	a.savedList = list
	a.savedCount = len(list)
	if a.savedCursor >= len(list) {
		a.savedCursor = max(0, len(list)-1)
	}
}

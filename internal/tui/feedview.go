package tui

import (
	"strings"

	"github.com/jeremynwa/automated-tech-newsletter/internal/digest"
	"github.com/jeremynwa/automated-tech-newsletter/internal/similar"
	"github.com/jeremynwa/automated-tech-newsletter/internal/store"
)

const summaryPreviewLines = 4

// articleRef locates one visible article in the feed, flattened for cursor
// navigation.
type articleRef struct {
	day *digest.Day
	sec *digest.Section
	art *digest.Article
}

// buildRefs flattens the currently visible articles in document order.
func buildRefs(days []*digest.Day) []articleRef {
	var refs []articleRef
	for _, d := range days {
		if d.Visibility != digest.Visible {
			continue
		}
		for _, s := range d.Sections {
			if s.Visibility != digest.Visible {
				continue
			}
			for _, a := range s.Articles {
				if a.Visibility == digest.Visible {
					refs = append(refs, articleRef{day: d, sec: s, art: a})
				}
			}
		}
	}
	return refs
}

// renderFeed draws the visible content column, scrolled so the cursor
// article stays in view.
func (a *App) renderFeed(width, height int) string {
	if a.noResults {
		empty := a.theme.NoResults.Render("No results match your filters") + "\n\n" +
			a.theme.Dim.Render("Remove a filter chip or press f to adjust filters")
		return padLines(empty, height)
	}

	var lines []string
	cursorLine := 0

	var lastDay *digest.Day
	var lastSec *digest.Section
	for i, ref := range a.refs {
		if ref.day != lastDay {
			if lastDay != nil {
				lines = append(lines, "")
			}
			lines = append(lines, a.theme.DayHeading.Render(truncateStr(ref.day.Label, width)))
			lastDay = ref.day
			lastSec = nil
		}
		if ref.sec != lastSec {
			lines = append(lines, a.theme.Section.Render(truncateStr(ref.sec.Heading, width)))
			lastSec = ref.sec
		}
		if i == a.cursor {
			cursorLine = len(lines)
		}
		lines = append(lines, a.renderArticle(ref, i == a.cursor, width)...)
	}

	return window(lines, cursorLine, height)
}

func (a *App) renderArticle(ref articleRef, selected bool, width int) []string {
	art := ref.art
	var out []string

	marker := "  "
	titleStyle := a.theme.Title
	if selected {
		marker = "> "
		titleStyle = a.theme.TitleActive
	}
	if art.Highlight {
		titleStyle = a.theme.Match
	}

	title := art.Title
	if title == "" {
		title = "(untitled)"
	}
	badge := ""
	if a.savedState[store.ArticleID(art.Title, ref.day.DateStr)] {
		badge = " " + a.theme.Saved.Render("[saved]")
	}
	out = append(out, titleStyle.Render(marker+truncateStr(title, width-4))+badge)

	summary := wrapText(art.Summary, width-4)
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

	if selected && art.Link != "" {
		out = append(out, "    "+a.theme.Link.Render(truncateStr(art.Link, width-4)))
	}

	if selected && a.similarFor == art {
		out = append(out, a.renderSimilar(width)...)
	}

	out = append(out, "")
	return out
}

func (a *App) renderSimilar(width int) []string {
	var out []string
	if len(a.similarMatches) == 0 {
		out = append(out, "    "+a.theme.Dim.Render("No similar articles found"))
		return out
	}
	out = append(out, "    "+a.theme.Accent.Render("Similar articles"))
	for _, m := range a.similarMatches {
		card := m.Date + "  " + truncateStr(m.Article.Title, width-18)
		out = append(out, "    "+a.theme.SimilarCard.Render(card))
	}
	return out
}

func (a *App) findSimilar(art *digest.Article) []similar.Match {
	return similar.Find(art, a.days, 3)
}

// window returns height lines around focusLine.
func window(lines []string, focusLine, height int) string {
	if height <= 0 {
		return ""
	}
	start := 0
	if focusLine >= height-2 {
		start = focusLine - height/2
	}
	if start > len(lines)-height {
		start = len(lines) - height
	}
	if start < 0 {
		start = 0
	}
	end := start + height
	if end > len(lines) {
		end = len(lines)
	}
	out := lines[start:end]
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

func padLines(s string, height int) string {
	lines := strings.Split(s, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

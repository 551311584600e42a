package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeremynwa/automated-tech-newsletter/internal/speech"
)

func (a *App) renderStatusBar(width int) string {
	left := fmt.Sprintf(" %d articles", len(a.refs))
	if a.readingTime > 0 {
		left += fmt.Sprintf(" · ~%d min listen", a.readingTime)
	}
	if a.savedCount > 0 {
		left += fmt.Sprintf(" · %s %d", a.theme.Saved.Render("saved"), a.savedCount)
	}
	if a.narrState != speech.Idle && a.narrStatus != "" {
		left += " · " + a.theme.Accent.Render(a.narrStatus)
	}
	if a.transitioning {
		left += " " + a.spinner.View()
	}

	right := " " + a.hints() + " "

	if a.notice != "" {
		left = " " + a.theme.Notice.Render(a.notice)
	}
	if a.err != nil {
		left = " " + a.theme.Notice.Render(a.err.Error())
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right
	return a.theme.StatusBar.Width(width).Render(bar)
}

func (a *App) hints() string {
	switch a.mode {
	case modeSearch:
		return "esc cancel  enter search"
	case modeDate:
		return "esc cancel  enter apply (YYYY-MM-DD)"
	case modeFilter:
		return "esc apply  space toggle"
	case modeSaved:
		return "o open  d remove  esc back"
	case modeHelp:
		return "? close"
	case modeHome:
		return "e read  v saved  q quit"
	default:
		return "p listen  s save  f filter  / search  ? help  q quit"
	}
}

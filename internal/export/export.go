// Package export writes the currently visible digest content as a paginated
// plain-text document.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeremynwa/automated-tech-newsletter/internal/digest"
)

const (
	defaultWidth      = 78
	defaultPageHeight = 58
	maxSummaryLines   = 15
)

// Options controls page geometry. Zero values take the defaults.
type Options struct {
	Width      int
	PageHeight int
	Now        time.Time
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = defaultWidth
	}
	if o.PageHeight <= 0 {
		o.PageHeight = defaultPageHeight
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

// Write emits the visible tree of days as a paginated document. Hidden
// days, sections, and articles are skipped; a fully filtered-out page still
// produces a document saying so.
func Write(w io.Writer, days []*digest.Day, opts Options) error {
	opts = opts.withDefaults()
	p := &paginator{w: w, height: opts.PageHeight}

	p.line("Tech Digest Export")
	p.line("Generated on " + opts.Now.Format("January 2, 2006"))
	p.blank()

	wrote := false
	for _, day := range days {
		if day.Visibility != digest.Visible {
			continue
		}
		wrote = true
		p.need(4)
		p.line(day.Label)
		p.line(strings.Repeat("=", min(len(day.Label), opts.Width)))
		p.blank()

		for _, sec := range day.Sections {
			if sec.Visibility != digest.Visible {
				continue
			}
			if !hasVisibleArticles(sec) {
				continue
			}
			p.need(3)
			p.line(sec.Heading)
			p.blank()

			for _, a := range sec.Articles {
				if a.Visibility != digest.Visible {
					continue
				}
				writeArticle(p, a, opts.Width)
			}
		}
		p.blank()
	}

	if !wrote {
		p.line("No articles to export. Try adjusting your filters.")
	}

	return p.err
}

// File writes the export to dir with a date-stamped name and returns the
// full path.
func File(days []*digest.Day, dir string, opts Options) (string, error) {
	opts = opts.withDefaults()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}

	path := filepath.Join(dir, "tech-digest-"+opts.Now.Format("2006-01-02")+".txt")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := Write(f, days, opts); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return path, nil
}

func writeArticle(p *paginator, a *digest.Article, width int) {
	titleLines := wrap(a.Title, width)
	p.need(len(titleLines) + 2)
	for _, l := range titleLines {
		p.line(l)
	}

	summaryLines := wrap(a.Summary, width-2)
	truncated := len(summaryLines) > maxSummaryLines
	if truncated {
		summaryLines = summaryLines[:maxSummaryLines]
	}
	for _, l := range summaryLines {
		p.line("  " + l)
	}
	if truncated {
		p.line("  [...]")
	}
	if a.Link != "" {
		p.line("  " + a.Link)
	}
	p.blank()
}

func hasVisibleArticles(sec *digest.Section) bool {
	for _, a := range sec.Articles {
		if a.Visibility == digest.Visible {
			return true
		}
	}
	return false
}

// paginator tracks remaining vertical space and inserts a form feed when a
// block would not fit.
type paginator struct {
	w      io.Writer
	height int
	used   int
	page   int
	err    error
}

func (p *paginator) line(s string) {
	if p.err != nil {
		return
	}
	if p.used >= p.height {
		p.breakPage()
	}
	_, p.err = fmt.Fprintln(p.w, s)
	p.used++
}

func (p *paginator) blank() {
	// A blank at the top of a page is dropped.
	if p.used == 0 {
		return
	}
	p.line("")
}

// need breaks the page early when fewer than n lines remain, so headings
// are not stranded at a page bottom.
func (p *paginator) need(n int) {
	if p.used > 0 && p.height-p.used < n {
		p.breakPage()
	}
}

func (p *paginator) breakPage() {
	if p.err != nil {
		return
	}
	p.page++
	_, p.err = fmt.Fprintf(p.w, "\f\n")
	p.used = 0
}

func wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
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
	return append(lines, line)
}

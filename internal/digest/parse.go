package digest

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Load reads and parses a rendered digest page from disk.
func Load(path string) ([]*Day, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening digest: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse extracts the content model from a rendered digest page. The page
// shape is fixed by the renderer: .digest-day[data-date] groups containing
// .section blocks with an h2 heading, each holding .article nodes.
// Days with a missing or malformed data-date are excluded rather than
// failing the whole parse.
func Parse(r io.Reader) ([]*Day, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing digest page: %w", err)
	}

	var days []*Day
	doc.Find(".digest-day").Each(func(_ int, sel *goquery.Selection) {
		dateStr, ok := sel.Attr("data-date")
		if !ok {
			return
		}
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return
		}

		label := strings.TrimSpace(sel.Find(".date-text").First().Text())
		if label == "" {
			label = dateStr
		}

		day := &Day{Date: date, DateStr: dateStr, Label: label}
		sel.Find(".section").Each(func(_ int, sec *goquery.Selection) {
			day.Sections = append(day.Sections, parseSection(sec))
		})
		days = append(days, day)
	})

	return days, nil
}

func parseSection(sec *goquery.Selection) *Section {
	heading := strings.TrimSpace(sec.Find("h2").First().Text())
	s := &Section{
		Heading: heading,
		Class:   ClassifyHeading(heading),
	}

	sec.Find(".article").Each(func(_ int, art *goquery.Selection) {
		titleLink := art.Find(".article-title a").First()
		link, _ := titleLink.Attr("href")
		s.Articles = append(s.Articles, &Article{
			Title:   strings.TrimSpace(titleLink.Text()),
			Link:    link,
			Summary: strings.TrimSpace(art.Find(".article-summary").First().Text()),
		})
	})
	return s
}

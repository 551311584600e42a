package digest

import (
	"strings"
	"time"
)

// Class is a section classification derived from its heading text.
type Class string

const (
	ClassTech     Class = "tech"
	ClassHN       Class = "hn"
	ClassResearch Class = "research"
	ClassNone     Class = ""
)

// AllClasses returns the known classes in canonical order.
func AllClasses() []Class {
	return []Class{ClassTech, ClassHN, ClassResearch}
}

var classNames = map[Class]string{
	ClassTech:     "World Tech News",
	ClassHN:       "Hacker News",
	ClassResearch: "Research Papers",
}

// ClassName returns the display name for a class.
func ClassName(c Class) string {
	return classNames[c]
}

// ClassifyHeading maps a section heading to its class by case-insensitive
// substring match. Headings outside the vocabulary get ClassNone.
func ClassifyHeading(heading string) Class {
	h := strings.ToLower(heading)
	switch {
	case strings.Contains(h, "world tech") || strings.Contains(h, "tech news"):
		return ClassTech
	case strings.Contains(h, "hacker news"):
		return ClassHN
	case strings.Contains(h, "research"):
		return ClassResearch
	default:
		return ClassNone
	}
}

// Visibility is the outcome of a filter pass for one node.
type Visibility int

const (
	Visible Visibility = iota
	HiddenByDate
	HiddenByFilter
)

// Day is one date's worth of rendered digest content.
type Day struct {
	Date     time.Time
	DateStr  string
	Label    string
	Sections []*Section

	Visibility Visibility
}

// Section is a classified sub-group of articles within a day. Class is
// computed once at load and never re-derived.
type Section struct {
	Heading  string
	Class    Class
	Articles []*Article

	Visibility Visibility
}

// Article is a single rendered news item. Title, Link and Summary are
// immutable after load; only presentation state changes.
type Article struct {
	Title   string
	Link    string
	Summary string

	Visibility Visibility
	Highlight  bool

	fullText string
}

// FullText returns the lowercased title+summary used for keyword matching.
func (a *Article) FullText() string {
	if a.fullText == "" {
		a.fullText = strings.ToLower(a.Title + " " + a.Summary)
	}
	return a.fullText
}

// WordCount counts the words a narrator would read for this article.
func (a *Article) WordCount() int {
	return len(strings.Fields(a.Title)) + len(strings.Fields(a.Summary))
}

// VisibleArticles returns the articles of d that survived the last filter
// pass, in document order.
func (d *Day) VisibleArticles() []*Article {
	if d.Visibility != Visible {
		return nil
	}
	var out []*Article
	for _, s := range d.Sections {
		if s.Visibility != Visible {
			continue
		}
		for _, a := range s.Articles {
			if a.Visibility == Visible {
				out = append(out, a)
			}
		}
	}
	return out
}

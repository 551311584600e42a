package filter

import (
	"strings"
	"time"

	"github.com/jeremynwa/automated-tech-newsletter/internal/digest"
)

// ChipKind identifies which filter dimension a chip represents.
type ChipKind int

const (
	ChipRange ChipKind = iota
	ChipKeyword
	ChipType
)

// Chip is one entry of the active-filter summary. Removing a chip resets
// exactly its own dimension and re-runs the engine.
type Chip struct {
	Kind  ChipKind
	Label string
	Type  digest.Class // set for ChipType only
}

// Result summarizes one apply pass.
type Result struct {
	VisibleDays int
	NoResults   bool
	Chips       []Chip
}

// Observer is invoked after every apply pass, in registration order.
type Observer func(Result)

// Engine projects the filter state onto the content model. The reference
// "today" is captured once at construction and never refreshed, so a long
// running session keeps filtering against its start date.
type Engine struct {
	state     *State
	days      []*digest.Day
	today     time.Time
	observers []Observer
}

// New builds an engine over days with today as the fixed reference date
// (truncated to start of day).
func New(state *State, days []*digest.Day, today time.Time) *Engine {
	return &Engine{
		state: state,
		days:  days,
		today: time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()),
	}
}

func (e *Engine) State() *State       { return e.state }
func (e *Engine) Days() []*digest.Day { return e.days }

// Subscribe registers fn to run after every apply pass. Observers run in
// registration order, after all visibility has settled.
func (e *Engine) Subscribe(fn Observer) {
	e.observers = append(e.observers, fn)
}

// Apply runs a full filter pass: date predicate per day, type and keyword
// predicates per section, highlight marking per article, then the derived
// displays. The pass is idempotent over unchanged state.
func (e *Engine) Apply() Result {
	visible := 0
	for _, day := range e.days {
		if !e.dateMatch(day) {
			day.Visibility = digest.HiddenByDate
			continue
		}
		if e.applyDay(day) {
			day.Visibility = digest.Visible
			visible++
		} else {
			day.Visibility = digest.HiddenByFilter
		}
	}

	res := Result{
		VisibleDays: visible,
		NoResults:   visible == 0,
		Chips:       e.chips(),
	}
	for _, fn := range e.observers {
		fn(res)
	}
	return res
}

func (e *Engine) dateMatch(day *digest.Day) bool {
	switch e.state.Range() {
	case RangeAll:
		return true
	case RangeCustom:
		custom := e.state.CustomDate()
		return !custom.IsZero() && sameDate(day.Date, custom)
	case RangeToday:
		return sameDate(day.Date, e.today)
	case Range3Days:
		return !day.Date.Before(e.today.AddDate(0, 0, -3))
	case RangeWeek:
		return !day.Date.Before(e.today.AddDate(0, 0, -7))
	case RangeMonth:
		return !day.Date.Before(e.today.AddDate(0, -1, 0))
	default:
		return false
	}
}

// applyDay filters the sections of a date-matched day and reports whether
// anything stayed visible. Sections outside the heading vocabulary are
// always hidden: the enabled type set only ever holds known classes, so
// they can never match it, and they never count toward day visibility.
func (e *Engine) applyDay(day *digest.Day) bool {
	hasVisible := false
	for _, sec := range day.Sections {
		if sec.Class == digest.ClassNone {
			sec.Visibility = digest.HiddenByFilter
			continue
		}
		if !e.state.TypeEnabled(sec.Class) {
			sec.Visibility = digest.HiddenByFilter
			continue
		}
		if e.applySection(sec) {
			sec.Visibility = digest.Visible
			hasVisible = true
		} else {
			sec.Visibility = digest.HiddenByFilter
		}
	}
	return hasVisible
}

// applySection applies the keyword predicate to a type-matched section and
// reports whether any article stayed visible.
func (e *Engine) applySection(sec *digest.Section) bool {
	keyword := e.state.Keyword()
	if keyword == "" {
		for _, a := range sec.Articles {
			a.Visibility = digest.Visible
			a.Highlight = false
		}
		return true
	}

	matches := 0
	for _, a := range sec.Articles {
		if strings.Contains(a.FullText(), keyword) {
			a.Visibility = digest.Visible
			a.Highlight = true
			matches++
		} else {
			a.Visibility = digest.HiddenByFilter
			a.Highlight = false
		}
	}
	return matches > 0
}

func (e *Engine) chips() []Chip {
	var chips []Chip

	if r := e.state.Range(); r != RangeAll {
		label := RangeLabel(r)
		if r == RangeCustom {
			label = "Date: " + e.state.CustomDate().Format("2006-01-02")
		}
		chips = append(chips, Chip{Kind: ChipRange, Label: label})
	}

	if kw := e.state.Keyword(); kw != "" {
		chips = append(chips, Chip{Kind: ChipKeyword, Label: `Keyword: "` + kw + `"`})
	}

	for _, c := range e.state.DisabledTypes() {
		chips = append(chips, Chip{Kind: ChipType, Label: "Hidden: " + digest.ClassName(c), Type: c})
	}

	return chips
}

// RemoveChip resets the single filter dimension the chip represents and
// re-runs the engine.
func (e *Engine) RemoveChip(c Chip) Result {
	switch c.Kind {
	case ChipRange:
		e.state.SetRange(RangeAll)
	case ChipKeyword:
		e.state.SetKeyword("")
	case ChipType:
		e.state.EnableType(c.Type)
	}
	return e.Apply()
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

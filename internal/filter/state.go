package filter

import (
	"strings"
	"time"

	"github.com/jeremynwa/automated-tech-newsletter/internal/digest"
)

// Range is a date-range preset.
type Range string

const (
	RangeAll    Range = "all"
	RangeToday  Range = "today"
	Range3Days  Range = "3days"
	RangeWeek   Range = "week"
	RangeMonth  Range = "month"
	RangeCustom Range = "custom"
)

// AllRanges returns the selectable presets in display order. RangeCustom is
// excluded: it is entered by picking a date, not a preset.
func AllRanges() []Range {
	return []Range{RangeAll, RangeToday, Range3Days, RangeWeek, RangeMonth}
}

// RangeLabel returns the display label for a preset.
func RangeLabel(r Range) string {
	switch r {
	case RangeToday:
		return "Today"
	case Range3Days:
		return "Last 3 Days"
	case RangeWeek:
		return "Last Week"
	case RangeMonth:
		return "Last Month"
	case RangeCustom:
		return "Custom Date"
	default:
		return "All"
	}
}

// State holds the current filter selection. All mutation goes through the
// setters, which maintain the invariant that a custom date is present if and
// only if the range is RangeCustom.
type State struct {
	rng        Range
	customDate time.Time
	types      map[digest.Class]bool
	keyword    string
}

// NewState returns the page-load defaults: all dates, all types, no keyword.
func NewState() *State {
	s := &State{
		rng:   RangeAll,
		types: make(map[digest.Class]bool),
	}
	for _, c := range digest.AllClasses() {
		s.types[c] = true
	}
	return s
}

// SetRange selects a named preset and clears any custom date. RangeCustom
// is not a preset and is ignored here: it is only entered through
// SetCustomDate, which supplies the date the custom range requires.
func (s *State) SetRange(r Range) {
	if r == RangeCustom {
		return
	}
	s.rng = r
	s.customDate = time.Time{}
}

// SetCustomDate selects an exact date; the range becomes RangeCustom.
func (s *State) SetCustomDate(d time.Time) {
	s.rng = RangeCustom
	s.customDate = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// ToggleType flips membership of c in the enabled type set.
func (s *State) ToggleType(c digest.Class) {
	if s.types[c] {
		delete(s.types, c)
	} else {
		s.types[c] = true
	}
}

// EnableType adds c back to the enabled set.
func (s *State) EnableType(c digest.Class) {
	s.types[c] = true
}

// SetKeyword stores the search keyword, lowercased and trimmed.
func (s *State) SetKeyword(text string) {
	s.keyword = strings.ToLower(strings.TrimSpace(text))
}

func (s *State) Range() Range           { return s.rng }
func (s *State) CustomDate() time.Time  { return s.customDate }
func (s *State) Keyword() string        { return s.keyword }
func (s *State) TypeEnabled(c digest.Class) bool { return s.types[c] }

// DisabledTypes returns the currently disabled classes in canonical order,
// never in toggle order.
func (s *State) DisabledTypes() []digest.Class {
	var out []digest.Class
	for _, c := range digest.AllClasses() {
		if !s.types[c] {
			out = append(out, c)
		}
	}
	return out
}

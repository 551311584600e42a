package filter

import (
	"testing"
	"time"

	"github.com/jeremynwa/automated-tech-newsletter/internal/digest"
)

// checkCustomInvariant asserts that a custom date is present if and only if
// the range is RangeCustom.
func checkCustomInvariant(t *testing.T, s *State) {
	t.Helper()
	hasDate := !s.CustomDate().IsZero()
	isCustom := s.Range() == RangeCustom
	if hasDate != isCustom {
		t.Errorf("invariant broken: range=%v customDate=%v", s.Range(), s.CustomDate())
	}
}

func TestNewStateDefaults(t *testing.T) {
	s := NewState()
	if s.Range() != RangeAll {
		t.Errorf("expected default range All, got %v", s.Range())
	}
	if s.Keyword() != "" {
		t.Errorf("expected empty keyword, got %q", s.Keyword())
	}
	for _, c := range digest.AllClasses() {
		if !s.TypeEnabled(c) {
			t.Errorf("expected type %s enabled by default", c)
		}
	}
	checkCustomInvariant(t, s)
}

func TestSetCustomDateForcesCustomRange(t *testing.T) {
	s := NewState()
	s.SetCustomDate(time.Date(2025, 3, 13, 15, 45, 0, 0, time.UTC))

	if s.Range() != RangeCustom {
		t.Errorf("expected RangeCustom, got %v", s.Range())
	}
	want := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)
	if !s.CustomDate().Equal(want) {
		t.Errorf("expected date truncated to midnight, got %v", s.CustomDate())
	}
	checkCustomInvariant(t, s)
}

func TestSetRangeClearsCustomDate(t *testing.T) {
	s := NewState()
	s.SetCustomDate(time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC))
	s.SetRange(RangeWeek)

	if s.Range() != RangeWeek {
		t.Errorf("expected RangeWeek, got %v", s.Range())
	}
	if !s.CustomDate().IsZero() {
		t.Errorf("expected custom date cleared, got %v", s.CustomDate())
	}
	checkCustomInvariant(t, s)
}

func TestSetRangeIgnoresCustom(t *testing.T) {
	s := NewState()
	s.SetRange(RangeCustom)
	if s.Range() != RangeAll {
		t.Errorf("expected RangeCustom rejected, got %v", s.Range())
	}
	checkCustomInvariant(t, s)

	// Also from an established custom state: the date must survive.
	s.SetCustomDate(time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC))
	s.SetRange(RangeCustom)
	if s.CustomDate().IsZero() {
		t.Error("expected custom date kept when re-setting RangeCustom")
	}
	checkCustomInvariant(t, s)
}

func TestMutatorSequencesKeepInvariant(t *testing.T) {
	s := NewState()
	d := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)

	steps := []func(){
		func() { s.SetRange(RangeToday) },
		func() { s.SetCustomDate(d) },
		func() { s.SetCustomDate(d.AddDate(0, 0, 1)) },
		func() { s.SetRange(RangeAll) },
		func() { s.SetCustomDate(d) },
		func() { s.SetRange(RangeMonth) },
		func() { s.SetKeyword("gpu") },
		func() { s.ToggleType(digest.ClassHN) },
	}
	for i, step := range steps {
		step()
		checkCustomInvariant(t, s)
		if t.Failed() {
			t.Fatalf("invariant broken after step %d", i)
		}
	}
}

func TestSetKeywordNormalizes(t *testing.T) {
	s := NewState()
	s.SetKeyword("  GPU Prices  ")
	if s.Keyword() != "gpu prices" {
		t.Errorf("expected lowercased trimmed keyword, got %q", s.Keyword())
	}
}

func TestToggleAndEnableType(t *testing.T) {
	s := NewState()
	s.ToggleType(digest.ClassResearch)
	if s.TypeEnabled(digest.ClassResearch) {
		t.Error("expected research disabled after toggle")
	}
	s.ToggleType(digest.ClassResearch)
	if !s.TypeEnabled(digest.ClassResearch) {
		t.Error("expected research re-enabled after second toggle")
	}

	s.ToggleType(digest.ClassHN)
	s.EnableType(digest.ClassHN)
	if !s.TypeEnabled(digest.ClassHN) {
		t.Error("expected EnableType to restore membership")
	}
}

func TestDisabledTypesCanonicalOrder(t *testing.T) {
	s := NewState()
	// Disable in reverse of the canonical order.
	s.ToggleType(digest.ClassResearch)
	s.ToggleType(digest.ClassTech)

	got := s.DisabledTypes()
	if len(got) != 2 || got[0] != digest.ClassTech || got[1] != digest.ClassResearch {
		t.Errorf("expected canonical order [tech research], got %v", got)
	}
}

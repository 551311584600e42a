package similar

import (
	"strings"
	"testing"

	"github.com/jeremynwa/automated-tech-newsletter/internal/digest"
)

func TestKeywordsFiltersShortAndStopwords(t *testing.T) {
	got := Keywords("the kernel and the scheduler run on all CPUs")
	for _, w := range got {
		if len(w) < 4 {
			t.Errorf("keyword %q shorter than minimum length", w)
		}
		if stopwords[w] {
			t.Errorf("stopword %q leaked into keywords", w)
		}
	}
	want := map[string]bool{"kernel": true, "scheduler": true, "cpus": true}
	if len(got) != len(want) {
		t.Fatalf("expected %d keywords, got %v", len(want), got)
	}
	for _, w := range got {
		if !want[w] {
			t.Errorf("unexpected keyword %q", w)
		}
	}
}

func TestKeywordsOrderedByFrequency(t *testing.T) {
	got := Keywords("rust rust rust compiler compiler kernel")
	if len(got) != 3 {
		t.Fatalf("expected 3 keywords, got %v", got)
	}
	if got[0] != "rust" || got[1] != "compiler" || got[2] != "kernel" {
		t.Errorf("expected frequency order, got %v", got)
	}
}

func TestKeywordsCapped(t *testing.T) {
	var sb strings.Builder
	for _, w := range []string{
		"alpha", "bravo", "charlie", "delta", "echoes", "foxtrot",
		"golfing", "hotel", "india", "juliet", "kilos", "limas",
	} {
		sb.WriteString(w + " ")
	}
	got := Keywords(sb.String())
	if len(got) != maxKeywords {
		t.Errorf("expected cap of %d keywords, got %d", maxKeywords, len(got))
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b []string
		want float64
	}{
		{[]string{"rust", "kernel"}, []string{"rust", "kernel"}, 1.0},
		{[]string{"rust", "kernel"}, []string{"python", "django"}, 0.0},
		{[]string{"rust", "kernel", "linux"}, []string{"rust", "linux", "distro"}, 0.5},
		{nil, nil, 0.0},
		{[]string{"rust"}, nil, 0.0},
	}

	for _, tt := range tests {
		if got := Similarity(tt.a, tt.b); got != tt.want {
			t.Errorf("Similarity(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func testDays() []*digest.Day {
	return []*digest.Day{
		{
			DateStr: "2025-03-15",
			Sections: []*digest.Section{
				{
					Class: digest.ClassTech,
					Articles: []*digest.Article{
						{Title: "Rust kernel module merged", Summary: "Linux kernel gains Rust drivers"},
						{Title: "Rust drivers land in Linux", Summary: "More kernel work written in Rust"},
						{Title: "Cooking pasta properly", Summary: "Salt your water generously"},
					},
				},
			},
		},
		{
			DateStr: "2025-03-14",
			Sections: []*digest.Section{
				{
					Class: digest.ClassHN,
					Articles: []*digest.Article{
						{Title: "Why Rust in the kernel matters", Summary: "Memory safety for Linux drivers"},
					},
				},
			},
		},
	}
}

func TestFindReturnsRelatedArticles(t *testing.T) {
	days := testDays()
	target := days[0].Sections[0].Articles[0]

	matches := Find(target, days, 3)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	for _, m := range matches {
		if m.Article == target {
			t.Error("target article matched itself")
		}
		if m.Score <= threshold {
			t.Errorf("match %q below threshold: %v", m.Article.Title, m.Score)
		}
		if m.Article.Title == "Cooking pasta properly" {
			t.Error("unrelated article matched")
		}
	}
	if matches[0].Score < matches[1].Score {
		t.Error("expected matches sorted by score descending")
	}
}

func TestFindCarriesOriginDate(t *testing.T) {
	days := testDays()
	target := days[0].Sections[0].Articles[0]

	matches := Find(target, days, 3)
	for _, m := range matches {
		if m.Article.Title == "Why Rust in the kernel matters" && m.Date != "2025-03-14" {
			t.Errorf("expected origin date 2025-03-14, got %s", m.Date)
		}
	}
}

func TestFindRespectsLimit(t *testing.T) {
	days := testDays()
	target := days[0].Sections[0].Articles[0]

	matches := Find(target, days, 1)
	if len(matches) != 1 {
		t.Errorf("expected 1 match with limit 1, got %d", len(matches))
	}
}

func TestFindNoMatches(t *testing.T) {
	days := testDays()
	target := days[0].Sections[0].Articles[2] // pasta

	matches := Find(target, days, 3)
	if len(matches) != 0 {
		t.Errorf("expected no matches for unrelated article, got %d", len(matches))
	}
}

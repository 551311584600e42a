// Package similar finds related articles by keyword overlap. No model, no
// API calls: top frequent terms per article, Jaccard similarity between
// term sets, pairwise scan. Quadratic, which is fine at page scale.
package similar

import (
	"sort"
	"strings"
	"unicode"

	"github.com/jeremynwa/automated-tech-newsletter/internal/digest"
)

const (
	maxKeywords = 10
	threshold   = 0.1
	minWordLen  = 4
)

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "as": true, "is": true,
	"was": true, "are": true, "been": true, "be": true, "have": true,
	"has": true, "had": true, "do": true, "does": true, "did": true,
	"will": true, "would": true, "could": true, "should": true, "may": true,
	"might": true, "can": true, "this": true, "that": true, "these": true,
	"those": true, "it": true, "its": true, "they": true, "their": true,
	"them": true, "what": true, "which": true, "who": true, "when": true,
	"where": true, "why": true, "how": true, "all": true, "each": true,
	"every": true, "both": true, "few": true, "more": true, "most": true,
	"other": true, "some": true, "such": true, "no": true, "nor": true,
	"not": true, "only": true, "own": true, "same": true, "so": true,
	"than": true, "too": true, "very": true, "just": true, "now": true,
}

// Keywords extracts the top frequent non-stopword terms from text.
func Keywords(text string) []string {
	counts := map[string]int{}
	order := map[string]int{}

	for i, word := range tokenize(text) {
		if len(word) < minWordLen || stopwords[word] {
			continue
		}
		if _, seen := counts[word]; !seen {
			order[word] = i
		}
		counts[word]++
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	// Ties break by first appearance so extraction is deterministic.
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return order[words[i]] < order[words[j]]
	})

	if len(words) > maxKeywords {
		words = words[:maxKeywords]
	}
	return words
}

// Similarity is the Jaccard index of two keyword sets.
func Similarity(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	setA := map[string]bool{}
	for _, w := range a {
		setA[w] = true
	}
	union := len(setA)
	intersection := 0
	seenB := map[string]bool{}
	for _, w := range b {
		if seenB[w] {
			continue
		}
		seenB[w] = true
		if setA[w] {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Match is one related article with its score and origin date.
type Match struct {
	Article *digest.Article
	Date    string
	Score   float64
}

// Find returns up to limit articles related to target, scanning every
// article in every day and keeping scores above the threshold.
func Find(target *digest.Article, days []*digest.Day, limit int) []Match {
	targetKeywords := Keywords(target.Title + " " + target.Summary)

	var matches []Match
	for _, d := range days {
		for _, s := range d.Sections {
			for _, a := range s.Articles {
				if a == target {
					continue
				}
				score := Similarity(targetKeywords, Keywords(a.Title+" "+a.Summary))
				if score > threshold {
					matches = append(matches, Match{Article: a, Date: d.DateStr, Score: score})
				}
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}

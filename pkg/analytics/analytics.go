// Package analytics provides the text statistics shared by extraction,
// summarization and contextual evaluation: tokenizing, set similarity and
// keyword frequency ranking.
package analytics

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenize splits a string into a lowercase word set.
func Tokenize(s string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, w := range wordPattern.FindAllString(strings.ToLower(s), -1) {
		tokens[w] = struct{}{}
	}
	return tokens
}

// Jaccard computes |a∩b| / |a∪b| over two token sets. Two empty sets yield 0.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// StripSpace removes all whitespace, including ideographic space (U+3000),
// so character counts work for Japanese text as well as English.
func StripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// KeywordCounter accumulates keyword frequencies while remembering the order
// in which keywords were first seen, so ranking ties break deterministically.
type KeywordCounter struct {
	counts    map[string]int
	firstSeen map[string]int
	next      int
}

func NewKeywordCounter() *KeywordCounter {
	return &KeywordCounter{
		counts:    make(map[string]int),
		firstSeen: make(map[string]int),
	}
}

// Add records one occurrence of a keyword.
func (kc *KeywordCounter) Add(keyword string) {
	if _, seen := kc.firstSeen[keyword]; !seen {
		kc.firstSeen[keyword] = kc.next
		kc.next++
	}
	kc.counts[keyword]++
}

// Ranked is one keyword with its frequency.
type Ranked struct {
	Keyword string
	Count   int
}

// Top returns the n most frequent keywords, descending by count with ties
// broken by first-seen order.
func (kc *KeywordCounter) Top(n int) []Ranked {
	ranked := make([]Ranked, 0, len(kc.counts))
	for k, c := range kc.counts {
		ranked = append(ranked, Ranked{Keyword: k, Count: c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return kc.firstSeen[ranked[i].Keyword] < kc.firstSeen[ranked[j].Keyword]
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

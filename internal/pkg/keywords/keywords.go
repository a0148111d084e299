// Package keywords turns free text into a short ranked list of search terms.
package keywords

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultMax is used when the caller passes a non-positive limit.
const DefaultMax = 5

// minLength is the shortest token kept, counted in characters.
const minLength = 4

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "in": {}, "on": {}, "at": {}, "to": {}, "for": {},
	"of": {}, "with": {}, "by": {}, "as": {}, "is": {}, "are": {}, "was": {}, "were": {},
}

// Extract returns at most limit distinct keywords of text ordered by descending
// frequency, ties broken by first occurrence. Empty result means nothing usable.
func Extract(text string, limit int) []string {
	if limit <= 0 {
		limit = DefaultMax
	}

	type term struct {
		word  string
		count int
	}

	terms := make(map[string]*term)
	var order []*term
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if utf8.RuneCountInString(word) < minLength {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if t, ok := terms[word]; ok {
			t.count++
			continue
		}
		t := &term{word: word, count: 1}
		terms[word] = t
		order = append(order, t)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].count > order[j].count
	})

	if len(order) > limit {
		order = order[:limit]
	}
	result := make([]string, 0, len(order))
	for _, t := range order {
		result = append(result, t.word)
	}
	return result
}

// Query joins keywords into an OR search expression.
func Query(words []string) string {
	return strings.Join(words, " OR ")
}

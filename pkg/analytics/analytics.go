// Package analytics derives keyword lists from page text.
package analytics

import (
	"sort"
	"strings"
	"unicode"
)

// stopwords are skipped when counting words: English function words plus
// navigation noise that shows up on most pages.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		a about above after again against all also am an and any are as at
		be because been before being below between both but by
		can could did do does doing down during each few for from further
		had has have having he her here hers him his how i if in into is it its itself
		just me more most my no nor not now of off on once only or other our ours out over own
		same she should so some such than that the their theirs them then there these they this those through to too
		under until up very was we were what when where which while who whom why will with would
		you your yours
		click button link menu home page pages site website search loading cookie cookies privacy login sign`) {
		stopwords[w] = struct{}{}
	}
}

// IsStopword reports whether word is ignored by keyword counting.
func IsStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(word)]
	return ok
}

// WordFrequency counts the non-stopword words in text, lowercased and
// stripped of surrounding punctuation.
func WordFrequency(text string) map[string]int {
	frequencies := make(map[string]int)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len([]rune(word)) < 2 || IsStopword(word) {
			continue
		}
		frequencies[word]++
	}
	return frequencies
}

// Keywords returns up to n of the most frequent words, ties broken alphabetically.
func Keywords(text string, n int) []string {
	if n <= 0 {
		return nil
	}
	frequencies := WordFrequency(text)

	words := make([]string, 0, len(frequencies))
	for w := range frequencies {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if frequencies[words[i]] != frequencies[words[j]] {
			return frequencies[words[i]] > frequencies[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > n {
		words = words[:n]
	}
	return words
}

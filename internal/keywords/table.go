package keywords

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Phrase is a keyword with its precompiled, whitespace-tolerant pattern.
type Phrase struct {
	Text    string
	Weight  int
	pattern *regexp.Regexp
}

// Count returns the number of non-overlapping occurrences of the phrase in text.
func (p Phrase) Count(text string) int {
	if p.pattern == nil {
		return 0
	}
	return len(p.pattern.FindAllStringIndex(text, -1))
}

func compilePhrase(raw string) (Phrase, error) {
	words := strings.Fields(strings.ToLower(raw))
	if len(words) == 0 {
		return Phrase{}, errors.New("empty keyword")
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	pattern, err := regexp.Compile(`(?i)` + strings.Join(quoted, `\s+`))
	if err != nil {
		return Phrase{}, fmt.Errorf("compile keyword %q: %w", raw, err)
	}
	return Phrase{
		Text:    strings.Join(words, " "),
		Weight:  max(1, len(words)),
		pattern: pattern,
	}, nil
}

// Table maps category labels to weighted phrases. It is immutable once built
// and safe for concurrent use.
type Table[K comparable] struct {
	labels  []K
	phrases map[K][]Phrase
}

// NewTable compiles entries in the given label order. Labels missing from
// entries get an empty phrase list.
func NewTable[K comparable](labels []K, entries map[K][]string) (*Table[K], error) {
	t := &Table[K]{
		labels:  append([]K(nil), labels...),
		phrases: make(map[K][]Phrase, len(labels)),
	}
	for _, label := range labels {
		raw := entries[label]
		compiled := make([]Phrase, 0, len(raw))
		for _, keyword := range raw {
			p, err := compilePhrase(keyword)
			if err != nil {
				return nil, fmt.Errorf("label %v: %w", label, err)
			}
			compiled = append(compiled, p)
		}
		t.phrases[label] = compiled
	}
	return t, nil
}

// Labels returns the labels in iteration order.
func (t *Table[K]) Labels() []K {
	return append([]K(nil), t.labels...)
}

// Phrases returns the compiled phrases of a label.
func (t *Table[K]) Phrases(label K) []Phrase {
	return t.phrases[label]
}

// Score returns the weighted score and raw match count of text for label.
func (t *Table[K]) Score(label K, text string) (float64, int) {
	var (
		score   float64
		matches int
	)
	for _, p := range t.phrases[label] {
		n := p.Count(text)
		if n == 0 {
			continue
		}
		score += float64(n * p.Weight)
		matches += n
	}
	return score, matches
}

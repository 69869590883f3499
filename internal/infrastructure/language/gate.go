// Package language filters out candidates that are not written in English.
package language

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"

	"SustainabilityScanner/internal/ports"
)

// candidateLanguages are the languages the news sources are likely to publish in.
var candidateLanguages = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Portuguese,
	lingua.Italian,
	lingua.Dutch,
}

// Gate accepts English text. Text whose language cannot be determined is
// accepted so that short headlines are not lost.
type Gate struct {
	once     sync.Once
	detector lingua.LanguageDetector
}

var _ ports.LanguageGate = (*Gate)(nil)

// NewGate returns a gate; language models are loaded on first use.
func NewGate() *Gate {
	return &Gate{}
}

// Accept reports whether text should be classified.
func (g *Gate) Accept(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	g.once.Do(func() {
		g.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(candidateLanguages...).
			Build()
	})

	lang, ok := g.detector.DetectLanguageOf(text)
	if !ok {
		return true
	}
	return lang == lingua.English
}

package keywords

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"SustainabilityScanner/internal/domain"
)

// Region is a named entry of the gazetteer.
type Region struct {
	Name  string
	Terms []string
}

const stemMinLen = 4

type compiledRegion struct {
	name    string
	pattern *regexp.Regexp
}

// Gazetteer infers a region from free text. Regions are checked in order and
// the first one with a term match wins. Terms of stemMinLen or more characters
// match at the start of a word, so "European" counts for "europe"; shorter
// tokens such as "us" or "eu" must match a whole word.
type Gazetteer struct {
	regions []compiledRegion
}

// NewGazetteer compiles regions in the given check order.
func NewGazetteer(regions []Region) (*Gazetteer, error) {
	g := &Gazetteer{regions: make([]compiledRegion, 0, len(regions))}
	for _, r := range regions {
		if len(r.Terms) == 0 {
			continue
		}
		var stems, tokens []string
		for _, term := range r.Terms {
			words := strings.Fields(strings.ToLower(term))
			if len(words) == 0 {
				continue
			}
			stem := utf8.RuneCountInString(strings.Join(words, " ")) >= stemMinLen
			for i, w := range words {
				words[i] = regexp.QuoteMeta(w)
			}
			alt := strings.Join(words, `\s+`)
			if stem {
				stems = append(stems, alt)
			} else {
				tokens = append(tokens, alt)
			}
		}
		var parts []string
		if len(stems) > 0 {
			parts = append(parts, `\b(?:`+strings.Join(stems, "|")+`)`)
		}
		if len(tokens) > 0 {
			parts = append(parts, `\b(?:`+strings.Join(tokens, "|")+`)\b`)
		}
		pattern, err := regexp.Compile(`(?i)` + strings.Join(parts, "|"))
		if err != nil {
			return nil, fmt.Errorf("region %s: %w", r.Name, err)
		}
		g.regions = append(g.regions, compiledRegion{name: r.Name, pattern: pattern})
	}
	return g, nil
}

// Infer returns the first matching region name or domain.RegionGlobal.
func (g *Gazetteer) Infer(text string) string {
	if g == nil {
		return domain.RegionGlobal
	}
	for _, r := range g.regions {
		if r.pattern.MatchString(text) {
			return r.name
		}
	}
	return domain.RegionGlobal
}

// Names lists the region names in check order.
func (g *Gazetteer) Names() []string {
	names := make([]string, 0, len(g.regions))
	for _, r := range g.regions {
		names = append(names, r.name)
	}
	return names
}

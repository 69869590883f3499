// Package classifier scores free text against the sustainability keyword
// tables and picks a dominant pillar and the most relevant SDGs.
package classifier

import (
	"math"
	"sort"
	"strings"

	"SustainabilityScanner/internal/domain"
	"SustainabilityScanner/internal/keywords"
)

// Options tunes the acceptance thresholds.
type Options struct {
	MinWords      int
	MinConfidence float64
	MaxSDGs       int
	FallbackCount int
	FallbackSDGs  map[domain.Pillar][]int
}

// DefaultOptions mirrors the thresholds the scraper was tuned with.
func DefaultOptions() Options {
	return Options{
		MinWords:      10,
		MinConfidence: 0.02,
		MaxSDGs:       3,
		FallbackCount: 2,
		FallbackSDGs:  keywords.DefaultFallbackSDGs,
	}
}

// absoluteMatchScale turns the raw match count into a confidence bonus.
const absoluteMatchScale = 50

// Classifier is a pure function over text and shared read-only tables.
type Classifier struct {
	tables *keywords.Tables
	opts   Options
}

// New wires tables with options, filling zero values from DefaultOptions.
func New(tables *keywords.Tables, opts Options) *Classifier {
	if tables == nil {
		tables = keywords.Default()
	}
	def := DefaultOptions()
	if opts.MinWords <= 0 {
		opts.MinWords = def.MinWords
	}
	if opts.MinConfidence <= 0 {
		opts.MinConfidence = def.MinConfidence
	}
	if opts.MaxSDGs <= 0 {
		opts.MaxSDGs = def.MaxSDGs
	}
	if opts.FallbackCount <= 0 {
		opts.FallbackCount = def.FallbackCount
	}
	opts.FallbackSDGs = mergeFallbacks(def.FallbackSDGs, opts.FallbackSDGs)
	return &Classifier{tables: tables, opts: opts}
}

// mergeFallbacks overlays configured per-pillar lists onto the defaults.
// Ids outside 1..17 are dropped; a pillar left without ids keeps its default.
func mergeFallbacks(defaults, configured map[domain.Pillar][]int) map[domain.Pillar][]int {
	merged := make(map[domain.Pillar][]int, len(defaults))
	for pillar, ids := range defaults {
		merged[pillar] = ids
	}
	for pillar, ids := range configured {
		valid := make([]int, 0, len(ids))
		for _, id := range ids {
			if id >= 1 && id <= 17 {
				valid = append(valid, id)
			}
		}
		if len(valid) > 0 {
			merged[pillar] = valid
		}
	}
	return merged
}

// Options returns the effective options.
func (c *Classifier) Options() Options {
	return c.opts
}

// Normalize lower-cases text and collapses whitespace runs.
func Normalize(text string) (string, int) {
	fields := strings.Fields(strings.ToLower(text))
	return strings.Join(fields, " "), len(fields)
}

// Classify scores text. ok is false when the text carries no usable
// sustainability signal; callers skip such candidates.
func (c *Classifier) Classify(text string) (domain.ClassificationResult, bool) {
	normalized, wordCount := Normalize(text)
	if wordCount < c.opts.MinWords {
		return domain.ClassificationResult{}, false
	}

	pillarScores := make(map[domain.Pillar]float64, len(domain.Pillars))
	totalMatches := 0
	for _, pillar := range c.tables.Pillars.Labels() {
		score, matches := c.tables.Pillars.Score(pillar, normalized)
		pillarScores[pillar] = score
		totalMatches += matches
	}

	confidence := math.Min(1, float64(totalMatches)/float64(wordCount)+float64(totalMatches)/absoluteMatchScale)
	if confidence < c.opts.MinConfidence || totalMatches < 1 {
		return domain.ClassificationResult{}, false
	}

	var total float64
	for _, score := range pillarScores {
		total += score
	}
	if total == 0 {
		return domain.ClassificationResult{}, false
	}

	dominant := domain.Pillars[0]
	for _, pillar := range domain.Pillars[1:] {
		if pillarScores[pillar] > pillarScores[dominant] {
			dominant = pillar
		}
	}

	sdgScores := make(map[int]float64)
	for _, id := range c.tables.SDGs.Labels() {
		if score, _ := c.tables.SDGs.Score(id, normalized); score > 0 {
			sdgScores[id] = score
		}
	}

	ranked, fallback := c.rankSDGs(sdgScores, dominant)

	return domain.ClassificationResult{
		DominantPillar: dominant,
		PillarScores:   pillarScores,
		SDGScores:      sdgScores,
		RankedSDGs:     ranked,
		Confidence:     confidence,
		TotalMatches:   totalMatches,
		WordCount:      wordCount,
		FallbackSDGs:   fallback,
	}, true
}

func (c *Classifier) rankSDGs(scores map[int]float64, dominant domain.Pillar) ([]int, bool) {
	ids := make([]int, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if scores[ids[i]] != scores[ids[j]] {
			return scores[ids[i]] > scores[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if len(ids) > c.opts.MaxSDGs {
		ids = ids[:c.opts.MaxSDGs]
	}
	if len(ids) > 0 {
		return ids, false
	}

	defaults := c.opts.FallbackSDGs[dominant]
	n := min(c.opts.FallbackCount, len(defaults), c.opts.MaxSDGs)
	return append([]int(nil), defaults[:n]...), true
}

// Package aggregate filters, deduplicates and ranks a batch of articles and
// merges it into the stored history.
package aggregate

import (
	"math"
	"sort"

	"SustainabilityScanner/internal/domain"
)

// Options configures the ranking pass.
type Options struct {
	MinConfidence float64
	TopN          int
	HistoryCap    int
	// TieEpsilon is the confidence gap below which publish date decides order.
	TieEpsilon float64
}

// DefaultOptions returns the thresholds used by the scraper.
func DefaultOptions() Options {
	return Options{
		MinConfidence: 0.01,
		TopN:          100,
		HistoryCap:    1000,
		TieEpsilon:    0.01,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MinConfidence <= 0 {
		o.MinConfidence = def.MinConfidence
	}
	if o.TopN <= 0 {
		o.TopN = def.TopN
	}
	if o.HistoryCap <= 0 {
		o.HistoryCap = def.HistoryCap
	}
	if o.TieEpsilon <= 0 {
		o.TieEpsilon = def.TieEpsilon
	}
	return o
}

// Drops counts records removed at each step.
type Drops struct {
	LowConfidence int
	Duplicate     int
	Truncated     int
	Evicted       int
}

// Outcome is the result of one aggregation run.
type Outcome struct {
	// Published is the ranked batch of new records.
	Published []domain.Article
	// Stored is the merged history, newest first.
	Stored []domain.Article
	Drops  Drops
}

// Aggregate runs the full pass. An empty Published slice is a valid outcome.
func Aggregate(newRecords, persisted []domain.Article, opts Options) Outcome {
	opts = opts.withDefaults()
	published, drops := Select(newRecords, persisted, opts)
	stored, evicted := Merge(published, persisted, opts.HistoryCap)
	drops.Evicted = evicted
	return Outcome{Published: published, Stored: stored, Drops: drops}
}

// Select applies the confidence filter, URL dedup, ranking and truncation.
func Select(records, persisted []domain.Article, opts Options) ([]domain.Article, Drops) {
	opts = opts.withDefaults()
	var drops Drops

	seen := make(map[string]struct{}, len(persisted)+len(records))
	for _, a := range persisted {
		seen[a.SourceURL] = struct{}{}
	}

	selected := make([]domain.Article, 0, len(records))
	for _, a := range records {
		if a.Confidence < opts.MinConfidence {
			drops.LowConfidence++
			continue
		}
		if _, dup := seen[a.SourceURL]; dup {
			drops.Duplicate++
			continue
		}
		seen[a.SourceURL] = struct{}{}
		selected = append(selected, a)
	}

	SortByRelevance(selected, opts.TieEpsilon)

	if len(selected) > opts.TopN {
		drops.Truncated = len(selected) - opts.TopN
		selected = selected[:opts.TopN]
	}
	return selected, drops
}

// SortByRelevance orders by confidence, falling back to newest first when
// confidences are within epsilon.
func SortByRelevance(articles []domain.Article, epsilon float64) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i], articles[j]
		if math.Abs(a.Confidence-b.Confidence) > epsilon {
			return a.Confidence > b.Confidence
		}
		return a.PublishedAt.After(b.PublishedAt)
	})
}

// SortByDate orders newest first, keeping input order for equal dates.
func SortByDate(articles []domain.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
}

// Merge appends new records to the history, sorts newest first and caps the
// result. It returns the number of records evicted by the cap.
func Merge(published, persisted []domain.Article, historyCap int) ([]domain.Article, int) {
	combined := make([]domain.Article, 0, len(persisted)+len(published))
	combined = append(combined, persisted...)
	combined = append(combined, published...)
	SortByDate(combined)

	if historyCap > 0 && len(combined) > historyCap {
		evicted := len(combined) - historyCap
		return combined[:historyCap], evicted
	}
	return combined, 0
}

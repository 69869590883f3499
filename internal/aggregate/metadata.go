package aggregate

import (
	"sort"
	"time"

	"SustainabilityScanner/internal/domain"
	"SustainabilityScanner/internal/rating"
)

const (
	highConfidence   = 0.1
	mediumConfidence = 0.05
)

// BucketConfidence counts articles into the high/medium/low buckets.
func BucketConfidence(articles []domain.Article) domain.ConfidenceDistribution {
	var d domain.ConfidenceDistribution
	for _, a := range articles {
		switch {
		case a.Confidence > highConfidence:
			d.High++
		case a.Confidence > mediumConfidence:
			d.Medium++
		default:
			d.Low++
		}
	}
	return d
}

// BuildDatabase wraps the stored history into the persisted document.
func BuildDatabase(stored []domain.Article, added int, runID string, now time.Time) domain.Database {
	if stored == nil {
		stored = []domain.Article{}
	}

	pillars := make(map[domain.Pillar]int)
	var sources []string
	seenSource := map[string]bool{}
	var confidenceSum float64
	for _, a := range stored {
		pillars[a.Pillar]++
		confidenceSum += a.Confidence
		if !seenSource[a.Source] {
			seenSource[a.Source] = true
			sources = append(sources, a.Source)
		}
	}
	if sources == nil {
		sources = []string{}
	}

	var avg float64
	if len(stored) > 0 {
		avg = confidenceSum / float64(len(stored))
	}

	return domain.Database{
		Articles:    stored,
		LastUpdated: now,
		Metadata: domain.Metadata{
			TotalArticles:          len(stored),
			LastScrapingRun:        now,
			NewArticlesAdded:       added,
			RunID:                  runID,
			Sources:                sources,
			PillarDistribution:     pillars,
			AverageConfidence:      avg,
			ConfidenceDistribution: BucketConfidence(stored),
		},
	}
}

// SDGCount pairs an SDG id with the number of articles referencing it.
type SDGCount struct {
	ID    int
	Count int
}

// AverageRating holds mean E2SG scores rounded to one decimal.
type AverageRating struct {
	Environmental float64
	Economic      float64
	Social        float64
	Governance    float64
	Overall       float64
}

// Summary describes a published batch for run logs.
type Summary struct {
	Total             int
	Pillars           map[domain.Pillar]int
	AverageRating     AverageRating
	AverageConfidence float64
	Confidence        domain.ConfidenceDistribution
	TopSDGs           []SDGCount
}

// Summarize computes pillar counts, average E2SG scores, confidence buckets
// and the five most referenced SDGs.
func Summarize(articles []domain.Article) Summary {
	s := Summary{
		Total:      len(articles),
		Pillars:    make(map[domain.Pillar]int),
		Confidence: BucketConfidence(articles),
	}
	if len(articles) == 0 {
		return s
	}

	var env, econ, social, gov, conf float64
	sdgs := map[int]int{}
	for _, a := range articles {
		s.Pillars[a.Pillar]++
		env += float64(a.Rating.Environmental)
		econ += float64(a.Rating.Economic)
		social += float64(a.Rating.Social)
		gov += float64(a.Rating.Governance)
		conf += a.Confidence
		for _, ref := range a.SDGs {
			sdgs[ref.ID]++
		}
	}

	n := float64(len(articles))
	s.AverageConfidence = conf / n
	s.AverageRating = AverageRating{
		Environmental: rating.Round1(env / n),
		Economic:      rating.Round1(econ / n),
		Social:        rating.Round1(social / n),
		Governance:    rating.Round1(gov / n),
		Overall:       rating.Round1((env + econ + social + gov) / (4 * n)),
	}

	for id, count := range sdgs {
		s.TopSDGs = append(s.TopSDGs, SDGCount{ID: id, Count: count})
	}
	sort.Slice(s.TopSDGs, func(i, j int) bool {
		if s.TopSDGs[i].Count != s.TopSDGs[j].Count {
			return s.TopSDGs[i].Count > s.TopSDGs[j].Count
		}
		return s.TopSDGs[i].ID < s.TopSDGs[j].ID
	})
	if len(s.TopSDGs) > 5 {
		s.TopSDGs = s.TopSDGs[:5]
	}
	return s
}

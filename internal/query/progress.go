package query

import (
	"math"
	"sort"

	"SustainabilityScanner/internal/domain"
	"SustainabilityScanner/internal/keywords"
)

// Trend is the direction of recent coverage for an SDG.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

const trendThreshold = 0.5

// environmentalSDGs receive a bonus from the average environmental rating.
var environmentalSDGs = map[int]bool{6: true, 7: true, 12: true, 13: true, 14: true, 15: true}

// Progress summarises coverage of one SDG.
type Progress struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Progress int    `json:"progress"`
	Trend    Trend  `json:"trend"`
	Articles int    `json:"articles"`
}

// SDGProgress scores every SDG against the given articles.
func SDGProgress(articles []domain.Article) []Progress {
	ids := keywords.SDGIDs()
	out := make([]Progress, 0, len(ids))
	for _, id := range ids {
		var related []domain.Article
		for _, a := range articles {
			for _, ref := range a.SDGs {
				if ref.ID == id {
					related = append(related, a)
					break
				}
			}
		}

		out = append(out, Progress{
			ID:       id,
			Title:    keywords.SDG(id).Title,
			Progress: progressScore(id, related),
			Trend:    trend(related),
			Articles: len(related),
		})
	}
	return out
}

func progressScore(id int, related []domain.Article) int {
	if len(related) == 0 {
		return 0
	}

	var impact, env float64
	for _, a := range related {
		impact += float64(a.ImpactScore)
		env += float64(a.Rating.Environmental)
	}
	n := float64(len(related))

	score := impact/n*10 + math.Min(2*n, 20)
	if environmentalSDGs[id] {
		score += env / n
	}
	return int(math.Round(math.Max(0, math.Min(100, score))))
}

func trend(related []domain.Article) Trend {
	if len(related) == 0 {
		return TrendStable
	}

	sorted := make([]domain.Article, len(related))
	copy(sorted, related)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
	})

	half := (len(sorted) + 1) / 2
	recent, older := sorted[:half], sorted[half:]
	if len(older) == 0 {
		if len(sorted) >= 3 {
			return TrendUp
		}
		return TrendStable
	}

	recentAvg, olderAvg := averageImpact(recent), averageImpact(older)
	switch {
	case recentAvg > olderAvg+trendThreshold:
		return TrendUp
	case recentAvg < olderAvg-trendThreshold:
		return TrendDown
	default:
		return TrendStable
	}
}

func averageImpact(articles []domain.Article) float64 {
	var sum float64
	for _, a := range articles {
		sum += float64(a.ImpactScore)
	}
	return sum / float64(len(articles))
}

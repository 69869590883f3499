package domain

// ClassificationResult captures keyword scoring of a single text.
type ClassificationResult struct {
	DominantPillar Pillar             `json:"dominantPillar"`
	PillarScores   map[Pillar]float64 `json:"pillarScores"`
	SDGScores      map[int]float64    `json:"sdgScores"`
	RankedSDGs     []int              `json:"rankedSdgs"`
	Confidence     float64            `json:"confidence"`
	TotalMatches   int                `json:"totalMatches"`
	WordCount      int                `json:"wordCount"`
	// FallbackSDGs is set when RankedSDGs came from the pillar defaults.
	FallbackSDGs bool `json:"fallbackSdgs"`
}

// TotalPillarScore sums all pillar scores.
func (r ClassificationResult) TotalPillarScore() float64 {
	var total float64
	for _, score := range r.PillarScores {
		total += score
	}
	return total
}

// RankedSDGScore sums the scores of the ranked SDGs.
func (r ClassificationResult) RankedSDGScore() float64 {
	var total float64
	for _, id := range r.RankedSDGs {
		total += r.SDGScores[id]
	}
	return total
}

// RatingVector is the E2SG rating of an article.
type RatingVector struct {
	Environmental int     `json:"environmental"`
	Economic      int     `json:"economic"`
	Social        int     `json:"social"`
	Governance    int     `json:"governance"`
	Overall       float64 `json:"overall"`
}

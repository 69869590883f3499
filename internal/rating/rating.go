// Package rating turns classification scores into E2SG ratings and an impact score.
package rating

import (
	"math"
	"math/rand/v2"

	"SustainabilityScanner/internal/domain"
)

const (
	minRating = 1
	maxRating = 10
	// missingRating replaces a dimension that rounds to zero.
	missingRating = 3

	governanceLow  = 4
	governanceHigh = 8
)

// RandomSource draws integers in [0, n).
type RandomSource interface {
	IntN(n int) int
}

// FixedSource always returns the same offset, clamped into [0, n).
type FixedSource int

// IntN implements RandomSource.
func (f FixedSource) IntN(n int) int {
	v := int(f)
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// GovernanceSource pins the governance rating to value (clamped to [4,8]).
func GovernanceSource(value int) RandomSource {
	return FixedSource(value - governanceLow)
}

// Synthesizer builds rating vectors. Governance has no textual signal and is
// drawn uniformly from [4,8].
type Synthesizer struct {
	rng RandomSource
}

// NewSynthesizer uses rng for governance; nil selects a process-wide source.
func NewSynthesizer(rng RandomSource) *Synthesizer {
	if rng == nil {
		rng = globalSource{}
	}
	return &Synthesizer{rng: rng}
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Rate converts pillar scores into a RatingVector.
func (s *Synthesizer) Rate(res domain.ClassificationResult) domain.RatingVector {
	total := res.TotalPillarScore()
	v := domain.RatingVector{
		Environmental: dimension(res.PillarScores[domain.PillarEnvironmental], total),
		Economic:      dimension(res.PillarScores[domain.PillarEconomic], total),
		Social:        dimension(res.PillarScores[domain.PillarSocial], total),
		Governance:    governanceLow + s.rng.IntN(governanceHigh-governanceLow+1),
	}
	v.Governance = clampInt(v.Governance, governanceLow, governanceHigh)
	v.Overall = Round1(float64(v.Environmental+v.Economic+v.Social+v.Governance) / 4)
	return v
}

func dimension(score, total float64) int {
	if total <= 0 {
		return missingRating
	}
	r := int(math.Round(score / total * 10))
	if r == 0 {
		return missingRating
	}
	return clampInt(r, minRating, maxRating)
}

// Impact derives the 1..10 impact score from confidence and SDG breadth.
func Impact(res domain.ClassificationResult) int {
	sdgs := min(3, len(res.RankedSDGs))
	raw := res.Confidence*30 + float64(sdgs*2) + res.RankedSDGScore()/20 + 2
	return clampInt(int(math.Round(raw)), minRating, maxRating)
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

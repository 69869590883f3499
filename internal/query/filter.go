// Package query filters and summarises stored articles for the CLI views.
package query

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"SustainabilityScanner/internal/domain"
)

// ImpactLevel buckets impact scores.
type ImpactLevel string

const (
	ImpactAll    ImpactLevel = ""
	ImpactHigh   ImpactLevel = "high"
	ImpactMedium ImpactLevel = "medium"
	ImpactLow    ImpactLevel = "low"
)

// SortOrder selects the ordering of filtered results.
type SortOrder string

const (
	SortByDate   SortOrder = "date"
	SortByImpact SortOrder = "impact"
)

// Filter narrows a list of articles. Zero values disable each criterion.
type Filter struct {
	Pillar domain.Pillar
	SDGs   []int
	Search string
	From   time.Time
	To     time.Time
	Impact ImpactLevel
	// Region "Global" or empty matches every region.
	Region string
	Sort   SortOrder
	Limit  int
}

// ParseImpactLevel accepts high, medium, low or all.
func ParseImpactLevel(raw string) (ImpactLevel, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all":
		return ImpactAll, nil
	case "high":
		return ImpactHigh, nil
	case "medium":
		return ImpactMedium, nil
	case "low":
		return ImpactLow, nil
	default:
		return ImpactAll, fmt.Errorf("unknown impact level %q", raw)
	}
}

// Match reports whether a single article passes the filter.
func (f Filter) Match(a domain.Article) bool {
	if f.Pillar != "" && a.Pillar != f.Pillar {
		return false
	}

	if len(f.SDGs) > 0 && !slices.ContainsFunc(a.SDGs, func(ref domain.SDGRef) bool {
		return slices.Contains(f.SDGs, ref.ID)
	}) {
		return false
	}

	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" && !matchesSearch(a, q) {
		return false
	}

	if !f.From.IsZero() && a.PublishedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && a.PublishedAt.After(f.To) {
		return false
	}

	switch f.Impact {
	case ImpactHigh:
		if a.ImpactScore < 8 {
			return false
		}
	case ImpactMedium:
		if a.ImpactScore < 6 || a.ImpactScore >= 8 {
			return false
		}
	case ImpactLow:
		if a.ImpactScore >= 6 {
			return false
		}
	}

	if f.Region != "" && f.Region != domain.RegionGlobal && a.Region != f.Region {
		return false
	}

	return true
}

// Apply returns the matching articles in the requested order. The input is
// not modified.
func (f Filter) Apply(articles []domain.Article) []domain.Article {
	out := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		if f.Match(a) {
			out = append(out, a)
		}
	}

	switch f.Sort {
	case SortByImpact:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ImpactScore > out[j].ImpactScore
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PublishedAt.After(out[j].PublishedAt)
		})
	}

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

func matchesSearch(a domain.Article, q string) bool {
	if strings.Contains(strings.ToLower(a.Title), q) ||
		strings.Contains(strings.ToLower(a.Summary), q) ||
		strings.Contains(strings.ToLower(a.Author), q) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

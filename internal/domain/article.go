package domain

import "time"

// Pillar is the dominant sustainability category of an article.
type Pillar string

const (
	PillarEnvironmental Pillar = "environmental"
	PillarSocial        Pillar = "social"
	PillarEconomic      Pillar = "economic"
)

// Pillars lists every pillar in tie-break order.
var Pillars = []Pillar{PillarEnvironmental, PillarSocial, PillarEconomic}

// Valid reports whether p is one of the known pillars.
func (p Pillar) Valid() bool {
	switch p {
	case PillarEnvironmental, PillarSocial, PillarEconomic:
		return true
	}
	return false
}

// RegionGlobal is assigned when no regional term matches.
const RegionGlobal = "Global"

// SourceDescriptor identifies a configured news source.
type SourceDescriptor struct {
	Name     string
	BaseURL  string
	Category string
}

// RawCandidate is a title/summary/link tuple produced by a fetcher.
type RawCandidate struct {
	Title       string
	Link        string
	Summary     string
	SourceName  string
	BaseURL     string
	PublishedAt string
	Author      string
}

// Text concatenates the fields the classifier scores.
func (c RawCandidate) Text() string {
	summary := c.Summary
	if summary == "" {
		summary = c.Title
	}
	// The summary doubles as body text for listing-page candidates.
	return c.Title + " " + summary + " " + summary
}

// SDGRef is an SDG reference embedded into an article.
type SDGRef struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

// Article is the normalized record published to readers.
type Article struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Summary     string       `json:"summary"`
	Content     string       `json:"content"`
	Author      string       `json:"author"`
	PublishedAt time.Time    `json:"publishedAt"`
	SourceURL   string       `json:"sourceUrl"`
	Source      string       `json:"source"`
	Pillar      Pillar       `json:"pillar"`
	SDGs        []SDGRef     `json:"sdgs"`
	Tags        []string     `json:"tags"`
	ReadTime    int          `json:"readTime"`
	ImpactScore int          `json:"impactScore"`
	Rating      RatingVector `json:"e2sgRating"`
	Region      string       `json:"region"`
	ScrapedAt   time.Time    `json:"scrapedAt"`
	Confidence  float64      `json:"confidence"`
	ImageURL    string       `json:"imageUrl"`

	// Reader engagement kept by the dashboard. The scanner never sets these;
	// they are carried through load and save unchanged.
	ViewCount    *int  `json:"viewCount,omitempty"`
	ShareCount   *int  `json:"shareCount,omitempty"`
	IsBookmarked *bool `json:"isBookmarked,omitempty"`
}

// SDGIDs returns the ids of the referenced SDGs in rank order.
func (a Article) SDGIDs() []int {
	ids := make([]int, 0, len(a.SDGs))
	for _, sdg := range a.SDGs {
		ids = append(ids, sdg.ID)
	}
	return ids
}

// Database is the persisted document holding the article history.
type Database struct {
	Articles    []Article `json:"articles"`
	LastUpdated time.Time `json:"lastUpdated"`
	Metadata    Metadata  `json:"metadata"`
}

// Metadata summarizes the stored history.
type Metadata struct {
	TotalArticles          int                    `json:"totalArticles"`
	LastScrapingRun        time.Time              `json:"lastScrapingRun"`
	NewArticlesAdded       int                    `json:"newArticlesAdded"`
	RunID                  string                 `json:"runId,omitempty"`
	Sources                []string               `json:"sources"`
	PillarDistribution     map[Pillar]int         `json:"pillarDistribution"`
	AverageConfidence      float64                `json:"averageConfidence"`
	ConfidenceDistribution ConfidenceDistribution `json:"confidenceDistribution"`
}

// ConfidenceDistribution buckets articles by confidence.
type ConfidenceDistribution struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Package assembler turns a classified raw candidate into a normalized Article.
package assembler

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"

	"SustainabilityScanner/internal/domain"
	"SustainabilityScanner/internal/keywords"
)

// Options holds the field caps and thresholds applied during assembly.
type Options struct {
	MinTitleLength   int
	MaxTitleLength   int
	MaxSummaryLength int
	WordsPerMinute   int
	MaxTags          int
	MaxSDGTags       int
	MinConfidence    float64
}

// DefaultOptions returns the caps used by the dashboard.
func DefaultOptions() Options {
	return Options{
		MinTitleLength:   15,
		MaxTitleLength:   200,
		MaxSummaryLength: 500,
		WordsPerMinute:   200,
		MaxTags:          5,
		MaxSDGTags:       2,
		MinConfidence:    0.02,
	}
}

// Input bundles one candidate with its scoring.
type Input struct {
	Candidate      domain.RawCandidate
	Classification domain.ClassificationResult
	Rating         domain.RatingVector
	Impact         int
	// Index is the candidate position inside its batch; it keeps ids unique.
	Index int
}

// Assembler builds Article records. It is safe for concurrent use.
type Assembler struct {
	opts      Options
	gazetteer *keywords.Gazetteer
	cleaner   *Cleaner
	now       func() time.Time
}

// New creates an assembler; zero options take their defaults.
func New(gazetteer *keywords.Gazetteer, opts Options) *Assembler {
	def := DefaultOptions()
	if opts.MinTitleLength <= 0 {
		opts.MinTitleLength = def.MinTitleLength
	}
	if opts.MaxTitleLength <= 0 {
		opts.MaxTitleLength = def.MaxTitleLength
	}
	if opts.MaxSummaryLength <= 0 {
		opts.MaxSummaryLength = def.MaxSummaryLength
	}
	if opts.WordsPerMinute <= 0 {
		opts.WordsPerMinute = def.WordsPerMinute
	}
	if opts.MaxTags <= 0 {
		opts.MaxTags = def.MaxTags
	}
	if opts.MaxSDGTags <= 0 {
		opts.MaxSDGTags = def.MaxSDGTags
	}
	if opts.MinConfidence <= 0 {
		opts.MinConfidence = def.MinConfidence
	}
	if gazetteer == nil {
		gazetteer = keywords.Default().Regions
	}
	return &Assembler{
		opts:      opts,
		gazetteer: gazetteer,
		cleaner:   NewCleaner(),
		now:       time.Now,
	}
}

// WithClock replaces the time source, used for scrapedAt and fallback publish dates.
func (a *Assembler) WithClock(now func() time.Time) *Assembler {
	if now != nil {
		a.now = now
	}
	return a
}

// Assemble validates the candidate and builds the article. Rejections are
// returned as domain sentinel errors.
func (a *Assembler) Assemble(in Input) (domain.Article, error) {
	res := in.Classification
	if res.TotalMatches == 0 || res.Confidence < a.opts.MinConfidence || !res.DominantPillar.Valid() || len(res.RankedSDGs) == 0 {
		return domain.Article{}, domain.ErrWeakSignal
	}

	c := in.Candidate
	title := a.cleaner.Text(c.Title)
	if title == "" {
		return domain.Article{}, domain.ErrMissingTitle
	}
	if runeLen(title) < a.opts.MinTitleLength {
		return domain.Article{}, fmt.Errorf("%w: %d chars", domain.ErrTitleTooShort, runeLen(title))
	}

	sourceURL, err := ResolveLink(c.BaseURL, c.Link)
	if err != nil {
		return domain.Article{}, err
	}

	summary := a.cleaner.Text(c.Summary)
	if summary == "" {
		summary = title
	}

	now := a.now().UTC()
	publishedAt := now
	if parsed, ok := parsePublished(c.PublishedAt); ok {
		publishedAt = parsed
	}

	author := strings.TrimSpace(c.Author)
	if author == "" {
		author = c.SourceName
	}

	sdgs := make([]domain.SDGRef, 0, len(res.RankedSDGs))
	for _, id := range res.RankedSDGs {
		sdgs = append(sdgs, keywords.SDG(id))
	}

	return domain.Article{
		ID:          articleID(c.SourceName, now, in.Index),
		Title:       truncate(title, a.opts.MaxTitleLength),
		Summary:     truncate(summary, a.opts.MaxSummaryLength),
		Content:     summary,
		Author:      author,
		PublishedAt: publishedAt,
		SourceURL:   sourceURL,
		Source:      c.SourceName,
		Pillar:      res.DominantPillar,
		SDGs:        sdgs,
		Tags:        a.tags(res.DominantPillar, res.RankedSDGs),
		ReadTime:    a.readTime(summary),
		ImpactScore: max(1, min(10, in.Impact)),
		Rating:      in.Rating,
		Region:      a.gazetteer.Infer(title + " " + summary),
		ScrapedAt:   now,
		Confidence:  res.Confidence,
		ImageURL:    keywords.PillarImage(res.DominantPillar, sourceURL),
	}, nil
}

func (a *Assembler) tags(pillar domain.Pillar, sdgs []int) []string {
	tags := []string{string(pillar), "sustainability"}
	for i, id := range sdgs {
		if i >= a.opts.MaxSDGTags {
			break
		}
		tags = append(tags, fmt.Sprintf("sdg-%d", id))
	}
	tags = append(tags, "news")
	if len(tags) > a.opts.MaxTags {
		tags = tags[:a.opts.MaxTags]
	}
	return tags
}

func (a *Assembler) readTime(text string) int {
	words := len(strings.Fields(text))
	return max(1, int(math.Ceil(float64(words)/float64(a.opts.WordsPerMinute))))
}

func parsePublished(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil || t.IsZero() {
		return time.Time{}, false
	}
	return t.UTC(), true
}

func articleID(source string, at time.Time, index int) string {
	return fmt.Sprintf("%s-%d-%d", slug(source), at.UnixMilli(), index)
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "source"
	}
	return out
}

func runeLen(s string) int {
	return len([]rune(s))
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return strings.TrimSpace(string(r[:limit]))
}

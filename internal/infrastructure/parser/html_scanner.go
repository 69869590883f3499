package parser

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"SustainabilityScanner/internal/domain"
	"SustainabilityScanner/internal/scanner"
)

const (
	minTitleChars   = 10
	minSummaryChars = 20
)

// Fallback chains tried after the site-specific selectors.
var (
	articleFallbacks = []string{
		"article, .article, .story, .post, .item",
		`[class*="card"], [class*="story"], [class*="article"]`,
		"h2 a, h3 a, h4 a",
	}
	titleFallbacks = []string{
		"h1, h2, h3, h4, h5",
		`[class*="title"], [class*="headline"]`,
		"a",
	}
	linkFallbacks = []string{
		"a[href]",
		"h1 a, h2 a, h3 a",
	}
	summaryFallbacks = []string{
		`[class*="summary"], [class*="excerpt"], [class*="description"]`,
		"p",
	}
	dateFallbacks = []string{
		"time[datetime]",
		"time",
		`[class*="date"], [class*="timestamp"]`,
	}
	authorFallbacks = []string{
		`[class*="byline"]`,
		`[class*="author"], [rel="author"]`,
	}
)

// HTMLScanner scrapes listing pages with CSS selector fallback chains.
type HTMLScanner struct {
	fetcher *Fetcher
}

var _ scanner.Scanner = (*HTMLScanner)(nil)

// NewHTMLScanner wires a fetcher; nil builds one with default options.
func NewHTMLScanner(fetcher *Fetcher) *HTMLScanner {
	if fetcher == nil {
		fetcher = NewFetcher(nil, FetcherOptions{})
	}
	return &HTMLScanner{fetcher: fetcher}
}

// Name identifies the strategy inside the registry.
func (h *HTMLScanner) Name() string {
	return "html"
}

// Scan walks through each category page and returns candidates up to the
// per-source cap. Links repeated across categories are returned once.
func (h *HTMLScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.RawCandidate, error) {
	if len(req.Categories) == 0 {
		return nil, fmt.Errorf("no categories provided for site %s", req.Source.Name)
	}

	results := make([]domain.RawCandidate, 0)
	seen := map[string]struct{}{}

	for _, cat := range req.Categories {
		if req.MaxPerSource > 0 && len(results) >= req.MaxPerSource {
			break
		}

		body, err := h.fetcher.Get(ctx, cat.URL)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", cat.Name, err)
		}

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("category %s: parse document: %w", cat.Name, err)
		}

		for _, c := range extractCandidates(doc, req) {
			if _, ok := seen[c.Link]; ok {
				continue
			}
			seen[c.Link] = struct{}{}
			results = append(results, c)
			if req.MaxPerSource > 0 && len(results) >= req.MaxPerSource {
				break
			}
		}
	}

	return results, nil
}

func extractCandidates(doc *goquery.Document, req scanner.Request) []domain.RawCandidate {
	containers := findContainers(doc, chain(req.Selectors.Articles, articleFallbacks))
	if containers == nil {
		return nil
	}

	titles := chain(req.Selectors.Title, titleFallbacks)
	links := chain(req.Selectors.Link, linkFallbacks)
	summaries := chain(req.Selectors.Summary, summaryFallbacks)
	dates := chain(req.Selectors.Date, dateFallbacks)
	authors := chain(req.Selectors.Author, authorFallbacks)

	var collected []domain.RawCandidate
	containers.EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if req.MaxPerSource > 0 && len(collected) >= req.MaxPerSource {
			return false
		}

		title := firstText(el, titles, minTitleChars)
		link := firstAttr(el, links, "href")
		if goquery.NodeName(el) == "a" {
			if title == "" {
				title = longEnough(el.Text(), minTitleChars)
			}
			if link == "" {
				link, _ = el.Attr("href")
			}
		}
		link = strings.TrimSpace(link)
		if title == "" || link == "" {
			return true
		}

		collected = append(collected, domain.RawCandidate{
			Title:       title,
			Link:        link,
			Summary:     firstText(el, summaries, minSummaryChars),
			SourceName:  req.Source.Name,
			BaseURL:     req.Source.BaseURL,
			PublishedAt: firstDate(el, dates),
			Author:      firstText(el, authors, 0),
		})
		return true
	})

	return collected
}

func findContainers(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, sel := range selectors {
		if found := doc.Find(sel); found.Length() > 0 {
			return found
		}
	}
	return nil
}

func firstText(el *goquery.Selection, selectors []string, minChars int) string {
	for _, sel := range selectors {
		if text := longEnough(el.Find(sel).First().Text(), minChars); text != "" {
			return text
		}
	}
	return ""
}

func firstAttr(el *goquery.Selection, selectors []string, attr string) string {
	for _, sel := range selectors {
		if value, ok := el.Find(sel).First().Attr(attr); ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func firstDate(el *goquery.Selection, selectors []string) string {
	for _, sel := range selectors {
		node := el.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if value, ok := node.Attr("datetime"); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
		if text := strings.TrimSpace(node.Text()); text != "" {
			return text
		}
	}
	return ""
}

func longEnough(text string, minChars int) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) > minChars {
		return text
	}
	return ""
}

func chain(configured, fallbacks []string) []string {
	out := make([]string, 0, len(configured)+len(fallbacks))
	for _, sel := range configured {
		if sel = strings.TrimSpace(sel); sel != "" {
			out = append(out, sel)
		}
	}
	return append(out, fallbacks...)
}

package parser

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"SustainabilityScanner/internal/domain"
	"SustainabilityScanner/internal/scanner"
)

// RSSScanner reads RSS and Atom feeds.
type RSSScanner struct {
	fetcher *Fetcher
}

var _ scanner.Scanner = (*RSSScanner)(nil)

// NewRSSScanner wires a fetcher; nil builds one with default options.
func NewRSSScanner(fetcher *Fetcher) *RSSScanner {
	if fetcher == nil {
		fetcher = NewFetcher(nil, FetcherOptions{})
	}
	return &RSSScanner{fetcher: fetcher}
}

// Name identifies the strategy inside the registry.
func (r *RSSScanner) Name() string {
	return "rss"
}

// Scan parses every category feed and returns its items as candidates.
func (r *RSSScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.RawCandidate, error) {
	if len(req.Categories) == 0 {
		return nil, fmt.Errorf("no categories provided for site %s", req.Source.Name)
	}

	parser := gofeed.NewParser()
	results := make([]domain.RawCandidate, 0)
	seen := map[string]struct{}{}

	for _, cat := range req.Categories {
		body, err := r.fetcher.Get(ctx, cat.URL)
		if err != nil {
			return nil, fmt.Errorf("feed %s: %w", cat.Name, err)
		}

		feed, err := parser.Parse(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("feed %s: parse: %w", cat.Name, err)
		}

		for _, item := range feed.Items {
			if req.MaxPerSource > 0 && len(results) >= req.MaxPerSource {
				return results, nil
			}
			c, ok := candidateFromItem(item, req.Source)
			if !ok {
				continue
			}
			if _, dup := seen[c.Link]; dup {
				continue
			}
			seen[c.Link] = struct{}{}
			results = append(results, c)
		}
	}

	return results, nil
}

func candidateFromItem(item *gofeed.Item, source domain.SourceDescriptor) (domain.RawCandidate, bool) {
	if item == nil {
		return domain.RawCandidate{}, false
	}

	link := strings.TrimSpace(item.Link)
	if link == "" && len(item.Links) > 0 {
		link = strings.TrimSpace(item.Links[0])
	}
	title := strings.TrimSpace(item.Title)
	if title == "" || link == "" {
		return domain.RawCandidate{}, false
	}

	summary := item.Description
	if strings.TrimSpace(summary) == "" {
		summary = item.Content
	}

	published := item.Published
	switch {
	case item.PublishedParsed != nil:
		published = item.PublishedParsed.UTC().Format(time.RFC3339)
	case item.UpdatedParsed != nil:
		published = item.UpdatedParsed.UTC().Format(time.RFC3339)
	}

	var author string
	if item.Author != nil {
		author = item.Author.Name
	}

	return domain.RawCandidate{
		Title:       title,
		Link:        link,
		Summary:     summary,
		SourceName:  source.Name,
		BaseURL:     source.BaseURL,
		PublishedAt: published,
		Author:      author,
	}, true
}

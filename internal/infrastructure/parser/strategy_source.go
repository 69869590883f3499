package parser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"SustainabilityScanner/internal/config"
	"SustainabilityScanner/internal/domain"
	"SustainabilityScanner/internal/ports"
	"SustainabilityScanner/internal/scanner"
)

// StrategySource implements CandidateSource via registered scanner strategies.
type StrategySource struct {
	registry     *scanner.Registry
	sites        []config.SiteConfig
	maxPerSource int
	logger       *slog.Logger
}

var _ ports.CandidateSource = (*StrategySource)(nil)

// NewStrategySource wires scanner registry with config-defined sites.
func NewStrategySource(reg *scanner.Registry, sites []config.SiteConfig, maxPerSource int, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry:     reg,
		sites:        sites,
		maxPerSource: maxPerSource,
		logger:       log,
	}
}

// FetchCandidates iterates over configured sites and executes their scanners.
// A failing site is logged and skipped; the call fails only when every site
// fails.
func (s *StrategySource) FetchCandidates(ctx context.Context) ([]ports.SourceBatch, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("scanner registry is not configured")
	}

	s.debug("fetch candidates", "sites", len(s.sites))

	var (
		batches []ports.SourceBatch
		errs    []error
	)
	for _, site := range s.sites {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		s.debug("process site", "site", site.Name, "scanner", site.Scanner, "categories", len(site.Categories))
		batch, err := s.scanSite(ctx, site)
		if err != nil {
			s.warn("site skipped", "site", site.Name, "error", err)
			errs = append(errs, err)
			continue
		}

		s.debug("site produced candidates", "site", site.Name, "count", len(batch.Candidates))
		batches = append(batches, batch)
	}

	if len(batches) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	s.debug("strategy source done", "sources", len(batches))
	return batches, nil
}

func (s *StrategySource) scanSite(ctx context.Context, site config.SiteConfig) (ports.SourceBatch, error) {
	strategy, err := s.registry.Resolve(site.Scanner)
	if err != nil {
		return ports.SourceBatch{}, fmt.Errorf("site %s: %w", site.Name, err)
	}

	desc := domain.SourceDescriptor{
		Name:     site.Name,
		BaseURL:  site.BaseURL,
		Category: site.Category,
	}

	req := scanner.Request{
		Source:       desc,
		Categories:   toScannerCategories(site.Categories),
		Selectors:    toScannerSelectors(site.Selectors),
		MaxPerSource: s.maxPerSource,
	}

	results, err := strategy.Scan(ctx, req)
	if err != nil {
		return ports.SourceBatch{}, fmt.Errorf("scan site %s: %w", site.Name, err)
	}

	for i := range results {
		if results[i].SourceName == "" {
			results[i].SourceName = site.Name
		}
		if results[i].BaseURL == "" {
			results[i].BaseURL = site.BaseURL
		}
	}
	return ports.SourceBatch{Source: desc, Candidates: results}, nil
}

func toScannerCategories(cfg []config.CategoryConfig) []scanner.Category {
	categories := make([]scanner.Category, 0, len(cfg))
	for _, cat := range cfg {
		categories = append(categories, scanner.Category{
			Name: cat.Name,
			URL:  cat.URL,
		})
	}
	return categories
}

func toScannerSelectors(cfg config.SelectorConfig) scanner.Selectors {
	one := func(sel string) []string {
		if sel == "" {
			return nil
		}
		return []string{sel}
	}
	return scanner.Selectors{
		Articles: one(cfg.Articles),
		Title:    one(cfg.Title),
		Link:     one(cfg.Link),
		Summary:  one(cfg.Summary),
		Date:     one(cfg.Date),
		Author:   one(cfg.Author),
	}
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *StrategySource) warn(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

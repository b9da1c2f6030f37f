// Package crawl provides documentation crawl orchestration: URL
// discovery and classification, a bounded retry-resilient fetch
// pipeline, and handoff to result persistence.
package crawl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crawlhog/crawlhog"
)

// Crawler orchestrates a full crawl run.
type Crawler struct {
	Scraper crawlhog.Scraper
	Mapper  crawlhog.SiteMapper
	Writer  crawlhog.ResultWriter

	// Optional collaborators.
	Sitemaps crawlhog.SitemapSource
	Links    crawlhog.LinkExtractor
	Limiter  crawlhog.DomainLimiter

	Retry       *Retryer
	Logger      *slog.Logger
	Concurrency int
	TestMode    bool
}

// Crawl discovers, fetches, and persists the documentation pages of
// rawURL. When outputDir is empty it defaults to "<domain>-docs".
// Returns the output directory the run was written to.
func (c *Crawler) Crawl(ctx context.Context, rawURL, outputDir string, progress crawlhog.PageProgressFunc) (string, error) {
	target, err := crawlhog.NewTarget(rawURL)
	if err != nil {
		return "", err
	}
	if outputDir == "" {
		outputDir = target.Domain + "-docs"
	}

	discoverer := &Discoverer{
		Scraper:  c.Scraper,
		Mapper:   c.Mapper,
		Sitemaps: c.Sitemaps,
		Links:    c.Links,
		Retry:    c.Retry,
		Logger:   c.Logger,
		TestMode: c.TestMode,
	}
	disc, err := discoverer.Discover(ctx, target)
	if err != nil {
		return "", fmt.Errorf("discovery: %w", err)
	}

	fetcher := &Fetcher{
		Scraper:     c.Scraper,
		Retry:       c.Retry,
		Limiter:     c.Limiter,
		Concurrency: c.Concurrency,
		Logger:      c.Logger,
	}
	pages, err := fetcher.FetchAll(ctx, disc, progress)
	if err != nil {
		return "", err
	}

	manifest, err := c.Writer.Persist(ctx, pages, outputDir)
	if err != nil {
		return "", fmt.Errorf("persisting results: %w", err)
	}

	if c.Logger != nil {
		c.Logger.Info("crawl complete", "pages", len(manifest.Pages), "dir", outputDir)
	}
	return outputDir, nil
}

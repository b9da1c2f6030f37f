// Package mock provides function-field mock implementations of the
// crawlhog interfaces for use in tests.
package mock

import (
	"context"

	"github.com/crawlhog/crawlhog"
)

var _ crawlhog.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of crawlhog.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, url string, opts crawlhog.ScrapeOptions) (*crawlhog.ScrapeResult, error)
}

func (s *Scraper) Scrape(ctx context.Context, url string, opts crawlhog.ScrapeOptions) (*crawlhog.ScrapeResult, error) {
	return s.ScrapeFn(ctx, url, opts)
}

// Package slog provides logging decorators for the fetch service
// interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/crawlhog/crawlhog"
)

// Ensure LoggingScraper implements crawlhog.Scraper.
var _ crawlhog.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper with per-call logging.
type LoggingScraper struct {
	next   crawlhog.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next crawlhog.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped scraper and logs the operation.
func (s *LoggingScraper) Scrape(ctx context.Context, url string, opts crawlhog.ScrapeOptions) (result *crawlhog.ScrapeResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		}
		if result != nil {
			attrs = append(attrs,
				"markdown_bytes", len(result.Markdown),
				"links", len(result.Links),
			)
		}
		s.logger.Debug("scrape", attrs...)
	}(time.Now())
	return s.next.Scrape(ctx, url, opts)
}

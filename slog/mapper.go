package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/crawlhog/crawlhog"
)

// Ensure LoggingMapper implements crawlhog.SiteMapper.
var _ crawlhog.SiteMapper = (*LoggingMapper)(nil)

// LoggingMapper wraps a SiteMapper with per-call logging.
type LoggingMapper struct {
	next   crawlhog.SiteMapper
	logger *slog.Logger
}

// NewLoggingMapper creates a new LoggingMapper.
func NewLoggingMapper(next crawlhog.SiteMapper, logger *slog.Logger) *LoggingMapper {
	return &LoggingMapper{next: next, logger: logger}
}

// MapSite delegates to the wrapped mapper and logs the operation.
func (m *LoggingMapper) MapSite(ctx context.Context, url string, opts crawlhog.MapOptions) (links []string, err error) {
	defer func(begin time.Time) {
		m.logger.Info("site map",
			"url", url,
			"count", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return m.next.MapSite(ctx, url, opts)
}

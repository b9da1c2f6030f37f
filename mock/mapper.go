package mock

import (
	"context"

	"github.com/crawlhog/crawlhog"
)

var _ crawlhog.SiteMapper = (*SiteMapper)(nil)

// SiteMapper is a mock implementation of crawlhog.SiteMapper.
type SiteMapper struct {
	MapSiteFn func(ctx context.Context, url string, opts crawlhog.MapOptions) ([]string, error)
}

func (m *SiteMapper) MapSite(ctx context.Context, url string, opts crawlhog.MapOptions) ([]string, error) {
	return m.MapSiteFn(ctx, url, opts)
}

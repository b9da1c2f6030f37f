package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/crawlhog/crawlhog"
)

// Discovery limits. Test mode keeps runs small and deterministic.
const (
	normalMapLimit = 1000
	normalMapDepth = 5
	testMapLimit   = 10
	testMapDepth   = 2
	testCandidates = 10
)

// Discovery is the outcome of the discovery phase: the candidate URLs to
// fetch and the already-rendered initial page, so the fetch phase never
// scrapes the target twice.
type Discovery struct {
	Target     crawlhog.Target
	Candidates []string
	Initial    *crawlhog.Page
}

// Discoverer combines an initial-page link scrape with a whole-site map
// call into a deduplicated, domain-scoped candidate set, then filters it
// down to the documentation subset.
type Discoverer struct {
	Scraper crawlhog.Scraper
	Mapper  crawlhog.SiteMapper

	// Sitemaps, if set, contributes URLs read directly from the site's
	// own sitemaps. Failures here are logged and ignored.
	Sitemaps crawlhog.SitemapSource

	// Links, if set, extracts links from the initial page HTML when the
	// fetch service returns content without a link list.
	Links crawlhog.LinkExtractor

	Retry    *Retryer
	Logger   *slog.Logger
	TestMode bool
}

// Discover produces the candidate URL set for a target.
//
// Classification never empties the set: when no discovered URL matches
// the documentation patterns, the full domain-scoped set is used
// instead. In test mode the result is capped at the lexicographically
// first 10 candidates. Scrape or map failures are fatal after retries
// are exhausted.
func (d *Discoverer) Discover(ctx context.Context, target crawlhog.Target) (*Discovery, error) {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	initial, err := Do(ctx, d.Retry, func(ctx context.Context) (*crawlhog.ScrapeResult, error) {
		return d.Scraper.Scrape(ctx, target.URL, crawlhog.ScrapeOptions{
			Formats:         []crawlhog.Format{crawlhog.FormatLinks, crawlhog.FormatMarkdown, crawlhog.FormatHTML},
			OnlyMainContent: false,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("initial scrape of %s: %w", target.URL, err)
	}

	links := initial.Links
	if len(links) == 0 && d.Links != nil && initial.HTML != "" {
		links, err = d.Links.ExtractLinks(initial.HTML, target.URL)
		if err != nil {
			logger.Debug("link extraction fallback failed", "url", target.URL, "err", err)
			links = nil
		}
	}

	seen := make(map[string]struct{})
	collect := func(urls []string) {
		for _, u := range urls {
			if !target.SameDomain(u) {
				continue
			}
			normalized, err := crawlhog.NormalizeURL(u)
			if err != nil {
				continue
			}
			seen[normalized] = struct{}{}
		}
	}
	collect(links)
	logger.Debug("initial page links", "url", target.URL, "count", len(seen))

	mapLimit, mapDepth := normalMapLimit, normalMapDepth
	if d.TestMode {
		mapLimit, mapDepth = testMapLimit, testMapDepth
	}
	mapped, err := Do(ctx, d.Retry, func(ctx context.Context) ([]string, error) {
		return d.Mapper.MapSite(ctx, target.URL, crawlhog.MapOptions{
			IgnoreSitemap:      true,
			IncludeSubdomains:  false,
			AllowExternalLinks: false,
			AllowBackwardLinks: true,
			Limit:              mapLimit,
			MaxDepth:           mapDepth,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", target.URL, err)
	}
	collect(mapped)

	if d.Sitemaps != nil {
		urls, err := d.Sitemaps.DiscoverURLs(ctx, target.URL)
		if err != nil {
			logger.Warn("sitemap discovery failed", "url", target.URL, "err", err)
		} else {
			collect(urls)
		}
	}

	all := make([]string, 0, len(seen))
	for u := range seen {
		all = append(all, u)
	}
	sort.Strings(all)
	logger.Debug("discovered internal URLs", "count", len(all))

	patterns := crawlhog.DocPatterns(target.URL)
	candidates := make([]string, 0, len(all))
	for _, u := range all {
		if patterns.Match(u) {
			candidates = append(candidates, u)
		}
	}

	if len(candidates) == 0 {
		logger.Info("no URLs matched documentation patterns, using all internal URLs")
		candidates = all
	}

	if d.TestMode && len(candidates) > testCandidates {
		logger.Info("test mode: limiting candidates", "limit", testCandidates)
		candidates = candidates[:testCandidates]
	}
	logger.Info("discovery complete", "candidates", len(candidates))

	disc := &Discovery{Target: target, Candidates: candidates}
	if initial.Markdown != "" || initial.HTML != "" {
		disc.Initial = &crawlhog.Page{
			URL:      target.URL,
			Markdown: initial.Markdown,
			HTML:     initial.HTML,
			Metadata: initial.Metadata,
		}
	}
	return disc, nil
}

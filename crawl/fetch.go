package crawl

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/crawlhog/crawlhog"
	"golang.org/x/sync/errgroup"
)

// pageWaitMillis is how long the fetch service waits for dynamic content
// on each page.
const pageWaitMillis = 2000

// PageScrapeOptions returns the scrape options used for individual
// documentation pages: main content only, structural/content tags
// included, navigational chrome excluded.
func PageScrapeOptions() crawlhog.ScrapeOptions {
	return crawlhog.ScrapeOptions{
		Formats:         []crawlhog.Format{crawlhog.FormatMarkdown, crawlhog.FormatHTML},
		OnlyMainContent: true,
		IncludeTags: []string{
			"article", "main", ".content", ".documentation",
			"h1", "h2", "h3", "h4", "h5", "h6",
			"p", "ul", "ol", "li", "code", "pre",
		},
		ExcludeTags: []string{
			"nav", "header", "footer",
			".sidebar", ".menu", ".navigation",
		},
		WaitFor: pageWaitMillis,
	}
}

// Fetcher drives the per-page fetch pipeline over a candidate set.
type Fetcher struct {
	Scraper crawlhog.Scraper
	Retry   *Retryer

	// Limiter, if set, paces scrape calls per domain.
	Limiter crawlhog.DomainLimiter

	// Concurrency bounds the worker pool. Defaults to 3.
	Concurrency int

	Logger *slog.Logger
}

type fetchResult struct {
	url  string
	page *crawlhog.Page
	err  error
}

// FetchAll fetches every candidate page and returns the URL → page map.
//
// The initial page content from discovery is reused rather than fetched
// again. A failure on one page is reported through progress and skipped;
// it never aborts the run. Only context cancellation (or a fatal
// discovery-phase error upstream) ends a crawl early.
func (f *Fetcher) FetchAll(ctx context.Context, disc *Discovery, progress crawlhog.PageProgressFunc) (map[string]*crawlhog.Page, error) {
	logger := f.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	pages := make(map[string]*crawlhog.Page)
	if disc.Initial != nil && !disc.Initial.Empty() {
		pages[disc.Target.URL] = disc.Initial
	}

	var remaining []string
	for _, u := range disc.Candidates {
		if u == disc.Target.URL {
			continue
		}
		remaining = append(remaining, u)
	}
	total := len(remaining)
	if total == 0 {
		return pages, ctx.Err()
	}

	concurrency := f.Concurrency
	if concurrency <= 0 {
		concurrency = 3
	}

	resultCh := make(chan fetchResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, u := range remaining {
			g.Go(func() error {
				resultCh <- f.fetchOne(gctx, disc.Target, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Single collector goroutine owns the pages map.
	var completed atomic.Int64
	for result := range resultCh {
		completed.Add(1)
		if result.err != nil {
			logger.Warn("page fetch failed", "url", result.url, "err", result.err)
			if progress != nil {
				progress(crawlhog.PageProgress{
					URL:       result.url,
					Completed: int(completed.Load()),
					Total:     total,
					Err:       result.err,
				})
			}
			continue
		}
		pages[result.url] = result.page
		if progress != nil {
			progress(crawlhog.PageProgress{
				URL:       result.url,
				Completed: int(completed.Load()),
				Total:     total,
			})
		}
	}

	return pages, ctx.Err()
}

// fetchOne fetches a single candidate through the retry policy.
func (f *Fetcher) fetchOne(ctx context.Context, target crawlhog.Target, url string) fetchResult {
	if err := ctx.Err(); err != nil {
		return fetchResult{url: url, err: err}
	}

	if f.Limiter != nil {
		if err := f.Limiter.Wait(ctx, target.Domain); err != nil {
			return fetchResult{url: url, err: err}
		}
	}

	result, err := Do(ctx, f.Retry, func(ctx context.Context) (*crawlhog.ScrapeResult, error) {
		return f.Scraper.Scrape(ctx, url, PageScrapeOptions())
	})
	if err != nil {
		return fetchResult{url: url, err: err}
	}

	return fetchResult{
		url: url,
		page: &crawlhog.Page{
			URL:      url,
			Markdown: result.Markdown,
			HTML:     result.HTML,
			Metadata: result.Metadata,
		},
	}
}

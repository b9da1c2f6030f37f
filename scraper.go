package crawlhog

import "context"

// Format identifies a content format the fetch service can return.
type Format string

// Content formats understood by the fetch service.
const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatLinks    Format = "links"
)

// ScrapeOptions control how a single URL is rendered into content.
type ScrapeOptions struct {
	Formats         []Format
	OnlyMainContent bool

	// IncludeTags and ExcludeTags are tag/selector allow and deny lists
	// applied by the fetch service when extracting main content.
	IncludeTags []string
	ExcludeTags []string

	// WaitFor is how long the service waits for dynamic content, in
	// milliseconds.
	WaitFor int
}

// ScrapeResult is the rendered content of a single URL.
type ScrapeResult struct {
	Markdown string
	HTML     string
	Links    []string
	Metadata Metadata
}

// Scraper renders a single URL into content through the external fetch
// service. Implementations must report rate limiting as ERATELIMIT so
// the retry policy can distinguish it from permanent failures.
type Scraper interface {
	Scrape(ctx context.Context, url string, opts ScrapeOptions) (*ScrapeResult, error)
}

// MapOptions control whole-site URL mapping.
type MapOptions struct {
	IgnoreSitemap      bool
	IncludeSubdomains  bool
	AllowExternalLinks bool
	AllowBackwardLinks bool
	Limit              int
	MaxDepth           int
}

// SiteMapper discovers a site's URLs through the external fetch service.
type SiteMapper interface {
	MapSite(ctx context.Context, url string, opts MapOptions) ([]string, error)
}

// SitemapSource discovers URLs by reading a site's own sitemaps directly
// (robots.txt directives, /sitemap.xml). It supplements SiteMapper;
// failures here are never fatal to a crawl.
type SitemapSource interface {
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}

// LinkExtractor extracts outbound link URLs from raw HTML. Used as a
// fallback when the fetch service returns page content without links.
type LinkExtractor interface {
	ExtractLinks(html string, baseURL string) ([]string, error)
}

// DomainLimiter provides per-domain rate limiting for outbound calls.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

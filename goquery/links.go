// Package goquery extracts outbound links from raw HTML. It backs the
// discovery phase when the fetch service returns page content without a
// link list.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/crawlhog/crawlhog"
)

// Ensure LinkExtractor implements crawlhog.LinkExtractor at compile time.
var _ crawlhog.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor pulls anchor URLs out of HTML using universal CSS
// selectors that work across documentation frameworks: navigation, TOC,
// content, and footer regions, in that order.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// selectors lists the regions scanned for links, most link-dense first.
var selectors = []string{
	".toc a[href], .table-of-contents a[href], .sidebar a[href], aside a[href]",
	"nav a[href], [role=\"navigation\"] a[href], .nav a[href], .menu a[href], .navbar a[href]",
	"main a[href], article a[href], .content a[href], .doc-content a[href]",
	"footer a[href], .footer a[href]",
}

// ExtractLinks parses HTML and returns same-host link URLs, resolved
// against baseURL and deduplicated in encounter order. Non-HTTP schemes
// (javascript:, mailto:) are skipped.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, crawlhog.Errorf(crawlhog.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, crawlhog.Errorf(crawlhog.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]struct{})
	var links []string

	for _, selector := range selectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			href, exists := sel.Attr("href")
			if !exists || href == "" {
				return
			}
			if isNonHTTPLink(href) {
				return
			}

			resolved := resolveURL(base, href)
			if resolved == "" {
				return
			}
			if !isSameHost(base, resolved) {
				return
			}

			if _, ok := seen[resolved]; ok {
				return
			}
			seen[resolved] = struct{}{}
			links = append(links, resolved)
		})
	}

	return links, nil
}

// isNonHTTPLink reports whether href uses a scheme we never follow.
func isNonHTTPLink(href string) bool {
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:", "#"} {
		if strings.HasPrefix(href, prefix) {
			return true
		}
	}
	return false
}

// resolveURL resolves href against base, returning "" when unparseable.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// isSameHost reports whether rawURL has exactly the base host.
// Subdomains do not count as the same host.
func isSameHost(base *url.URL, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

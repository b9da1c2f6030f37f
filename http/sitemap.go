// Package http reads a site's own sitemaps directly over HTTP. It
// supplements the fetch service's map call during discovery; the service
// is asked to skip sitemaps, so reading them here adds URLs the mapper's
// link traversal can miss.
package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/crawlhog/crawlhog"
)

// Ensure SitemapService implements crawlhog.SitemapSource at compile time.
var _ crawlhog.SitemapSource = (*SitemapService)(nil)

// SitemapService discovers URLs from robots.txt sitemap directives and
// /sitemap.xml, resolving sitemap indexes recursively.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP
// client. If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs returns every URL listed in the site's sitemaps,
// deduplicated. Returns an empty slice when the site publishes none.
// Domain scoping and classification are the caller's concern.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, crawlhog.Errorf(crawlhog.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	sitemaps := s.sitemapsFromRobots(ctx, root)
	if len(sitemaps) == 0 {
		fallback := root.JoinPath("sitemap.xml").String()
		if s.exists(ctx, fallback) {
			sitemaps = []string{fallback}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	var urls []string

	for _, sitemapURL := range sitemaps {
		found, err := s.walkSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range found {
			if !seenURLs[u] {
				seenURLs[u] = true
				urls = append(urls, u)
			}
		}
	}

	if urls == nil {
		urls = []string{}
	}
	return urls, nil
}

// sitemapsFromRobots extracts Sitemap: directives from robots.txt.
// Any failure means "no directives"; robots.txt is best effort.
func (s *SitemapService) sitemapsFromRobots(ctx context.Context, root *url.URL) []string {
	body, err := s.get(ctx, root.JoinPath("robots.txt").String())
	if err != nil {
		return nil
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			continue
		}
		if u := strings.TrimSpace(line[len("sitemap:"):]); u != "" {
			sitemaps = append(sitemaps, u)
		}
	}
	return sitemaps
}

// walkSitemap parses one sitemap document, recursing into sitemapindex
// entries. Each sitemap is visited at most once.
func (s *SitemapService) walkSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap %s: %w", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap document at %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		var urls []string
		for _, child := range root.SelectElements("sitemap") {
			loc := locText(child)
			if loc == "" {
				continue
			}
			found, err := s.walkSitemap(ctx, loc, seen)
			if err != nil {
				return nil, err
			}
			urls = append(urls, found...)
		}
		return urls, nil
	}

	var urls []string
	for _, child := range root.SelectElements("url") {
		if loc := locText(child); loc != "" {
			urls = append(urls, loc)
		}
	}
	return urls, nil
}

func locText(el *etree.Element) string {
	loc := el.SelectElement("loc")
	if loc == nil {
		return ""
	}
	return strings.TrimSpace(loc.Text())
}

func (s *SitemapService) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, target)
	}
	return resp.Body, nil
}

func (s *SitemapService) exists(ctx context.Context, target string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return false
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

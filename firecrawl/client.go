// Package firecrawl provides an HTTP client for a Firecrawl-style fetch
// service, implementing crawlhog.Scraper and crawlhog.SiteMapper.
// Rendering, sitemap traversal, and link harvesting all happen on the
// service side; this client only shapes requests and maps failures onto
// the application's error codes.
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/crawlhog/crawlhog"
)

// DefaultBaseURL is the hosted fetch service endpoint.
const DefaultBaseURL = "https://api.firecrawl.dev/v1"

// DefaultTimeout bounds a single API call. Scrapes of JS-heavy pages can
// be slow, so this is generous.
const DefaultTimeout = 90 * time.Second

// Ensure Client implements the fetch service interfaces at compile time.
var (
	_ crawlhog.Scraper    = (*Client)(nil)
	_ crawlhog.SiteMapper = (*Client)(nil)
)

// Client calls the fetch service API.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Used for self-hosted
// deployments and in tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// NewClient creates a fetch service client. The API key is required;
// its absence is a configuration error surfaced before any network
// activity.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, crawlhog.Errorf(crawlhog.ECONFIG, "fetch service API key is required: set FIRECRAWL_API_KEY or pass --api-key")
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return c, nil
}

type scrapeRequest struct {
	URL             string            `json:"url"`
	Formats         []crawlhog.Format `json:"formats"`
	OnlyMainContent bool              `json:"onlyMainContent"`
	IncludeTags     []string          `json:"includeTags,omitempty"`
	ExcludeTags     []string          `json:"excludeTags,omitempty"`
	WaitFor         int               `json:"waitFor,omitempty"`
}

type scrapeResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Data    struct {
		Markdown string         `json:"markdown"`
		HTML     string         `json:"html"`
		Links    []string       `json:"links"`
		Metadata map[string]any `json:"metadata"`
	} `json:"data"`
}

// Scrape renders a single URL through the fetch service.
func (c *Client) Scrape(ctx context.Context, url string, opts crawlhog.ScrapeOptions) (*crawlhog.ScrapeResult, error) {
	req := scrapeRequest{
		URL:             url,
		Formats:         opts.Formats,
		OnlyMainContent: opts.OnlyMainContent,
		IncludeTags:     opts.IncludeTags,
		ExcludeTags:     opts.ExcludeTags,
		WaitFor:         opts.WaitFor,
	}

	var resp scrapeResponse
	if err := c.post(ctx, "/scrape", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, crawlhog.Errorf(crawlhog.EINTERNAL, "scrape of %s failed: %s", url, resp.Error)
	}

	return &crawlhog.ScrapeResult{
		Markdown: resp.Data.Markdown,
		HTML:     resp.Data.HTML,
		Links:    resp.Data.Links,
		Metadata: stringMetadata(resp.Data.Metadata),
	}, nil
}

type mapRequest struct {
	URL                string `json:"url"`
	IgnoreSitemap      bool   `json:"ignoreSitemap"`
	IncludeSubdomains  bool   `json:"includeSubdomains"`
	AllowExternalLinks bool   `json:"allowExternalLinks"`
	AllowBackwardLinks bool   `json:"allowBackwardLinks"`
	Limit              int    `json:"limit,omitempty"`
	MaxDepth           int    `json:"maxDepth,omitempty"`
}

type mapResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Links   []string `json:"links"`
}

// MapSite discovers a site's URLs through the fetch service.
func (c *Client) MapSite(ctx context.Context, url string, opts crawlhog.MapOptions) ([]string, error) {
	req := mapRequest{
		URL:                url,
		IgnoreSitemap:      opts.IgnoreSitemap,
		IncludeSubdomains:  opts.IncludeSubdomains,
		AllowExternalLinks: opts.AllowExternalLinks,
		AllowBackwardLinks: opts.AllowBackwardLinks,
		Limit:              opts.Limit,
		MaxDepth:           opts.MaxDepth,
	}

	var resp mapResponse
	if err := c.post(ctx, "/map", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, crawlhog.Errorf(crawlhog.EINTERNAL, "map of %s failed: %s", url, resp.Error)
	}

	return resp.Links, nil
}

// post sends a JSON request and decodes the JSON response, translating
// HTTP status codes into application error codes.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return crawlhog.Errorf(crawlhog.EUNAVAILABLE, "fetch service unreachable: %v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return crawlhog.Errorf(crawlhog.ERATELIMIT, "fetch service rate limited %s", path)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return crawlhog.Errorf(crawlhog.ECONFIG, "fetch service rejected credentials (HTTP %d)", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return crawlhog.Errorf(crawlhog.EINTERNAL, "fetch service HTTP %d: %s", resp.StatusCode, excerpt)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding fetch service response: %w", err)
	}
	return nil
}

// stringMetadata keeps only string-valued metadata entries. The wire
// format allows arbitrary JSON values; non-strings are dropped.
func stringMetadata(raw map[string]any) crawlhog.Metadata {
	if len(raw) == 0 {
		return nil
	}
	m := make(crawlhog.Metadata, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			m[k] = s
		}
	}
	return m
}

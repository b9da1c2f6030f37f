package crawl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/crawlhog/crawlhog"
	"github.com/crawlhog/crawlhog/crawl"
	"github.com/crawlhog/crawlhog/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturingWriter records the pages handed to Persist and fabricates a
// manifest entry per non-empty page.
type capturingWriter struct {
	pages     map[string]*crawlhog.Page
	outputDir string
}

func (w *capturingWriter) writer() *mock.ResultWriter {
	return &mock.ResultWriter{
		PersistFn: func(ctx context.Context, pages map[string]*crawlhog.Page, outputDir string) (*crawlhog.Manifest, error) {
			w.pages = pages
			w.outputDir = outputDir
			m := &crawlhog.Manifest{Pages: make(map[string]*crawlhog.PageEntry)}
			for url, page := range pages {
				if page.Empty() {
					continue
				}
				m.Pages[url] = &crawlhog.PageEntry{
					Title:       page.Metadata.Title(),
					Description: page.Metadata.Description(),
				}
			}
			return m, nil
		},
	}
}

func TestCrawler_Crawl(t *testing.T) {
	t.Parallel()

	t.Run("end to end", func(t *testing.T) {
		t.Parallel()

		pageContent := map[string]*crawlhog.ScrapeResult{
			"https://example-docs.io": {
				Markdown: "# Welcome",
				Metadata: crawlhog.Metadata{"title": "Welcome"},
				Links: []string{
					"https://example-docs.io/docs/intro",
					"https://example-docs.io/blog/post",
					"https://example-docs.io/docs/advanced",
				},
			},
			"https://example-docs.io/docs/intro": {
				Markdown: "# Intro",
				Metadata: crawlhog.Metadata{"title": "Intro"},
			},
			"https://example-docs.io/docs/advanced": {
				Markdown: "# Advanced",
				Metadata: crawlhog.Metadata{"title": "Advanced"},
			},
			"https://example-docs.io/api/ref": {
				Markdown: "# API",
				Metadata: crawlhog.Metadata{"title": "API"},
			},
		}

		w := &capturingWriter{}
		c := &crawl.Crawler{
			Scraper: &mock.Scraper{
				ScrapeFn: func(ctx context.Context, url string, opts crawlhog.ScrapeOptions) (*crawlhog.ScrapeResult, error) {
					result, ok := pageContent[url]
					if !ok {
						return nil, crawlhog.Errorf(crawlhog.ENOTFOUND, "no such page %s", url)
					}
					return result, nil
				},
			},
			Mapper: staticMapper([]string{
				"https://example-docs.io/docs/intro",
				"https://example-docs.io/api/ref",
			}),
			Writer: w.writer(),
		}

		outputDir, err := c.Crawl(context.Background(), "https://example-docs.io", "", nil)

		require.NoError(t, err)
		assert.Equal(t, "example-docs.io-docs", outputDir, "default output dir derives from domain")
		assert.Equal(t, "example-docs.io-docs", w.outputDir)

		// blog excluded by classification; initial page included for free
		require.Len(t, w.pages, 4)
		assert.Contains(t, w.pages, "https://example-docs.io")
		assert.Contains(t, w.pages, "https://example-docs.io/docs/intro")
		assert.Contains(t, w.pages, "https://example-docs.io/docs/advanced")
		assert.Contains(t, w.pages, "https://example-docs.io/api/ref")
		assert.NotContains(t, w.pages, "https://example-docs.io/blog/post")
	})

	t.Run("partial failure still persists the rest", func(t *testing.T) {
		t.Parallel()

		w := &capturingWriter{}
		c := &crawl.Crawler{
			Scraper: &mock.Scraper{
				ScrapeFn: func(ctx context.Context, url string, opts crawlhog.ScrapeOptions) (*crawlhog.ScrapeResult, error) {
					switch url {
					case "https://x.com":
						return &crawlhog.ScrapeResult{Markdown: "# Home"}, nil
					case "https://x.com/docs/broken":
						return nil, errors.New("render failed")
					default:
						return &crawlhog.ScrapeResult{Markdown: "# ok"}, nil
					}
				},
			},
			Mapper: staticMapper([]string{
				"https://x.com/docs/a",
				"https://x.com/docs/b",
				"https://x.com/docs/broken",
			}),
			Writer: w.writer(),
		}

		outputDir, err := c.Crawl(context.Background(), "https://x.com", "out", nil)

		require.NoError(t, err, "a per-page failure must not fail the run")
		assert.Equal(t, "out", outputDir)
		assert.Contains(t, w.pages, "https://x.com/docs/a")
		assert.Contains(t, w.pages, "https://x.com/docs/b")
		assert.NotContains(t, w.pages, "https://x.com/docs/broken")
	})

	t.Run("invalid target URL fails before any network call", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{
			Scraper: &mock.Scraper{
				ScrapeFn: func(ctx context.Context, url string, opts crawlhog.ScrapeOptions) (*crawlhog.ScrapeResult, error) {
					t.Fatal("scrape must not be called")
					return nil, nil
				},
			},
			Mapper: staticMapper(nil),
			Writer: (&capturingWriter{}).writer(),
		}

		_, err := c.Crawl(context.Background(), "not a url at all\x00", "", nil)

		require.Error(t, err)
		assert.Equal(t, crawlhog.EINVALID, crawlhog.ErrorCode(err))
	})

	t.Run("discovery failure is fatal", func(t *testing.T) {
		t.Parallel()

		persisted := false
		c := &crawl.Crawler{
			Scraper: &mock.Scraper{
				ScrapeFn: func(ctx context.Context, url string, opts crawlhog.ScrapeOptions) (*crawlhog.ScrapeResult, error) {
					return nil, errors.New("service down")
				},
			},
			Mapper: staticMapper(nil),
			Writer: &mock.ResultWriter{
				PersistFn: func(ctx context.Context, pages map[string]*crawlhog.Page, outputDir string) (*crawlhog.Manifest, error) {
					persisted = true
					return &crawlhog.Manifest{}, nil
				},
			},
		}

		_, err := c.Crawl(context.Background(), "https://x.com", "", nil)

		require.Error(t, err)
		assert.False(t, persisted, "no partial manifest from a failed discovery")
	})

	t.Run("persistence failure is fatal", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{
			Scraper: staticScraper(&crawlhog.ScrapeResult{Markdown: "# Home"}),
			Mapper:  staticMapper([]string{"https://x.com/docs/a"}),
			Writer: &mock.ResultWriter{
				PersistFn: func(ctx context.Context, pages map[string]*crawlhog.Page, outputDir string) (*crawlhog.Manifest, error) {
					return nil, errors.New("disk full")
				},
			},
		}

		_, err := c.Crawl(context.Background(), "https://x.com", "", nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "persisting results")
	})
}

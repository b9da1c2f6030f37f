// Package fs persists crawl results as on-disk artifacts: one markdown
// file per page, HTML copies under html/, and a manifest.json describing
// the run.
package fs

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/crawlhog/crawlhog"
)

// timestampLayout is the manifest timestamp format.
const timestampLayout = "2006-01-02 15:04:05"

// Filename converts a URL into a flat artifact name: the URL path is
// decoded, stripped of surrounding slashes, and internal slashes become
// hyphens. The home page maps to "index".
func Filename(rawURL string) string {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}
	if decoded, err := url.PathUnescape(path); err == nil {
		path = decoded
	}

	name := strings.ReplaceAll(strings.Trim(path, "/"), "/", "-")
	if name == "" {
		return "index"
	}
	return name
}

// Ensure Writer implements crawlhog.ResultWriter at compile time.
var _ crawlhog.ResultWriter = (*Writer)(nil)

// Writer writes pages and a manifest to an output directory.
type Writer struct {
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Writer.
type Option func(*Writer)

// WithLogger sets the logger used for per-page diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) {
		w.logger = logger
	}
}

// WithClock sets the time source for manifest timestamps.
// Used in tests; defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		w.now = now
	}
}

// NewWriter creates a new Writer.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Persist writes every non-empty page under outputDir and returns the
// manifest. The directory (and parents) are created if absent;
// re-running into the same directory overwrites same-named files. Pages
// with neither markdown nor HTML are skipped with a diagnostic. Any
// filesystem failure propagates: the written artifacts are the entire
// point of a run.
func (w *Writer) Persist(ctx context.Context, pages map[string]*crawlhog.Page, outputDir string) (*crawlhog.Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, err
	}

	manifest := &crawlhog.Manifest{
		Timestamp: w.now().Format(timestampLayout),
		Pages:     make(map[string]*crawlhog.PageEntry),
	}

	// Deterministic write order; derived filenames are unique per
	// distinct URL path so writes never collide.
	urls := make([]string, 0, len(pages))
	for u := range pages {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	for _, pageURL := range urls {
		page := pages[pageURL]
		if page.Empty() {
			w.logger.Info("skipping page with no content", "url", pageURL)
			continue
		}

		name := Filename(pageURL)
		entry := &crawlhog.PageEntry{
			Title:       page.Metadata.Title(),
			Description: page.Metadata.Description(),
		}

		if page.Markdown != "" {
			relPath := name + ".md"
			if err := os.WriteFile(filepath.Join(outputDir, relPath), []byte(page.Markdown), 0644); err != nil {
				return nil, err
			}
			entry.MarkdownFile = relPath
		}

		if page.HTML != "" {
			htmlDir := filepath.Join(outputDir, "html")
			if err := os.MkdirAll(htmlDir, 0755); err != nil {
				return nil, err
			}
			relPath := filepath.Join("html", name+".html")
			if err := os.WriteFile(filepath.Join(outputDir, relPath), []byte(page.HTML), 0644); err != nil {
				return nil, err
			}
			entry.HTMLFile = relPath
		}

		// HTML-only pages get a manifest entry too; the manifest must
		// account for every artifact written.
		manifest.Pages[pageURL] = entry
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(outputDir, "manifest.json"), data, 0644); err != nil {
		return nil, err
	}

	w.logger.Info("saved crawl results", "pages", len(manifest.Pages), "dir", outputDir)
	return manifest, nil
}

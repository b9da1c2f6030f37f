package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/crawlhog/crawlhog"
	"github.com/crawlhog/crawlhog/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "nested path joins with hyphens",
			url:  "https://x.com/guide/getting-started/",
			want: "guide-getting-started",
		},
		{
			name: "root becomes index",
			url:  "https://x.com",
			want: "index",
		},
		{
			name: "root slash becomes index",
			url:  "https://x.com/",
			want: "index",
		},
		{
			name: "single segment",
			url:  "https://x.com/docs",
			want: "docs",
		},
		{
			name: "percent-encoding decodes before joining",
			url:  "https://x.com/docs/hello%20world",
			want: "docs-hello world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, fs.Filename(tt.url))
		})
	}
}

func TestWriter_Persist(t *testing.T) {
	t.Parallel()

	fixedClock := func() time.Time {
		return time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	}

	t.Run("writes artifacts and manifest", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "out")
		w := fs.NewWriter(fs.WithClock(fixedClock))

		pages := map[string]*crawlhog.Page{
			"https://x.com/docs/intro": {
				URL:      "https://x.com/docs/intro",
				Markdown: "# Intro",
				HTML:     "<h1>Intro</h1>",
				Metadata: crawlhog.Metadata{"title": "Intro", "description": "Getting started"},
			},
			"https://x.com": {
				URL:      "https://x.com",
				Markdown: "# Home",
			},
		}

		manifest, err := w.Persist(context.Background(), pages, dir)

		require.NoError(t, err)
		assert.Equal(t, "2025-06-01 12:30:00", manifest.Timestamp)
		require.Len(t, manifest.Pages, 2)

		md, err := os.ReadFile(filepath.Join(dir, "docs-intro.md"))
		require.NoError(t, err)
		assert.Equal(t, "# Intro", string(md))

		html, err := os.ReadFile(filepath.Join(dir, "html", "docs-intro.html"))
		require.NoError(t, err)
		assert.Equal(t, "<h1>Intro</h1>", string(html))

		_, err = os.ReadFile(filepath.Join(dir, "index.md"))
		require.NoError(t, err)

		entry := manifest.Pages["https://x.com/docs/intro"]
		require.NotNil(t, entry)
		assert.Equal(t, "docs-intro.md", entry.MarkdownFile)
		assert.Equal(t, filepath.Join("html", "docs-intro.html"), entry.HTMLFile)
		assert.Equal(t, "Intro", entry.Title)
		assert.Equal(t, "Getting started", entry.Description)
	})

	t.Run("manifest file round-trips", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(fs.WithClock(fixedClock))

		pages := map[string]*crawlhog.Page{
			"https://x.com/docs": {URL: "https://x.com/docs", Markdown: "# Docs"},
		}

		_, err := w.Persist(context.Background(), pages, dir)
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
		require.NoError(t, err)

		var got crawlhog.Manifest
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "2025-06-01 12:30:00", got.Timestamp)
		require.Contains(t, got.Pages, "https://x.com/docs")
		assert.Equal(t, "docs.md", got.Pages["https://x.com/docs"].MarkdownFile)
	})

	t.Run("html-only page still gets a manifest entry", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter()

		pages := map[string]*crawlhog.Page{
			"https://x.com/docs/raw": {
				URL:      "https://x.com/docs/raw",
				HTML:     "<p>raw</p>",
				Metadata: crawlhog.Metadata{"title": "Raw"},
			},
		}

		manifest, err := w.Persist(context.Background(), pages, dir)

		require.NoError(t, err)
		entry := manifest.Pages["https://x.com/docs/raw"]
		require.NotNil(t, entry)
		assert.Empty(t, entry.MarkdownFile)
		assert.Equal(t, filepath.Join("html", "docs-raw.html"), entry.HTMLFile)
		assert.Equal(t, "Raw", entry.Title)

		_, err = os.Stat(filepath.Join(dir, "docs-raw.md"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("empty pages are skipped entirely", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter()

		pages := map[string]*crawlhog.Page{
			"https://x.com/docs/empty": {URL: "https://x.com/docs/empty"},
			"https://x.com/docs/full":  {URL: "https://x.com/docs/full", Markdown: "# Full"},
		}

		manifest, err := w.Persist(context.Background(), pages, dir)

		require.NoError(t, err)
		assert.Len(t, manifest.Pages, 1)
		assert.NotContains(t, manifest.Pages, "https://x.com/docs/empty")
	})

	t.Run("rerun overwrites same-named files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter()

		first := map[string]*crawlhog.Page{
			"https://x.com/docs": {URL: "https://x.com/docs", Markdown: "# v1"},
		}
		_, err := w.Persist(context.Background(), first, dir)
		require.NoError(t, err)

		second := map[string]*crawlhog.Page{
			"https://x.com/docs": {URL: "https://x.com/docs", Markdown: "# v2"},
		}
		_, err = w.Persist(context.Background(), second, dir)
		require.NoError(t, err)

		md, err := os.ReadFile(filepath.Join(dir, "docs.md"))
		require.NoError(t, err)
		assert.Equal(t, "# v2", string(md))
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "a", "b", "c")
		w := fs.NewWriter()

		_, err := w.Persist(context.Background(), map[string]*crawlhog.Page{
			"https://x.com/docs": {URL: "https://x.com/docs", Markdown: "# Docs"},
		}, dir)

		require.NoError(t, err)
	})
}

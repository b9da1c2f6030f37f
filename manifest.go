package crawlhog

import "context"

// PageEntry maps one persisted URL to its artifacts.
type PageEntry struct {
	MarkdownFile string `json:"markdown_file,omitempty"`
	HTMLFile     string `json:"html_file,omitempty"`
	Title        string `json:"title"`
	Description  string `json:"description"`
}

// Manifest is the structured summary of a crawl run. It is written once
// at the end of a run and owned exclusively by the result writer.
type Manifest struct {
	Timestamp string                `json:"timestamp"`
	Pages     map[string]*PageEntry `json:"pages"`
}

// ResultWriter persists fetched pages as on-disk artifacts.
type ResultWriter interface {
	// Persist writes each non-empty page under outputDir and returns the
	// manifest describing the run. Re-running into the same directory
	// overwrites same-named files.
	Persist(ctx context.Context, pages map[string]*Page, outputDir string) (*Manifest, error)
}

package crawlhog

// Metadata holds page metadata as string key/value pairs.
//
// Recognized keys are "title" and "description"; unrecognized keys are
// passed through untouched so callers can persist whatever the fetch
// service reports. Values that are not strings on the wire are dropped
// at the client boundary.
type Metadata map[string]string

// Title returns the page title, or "" when absent.
func (m Metadata) Title() string { return m["title"] }

// Description returns the page description, or "" when absent.
func (m Metadata) Description() string { return m["description"] }

// Page is the result of fetching one candidate URL.
type Page struct {
	URL      string
	Markdown string
	HTML     string
	Metadata Metadata
}

// Empty reports whether the page carries no content at all.
// Empty pages are excluded from persistence.
func (p *Page) Empty() bool {
	return p.Markdown == "" && p.HTML == ""
}

// PageProgress reports progress while pages are fetched.
type PageProgress struct {
	URL       string
	Completed int
	Total     int
	Err       error
}

// PageProgressFunc is called as pages are processed.
type PageProgressFunc func(PageProgress)

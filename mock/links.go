package mock

import "github.com/crawlhog/crawlhog"

var _ crawlhog.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of crawlhog.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (l *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	return l.ExtractLinksFn(html, baseURL)
}

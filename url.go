package crawlhog

import (
	"net/url"
	"strings"
)

// NormalizeURL canonicalizes a URL so the same logical page is never
// processed twice under different spellings. The scheme is forced to
// https, query strings and fragments are dropped (documentation pages
// are path-identified), and a single trailing slash is stripped unless
// that would leave just the scheme.
//
// The function is pure and idempotent:
// NormalizeURL(NormalizeURL(x)) == NormalizeURL(x).
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", raw, err)
	}

	normalized := "https://" + u.Host + u.Path
	if strings.HasSuffix(normalized, "/") && len(normalized) > len("https://") {
		normalized = strings.TrimSuffix(normalized, "/")
	}
	return normalized, nil
}

// Target is the initiating URL of a crawl and its base domain.
// Immutable once constructed.
type Target struct {
	// Normalized form of the initiating URL.
	URL string

	// Host component used for scoping. Only discovered URLs whose host
	// equals Domain are retained; subdomains are excluded.
	Domain string
}

// NewTarget normalizes a raw URL into a crawl target.
// Returns EINVALID if the URL cannot be parsed or has no host.
func NewTarget(raw string) (Target, error) {
	normalized, err := NormalizeURL(raw)
	if err != nil {
		return Target{}, err
	}

	u, err := url.Parse(normalized)
	if err != nil {
		return Target{}, Errorf(EINVALID, "invalid URL %q: %v", raw, err)
	}
	if u.Host == "" {
		return Target{}, Errorf(EINVALID, "URL %q has no host", raw)
	}

	return Target{URL: normalized, Domain: u.Host}, nil
}

// SameDomain reports whether rawURL's host equals the target domain.
// URLs that fail to parse are never in scope.
func (t Target) SameDomain(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Host == t.Domain
}

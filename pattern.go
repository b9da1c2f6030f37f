package crawlhog

import (
	"net/url"
	"strings"
)

// Pattern is a single path-matching rule used to classify candidate URLs
// as likely documentation content.
type Pattern struct {
	// Path is the literal path (exact rules) or path prefix (wildcard rules).
	Path string

	// Wildcard marks a rule that matches anything beneath (or around) Path.
	Wildcard bool
}

// PatternSet is an ordered sequence of path-matching rules.
// Immutable after construction.
type PatternSet []Pattern

// Match reports whether rawURL looks like a documentation page.
//
// Matching is case-insensitive on the path. A wildcard rule matches when
// its path is a substring of the URL path, not a prefix, so locale and
// version segments ahead of the documentation root still match
// (e.g. /en/latest/docs/intro).
// An exact rule matches only on path equality.
func (ps PatternSet) Match(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := strings.ToLower(u.Path)

	for _, p := range ps {
		if p.Wildcard {
			if strings.Contains(path, p.Path) {
				return true
			}
		} else if path == p.Path {
			return true
		}
	}
	return false
}

// DocPatterns returns the documentation path patterns for a target URL.
//
// The base set covers path prefixes common across documentation sites,
// each as a wildcard rule, plus a few exact bare-path rules for sites
// whose documentation root has no trailing segments. Known hosts get
// extra rules appended; at most one host branch applies.
func DocPatterns(targetURL string) PatternSet {
	ps := PatternSet{
		{Path: "/docs/", Wildcard: true},
		{Path: "/documentation/", Wildcard: true},
		{Path: "/guide/", Wildcard: true},
		{Path: "/manual/", Wildcard: true},
		{Path: "/reference/", Wildcard: true},
		{Path: "/api/", Wildcard: true},
		{Path: "/learn/", Wildcard: true},
		{Path: "/tutorial/", Wildcard: true},
		{Path: "/quickstart/", Wildcard: true},
		{Path: "/getting-started/", Wildcard: true},
		{Path: "/examples/", Wildcard: true},
		{Path: "/learn"},
		{Path: "/docs"},
		{Path: "/api"},
		{Path: "/reference"},
		{Path: "/tutorial"},
	}

	var host string
	if u, err := url.Parse(targetURL); err == nil {
		host = u.Host
	}

	switch {
	case strings.Contains(host, "readthedocs"):
		// Read the Docs prefixes paths with locale and version.
		ps = append(ps,
			Pattern{Path: "/en/", Wildcard: true},
			Pattern{Path: "/latest/", Wildcard: true},
		)
	case strings.Contains(host, "github.io"):
		// GitHub Pages sites are usually documentation in their entirety.
		ps = append(ps, Pattern{Path: "/", Wildcard: true})
	case strings.Contains(host, "react.dev"):
		ps = append(ps,
			Pattern{Path: "/learn"},
			Pattern{Path: "/reference"},
			Pattern{Path: "/community"},
			Pattern{Path: "/blog"},
			Pattern{Path: "/", Wildcard: true},
		)
	}

	return ps
}

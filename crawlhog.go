// Package crawlhog discovers and retrieves documentation pages for a
// website and persists them as local markdown/HTML artifacts plus a
// manifest. The heavy lifting of rendering a URL into content is
// delegated to an external fetch service; this package owns URL
// discovery, classification, retry, and persistence.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., firecrawl/,
// fs/, goquery/).
package crawlhog

// Package sitemap is the in-memory model of a sitemaps.org URL set.
//
// Parse is tolerant: a document is read with pattern matching rather than a strict
// XML decoder, so hand-edited or partially broken files still load. Render writes
// the document back with entries ordered by priority.
//
// Entries are matched by Identity, the path after the host, so "http://example.com/a/"
// and "https://www.example.com/a" refer to the same page.
package sitemap

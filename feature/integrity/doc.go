// Package integrity provides health checks for the sitemaps and their infrastructure.
//
// # Checks Provided
//
//   - Sitemap drift: compares a sitemap with the files under its root by entry
//     identity. Entries whose file is gone, files without an entry and entries with an
//     outdated lastmod are reported, and can be repaired in a single rewrite.
//   - Bucket: checks that every configured sitemap has been published and finds
//     orphaned sitemap objects left by removed configurations.
//   - History: validates that the history table matches the revision model.
//
// # HTTP Endpoints
//
//   - GET /integrity : drift check (supports ?sitemap=, ?fix=true, ?purge=, ?sync=).
//   - GET /integrity/bucket : bucket check (supports ?fix=true).
//   - GET /integrity/history : history schema check.
package integrity

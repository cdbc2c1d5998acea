// Package history records every sitemap operation in the database.
//
// Each engine Outcome (regenerate, add, touch, remove, rename, apply) becomes a
// Revision row in the sitemap_revisions table, tagged with where the change came
// from (cli, http, watch). The feature is disabled when no database is connected.
//
// # HTTP Endpoints
//
//   - GET /history : lists revisions, newest first (?sitemap=, ?limit=).
package history

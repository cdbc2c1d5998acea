// Package sitemap is the sitemap management feature.
//
// The Service owns the settings snapshot read from the workspace settings file and
// is the single entry point for the CLI, the HTTP API and the file watcher. It
// resolves which sitemap a request targets, turns file events into engine actions
// and, after every operation, publishes the written file to object storage and
// records a history revision when those are configured.
//
// # Target resolution
//
// A named sitemap must be configured. Without a name the only configured sitemap
// is used; with several, Resolve returns an *AmbiguousSelectionError listing the
// candidates. The CLI asks through a Prompter, the HTTP API answers 409.
//
// # HTTP Endpoints
//
//   - GET /sitemaps : configured sitemaps with resolved settings.
//   - POST /sitemaps : configure and generate a new sitemap.
//   - GET /sitemaps/entries : parsed document (?sitemap=).
//   - POST /sitemaps/regenerate : full regeneration (?sitemap=).
//   - POST /sitemaps/events : apply a file event.
//   - POST /sitemaps/refresh : reload the settings file.
package sitemap

// Package metrics exposes Prometheus counters and histograms for sitemap
// operations, file events and publishing.
//
// All collectors live on a private registry so tests can create as many
// instances as they need.
package metrics

// Package scanner walks a website source tree and collects the files that belong
// in a sitemap, together with their URL, depth and modification time.
package scanner

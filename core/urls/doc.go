// Package urls derives sitemap URLs from file paths and computes their priority.
//
// Derive turns a path relative to the website root into a canonical URL. "index" files
// collapse into their directory, so "blog/index.html" becomes ".../blog" and the root
// "index.html" becomes the bare domain.
//
// Priority is derived from depth: 1 - depth/(maxDepth+1), where maxDepth is the deepest
// URL of the set the entry belongs to.
package urls

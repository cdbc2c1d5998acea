package urls

import (
	"path"
	"path/filepath"
	"strings"

	"sitemap-manager/core/settings"
)

// Derive maps a root-relative file path to the canonical URL of the page.
// Malformed settings (e.g. an empty domain) produce a malformed URL, not an error.
func Derive(s settings.Settings, relPath string) string {
	p := strings.ReplaceAll(relPath, "\\", "/")
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")

	ext := path.Ext(p)
	base := strings.TrimSuffix(path.Base(p), ext)

	if s.RemoveFileExtensions && ext != "" {
		p = strings.TrimSuffix(p, ext)
	}

	// "blog/index.html" -> "blog", "index.html" -> ""
	if p != "" && strings.EqualFold(base, "index") {
		p = path.Dir(p)
		if p == "." {
			p = ""
		}
	}

	if p != "" {
		p = "/" + p
	}

	var b strings.Builder
	b.WriteString(s.Protocol)
	b.WriteString("://")
	if s.IncludeWWW {
		b.WriteString("www.")
	}
	b.WriteString(s.DomainName)
	b.WriteString(p)
	if s.UseTrailingSlash && p != "" && !strings.Contains(p, ".") {
		b.WriteString("/")
	}
	return b.String()
}

// RelativePath returns filePath relative to the sitemap root, using forward slashes.
// Relative inputs are taken as already relative to the root.
// ok is false when an absolute path lies outside the root.
func RelativePath(workspaceRoot string, s settings.Settings, filePath string) (rel string, ok bool) {
	if !filepath.IsAbs(filePath) {
		rel = strings.ReplaceAll(filePath, "\\", "/")
		return strings.TrimPrefix(path.Clean("/"+rel), "/"), true
	}

	root := filepath.Join(workspaceRoot, filepath.FromSlash(s.Root))
	r, err := filepath.Rel(root, filePath)
	if err != nil {
		return "", false
	}
	r = filepath.ToSlash(r)
	if r == ".." || strings.HasPrefix(r, "../") {
		return "", false
	}
	return r, true
}

// Depth returns the depth of a URL: the number of "/" in the URL minus its last
// character, less the two of the scheme separator. Root pages have depth 0.
func Depth(url string) int {
	if url == "" {
		return 0
	}
	n := strings.Count(url[:len(url)-1], "/")
	if n == 0 {
		return 0
	}
	if d := n - 2; d > 0 {
		return d
	}
	return 0
}

// Priority returns 1 - depth/(maxDepth+1).
// It must not be called for an empty set (maxDepth == -1).
func Priority(depth, maxDepth int) float64 {
	return 1 - float64(depth)/float64(maxDepth+1)
}

// MaxDepth returns the deepest URL depth in locations, or -1 for an empty set.
func MaxDepth(locations []string) int {
	deepest := -1
	for _, loc := range locations {
		if d := Depth(loc); d > deepest {
			deepest = d
		}
	}
	return deepest
}

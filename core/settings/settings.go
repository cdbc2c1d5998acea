package settings

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// ErrOutsideWorkspace is returned for a sitemap or root path that leaves the workspace.
var ErrOutsideWorkspace = errors.New("path is outside the workspace")

// Settings is the resolved configuration of a single sitemap.
// Every field holds a usable value; defaults are applied by Snapshot.Get.
type Settings struct {
	// Protocol is the URL scheme, "http" or "https".
	Protocol string `json:"Protocol"`
	// DomainName is the host the URLs are built for (e.g. "example.com").
	DomainName string `json:"DomainName"`
	// Root is the workspace-relative directory holding the website sources.
	Root string `json:"Root"`
	// IncludeExt lists the file extensions (with dot) that produce sitemap entries.
	IncludeExt []string `json:"IncludeExt"`
	// Exclude lists regular expressions matched against root-relative file paths.
	Exclude []string `json:"Exclude"`
	// IncludeWWW prefixes the domain with "www.".
	IncludeWWW bool `json:"IncludeWWW"`
	// RemoveFileExtensions strips the extension from the last URL segment.
	RemoveFileExtensions bool `json:"RemoveFileExtensions"`
	// UseTrailingSlash appends "/" to URLs that don't end in a file name.
	UseTrailingSlash bool `json:"UseTrailingSlash"`
	// Minimized writes the sitemap without whitespace between tags.
	Minimized bool `json:"Minimized"`
	// TabCharacters is the indentation unit of the written sitemap.
	TabCharacters string `json:"TabCharacters"`
	// DefaultChangeFrequency is set on newly created entries. Empty means none.
	DefaultChangeFrequency string `json:"DefaultChangeFrequency"`
	// TagsToInclude limits the optional tags written for each entry.
	TagsToInclude []string `json:"TagsToInclude"`
	// AutomaticallyUpdateSitemap enables incremental updates on file events.
	AutomaticallyUpdateSitemap bool `json:"AutomaticallyUpdateSitemap"`
}

// Optional tag names accepted in TagsToInclude.
const (
	TagPriority   = "priority"
	TagChangeFreq = "changefreq"
	TagLastMod    = "lastmod"
)

// Defaults returns the settings used for any field a stored configuration omits.
func Defaults() Settings {
	return Settings{
		Protocol:                   "http",
		DomainName:                 "example.com",
		Root:                       "",
		IncludeExt:                 []string{".html", ".php"},
		Exclude:                    []string{},
		IncludeWWW:                 true,
		RemoveFileExtensions:       false,
		UseTrailingSlash:           false,
		Minimized:                  false,
		TabCharacters:              "\t",
		DefaultChangeFrequency:     "",
		TagsToInclude:              []string{TagPriority, TagChangeFreq, TagLastMod},
		AutomaticallyUpdateSitemap: true,
	}
}

// Includes reports whether ext is one of the included file extensions.
func (s Settings) Includes(ext string) bool {
	for _, e := range s.IncludeExt {
		if e == ext {
			return true
		}
	}
	return false
}

// NormalizeRoot strips a leading ".", "/" or "./" from a configured root and cleans it.
func NormalizeRoot(root string) string {
	root = strings.ReplaceAll(root, "\\", "/")
	root = strings.TrimPrefix(root, ".")
	root = strings.TrimPrefix(root, "/")
	if root == "" {
		return ""
	}
	root = path.Clean(root)
	if root == "." {
		return ""
	}
	return root
}

// CheckRelative verifies that p is workspace-relative and stays inside the workspace
// once cleaned.
func CheckRelative(p string) error {
	clean := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	if filepath.IsAbs(p) || path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%w: %s", ErrOutsideWorkspace, p)
	}
	return nil
}

// CheckRoot verifies a configured root the way Snapshot.Get resolves it.
func CheckRoot(root string) error {
	if err := CheckRelative(NormalizeRoot(root)); err != nil {
		return fmt.Errorf("%w: root %s", ErrOutsideWorkspace, root)
	}
	return nil
}

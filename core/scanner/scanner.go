package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"time"

	"sitemap-manager/core/settings"
	"sitemap-manager/core/urls"

	"github.com/spf13/afero"
)

var (
	// ErrRootNotFound is returned when the sitemap root directory does not exist.
	ErrRootNotFound = errors.New("sitemap root not found")
	// ErrInvalidExclude is returned for an exclude pattern that does not compile.
	ErrInvalidExclude = errors.New("invalid exclude pattern")
)

// FileRecord describes one file that produces a sitemap entry.
type FileRecord struct {
	// URL is the derived page URL.
	URL string `json:"url"`
	// RelPath is the forward-slash path relative to the sitemap root.
	RelPath string `json:"rel_path"`
	// LastModified is the file modification time.
	LastModified time.Time `json:"last_modified"`
	// Depth is urls.Depth(URL).
	Depth int `json:"depth"`
}

// Result is the outcome of a tree scan.
type Result struct {
	Files []FileRecord `json:"files"`
	// MaxDepth is the deepest file depth, or -1 when no file matched.
	MaxDepth int `json:"max_depth"`
}

// Excludes is a compiled list of exclude patterns.
type Excludes []*regexp.Regexp

// CompileExcludes compiles the exclude patterns of a sitemap.
func CompileExcludes(patterns []string) (Excludes, error) {
	out := make(Excludes, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidExclude, p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// Match reports whether any pattern is found in relPath.
func (e Excludes) Match(relPath string) bool {
	for _, re := range e {
		if re.MatchString(relPath) {
			return true
		}
	}
	return false
}

// RootDir returns the absolute directory the sitemap's files live under.
// A root leaving the workspace is rejected with settings.ErrOutsideWorkspace.
func RootDir(workspaceRoot string, s settings.Settings) (string, error) {
	if err := settings.CheckRoot(s.Root); err != nil {
		return "", err
	}
	return filepath.Join(workspaceRoot, filepath.FromSlash(s.Root)), nil
}

// InScope reports whether a change to filePath affects the sitemap configured by s:
// the extension is included, the file is under the root, and no exclude pattern matches.
// Invalid exclude patterns put nothing in scope.
func InScope(workspaceRoot string, s settings.Settings, filePath string) bool {
	if !s.Includes(path.Ext(filepath.ToSlash(filePath))) {
		return false
	}
	rel, ok := urls.RelativePath(workspaceRoot, s, filePath)
	if !ok {
		return false
	}
	excludes, err := CompileExcludes(s.Exclude)
	if err != nil {
		return false
	}
	return !excludes.Match(rel)
}

// Scan walks the sitemap root in lexical order and returns every included file.
// Directories are always descended. An unreadable directory fails the whole scan.
func Scan(ctx context.Context, fs afero.Fs, workspaceRoot string, s settings.Settings) (*Result, error) {
	excludes, err := CompileExcludes(s.Exclude)
	if err != nil {
		return nil, err
	}

	root, err := RootDir(workspaceRoot, s)
	if err != nil {
		return nil, err
	}
	info, err := fs.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrRootNotFound, root)
	}

	result := &Result{MaxDepth: -1}
	err = afero.Walk(fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !s.Includes(filepath.Ext(p)) {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if excludes.Match(rel) {
			return nil
		}

		url := urls.Derive(s, rel)
		depth := urls.Depth(url)
		if depth > result.MaxDepth {
			result.MaxDepth = depth
		}
		result.Files = append(result.Files, FileRecord{
			URL:          url,
			RelPath:      rel,
			LastModified: info.ModTime(),
			Depth:        depth,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return result, nil
}

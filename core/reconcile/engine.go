package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sitemap-manager/core/scanner"
	"sitemap-manager/core/settings"
	"sitemap-manager/core/sitemap"
	"sitemap-manager/core/urls"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Observer receives the duration and error of every engine operation.
type Observer interface {
	Observe(op Operation, sitemap string, d time.Duration, err error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the time source used for lastmod values.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithObserver registers an observer for operation results.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// Engine keeps sitemap files in sync with a website source tree.
// Operations on the same sitemap are serialized; operations on different
// sitemaps run concurrently.
type Engine struct {
	fs       afero.Fs
	root     string
	logger   *zap.Logger
	locks    *pathLocks
	sf       singleflight.Group
	now      func() time.Time
	observer Observer
}

// NewEngine creates an engine for the workspace at workspaceRoot.
func NewEngine(fs afero.Fs, workspaceRoot string, logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		fs:     fs,
		root:   workspaceRoot,
		logger: logger,
		locks:  newPathLocks(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WorkspaceRoot returns the directory sitemap and root paths are resolved against.
func (e *Engine) WorkspaceRoot() string {
	return e.root
}

// SitemapPath returns the absolute location of a workspace-relative sitemap path.
// Absolute paths and paths leaving the workspace fail with ErrOutsideRoot.
func (e *Engine) SitemapPath(sitemapPath string) (string, error) {
	if err := settings.CheckRelative(sitemapPath); err != nil {
		return "", fmt.Errorf("%w: %w", ErrOutsideRoot, err)
	}
	return filepath.Join(e.root, filepath.FromSlash(sitemapPath)), nil
}

// Exists reports whether the sitemap file is present.
func (e *Engine) Exists(sitemapPath string) (bool, error) {
	abs, err := e.SitemapPath(sitemapPath)
	if err != nil {
		return false, err
	}
	ok, err := afero.Exists(e.fs, abs)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return ok, nil
}

// Read parses the sitemap file.
func (e *Engine) Read(ctx context.Context, sitemapPath string) (*sitemap.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	abs, err := e.SitemapPath(sitemapPath)
	if err != nil {
		return nil, err
	}
	return e.read(abs)
}

// FullRegenerate rebuilds the sitemap from a scan of the source tree. The previous
// content is not read. Concurrent calls for the same sitemap and settings share one
// run; a caller whose context ends stops waiting without cancelling the others.
func (e *Engine) FullRegenerate(ctx context.Context, sitemapPath string, s settings.Settings) (*Outcome, error) {
	abs, err := e.SitemapPath(sitemapPath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ch := e.sf.DoChan(regenerateKey(abs, s), func() (any, error) {
		start := time.Now()
		out, err := e.regenerate(context.WithoutCancel(ctx), sitemapPath, abs, s)
		e.finish(OpRegenerate, sitemapPath, start, out, err)
		return out, err
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Outcome), nil
	}
}

// regenerateKey identifies a regenerate run by sitemap and settings, so callers
// with different settings never share a result.
func regenerateKey(abs string, s settings.Settings) string {
	data, err := json.Marshal(s)
	if err != nil {
		return abs + "\x00" + fmt.Sprintf("%#v", s)
	}
	return abs + "\x00" + string(data)
}

func (e *Engine) regenerate(ctx context.Context, sitemapPath, abs string, s settings.Settings) (*Outcome, error) {
	unlock := e.locks.lock(abs)
	defer unlock()

	res, err := scanner.Scan(ctx, e.fs, e.root, s)
	if err != nil {
		return nil, scanError(err)
	}

	doc := sitemap.New()
	freq := sitemap.ParseChangeFrequency(s.DefaultChangeFrequency)
	for _, f := range res.Files {
		doc.Add(&sitemap.Entry{
			Location:        f.URL,
			LastModified:    sitemap.Time(f.LastModified),
			Priority:        sitemap.Float(urls.Priority(f.Depth, res.MaxDepth)),
			ChangeFrequency: freq,
		})
	}

	changed, err := e.write(abs, doc, s)
	if err != nil {
		return nil, err
	}
	return &Outcome{
		Sitemap:   sitemapPath,
		Path:      abs,
		Operation: OpRegenerate,
		Entries:   len(doc.Entries),
		Changed:   changed,
	}, nil
}

// OnFileAdded appends the entry of a new file. Its priority is computed against
// the deepest entry already in the sitemap. A file that already has an entry only
// gets its lastmod refreshed.
func (e *Engine) OnFileAdded(ctx context.Context, sitemapPath string, s settings.Settings, filePath string) (*Outcome, error) {
	return e.mutate(ctx, OpAdd, sitemapPath, s, func(doc *sitemap.Document, out *Outcome) error {
		url, err := e.urlFor(s, filePath)
		if err != nil {
			return err
		}
		out.URL = url

		if existing := doc.Find(url); existing != nil {
			existing.LastModified = sitemap.Time(e.now())
			return nil
		}

		doc.Add(&sitemap.Entry{
			Location:        url,
			LastModified:    sitemap.Time(e.now()),
			Priority:        sitemap.Float(incrementalPriority(urls.Depth(url), doc.MaxDepth())),
			ChangeFrequency: sitemap.ParseChangeFrequency(s.DefaultChangeFrequency),
		})
		return nil
	})
}

// OnFileSaved sets the lastmod of the file's entry to now. A file without an entry
// leaves the document unchanged.
func (e *Engine) OnFileSaved(ctx context.Context, sitemapPath string, s settings.Settings, filePath string) (*Outcome, error) {
	return e.mutate(ctx, OpTouch, sitemapPath, s, func(doc *sitemap.Document, out *Outcome) error {
		url, err := e.urlFor(s, filePath)
		if err != nil {
			return err
		}
		out.URL = url

		if entry := doc.Find(url); entry != nil {
			entry.LastModified = sitemap.Time(e.now())
		}
		return nil
	})
}

// OnFileRemoved drops the entry of a deleted file, if any.
func (e *Engine) OnFileRemoved(ctx context.Context, sitemapPath string, s settings.Settings, filePath string) (*Outcome, error) {
	return e.mutate(ctx, OpRemove, sitemapPath, s, func(doc *sitemap.Document, out *Outcome) error {
		url, err := e.urlFor(s, filePath)
		if err != nil {
			return err
		}
		out.URL = url
		doc.Remove(url)
		return nil
	})
}

// OnFileRenamed replaces the entry of oldPath with one for newPath. The new entry
// keeps the old priority and change frequency; lastmod is set to now. When the old
// file had no entry the new one is added without a priority. When newPath already
// has an entry, that entry is kept and only its lastmod changes.
func (e *Engine) OnFileRenamed(ctx context.Context, sitemapPath string, s settings.Settings, oldPath, newPath string) (*Outcome, error) {
	return e.mutate(ctx, OpRename, sitemapPath, s, func(doc *sitemap.Document, out *Outcome) error {
		oldURL, err := e.urlFor(s, oldPath)
		if err != nil {
			return err
		}
		newURL, err := e.urlFor(s, newPath)
		if err != nil {
			return err
		}
		out.URL, out.OldURL = newURL, oldURL

		entry := &sitemap.Entry{
			Location:        newURL,
			LastModified:    sitemap.Time(e.now()),
			ChangeFrequency: sitemap.ParseChangeFrequency(s.DefaultChangeFrequency),
		}
		if old := doc.Find(oldURL); old != nil {
			entry.Priority = old.Priority
			entry.ChangeFrequency = old.ChangeFrequency
		}
		doc.Remove(oldURL)

		// Moved over an existing page: keep that entry
		if existing := doc.Find(newURL); existing != nil {
			existing.LastModified = entry.LastModified
			return nil
		}
		doc.Add(entry)
		return nil
	})
}

// mutate runs fn against the parsed sitemap and writes the result back.
func (e *Engine) mutate(ctx context.Context, op Operation, sitemapPath string, s settings.Settings, fn func(*sitemap.Document, *Outcome) error) (out *Outcome, err error) {
	start := time.Now()
	defer func() { e.finish(op, sitemapPath, start, out, err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := e.SitemapPath(sitemapPath)
	if err != nil {
		return nil, err
	}
	unlock := e.locks.lock(abs)
	defer unlock()

	doc, err := e.read(abs)
	if err != nil {
		return nil, err
	}

	out = &Outcome{Sitemap: sitemapPath, Path: abs, Operation: op}
	if err := fn(doc, out); err != nil {
		return nil, err
	}

	changed, err := e.write(abs, doc, s)
	if err != nil {
		return nil, err
	}
	out.Entries = len(doc.Entries)
	out.Changed = changed
	return out, nil
}

func (e *Engine) finish(op Operation, sitemapPath string, start time.Time, out *Outcome, err error) {
	d := time.Since(start)
	if e.observer != nil {
		e.observer.Observe(op, sitemapPath, d, err)
	}
	if err != nil {
		e.logger.Warn("Sitemap operation failed",
			zap.String("sitemap", sitemapPath),
			zap.String("operation", string(op)),
			zap.Error(err))
		return
	}
	e.logger.Info("Sitemap updated",
		zap.String("sitemap", sitemapPath),
		zap.String("operation", string(op)),
		zap.String("url", out.URL),
		zap.Int("entries", out.Entries),
		zap.Bool("changed", out.Changed),
		zap.Duration("duration", d))
}

// urlFor maps a file path to its entry URL.
func (e *Engine) urlFor(s settings.Settings, filePath string) (string, error) {
	rel, ok := urls.RelativePath(e.root, s, filePath)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, filePath)
	}
	return urls.Derive(s, rel), nil
}

func (e *Engine) read(abs string) (*sitemap.Document, error) {
	data, err := afero.ReadFile(e.fs, abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: sitemap %s", ErrNotFound, abs)
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, abs, err)
	}
	return sitemap.Parse(data), nil
}

// write renders doc and replaces the file through a temporary file in the same
// directory. It reports whether the content differs from what was on disk.
func (e *Engine) write(abs string, doc *sitemap.Document, s settings.Settings) (bool, error) {
	data := doc.Render(sitemap.Format{
		Minimized: s.Minimized,
		Tab:       s.TabCharacters,
		Tags:      s.TagsToInclude,
	})

	previous, err := afero.ReadFile(e.fs, abs)
	changed := err != nil || string(previous) != string(data)

	dir := filepath.Dir(abs)
	if err := e.fs.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("%w: create %s: %w", ErrIO, dir, err)
	}

	// TempFile creates 0600 files; keep the mode of the sitemap being replaced.
	mode := os.FileMode(0o644)
	if info, err := e.fs.Stat(abs); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := afero.TempFile(e.fs, dir, "."+filepath.Base(abs)+".*.tmp")
	if err != nil {
		return false, fmt.Errorf("%w: create temp file: %w", ErrIO, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = e.fs.Remove(tmpName)
		return false, fmt.Errorf("%w: write %s: %w", ErrIO, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = e.fs.Remove(tmpName)
		return false, fmt.Errorf("%w: close %s: %w", ErrIO, tmpName, err)
	}
	if err := e.fs.Chmod(tmpName, mode); err != nil {
		_ = e.fs.Remove(tmpName)
		return false, fmt.Errorf("%w: chmod %s: %w", ErrIO, tmpName, err)
	}
	if err := e.fs.Rename(tmpName, abs); err != nil {
		_ = e.fs.Remove(tmpName)
		return false, fmt.Errorf("%w: rename to %s: %w", ErrIO, abs, err)
	}
	return changed, nil
}

// scanError maps scanner failures onto the engine's error kinds.
func scanError(err error) error {
	switch {
	case errors.Is(err, scanner.ErrRootNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, settings.ErrOutsideWorkspace):
		return fmt.Errorf("%w: %w", ErrOutsideRoot, err)
	case errors.Is(err, scanner.ErrInvalidExclude),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
}

// incrementalPriority prices a single new entry against the existing sitemap.
// An empty sitemap counts the new entry as the deepest one. The result is
// clamped to [0, 1] since a new entry may be deeper than anything present.
func incrementalPriority(depth, maxDepth int) float64 {
	if maxDepth < 0 {
		maxDepth = depth
	}
	p := urls.Priority(depth, maxDepth)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

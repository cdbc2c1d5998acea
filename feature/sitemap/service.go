package sitemap

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"sync"

	"sitemap-manager/core/reconcile"
	"sitemap-manager/core/settings"
	coreSitemap "sitemap-manager/core/sitemap"

	"go.uber.org/zap"
)

// Sources of a change, recorded in history and metrics.
const (
	SourceCLI   = "cli"
	SourceHTTP  = "http"
	SourceWatch = "watch"
)

// Recorder stores the outcome of an operation.
type Recorder interface {
	Record(ctx context.Context, source string, out *reconcile.Outcome) error
}

// EventCounter counts incoming file events.
type EventCounter interface {
	FileEvent(source string, op reconcile.EventOp)
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher uploads every changed sitemap.
func WithPublisher(p *Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithRecorder records every operation.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithEventCounter counts every handled file event.
func WithEventCounter(c EventCounter) Option {
	return func(s *Service) { s.counter = c }
}

// Service owns the settings snapshot and routes requests to the engine.
type Service struct {
	engine    *reconcile.Engine
	store     *settings.Store
	logger    *zap.Logger
	publisher *Publisher
	recorder  Recorder
	counter   EventCounter

	mu       sync.RWMutex
	snapshot settings.Snapshot
}

// Info describes a configured sitemap.
type Info struct {
	Name       string            `json:"name"`
	Path       string            `json:"path"`
	Exists     bool              `json:"exists"`
	AutoUpdate bool              `json:"auto_update"`
	Settings   settings.Settings `json:"settings"`
}

// CreateOptions describes a new sitemap.
type CreateOptions struct {
	// Sitemap is the workspace-relative sitemap path. Defaults to <Root>/sitemap.xml.
	Sitemap  string
	Protocol string
	Domain   string
	Root     string
	// Overwrite replaces an existing sitemap file.
	Overwrite bool
}

// NewService creates the sitemap service. Call Refresh to load the settings.
func NewService(engine *reconcile.Engine, store *settings.Store, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		engine:   engine,
		store:    store,
		logger:   logger,
		snapshot: settings.NewSnapshot(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh reloads the settings file. A malformed file leaves an empty
// configuration in place and returns the parse error.
func (s *Service) Refresh() error {
	snap, err := s.store.Load()

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("Failed to load sitemap settings", zap.String("path", s.store.Path()), zap.Error(err))
		return err
	}
	s.logger.Info("Sitemap settings loaded", zap.Int("sitemaps", snap.Len()))
	return nil
}

// Snapshot returns the current settings snapshot.
func (s *Service) Snapshot() settings.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// SettingsPath returns the settings file location.
func (s *Service) SettingsPath() string {
	return s.store.Path()
}

// WorkspaceRoot returns the workspace root.
func (s *Service) WorkspaceRoot() string {
	return s.engine.WorkspaceRoot()
}

// Engine returns the reconciliation engine.
func (s *Service) Engine() *reconcile.Engine {
	return s.engine
}

// List describes every configured sitemap.
func (s *Service) List() ([]Info, error) {
	snap := s.Snapshot()
	infos := make([]Info, 0, snap.Len())
	for _, name := range snap.Sitemaps() {
		abs, err := s.engine.SitemapPath(name)
		if err != nil {
			// Configured by hand outside the workspace; never read or written.
			s.logger.Warn("Skipping sitemap outside the workspace", zap.String("sitemap", name))
			continue
		}
		exists, err := s.engine.Exists(name)
		if err != nil {
			return nil, err
		}
		cfg := snap.Get(name)
		infos = append(infos, Info{
			Name:       name,
			Path:       abs,
			Exists:     exists,
			AutoUpdate: cfg.AutomaticallyUpdateSitemap,
			Settings:   cfg,
		})
	}
	return infos, nil
}

// Resolve picks the target sitemap. A name must be configured; without a name
// the only configured sitemap is used.
func (s *Service) Resolve(name string) (string, error) {
	snap := s.Snapshot()
	if name != "" {
		name = filepath.ToSlash(name)
		if !snap.Has(name) {
			return "", fmt.Errorf("%w: sitemap %s is not configured", reconcile.ErrNotFound, name)
		}
		return name, nil
	}

	names := snap.Sitemaps()
	switch len(names) {
	case 0:
		return "", fmt.Errorf("%w: no sitemap is configured in %s", reconcile.ErrNotFound, s.store.Path())
	case 1:
		return names[0], nil
	default:
		return "", &AmbiguousSelectionError{Candidates: names}
	}
}

// Create configures a new sitemap and generates it.
func (s *Service) Create(ctx context.Context, source string, opts CreateOptions) (*reconcile.Outcome, error) {
	if err := settings.CheckRoot(opts.Root); err != nil {
		return nil, fmt.Errorf("%w: %w", reconcile.ErrOutsideRoot, err)
	}
	target := opts.Sitemap
	if target == "" {
		target = path.Join(settings.NormalizeRoot(opts.Root), "sitemap.xml")
	}
	target = filepath.ToSlash(target)

	abs, err := s.engine.SitemapPath(target)
	if err != nil {
		return nil, err
	}

	exists, err := s.engine.Exists(target)
	if err != nil {
		return nil, err
	}
	if exists && !opts.Overwrite {
		return nil, fmt.Errorf("%w: %s", ErrSitemapExists, abs)
	}

	cfg, err := s.store.Set(target, func(cfg *settings.Settings) {
		if opts.Protocol != "" {
			cfg.Protocol = opts.Protocol
		}
		if opts.Domain != "" {
			cfg.DomainName = opts.Domain
		}
		cfg.Root = opts.Root
	})
	if err != nil {
		return nil, err
	}
	if err := s.Refresh(); err != nil {
		return nil, err
	}

	s.logger.Info("Sitemap configured", zap.String("sitemap", target), zap.String("domain", cfg.DomainName))
	return s.regenerate(ctx, source, target)
}

// Regenerate rebuilds a sitemap from a full scan of its root.
func (s *Service) Regenerate(ctx context.Context, source, name string) (*reconcile.Outcome, error) {
	target, err := s.Resolve(name)
	if err != nil {
		return nil, err
	}
	return s.regenerate(ctx, source, target)
}

func (s *Service) regenerate(ctx context.Context, source, target string) (*reconcile.Outcome, error) {
	out, err := s.engine.FullRegenerate(ctx, target, s.Snapshot().Get(target))
	if err != nil {
		return nil, err
	}
	s.after(ctx, source, out)
	return out, nil
}

// HandleEvent applies a host file event to every sitemap it concerns.
// Relative paths are taken from the workspace root. Failures on one sitemap do
// not stop the others; they are returned joined.
func (s *Service) HandleEvent(ctx context.Context, source string, ev reconcile.FileEvent) ([]*reconcile.Outcome, error) {
	if s.counter != nil {
		s.counter.FileEvent(source, ev.Op)
	}

	ev.Path = s.absolute(ev.Path)
	if ev.OldPath != "" {
		ev.OldPath = s.absolute(ev.OldPath)
	}

	snap := s.Snapshot()
	actions := reconcile.PlanEvent(s.WorkspaceRoot(), snap, s.store.Path(), ev)

	var outcomes []*reconcile.Outcome
	var errs []error
	for _, a := range actions {
		if a.Type == reconcile.ActionRefresh {
			// A broken settings file is reported by Refresh and leaves an empty configuration.
			_ = s.Refresh()
			continue
		}

		out, err := s.engine.Dispatch(ctx, a, snap.Get(a.Sitemap))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", a.Sitemap, err))
			continue
		}
		s.after(ctx, source, out)
		outcomes = append(outcomes, out)
	}
	return outcomes, errors.Join(errs...)
}

// Entries returns the parsed document of a sitemap.
func (s *Service) Entries(ctx context.Context, name string) (string, *coreSitemap.Document, error) {
	target, err := s.Resolve(name)
	if err != nil {
		return "", nil, err
	}
	doc, err := s.engine.Read(ctx, target)
	if err != nil {
		return "", nil, err
	}
	return target, doc, nil
}

// Reconcile compares a sitemap with its source tree and applies the repairs
// allowed by opts.
func (s *Service) Reconcile(ctx context.Context, source, name string, opts reconcile.ReconcileOptions) (*reconcile.ReconcilePlan, int, error) {
	target, err := s.Resolve(name)
	if err != nil {
		return nil, 0, err
	}

	plan, executed, err := s.engine.ReconcileAndApply(ctx, target, s.Snapshot().Get(target), opts)
	if err != nil {
		return nil, 0, err
	}
	if plan.Applied != nil {
		s.after(ctx, source, plan.Applied)
	}
	return plan, executed, nil
}

// after publishes and records a finished operation. Both are best effort.
func (s *Service) after(ctx context.Context, source string, out *reconcile.Outcome) {
	if s.publisher != nil && out.Changed {
		if err := s.publisher.Publish(ctx, out); err != nil {
			s.logger.Warn("Failed to publish sitemap", zap.String("sitemap", out.Sitemap), zap.Error(err))
		}
	}
	if s.recorder != nil {
		if err := s.recorder.Record(ctx, source, out); err != nil {
			s.logger.Warn("Failed to record revision", zap.String("sitemap", out.Sitemap), zap.Error(err))
		}
	}
}

func (s *Service) absolute(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.WorkspaceRoot(), p)
}

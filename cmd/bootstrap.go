package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"sitemap-manager/core/config"
	"sitemap-manager/core/database"
	"sitemap-manager/core/logger"
	"sitemap-manager/core/metrics"
	"sitemap-manager/core/reconcile"
	"sitemap-manager/core/settings"
	"sitemap-manager/core/storage"
	"sitemap-manager/feature/history"
	"sitemap-manager/feature/sitemap"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime holds the components shared by the commands.
type runtime struct {
	cfg      *config.Config
	logger   *zap.Logger
	fs       afero.Fs
	root     string
	metrics  *metrics.Metrics
	db       *gorm.DB
	storage  storage.Client
	history  *history.Service
	sitemaps *sitemap.Service
}

// bootstrapOptions selects the optional infrastructure a command needs.
type bootstrapOptions struct {
	database bool
	storage  bool
}

// bootstrap loads the configuration and wires the sitemap service.
func bootstrap(ctx context.Context, opts bootstrapOptions) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	root, err := filepath.Abs(cfg.Workspace.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace root: %w", err)
	}
	cfg.Workspace.Root = root

	rt := &runtime{
		cfg:     cfg,
		logger:  logg,
		fs:      afero.NewOsFs(),
		root:    root,
		metrics: metrics.New(),
	}

	// The database is optional: history is disabled without it.
	if opts.database {
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			rt.db = conn
			logg.Info("Connected to history database", zap.String("driver", cfg.Database.Driver))
		}
	}
	rt.history = history.NewService(rt.db, logg)
	if err := rt.history.Migrate(ctx); err != nil {
		logg.Warn("History migration failed", zap.Error(err))
	}

	serviceOpts := []sitemap.Option{
		sitemap.WithRecorder(rt.history),
		sitemap.WithEventCounter(rt.metrics),
	}

	// Storage is required only for publishing; otherwise a bad endpoint disables the bucket checks.
	if opts.storage || cfg.Publish.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		switch {
		case err != nil && cfg.Publish.Enabled:
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		case err != nil:
			logg.Warn("Storage client unavailable", zap.Error(err))
		default:
			rt.storage = client
		}
		if rt.storage != nil && cfg.Publish.Enabled {
			pub := sitemap.NewPublisher(client, cfg.Storage.Bucket, cfg.Publish, rt.fs, logg, rt.metrics)
			serviceOpts = append(serviceOpts, sitemap.WithPublisher(pub))
		}
	}

	engine := reconcile.NewEngine(rt.fs, root, logg, reconcile.WithObserver(rt.metrics))
	settingsPath, err := filepath.Abs(cfg.Workspace.SettingsPath())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve settings path: %w", err)
	}
	store := settings.NewStore(rt.fs, settingsPath)

	rt.sitemaps = sitemap.NewService(engine, store, logg, serviceOpts...)
	// A malformed settings file is logged and leaves no sitemap configured.
	_ = rt.sitemaps.Refresh()

	return rt, nil
}

// close flushes the logger.
func (rt *runtime) close() {
	_ = rt.logger.Sync()
}

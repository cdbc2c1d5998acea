package integrity

import (
	"context"
	"fmt"

	"sitemap-manager/core/reconcile"
	"sitemap-manager/core/storage"
	"sitemap-manager/feature/history"
	"sitemap-manager/feature/integrity/checks"
	"sitemap-manager/feature/sitemap"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	sitemaps *sitemap.Service
	client   storage.Client
	storage  storage.Config
	publish  storage.PublishConfig
	db       *gorm.DB
	logger   *zap.Logger
}

// NewService creates a new integrity service. client and db may be nil; the
// checks that need them then report an error.
func NewService(sitemaps *sitemap.Service, client storage.Client, storageCfg storage.Config, publish storage.PublishConfig, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		sitemaps: sitemaps,
		client:   client,
		storage:  storageCfg,
		publish:  publish,
		db:       db,
		logger:   logger,
	}
}

// CheckSitemap compares a sitemap with its source tree. With Confirmed set in
// opts, the planned purge and sync actions are applied.
func (s *Service) CheckSitemap(ctx context.Context, source, name string, opts reconcile.ReconcileOptions) (*reconcile.ReconcilePlan, int, error) {
	plan, executed, err := s.sitemaps.Reconcile(ctx, source, name, opts)
	if err != nil {
		return nil, 0, err
	}

	fields := []zap.Field{
		zap.String("sitemap", plan.Sitemap),
		zap.Int("total", plan.Summary.TotalItems),
		zap.Int("missing_sitemap", plan.Summary.MissingSitemap),
		zap.Int("missing_tree", plan.Summary.MissingTree),
		zap.Int("mismatches", plan.Summary.Mismatches),
		zap.Int("executed", executed),
	}
	if plan.Summary.InSync() {
		s.logger.Info("Sitemap in sync", fields...)
	} else {
		s.logger.Warn("Sitemap drift detected", fields...)
	}
	return plan, executed, nil
}

// CheckBucket compares the published objects with the configured sitemaps.
func (s *Service) CheckBucket(ctx context.Context) (*checks.BucketReport, error) {
	if s.client == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	names := s.sitemaps.Snapshot().Sitemaps()
	expected := make([]string, 0, len(names))
	for _, name := range names {
		expected = append(expected, s.publish.ObjectName(name))
	}
	return checks.CheckBucket(ctx, s.client, s.storage.Bucket, s.publish.Prefix, expected)
}

// FixBucket creates the bucket if needed and removes orphaned sitemaps.
func (s *Service) FixBucket(ctx context.Context, report *checks.BucketReport) error {
	return checks.FixBucket(ctx, s.client, report, s.storage.Region, s.logger)
}

// CheckHistory verifies the history table against the revision model.
func (s *Service) CheckHistory() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, history.Revision{})
}

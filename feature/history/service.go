package history

import (
	"context"
	"fmt"
	"time"

	"sitemap-manager/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultLimit is the number of revisions returned when no limit is given.
const DefaultLimit = 50

// Service stores sitemap revisions in the database.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new history service. db may be nil, in which case
// recording is a no-op and listing fails.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger, now: time.Now}
}

// Available reports whether a database connection is configured.
func (s *Service) Available() bool {
	return s.db != nil
}

// Migrate creates or updates the revisions table.
func (s *Service) Migrate(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	if err := s.db.WithContext(ctx).AutoMigrate(&Revision{}); err != nil {
		return fmt.Errorf("failed to migrate history: %w", err)
	}
	return nil
}

// Record stores the outcome of an engine operation.
func (s *Service) Record(ctx context.Context, source string, out *reconcile.Outcome) error {
	if s.db == nil || out == nil {
		return nil
	}

	rev := Revision{
		ID:        uuid.NewString(),
		Sitemap:   out.Sitemap,
		Operation: string(out.Operation),
		Source:    source,
		URL:       out.URL,
		OldURL:    out.OldURL,
		Entries:   out.Entries,
		Changed:   out.Changed,
		CreatedAt: s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&rev).Error; err != nil {
		return fmt.Errorf("failed to record revision: %w", err)
	}

	s.logger.Debug("Revision recorded",
		zap.String("id", rev.ID),
		zap.String("sitemap", rev.Sitemap),
		zap.String("operation", rev.Operation))
	return nil
}

// List returns the latest revisions, newest first. An empty sitemap lists all of them.
func (s *Service) List(ctx context.Context, sitemapPath string, limit int) ([]Revision, error) {
	if s.db == nil {
		return nil, fmt.Errorf("history is not available without a database")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if sitemapPath != "" {
		q = q.Where("sitemap = ?", sitemapPath)
	}

	var revisions []Revision
	if err := q.Find(&revisions).Error; err != nil {
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}
	return revisions, nil
}

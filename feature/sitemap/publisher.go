package sitemap

import (
	"bytes"
	"context"
	"fmt"

	"sitemap-manager/core/reconcile"
	"sitemap-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// PublishObserver is notified of every upload attempt.
type PublishObserver interface {
	Published(err error)
}

// Publisher uploads written sitemaps to object storage.
type Publisher struct {
	client   storage.Client
	bucket   string
	cfg      storage.PublishConfig
	fs       afero.Fs
	logger   *zap.Logger
	observer PublishObserver
}

// NewPublisher creates a publisher. observer may be nil.
func NewPublisher(client storage.Client, bucket string, cfg storage.PublishConfig, fs afero.Fs, logger *zap.Logger, observer PublishObserver) *Publisher {
	return &Publisher{client: client, bucket: bucket, cfg: cfg, fs: fs, logger: logger, observer: observer}
}

// Publish uploads the sitemap file an operation has written.
func (p *Publisher) Publish(ctx context.Context, out *reconcile.Outcome) (err error) {
	defer func() {
		if p.observer != nil {
			p.observer.Published(err)
		}
	}()

	data, err := afero.ReadFile(p.fs, out.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s for publishing: %w", out.Path, err)
	}

	object := p.cfg.ObjectName(out.Sitemap)
	_, err = p.client.PutObject(ctx, p.bucket, object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/xml",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", object, err)
	}

	p.logger.Info("Sitemap published",
		zap.String("sitemap", out.Sitemap),
		zap.String("bucket", p.bucket),
		zap.String("object", object))
	return nil
}

package checks

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"sitemap-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// BucketReport describes the published sitemaps found in the bucket.
type BucketReport struct {
	Bucket string `json:"bucket"`
	Exists bool   `json:"exists"`
	// Published lists the expected objects that are present.
	Published []string `json:"published"`
	// Missing lists the expected objects that were never uploaded.
	Missing []string `json:"missing"`
	// Orphans lists sitemap objects under the prefix that no configured sitemap maps to.
	Orphans []string `json:"orphans"`
}

// CheckBucket compares the sitemap objects under prefix with the expected object names.
func CheckBucket(ctx context.Context, client storage.Client, bucket, prefix string, expected []string) (*BucketReport, error) {
	report := &BucketReport{
		Bucket:    bucket,
		Published: []string{},
		Missing:   []string{},
		Orphans:   []string{},
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	report.Exists = exists
	if !exists {
		report.Missing = append(report.Missing, expected...)
		return report, nil
	}

	listPrefix := strings.Trim(prefix, "/")
	if listPrefix != "" {
		listPrefix += "/"
	}

	var found []string
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: listPrefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, ".xml") {
			found = append(found, obj.Key)
		}
	}

	for _, name := range expected {
		if slices.Contains(found, name) {
			report.Published = append(report.Published, name)
		} else {
			report.Missing = append(report.Missing, name)
		}
	}
	for _, key := range found {
		if !slices.Contains(expected, key) {
			report.Orphans = append(report.Orphans, key)
		}
	}
	slices.Sort(report.Orphans)
	return report, nil
}

// FixBucket creates a missing bucket and removes orphaned sitemap objects.
// Missing sitemaps are uploaded again by the next write, not here.
func FixBucket(ctx context.Context, client storage.Client, report *BucketReport, region string, logger *zap.Logger) error {
	if !report.Exists {
		if err := client.MakeBucket(ctx, report.Bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			logger.Error("Failed to create bucket", zap.String("bucket", report.Bucket), zap.Error(err))
			return err
		}
		logger.Info("Created missing bucket", zap.String("bucket", report.Bucket))
		report.Exists = true
	}

	for _, key := range report.Orphans {
		if err := client.RemoveObject(ctx, report.Bucket, key, minio.RemoveObjectOptions{}); err != nil {
			logger.Error("Failed to remove orphaned sitemap", zap.String("object", key), zap.Error(err))
			return err
		}
		logger.Info("Removed orphaned sitemap", zap.String("object", key))
	}
	report.Orphans = []string{}
	return nil
}

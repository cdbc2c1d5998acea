// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so written sitemaps can be published to an S3
// compatible bucket. Both AWS S3 and self-hosted MinIO instances are supported.
//
// # Client Interface
//
// The Client interface is satisfied by *minio.Client directly and is mocked in
// core/storage/mocks for unit tests.
//
//   - BucketExists / MakeBucket: bucket checks used by the integrity feature.
//   - PutObject: uploads a sitemap.
//   - ListObjects / RemoveObject: find and clean up published sitemaps.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	name := cfg.Publish.ObjectName("public/sitemap.xml")
package storage

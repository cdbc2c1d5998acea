package storage

import (
	"path/filepath"
	"strings"
)

// Config holds configuration for the storage provider.
type Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket sitemaps are published to.
	Bucket string `mapstructure:"bucket" default:"sitemaps"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// PublishConfig controls uploading written sitemaps to the bucket.
type PublishConfig struct {
	// Enabled uploads every sitemap after it has been written.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Prefix is prepended to the sitemap path to form the object name.
	Prefix string `mapstructure:"prefix" default:""`
}

// ObjectName returns the object key for a workspace-relative sitemap path.
func (c PublishConfig) ObjectName(sitemapPath string) string {
	name := strings.TrimPrefix(filepath.ToSlash(sitemapPath), "/")
	prefix := strings.Trim(c.Prefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

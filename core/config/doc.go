// Package config provides configuration management for the sitemap manager.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
//   - Server: HTTP bind address and API key
//   - Log: logging level and format
//   - Storage: S3/MinIO credentials and bucket
//   - Publish: whether written sitemaps are uploaded, and under which prefix
//   - Database: optional history database (mysql or sqlite)
//   - Workspace: workspace root and sitemap settings file
//   - Watch: file watcher debounce, ignore globs and queue size
//
// Nested keys map to environment variables with underscores, so watch.debounce
// is read from WATCH_DEBOUNCE.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Workspace.SettingsPath())
package config

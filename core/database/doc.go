// Package database handles the optional database connection used for sitemap history.
//
// Connect wraps GORM and supports two drivers: mysql (default) and sqlite, which is
// handy for single-host deployments and tests. The application keeps running without
// a database; features that need one report themselves disabled.
//
// # Schema Inspection
//
// TableColumns and MissingColumns read the live table definition so the integrity
// feature can verify that the history table matches the model.
//
//	db, err := database.Connect(cfg.Database)
//	missing, err := database.MissingColumns(db, "sitemap_revisions", []string{"id", "sitemap"})
package database

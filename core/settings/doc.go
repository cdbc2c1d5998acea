// Package settings holds the per-sitemap configuration and the JSON file it is persisted in.
//
// The settings file is a JSON object keyed by the workspace-relative path of each sitemap
// (e.g. "public/sitemap.xml"). Each value configures how URLs are derived for that sitemap
// and how the document is written.
//
// # Defaults
//
// Any field omitted from a stored entry falls back to Defaults(). The root directory is
// normalized so "./site", "/site" and "site" are equivalent.
//
// # Validation
//
// The file is validated against an embedded JSON Schema. A malformed or invalid file is
// reported as a *ConfigParseError and treated as an empty configuration; it never stops
// the host process.
//
// # Usage
//
//	store := settings.NewStore(afero.NewOsFs(), cfg.Workspace.SettingsPath())
//	snap, err := store.Load()
//	if err != nil {
//	    log.Warn("Settings ignored", zap.Error(err))
//	}
//	s := snap.Get("public/sitemap.xml")
package settings

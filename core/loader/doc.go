// Package loader provides the plugin-like feature loading system.
//
// Each HTTP module of the sitemap manager (sitemaps, integrity, history) implements
// the Feature interface and is registered with a Manager at startup.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager struct holds the registry of available features. It handles:
//   - Registration of features via Register()
//   - Initialization and loading of enabled features via LoadAll()
//
// Disabled features are skipped. The history feature, for example, reports itself
// disabled when no database connection could be made.
package loader

// Package reconcile keeps sitemap files in sync with the website sources they
// describe.
//
// The Engine owns every read-modify-write of a sitemap file. It has two ways of
// bringing a sitemap up to date:
//
//   - Full regeneration: scan the source tree and write a fresh document.
//   - Incremental updates: apply a single file event (added, saved, removed,
//     renamed) to the parsed document without rescanning.
//
// Settings are passed into every call; the engine keeps no configuration of its
// own beyond the workspace root. Writes go to a temporary file that is renamed
// over the sitemap, and calls on the same sitemap are serialized.
//
// # Event planning
//
// PlanEvent filters a host file event against the configured sitemaps and returns
// the actions to run. Dispatch runs one of them.
//
// # Drift
//
// ReconcileWithPlan compares the source tree with the sitemap by entry identity
// and reports entries missing on either side or with an outdated lastmod.
// ApplyPlan applies the planned purge and sync actions in a single rewrite.
//
//	engine := reconcile.NewEngine(afero.NewOsFs(), "/srv/site", logger)
//
//	// Full regeneration
//	out, err := engine.FullRegenerate(ctx, "public/sitemap.xml", s)
//
//	// Drift check and repair
//	plan, executed, err := engine.ReconcileAndApply(ctx, "public/sitemap.xml", s,
//	    reconcile.ReconcileOptions{DoPurge: true, DoSync: true, Confirmed: true})
package reconcile

package reconcile

import "time"

// Operation names an engine operation.
type Operation string

const (
	// OpRegenerate rebuilds the sitemap from a full tree scan.
	OpRegenerate Operation = "regenerate"
	// OpAdd appends the entry of a new file.
	OpAdd Operation = "add"
	// OpTouch refreshes the lastmod of a saved file.
	OpTouch Operation = "touch"
	// OpRemove drops the entry of a deleted file.
	OpRemove Operation = "remove"
	// OpRename moves an entry to a new URL, keeping its priority.
	OpRename Operation = "rename"
	// OpApply rewrites the sitemap with the actions of a drift plan.
	OpApply Operation = "apply"
)

// Outcome describes the result of one engine operation.
type Outcome struct {
	// Sitemap is the workspace-relative sitemap path.
	Sitemap string `json:"sitemap"`

	// Path is the absolute location the sitemap was written to.
	Path string `json:"path"`

	// Operation is the operation that produced this outcome.
	Operation Operation `json:"operation"`

	// URL is the entry URL the operation targeted. Empty for regenerate.
	URL string `json:"url,omitempty"`

	// OldURL is the previous URL of a rename.
	OldURL string `json:"old_url,omitempty"`

	// Entries is the number of entries after the operation.
	Entries int `json:"entries"`

	// Changed reports whether the document content changed.
	Changed bool `json:"changed"`
}

// EventOp is the kind of a host file event.
type EventOp string

const (
	EventCreated EventOp = "created"
	EventDeleted EventOp = "deleted"
	EventSaved   EventOp = "saved"
	EventRenamed EventOp = "renamed"
)

// FileEvent is a change reported by the host: the CLI, the HTTP API or the watcher.
type FileEvent struct {
	// Op is the kind of change.
	Op EventOp `json:"op"`

	// Path is the affected file. For renames, the new location.
	Path string `json:"path"`

	// OldPath is the previous location of a renamed file.
	OldPath string `json:"old_path,omitempty"`
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionAdd adds an entry for a file.
	ActionAdd ActionType = "add"
	// ActionRemove removes the entry of a file.
	ActionRemove ActionType = "remove"
	// ActionTouch refreshes the lastmod of an entry.
	ActionTouch ActionType = "touch"
	// ActionRename moves an entry from OldPath to Path.
	ActionRename ActionType = "rename"
	// ActionRefresh reloads the sitemap settings.
	ActionRefresh ActionType = "refresh"
)

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Sitemap is the sitemap the action applies to. Empty for ActionRefresh.
	Sitemap string `json:"sitemap,omitempty"`

	// Key is the entry identity, set for drift actions.
	Key string `json:"key,omitempty"`

	// URL is the entry URL, set for drift actions.
	URL string `json:"url,omitempty"`

	// Path is the affected file.
	Path string `json:"path,omitempty"`

	// OldPath is the previous file of a rename.
	OldPath string `json:"old_path,omitempty"`

	// LastModified is the file modification time used by drift add and touch actions.
	LastModified *time.Time `json:"last_modified,omitempty"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// ReconcileResult compares one entry identity between the source tree and the sitemap.
type ReconcileResult struct {
	// ID is the entry identity (see sitemap.Identity).
	ID string `json:"id"`

	// URL is the URL derived from the tree, or the sitemap URL when the file is gone.
	URL string `json:"url"`

	// RelPath is the root-relative file path. Empty when the file is gone.
	RelPath string `json:"rel_path,omitempty"`

	// TreePresent indicates whether a file produces this entry.
	TreePresent bool `json:"tree_present"`

	// SitemapPresent indicates whether the sitemap lists this entry.
	SitemapPresent bool `json:"sitemap_present"`

	// Mismatch contains descriptions of differences between tree and sitemap,
	// e.g. "lastmod: sitemap=2024-01-01 file=2024-02-03".
	Mismatch []string `json:"mismatch"`
}

// ReconcilePlan contains reconciliation results and planned actions.
type ReconcilePlan struct {
	// Sitemap is the checked sitemap.
	Sitemap string `json:"sitemap"`

	// MaxDepth is the deepest file of the tree, used to prioritise added entries.
	MaxDepth int `json:"max_depth"`

	// Results contains per-entry reconciliation data.
	Results []ReconcileResult `json:"results"`

	// Actions contains planned mutation operations.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`

	// Applied is the outcome of ApplyPlan. Nil until the plan has been applied.
	Applied *Outcome `json:"applied,omitempty"`
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// TotalItems is the total number of unique entries.
	TotalItems int `json:"total_items"`

	// MissingSitemap counts files without a sitemap entry.
	MissingSitemap int `json:"missing_sitemap"`

	// MissingTree counts sitemap entries without a file.
	MissingTree int `json:"missing_tree"`

	// Mismatches counts entries with outdated fields.
	Mismatches int `json:"mismatches"`

	// PurgeActions counts planned remove actions.
	PurgeActions int `json:"purge_actions"`

	// SyncActions counts planned add and touch actions.
	SyncActions int `json:"sync_actions"`
}

// InSync reports whether the tree and the sitemap agree.
func (s PlanSummary) InSync() bool {
	return s.MissingSitemap == 0 && s.MissingTree == 0 && s.Mismatches == 0
}

// ReconcileOptions controls reconcile behavior for purge/sync operations.
type ReconcileOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// DoPurge removes entries whose file no longer exists.
	DoPurge bool

	// DoSync adds missing entries and refreshes outdated ones.
	DoSync bool

	// Confirmed indicates user has confirmed destructive actions.
	// If false, mutations will not execute regardless of DryRun.
	Confirmed bool
}

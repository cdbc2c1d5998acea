package reconcile

import (
	"context"
	"fmt"
	"sort"
	"time"

	"sitemap-manager/core/scanner"
	"sitemap-manager/core/settings"
	"sitemap-manager/core/sitemap"
	"sitemap-manager/core/urls"
)

// ReconcileAll compares the source tree with the sitemap and returns one result
// per entry identity found in either of them, sorted by identity.
func (e *Engine) ReconcileAll(ctx context.Context, sitemapPath string, s settings.Settings) ([]ReconcileResult, error) {
	plan, err := e.ReconcileWithPlan(ctx, sitemapPath, s, ReconcileOptions{})
	if err != nil {
		return nil, err
	}
	return plan.Results, nil
}

// ReconcileWithPlan performs reconciliation and returns a plan with results and actions.
// It does NOT execute actions; use ApplyPlan for that.
func (e *Engine) ReconcileWithPlan(ctx context.Context, sitemapPath string, s settings.Settings, opts ReconcileOptions) (*ReconcilePlan, error) {
	abs, err := e.SitemapPath(sitemapPath)
	if err != nil {
		return nil, err
	}

	tree, err := scanner.Scan(ctx, e.fs, e.root, s)
	if err != nil {
		return nil, scanError(err)
	}

	unlock := e.locks.lock(abs)
	doc, err := e.read(abs)
	unlock()
	if err != nil {
		return nil, err
	}

	treeIndex := make(map[string]scanner.FileRecord, len(tree.Files))
	for _, f := range tree.Files {
		treeIndex[sitemap.Identity(f.URL)] = f
	}
	docIndex := make(map[string]*sitemap.Entry, len(doc.Entries))
	for _, entry := range doc.Entries {
		id := sitemap.Identity(entry.Location)
		if _, dup := docIndex[id]; !dup {
			docIndex[id] = entry
		}
	}

	union := buildUnion(treeIndex, docIndex)
	results := make([]ReconcileResult, 0, len(union))
	for key := range union {
		results = append(results, buildResult(key, treeIndex, docIndex, s))
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].ID < results[j].ID
	})

	summary, actions := buildPlanFromResults(sitemapPath, results, treeIndex, opts)
	return &ReconcilePlan{
		Sitemap:  sitemapPath,
		MaxDepth: tree.MaxDepth,
		Results:  results,
		Actions:  actions,
		Summary:  summary,
	}, nil
}

// ApplyPlan executes the actions of a plan in a single rewrite of the sitemap.
// Returns the number of actions executed and any error encountered.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
func (e *Engine) ApplyPlan(ctx context.Context, sitemapPath string, s settings.Settings, plan *ReconcilePlan, opts ReconcileOptions) (executed int, err error) {
	// Safety check: do not execute if not confirmed or dry-run
	if !opts.Confirmed || opts.DryRun || len(plan.Actions) == 0 {
		return 0, nil
	}

	freq := sitemap.ParseChangeFrequency(s.DefaultChangeFrequency)
	out, err := e.mutate(ctx, OpApply, sitemapPath, s, func(doc *sitemap.Document, _ *Outcome) error {
		for _, action := range plan.Actions {
			switch action.Type {
			case ActionRemove:
				for doc.Remove(action.URL) {
				}
			case ActionAdd:
				doc.Add(&sitemap.Entry{
					Location:        action.URL,
					LastModified:    action.LastModified,
					Priority:        sitemap.Float(urls.Priority(urls.Depth(action.URL), plan.MaxDepth)),
					ChangeFrequency: freq,
				})
			case ActionTouch:
				entry := doc.Find(action.URL)
				if entry == nil {
					return fmt.Errorf("%w: entry %s", ErrNotFound, action.URL)
				}
				entry.Location = action.URL
				entry.LastModified = action.LastModified
			default:
				return fmt.Errorf("action %q cannot be applied to a sitemap", action.Type)
			}
			executed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	plan.Applied = out
	return executed, nil
}

// ReconcileAndApply is a convenience wrapper that plans and optionally applies actions.
// It returns the plan, number of actions executed, and any error.
func (e *Engine) ReconcileAndApply(ctx context.Context, sitemapPath string, s settings.Settings, opts ReconcileOptions) (*ReconcilePlan, int, error) {
	plan, err := e.ReconcileWithPlan(ctx, sitemapPath, s, opts)
	if err != nil {
		return nil, 0, err
	}

	executed, err := e.ApplyPlan(ctx, sitemapPath, s, plan, opts)
	return plan, executed, err
}

// buildUnion creates a union of the entry identities of the tree and the sitemap.
func buildUnion(treeIndex map[string]scanner.FileRecord, docIndex map[string]*sitemap.Entry) map[string]struct{} {
	union := make(map[string]struct{}, len(treeIndex)+len(docIndex))
	for key := range treeIndex {
		union[key] = struct{}{}
	}
	for key := range docIndex {
		union[key] = struct{}{}
	}
	return union
}

// buildResult creates a ReconcileResult for a single identity.
func buildResult(key string, treeIndex map[string]scanner.FileRecord, docIndex map[string]*sitemap.Entry, s settings.Settings) ReconcileResult {
	file, treePresent := treeIndex[key]
	entry, sitemapPresent := docIndex[key]

	result := ReconcileResult{
		ID:             key,
		TreePresent:    treePresent,
		SitemapPresent: sitemapPresent,
		Mismatch:       []string{},
	}
	if treePresent {
		result.URL = file.URL
		result.RelPath = file.RelPath
	} else {
		result.URL = entry.Location
	}

	if treePresent && sitemapPresent {
		result.Mismatch = compareFields(file, entry, s)
	}
	return result
}

// compareFields lists the entry fields that no longer match the file.
func compareFields(file scanner.FileRecord, entry *sitemap.Entry, s settings.Settings) []string {
	mismatch := []string{}
	if entry.Location != file.URL {
		mismatch = append(mismatch, fmt.Sprintf("loc: sitemap=%s file=%s", entry.Location, file.URL))
	}

	if !tracksLastMod(s) {
		return mismatch
	}
	fileDate := file.LastModified.Format(sitemap.DateLayout)
	switch {
	case entry.LastModified == nil:
		mismatch = append(mismatch, fmt.Sprintf("lastmod: sitemap=none file=%s", fileDate))
	case dateOf(file.LastModified).After(dateOf(*entry.LastModified)):
		mismatch = append(mismatch, fmt.Sprintf("lastmod: sitemap=%s file=%s", entry.LastModified.Format(sitemap.DateLayout), fileDate))
	}
	return mismatch
}

func tracksLastMod(s settings.Settings) bool {
	for _, t := range s.TagsToInclude {
		if t == settings.TagLastMod {
			return true
		}
	}
	return false
}

// dateOf truncates t to its calendar day, since lastmod is written as a date.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// buildPlanFromResults generates a summary and action plan from reconciliation results.
func buildPlanFromResults(sitemapPath string, results []ReconcileResult, treeIndex map[string]scanner.FileRecord, opts ReconcileOptions) (PlanSummary, []Action) {
	var summary PlanSummary
	var actions []Action

	summary.TotalItems = len(results)

	for _, result := range results {
		if result.TreePresent && !result.SitemapPresent {
			summary.MissingSitemap++
		}
		if result.SitemapPresent && !result.TreePresent {
			summary.MissingTree++
		}
		if len(result.Mismatch) > 0 {
			summary.Mismatches++
		}

		// Purge: the sitemap lists a page whose file is gone
		if opts.DoPurge && result.SitemapPresent && !result.TreePresent {
			actions = append(actions, Action{
				Type:    ActionRemove,
				Sitemap: sitemapPath,
				Key:     result.ID,
				URL:     result.URL,
				Reason:  "missing in: tree",
			})
			summary.PurgeActions++
			continue
		}

		if !opts.DoSync || !result.TreePresent {
			continue
		}
		file := treeIndex[result.ID]
		switch {
		case !result.SitemapPresent:
			actions = append(actions, Action{
				Type:         ActionAdd,
				Sitemap:      sitemapPath,
				Key:          result.ID,
				URL:          result.URL,
				Path:         result.RelPath,
				LastModified: sitemap.Time(file.LastModified),
				Reason:       "missing in: sitemap",
			})
			summary.SyncActions++
		case len(result.Mismatch) > 0:
			actions = append(actions, Action{
				Type:         ActionTouch,
				Sitemap:      sitemapPath,
				Key:          result.ID,
				URL:          result.URL,
				Path:         result.RelPath,
				LastModified: sitemap.Time(file.LastModified),
				Reason:       fmt.Sprintf("mismatch: %v", result.Mismatch),
			})
			summary.SyncActions++
		}
	}

	return summary, actions
}

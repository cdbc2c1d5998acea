package reconcile

import (
	"context"
	"testing"
	"time"

	"sitemap-manager/core/settings"
	"sitemap-manager/core/sitemap"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// driftFixture has one entry in sync, one outdated, one stale and one missing.
func driftFixture(t *testing.T) (afero.Fs, *Engine) {
	t.Helper()
	fs, engine := newTestEngine(t, "/ws/index.html", "/ws/about.html", "/ws/new.html")

	fileTime := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	for _, f := range []string{"/ws/index.html", "/ws/about.html", "/ws/new.html"} {
		require.NoError(t, fs.Chtimes(f, fileTime, fileTime))
	}

	current := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	writeSitemap(t, fs,
		&sitemap.Entry{Location: "http://www.example.com", LastModified: &current, Priority: sitemap.Float(1)},
		&sitemap.Entry{Location: "http://www.example.com/about.html", LastModified: &old, Priority: sitemap.Float(0.5)},
		&sitemap.Entry{Location: "http://www.example.com/gone.html", LastModified: &old, Priority: sitemap.Float(0.5)},
	)
	return fs, engine
}

// TestReconcileAll_PresenceFlags tests that tree and sitemap presence is detected per identity.
func TestReconcileAll_PresenceFlags(t *testing.T) {
	_, engine := driftFixture(t)

	results, err := engine.ReconcileAll(context.Background(), "sitemap.xml", settings.Defaults())
	require.NoError(t, err)
	require.Len(t, results, 4)

	byID := make(map[string]ReconcileResult)
	for _, r := range results {
		byID[r.ID] = r
	}

	assert.True(t, byID[""].TreePresent)
	assert.True(t, byID[""].SitemapPresent)
	assert.Empty(t, byID[""].Mismatch)

	assert.True(t, byID["/about.html"].TreePresent)
	assert.True(t, byID["/about.html"].SitemapPresent)
	assert.Equal(t, []string{"lastmod: sitemap=2024-01-01 file=2024-05-10"}, byID["/about.html"].Mismatch)

	assert.False(t, byID["/gone.html"].TreePresent)
	assert.True(t, byID["/gone.html"].SitemapPresent)
	assert.Equal(t, "http://www.example.com/gone.html", byID["/gone.html"].URL)

	assert.True(t, byID["/new.html"].TreePresent)
	assert.False(t, byID["/new.html"].SitemapPresent)

	// Sorted by identity
	assert.Equal(t, "", results[0].ID)
	assert.Equal(t, "/new.html", results[3].ID)
}

// TestReconcileWithPlan_Actions tests that purge and sync actions are planned correctly.
func TestReconcileWithPlan_Actions(t *testing.T) {
	_, engine := driftFixture(t)

	tests := []struct {
		name      string
		opts      ReconcileOptions
		wantTypes map[ActionType]int
		purge     int
		sync      int
	}{
		{"ReportOnly", ReconcileOptions{}, map[ActionType]int{}, 0, 0},
		{"PurgeOnly", ReconcileOptions{DoPurge: true}, map[ActionType]int{ActionRemove: 1}, 1, 0},
		{"SyncOnly", ReconcileOptions{DoSync: true}, map[ActionType]int{ActionAdd: 1, ActionTouch: 1}, 0, 2},
		{"Both", ReconcileOptions{DoPurge: true, DoSync: true}, map[ActionType]int{ActionRemove: 1, ActionAdd: 1, ActionTouch: 1}, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := engine.ReconcileWithPlan(context.Background(), "sitemap.xml", settings.Defaults(), tt.opts)
			require.NoError(t, err)

			assert.Equal(t, 4, plan.Summary.TotalItems)
			assert.Equal(t, 1, plan.Summary.MissingSitemap)
			assert.Equal(t, 1, plan.Summary.MissingTree)
			assert.Equal(t, 1, plan.Summary.Mismatches)
			assert.False(t, plan.Summary.InSync())
			assert.Equal(t, tt.purge, plan.Summary.PurgeActions)
			assert.Equal(t, tt.sync, plan.Summary.SyncActions)

			types := make(map[ActionType]int)
			for _, a := range plan.Actions {
				types[a.Type]++
				assert.Equal(t, "sitemap.xml", a.Sitemap)
			}
			assert.Equal(t, tt.wantTypes, types)
		})
	}
}

// TestReconcileWithPlan_LastModNotTracked tests that lastmod drift is ignored when the tag is not written.
func TestReconcileWithPlan_LastModNotTracked(t *testing.T) {
	_, engine := driftFixture(t)
	s := settings.Defaults()
	s.TagsToInclude = []string{settings.TagPriority}

	plan, err := engine.ReconcileWithPlan(context.Background(), "sitemap.xml", s, ReconcileOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, plan.Summary.Mismatches)
}

// TestApplyPlan_ConfirmationGating tests that nothing is written without confirmation.
func TestApplyPlan_ConfirmationGating(t *testing.T) {
	tests := []struct {
		name string
		opts ReconcileOptions
		want int
	}{
		{"NotConfirmed", ReconcileOptions{DoPurge: true, DoSync: true}, 0},
		{"DryRun", ReconcileOptions{DoPurge: true, DoSync: true, Confirmed: true, DryRun: true}, 0},
		{"Confirmed", ReconcileOptions{DoPurge: true, DoSync: true, Confirmed: true}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, engine := driftFixture(t)
			before, err := afero.ReadFile(fs, "/ws/sitemap.xml")
			require.NoError(t, err)

			plan, executed, err := engine.ReconcileAndApply(context.Background(), "sitemap.xml", settings.Defaults(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, executed)
			if tt.want == 0 {
				assert.Nil(t, plan.Applied)
			} else {
				require.NotNil(t, plan.Applied)
				assert.Equal(t, OpApply, plan.Applied.Operation)
				assert.Equal(t, 3, plan.Applied.Entries)
			}

			after, err := afero.ReadFile(fs, "/ws/sitemap.xml")
			require.NoError(t, err)
			if tt.want == 0 {
				assert.Equal(t, string(before), string(after))
			} else {
				assert.NotEqual(t, string(before), string(after))
			}
		})
	}
}

// TestApplyPlan_Repairs tests that an applied plan leaves the sitemap in sync.
func TestApplyPlan_Repairs(t *testing.T) {
	fs, engine := driftFixture(t)
	opts := ReconcileOptions{DoPurge: true, DoSync: true, Confirmed: true}

	_, _, err := engine.ReconcileAndApply(context.Background(), "sitemap.xml", settings.Defaults(), opts)
	require.NoError(t, err)

	doc := readSitemap(t, fs)
	require.Len(t, doc.Entries, 3)
	assert.Nil(t, doc.Find("http://www.example.com/gone.html"))

	added := doc.Find("http://www.example.com/new.html")
	require.NotNil(t, added)
	assert.InDelta(t, 0.5, *added.Priority, 1e-9)
	assert.Equal(t, "2024-05-10", added.LastModified.Format(sitemap.DateLayout))

	about := doc.Find("http://www.example.com/about.html")
	require.NotNil(t, about)
	assert.Equal(t, "2024-05-10", about.LastModified.Format(sitemap.DateLayout))

	plan, err := engine.ReconcileWithPlan(context.Background(), "sitemap.xml", settings.Defaults(), ReconcileOptions{})
	require.NoError(t, err)
	assert.True(t, plan.Summary.InSync())
}

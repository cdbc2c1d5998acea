package cmd

import (
	"fmt"
	"testing"

	"sitemap-manager/core/reconcile"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPrintReconcileReport(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := zap.New(core)

	plan := &reconcile.ReconcilePlan{
		Sitemap: "sitemap.xml",
		Summary: reconcile.PlanSummary{TotalItems: 9, MissingTree: 7, PurgeActions: 7},
	}
	for i := 0; i < 7; i++ {
		plan.Actions = append(plan.Actions, reconcile.Action{
			Type:   reconcile.ActionRemove,
			URL:    fmt.Sprintf("http://www.example.com/%d.html", i),
			Reason: "file deleted",
		})
	}

	printReconcileReport(l, plan)

	assert.Equal(t, 1, logs.FilterMessage("Reconciliation report").Len())
	assert.Equal(t, 5, logs.FilterMessage("Sample action").Len())
	more := logs.FilterMessage("Additional actions not shown").All()
	if assert.Len(t, more, 1) {
		assert.Equal(t, int64(2), more[0].ContextMap()["count"])
	}
}

func TestPrintReconcileReport_InSync(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	printReconcileReport(zap.New(core), &reconcile.ReconcilePlan{Sitemap: "sitemap.xml"})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, true, entries[0].ContextMap()["in_sync"])
	}
}

func TestConfirmDestructiveAction_Yes(t *testing.T) {
	yesConfirm = true
	defer func() { yesConfirm = false }()

	assert.True(t, confirmDestructiveAction())
	assert.Nil(t, stdinPrompter())
}

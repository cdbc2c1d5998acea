package cmd

import (
	"context"
	"fmt"
	"os"

	"sitemap-manager/core/reconcile"
	"sitemap-manager/feature/sitemap"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the reconcile command
	purgeEntries bool
	syncEntries  bool
	dryRun       bool
)

// reconcileCmd performs sitemap reconciliation with optional purge/sync.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile [sitemap]",
	Short: "Reconcile a sitemap with its source tree (report + optionally purge/sync)",
	Long: `Reconcile a sitemap with the files under its root folder.

Reports files without an entry, entries without a file and outdated lastmod values.
Optionally purge (remove) entries whose file is gone, or sync (add and refresh) entries.

Examples:
  # Report only
  reconcile

  # Purge removed files (with interactive confirmation)
  reconcile --purge

  # Sync with auto-confirm (non-interactive)
  reconcile public/sitemap.xml --sync --yes

  # Both purge and sync
  reconcile --purge --sync --yes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().BoolVar(&purgeEntries, "purge", false, "Enable purge (remove entries whose file no longer exists)")
	reconcileCmd.Flags().BoolVar(&syncEntries, "sync", false, "Enable sync (add missing entries and refresh outdated lastmod)")
	reconcileCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Force dry-run (no mutations even with --yes)")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rt, err := bootstrap(ctx, bootstrapOptions{database: true})
	if err != nil {
		return err
	}
	defer rt.close()
	l := rt.logger

	target, err := rt.sitemaps.Select(firstArg(args), stdinPrompter())
	if err != nil {
		return err
	}

	opts := reconcile.ReconcileOptions{
		DoPurge:   purgeEntries,
		DoSync:    syncEntries,
		DryRun:    dryRun,
		Confirmed: false, // Set after the confirmation prompt
	}

	// Step 1: Plan (always runs)
	l.Info("Planning reconciliation...", zap.String("sitemap", target))
	plan, _, err := rt.sitemaps.Reconcile(ctx, sitemap.SourceCLI, target, opts)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}

	// Step 2: Print report
	printReconcileReport(l, plan)

	// Step 3: Check if actions are requested
	if !purgeEntries && !syncEntries {
		l.Info("No actions requested. Use --purge to remove entries of deleted files or --sync to add and refresh entries.")
		return nil
	}

	if dryRun {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if len(plan.Actions) == 0 {
		l.Info("No actions required based on current flags.")
		return nil
	}

	// Step 4: Apply (if confirmed)
	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}
	opts.Confirmed = true

	l.Info("Applying actions...")
	plan, executed, err := rt.sitemaps.Reconcile(ctx, sitemap.SourceCLI, target, opts)
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}
	if plan.Applied == nil {
		l.Info("Sitemap already in sync. No changes were made.")
		return nil
	}
	l.Info("Successfully executed actions", zap.Int("count", executed), zap.Int("entries", plan.Applied.Entries))
	return nil
}

// printReconcileReport prints a formatted reconciliation report using logger.
func printReconcileReport(l *zap.Logger, plan *reconcile.ReconcilePlan) {
	s := plan.Summary

	l.Info("Reconciliation report",
		zap.String("sitemap", plan.Sitemap),
		zap.Int("total_items", s.TotalItems),
		zap.Int("missing_sitemap", s.MissingSitemap),
		zap.Int("missing_tree", s.MissingTree),
		zap.Int("mismatches", s.Mismatches),
		zap.Bool("in_sync", s.InSync()),
	)

	if len(plan.Actions) == 0 {
		return
	}
	l.Info("Planned actions",
		zap.Int("purge_actions", s.PurgeActions),
		zap.Int("sync_actions", s.SyncActions),
		zap.Int("total_actions", len(plan.Actions)),
	)

	// Show sample of actions (max 5 for logger)
	maxShow := min(5, len(plan.Actions))
	for _, action := range plan.Actions[:maxShow] {
		l.Info("Sample action",
			zap.String("type", string(action.Type)),
			zap.String("url", action.URL),
			zap.String("reason", action.Reason),
		)
	}
	if len(plan.Actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}
	return newLinePrompter(os.Stdin, os.Stdout).Confirm("⚠️  Type 'yes' to confirm changes to the sitemap:")
}

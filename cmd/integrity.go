package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"sitemap-manager/core/reconcile"
	"sitemap-manager/feature/integrity"
	"sitemap-manager/feature/sitemap"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity [sitemap]",
	Short: "Check sitemaps against their source trees",
	Long: `Compares every configured sitemap (or the named one) with its source tree and reports
files without an entry, entries without a file and outdated lastmod values.
Outputs metrics by default and a detailed JSON file with --json. Nothing is modified; use reconcile to repair.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSitemapIntegrity,
}

// bucketCmd represents the integrity bucket command
var bucketCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Check published sitemaps in the storage bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		rt, svc, err := integrityService(ctx, bootstrapOptions{storage: true})
		if err != nil {
			return err
		}
		defer rt.close()
		logg := rt.logger

		logg.Info("Checking bucket...", zap.String("bucket", rt.cfg.Storage.Bucket), zap.String("prefix", rt.cfg.Publish.Prefix))
		report, err := svc.CheckBucket(ctx)
		if err != nil {
			return fmt.Errorf("bucket check failed: %w", err)
		}

		if report.Exists && len(report.Missing) == 0 && len(report.Orphans) == 0 {
			logg.Info("Bucket is in sync.", zap.Int("published", len(report.Published)))
			return nil
		}
		logg.Warn("Bucket differences detected",
			zap.Bool("exists", report.Exists),
			zap.Strings("missing", report.Missing),
			zap.Strings("orphans", report.Orphans),
		)

		if !fixFlag {
			logg.Info("Run with --fix to create the bucket and remove orphaned sitemaps.")
			return nil
		}
		logg.Info("Fixing bucket...")
		if err := svc.FixBucket(ctx, report); err != nil {
			return fmt.Errorf("failed to fix bucket: %w", err)
		}
		logg.Info("Bucket fixed successfully.")
		return nil
	},
}

// historyCmd represents the integrity history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Check the revision history table schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		rt, svc, err := integrityService(ctx, bootstrapOptions{database: true})
		if err != nil {
			return err
		}
		defer rt.close()
		logg := rt.logger

		report, err := svc.CheckHistory()
		if err != nil {
			return fmt.Errorf("history schema check failed: %w", err)
		}
		if report.Matched {
			logg.Info("History schema matches expected definition.", zap.String("table", report.Table))
			return nil
		}
		logg.Warn("History schema mismatches found", zap.String("table", report.Table))
		if len(report.MissingColumns) > 0 {
			logg.Warn("Missing Columns", zap.Strings("columns", report.MissingColumns))
		}
		if len(report.TypeMismatches) > 0 {
			logg.Warn("Type Mismatches", zap.Strings("mismatches", report.TypeMismatches))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(bucketCmd, historyCmd)

	integrityCmd.Flags().Bool("json", false, "Save a detailed JSON report")
	bucketCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the bucket and remove orphaned sitemaps")
}

func integrityService(ctx context.Context, opts bootstrapOptions) (*runtime, *integrity.Service, error) {
	rt, err := bootstrap(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	svc := integrity.NewService(rt.sitemaps, rt.storage, rt.cfg.Storage, rt.cfg.Publish, rt.db, rt.logger)
	return rt, svc, nil
}

// sitemapIssue is one entry of the JSON report. Only entries with a problem are listed.
type sitemapIssue struct {
	Sitemap        string   `json:"sitemap"`
	ID             string   `json:"id"`
	URL            string   `json:"url"`
	SitemapMissing bool     `json:"sitemap_missing"`
	FileMissing    bool     `json:"file_missing"`
	Mismatch       []string `json:"mismatch"`
}

func runSitemapIntegrity(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	startTime := time.Now()
	jsonOutput, _ := cmd.Flags().GetBool("json")

	rt, svc, err := integrityService(ctx, bootstrapOptions{})
	if err != nil {
		return err
	}
	defer rt.close()
	logg := rt.logger

	targets := rt.sitemaps.Snapshot().Sitemaps()
	if len(args) == 1 {
		target, err := rt.sitemaps.Resolve(args[0])
		if err != nil {
			return err
		}
		targets = []string{target}
	}
	if len(targets) == 0 {
		return fmt.Errorf("no sitemap configured in %s", rt.sitemaps.SettingsPath())
	}

	var (
		total          int
		sitemapMissing int
		fileMissing    int
		mismatch       int
		issues         []sitemapIssue
	)
	for _, target := range targets {
		logg.Info("Checking sitemap...", zap.String("sitemap", target))
		plan, _, err := svc.CheckSitemap(ctx, sitemap.SourceCLI, target, reconcile.ReconcileOptions{})
		if err != nil {
			return fmt.Errorf("integrity check of %s failed: %w", target, err)
		}

		total += plan.Summary.TotalItems
		sitemapMissing += plan.Summary.MissingSitemap
		fileMissing += plan.Summary.MissingTree
		mismatch += plan.Summary.Mismatches

		for _, r := range plan.Results {
			if r.TreePresent && r.SitemapPresent && len(r.Mismatch) == 0 {
				continue
			}
			issues = append(issues, sitemapIssue{
				Sitemap:        target,
				ID:             r.ID,
				URL:            r.URL,
				SitemapMissing: !r.SitemapPresent,
				FileMissing:    !r.TreePresent,
				Mismatch:       r.Mismatch,
			})
		}
	}

	var filename string
	if jsonOutput {
		filename = fmt.Sprintf("integrity_sitemaps_%d.json", time.Now().Unix())
		data, err := json.MarshalIndent(issues, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return fmt.Errorf("failed to save JSON file: %w", err)
		}
		logg.Info("Detailed JSON report saved", zap.String("file", filename), zap.Int("items_with_issues", len(issues)))
	}

	executionTime := time.Since(startTime)

	fmt.Println("\n=== Sitemap Integrity Metrics ===")
	fmt.Printf("Sitemaps: %d\n", len(targets))
	fmt.Printf("Total Entries: %d\n", total)
	fmt.Printf("Sitemap Missing: %d\n", sitemapMissing)
	fmt.Printf("File Missing: %d\n", fileMissing)
	fmt.Printf("Mismatch: %d\n", mismatch)
	fmt.Printf("Execution Time: %s\n", executionTime.String())
	if jsonOutput {
		fmt.Printf("\nDetailed JSON saved to: %s (%d items with issues)\n", filename, len(issues))
	}
	return nil
}

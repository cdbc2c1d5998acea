package cmd

import (
	"context"
	"fmt"

	"sitemap-manager/feature/sitemap"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// generateCmd rebuilds a sitemap from a full scan of its root.
var generateCmd = &cobra.Command{
	Use:   "generate [sitemap]",
	Short: "Regenerate a sitemap from its source tree",
	Long: `Scans the root folder of a configured sitemap and rewrites the sitemap file.

When several sitemaps are configured and none is named, the command asks which one to use.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	RootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rt, err := bootstrap(ctx, bootstrapOptions{database: true})
	if err != nil {
		return err
	}
	defer rt.close()

	target, err := rt.sitemaps.Select(firstArg(args), stdinPrompter())
	if err != nil {
		return err
	}

	out, err := rt.sitemaps.Regenerate(ctx, sitemap.SourceCLI, target)
	if err != nil {
		return fmt.Errorf("failed to generate %s: %w", target, err)
	}

	rt.logger.Info("Sitemap generated",
		zap.String("sitemap", out.Sitemap),
		zap.String("path", out.Path),
		zap.Int("entries", out.Entries),
		zap.Bool("changed", out.Changed),
	)
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

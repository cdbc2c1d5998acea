package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"sitemap-manager/feature/sitemap"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// eventCmd applies one file event to the configured sitemaps.
var eventCmd = &cobra.Command{
	Use:   "event <created|deleted|saved|renamed> <path> [new-path]",
	Short: "Apply a file event to the sitemaps",
	Long: `Updates every sitemap whose root contains the file, without rescanning the tree.

Examples:
  event created public/blog/post.html
  event saved public/index.html
  event renamed public/old.html public/new.html`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runEvent,
}

func init() {
	RootCmd.AddCommand(eventCmd)
}

func runEvent(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	paths := make([]string, 0, len(args)-1)
	for _, p := range args[1:] {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		paths = append(paths, abs)
	}

	ev, err := sitemap.ParseEvent(args[0], paths)
	if err != nil {
		return err
	}

	rt, err := bootstrap(ctx, bootstrapOptions{database: true})
	if err != nil {
		return err
	}
	defer rt.close()

	outs, err := rt.sitemaps.HandleEvent(ctx, sitemap.SourceCLI, ev)
	for _, out := range outs {
		rt.logger.Info("Sitemap updated",
			zap.String("sitemap", out.Sitemap),
			zap.String("operation", string(out.Operation)),
			zap.String("url", out.URL),
			zap.Int("entries", out.Entries),
			zap.Bool("changed", out.Changed),
		)
	}
	if err != nil {
		return fmt.Errorf("failed to apply %s event: %w", ev.Op, err)
	}
	if len(outs) == 0 {
		rt.logger.Info("No sitemap affected", zap.String("path", ev.Path))
	}
	return nil
}

package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"sitemap-manager/core/watcher"
	"sitemap-manager/feature/sitemap"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// watchCmd runs the watcher without the HTTP server.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the workspace and update sitemaps",
	Long:  `Watches the workspace recursively and applies created, deleted, saved and renamed files to the configured sitemaps until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		rt, err := bootstrap(ctx, bootstrapOptions{database: true})
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer rt.close()

		w, err := startWatcher(ctx, rt)
		if err != nil {
			rt.logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		defer w.Stop()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		rt.logger.Info("Stopping watcher...", zap.Int64("dropped_events", w.DroppedEvents()))
	},
}

// startWatcher starts the workspace watcher and feeds its events to the sitemap service.
func startWatcher(ctx context.Context, rt *runtime) (*watcher.Watcher, error) {
	w, err := watcher.New(rt.cfg.Watch, rt.root, rt.logger, watcher.WithDropHandler(rt.metrics.Dropped))
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		return nil, err
	}

	go func() {
		for ev := range w.Events() {
			outs, err := rt.sitemaps.HandleEvent(ctx, sitemap.SourceWatch, ev)
			if err != nil {
				rt.logger.Error("Failed to apply file event",
					zap.String("op", string(ev.Op)),
					zap.String("path", ev.Path),
					zap.Error(err),
				)
				continue
			}
			for _, out := range outs {
				rt.logger.Debug("Sitemap updated",
					zap.String("sitemap", out.Sitemap),
					zap.String("operation", string(out.Operation)),
					zap.Int("entries", out.Entries),
				)
			}
		}
	}()

	return w, nil
}

func init() {
	RootCmd.AddCommand(watchCmd)
}

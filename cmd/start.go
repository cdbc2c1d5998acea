package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"sitemap-manager/core/loader"
	"sitemap-manager/core/logger"
	"sitemap-manager/core/middleware/auth"
	"sitemap-manager/core/middleware/rayid"

	"sitemap-manager/feature/history"
	"sitemap-manager/feature/integrity"
	"sitemap-manager/feature/sitemap"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "sitemap-manager/docs/swagger"
)

// @title Sitemap Manager API
// @version 1.0
// @description API for keeping website sitemaps in sync with their sources.
// @host localhost:8080
// @BasePath /

var startWatch bool

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sitemap manager server",
	Long:  `Starts the HTTP server and initializes all enabled features. With --watch, file changes in the workspace are applied as they happen.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// 1. Configuration, logger, database, storage and the sitemap service
		rt, err := bootstrap(ctx, bootstrapOptions{database: true, storage: true})
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer rt.close()
		logg := rt.logger
		zap.ReplaceGlobals(logg)

		// 2. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 3. Initialize Feature Loader
		mgr := loader.NewManager(logg)
		mgr.Register(sitemap.NewFeature(rt.sitemaps))
		mgr.Register(integrity.NewFeature(integrity.NewService(rt.sitemaps, rt.storage, rt.cfg.Storage, rt.cfg.Publish, rt.db, logg)))
		mgr.Register(history.NewFeature(rt.history))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging with the ray id
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation and metrics (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", adaptor.HTTPHandler(rt.metrics.Handler()))

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey}))

		// 4. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 5. Watcher
		if startWatch || rt.cfg.Watch.Enabled {
			w, err := startWatcher(ctx, rt)
			if err != nil {
				logg.Fatal("Failed to start watcher", zap.Error(err))
			}
			defer w.Stop()
		}

		// 6. Start Server
		addr := rt.cfg.Server.Address()
		go func() {
			logg.Info("Starting server", zap.String("address", addr), zap.String("workspace", rt.root))
			if err := app.Listen(addr); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		cancel()
		_ = app.Shutdown()
	},
}

func init() {
	startCmd.Flags().BoolVar(&startWatch, "watch", false, "Apply workspace file changes as they happen")
	RootCmd.AddCommand(startCmd)
}

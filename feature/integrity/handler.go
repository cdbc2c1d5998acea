package integrity

import (
	"sitemap-manager/core/logger"
	"sitemap-manager/core/reconcile"
	"sitemap-manager/feature/integrity/checks"
	"sitemap-manager/feature/sitemap"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.BucketReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleSitemapCheck)
	group.Get("/bucket", h.HandleBucketCheck)
	group.Get("/history", h.HandleHistoryCheck)
}

// HandleSitemapCheck compares a sitemap with its source tree.
// @Summary Check Sitemap Drift
// @Description Compares the sitemap entries with the files under its root. With fix=true the stale entries are removed and missing or outdated ones are written (purge and sync can be narrowed with purge=false or sync=false).
// @Tags integrity
// @Produce json
// @Param sitemap query string false "Workspace-relative sitemap path"
// @Param fix query boolean false "Apply the planned actions"
// @Param purge query boolean false "Plan removal of entries whose file is gone" default(true)
// @Param sync query boolean false "Plan addition of missing and refresh of outdated entries" default(true)
// @Success 200 {object} map[string]interface{} "Drift report"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]interface{} "Several sitemaps configured"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity [get]
func (h *Handler) HandleSitemapCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.QueryBool("fix", false)

	opts := reconcile.ReconcileOptions{
		DoPurge:   c.QueryBool("purge", true),
		DoSync:    c.QueryBool("sync", true),
		Confirmed: fix,
	}

	plan, executed, err := h.service.CheckSitemap(c.Context(), sitemap.SourceHTTP, c.Query("sitemap"), opts)
	if err != nil {
		return sitemap.RespondError(c, l, "Sitemap check failed", err)
	}

	status := "checked"
	if executed > 0 {
		status = "fixed"
	}
	return c.JSON(fiber.Map{
		"status":   status,
		"sitemap":  plan.Sitemap,
		"summary":  plan.Summary,
		"results":  plan.Results,
		"actions":  plan.Actions,
		"executed": executed,
	})
}

// HandleBucketCheck checks and optionally fixes the published sitemaps.
// @Summary Check Published Sitemaps
// @Description Checks that the bucket exists and holds one object per configured sitemap. Optionally creates the bucket and removes orphaned sitemap objects.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Create the bucket and remove orphans"
// @Success 200 {object} checks.BucketReport "Bucket Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/bucket [get]
func (h *Handler) HandleBucketCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.QueryBool("fix", false)

	report, err := h.service.CheckBucket(c.Context())
	if err != nil {
		l.Error("Bucket check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.Exists || len(report.Orphans) > 0 {
		l.Warn("Bucket issues detected",
			zap.Bool("exists", report.Exists),
			zap.Strings("orphans", report.Orphans))

		if fix {
			l.Info("Attempting to fix bucket")
			if err := h.service.FixBucket(c.Context(), report); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix bucket",
					"details": err.Error(),
				})
			}
		}
	}

	return c.JSON(report)
}

// HandleHistoryCheck checks the history table schema.
// @Summary Check History Schema
// @Description Checks that the history table matches the revision model.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/history [get]
func (h *Handler) HandleHistoryCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckHistory()
	if err != nil {
		l.Error("History schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

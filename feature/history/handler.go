package history

import (
	"sitemap-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for sitemap history.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the history routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/history", h.HandleList)
}

// HandleList returns recorded revisions.
// @Summary List Revisions
// @Description Lists recorded sitemap operations, newest first.
// @Tags history
// @Produce json
// @Param sitemap query string false "Workspace-relative sitemap path"
// @Param limit query int false "Maximum number of revisions" default(50)
// @Success 200 {array} Revision
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /history [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	revisions, err := h.service.List(c.Context(), c.Query("sitemap"), c.QueryInt("limit", DefaultLimit))
	if err != nil {
		l.Error("Failed to list history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(revisions)
}

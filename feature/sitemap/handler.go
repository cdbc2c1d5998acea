package sitemap

import (
	"errors"

	"sitemap-manager/core/logger"
	"sitemap-manager/core/reconcile"
	"sitemap-manager/core/settings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for sitemaps.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sitemap routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sitemaps")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
	group.Get("/entries", h.HandleEntries)
	group.Post("/regenerate", h.HandleRegenerate)
	group.Post("/events", h.HandleEvent)
	group.Post("/refresh", h.HandleRefresh)
}

// CreateRequest is the body of POST /sitemaps.
type CreateRequest struct {
	Sitemap   string `json:"sitemap"`
	Protocol  string `json:"protocol"`
	Domain    string `json:"domain"`
	Root      string `json:"root"`
	Overwrite bool   `json:"overwrite"`
}

// HandleList lists the configured sitemaps.
// @Summary List Sitemaps
// @Description Lists every sitemap configured in the settings file with its resolved settings.
// @Tags sitemaps
// @Produce json
// @Success 200 {array} Info
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sitemaps [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	infos, err := h.service.List()
	if err != nil {
		return h.fail(c, "Failed to list sitemaps", err)
	}
	return c.JSON(infos)
}

// HandleCreate configures and generates a new sitemap.
// @Summary Create Sitemap
// @Description Writes the settings of a new sitemap and generates it from a full scan.
// @Tags sitemaps
// @Accept json
// @Produce json
// @Param request body CreateRequest true "New sitemap"
// @Success 201 {object} reconcile.Outcome
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Sitemap already exists"
// @Router /sitemaps [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Domain == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "domain is required"})
	}

	out, err := h.service.Create(c.Context(), SourceHTTP, CreateOptions{
		Sitemap:   req.Sitemap,
		Protocol:  req.Protocol,
		Domain:    req.Domain,
		Root:      req.Root,
		Overwrite: req.Overwrite,
	})
	if err != nil {
		return h.fail(c, "Failed to create sitemap", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// HandleEntries returns the parsed entries of a sitemap.
// @Summary Sitemap Entries
// @Description Parses the sitemap file and returns its prolog, root attributes and entries.
// @Tags sitemaps
// @Produce json
// @Param sitemap query string false "Workspace-relative sitemap path"
// @Success 200 {object} map[string]interface{} "Sitemap document"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]interface{} "Several sitemaps configured"
// @Router /sitemaps/entries [get]
func (h *Handler) HandleEntries(c *fiber.Ctx) error {
	target, doc, err := h.service.Entries(c.Context(), c.Query("sitemap"))
	if err != nil {
		return h.fail(c, "Failed to read sitemap", err)
	}
	return c.JSON(fiber.Map{
		"sitemap":  target,
		"document": doc,
	})
}

// HandleRegenerate rebuilds a sitemap from a full scan.
// @Summary Regenerate Sitemap
// @Description Scans the sitemap root and rewrites the sitemap from scratch.
// @Tags sitemaps
// @Produce json
// @Param sitemap query string false "Workspace-relative sitemap path"
// @Success 200 {object} reconcile.Outcome
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]interface{} "Several sitemaps configured"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sitemaps/regenerate [post]
func (h *Handler) HandleRegenerate(c *fiber.Ctx) error {
	out, err := h.service.Regenerate(c.Context(), SourceHTTP, c.Query("sitemap"))
	if err != nil {
		return h.fail(c, "Failed to regenerate sitemap", err)
	}
	return c.JSON(out)
}

// HandleEvent applies a file event to the affected sitemaps.
// @Summary Apply File Event
// @Description Reports a created, deleted, saved or renamed file. Every auto-updating sitemap whose scope contains the file is updated incrementally.
// @Tags sitemaps
// @Accept json
// @Produce json
// @Param event body reconcile.FileEvent true "File event"
// @Success 200 {array} reconcile.Outcome
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]interface{} "Partial failure"
// @Router /sitemaps/events [post]
func (h *Handler) HandleEvent(c *fiber.Ctx) error {
	var ev reconcile.FileEvent
	if err := c.BodyParser(&ev); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validateEvent(ev); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	outcomes, err := h.service.HandleEvent(c.Context(), SourceHTTP, ev)
	if outcomes == nil {
		outcomes = []*reconcile.Outcome{}
	}
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("File event failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":    err.Error(),
			"outcomes": outcomes,
		})
	}
	return c.JSON(outcomes)
}

// HandleRefresh reloads the settings file.
// @Summary Reload Settings
// @Description Re-reads the sitemap settings file.
// @Tags sitemaps
// @Produce json
// @Success 200 {object} map[string]interface{} "Loaded sitemaps"
// @Failure 422 {object} map[string]string "Malformed settings"
// @Router /sitemaps/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	if err := h.service.Refresh(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"sitemaps": h.service.Snapshot().Sitemaps()})
}

// fail maps service errors to HTTP responses.
func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	return RespondError(c, logger.WithRayID(h.service.logger, c), msg, err)
}

// RespondError writes the JSON error response matching err. Only unexpected
// errors are logged.
func RespondError(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	body := fiber.Map{"error": err.Error()}
	status := fiber.StatusInternalServerError

	var ambiguous *AmbiguousSelectionError
	switch {
	case errors.As(err, &ambiguous):
		status = fiber.StatusConflict
		body["candidates"] = ambiguous.Candidates
	case errors.Is(err, ErrSitemapExists):
		status = fiber.StatusConflict
	case errors.Is(err, reconcile.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, reconcile.ErrOutsideRoot), errors.Is(err, settings.ErrOutsideWorkspace):
		status = fiber.StatusBadRequest
	default:
		l.Error(msg, zap.Error(err))
	}
	return c.Status(status).JSON(body)
}

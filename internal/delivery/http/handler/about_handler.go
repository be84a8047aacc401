package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/nldi-service/internal/config"
	"github.com/nldi-service/internal/pkg/utils"
	"github.com/nldi-service/internal/repository/postgres"
)

// AboutHandler serves the landing document and the health probe.
type AboutHandler struct {
	cfg    *config.Config
	db     *postgres.DB
	pretty bool
	logger *zap.Logger
}

func NewAboutHandler(cfg *config.Config, db *postgres.DB, logger *zap.Logger) *AboutHandler {
	return &AboutHandler{
		cfg:    cfg,
		db:     db,
		pretty: cfg.Server.PrettyPrint,
		logger: logger,
	}
}

// GetRoot returns the service landing document.
// @Summary Service root
// @Tags about
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *AboutHandler) GetRoot(c *fiber.Ctx) error {
	base := h.cfg.BaseURL()
	return utils.SendJSON(c, fiber.Map{
		"title":       h.cfg.Metadata.Title,
		"description": h.cfg.Metadata.Description,
		"links": []fiber.Map{
			{"rel": "data", "href": base + "/linked-data"},
			{"rel": "service-desc", "href": base + "/openapi?f=json"},
			{"rel": "service-doc", "href": base + "/openapi?f=html"},
		},
	}, h.pretty)
}

// GetHealth reports server and database status.
// @Summary Health check
// @Tags about
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /about/health [get]
func (h *AboutHandler) GetHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "up"
	status := fiber.StatusOK
	if err := h.db.Health(ctx); err != nil {
		h.logger.Error("Health check failed", zap.Error(err))
		dbStatus = "down"
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"server": "up",
		"db":     dbStatus,
	})
}

package handler

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/nldi-service/internal/pkg/errors"
	"github.com/nldi-service/internal/pkg/utils"
)

// OpenAPIHandler serves the API description in the format the caller asked
// for.
type OpenAPIHandler struct {
	swaggerUIPath string
	logger        *zap.Logger
}

func NewOpenAPIHandler(swaggerUIPath string, logger *zap.Logger) *OpenAPIHandler {
	return &OpenAPIHandler{
		swaggerUIPath: swaggerUIPath,
		logger:        logger,
	}
}

// GetDocument serves the OpenAPI document.
// @Summary OpenAPI document
// @Tags about
// @Produce json
// @Param f query string false "Format" Enums(json, yaml, html) default(json)
// @Success 200 {object} map[string]interface{}
// @Failure 406 {object} errors.AppError
// @Router /openapi [get]
func (h *OpenAPIHandler) GetDocument(c *fiber.Ctx) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		h.logger.Error("Failed to read OpenAPI document", zap.Error(err))
		return utils.SendError(c, errors.ErrInternal)
	}

	switch strings.ToLower(c.Query("f", "json")) {
	case "json":
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)

	case "yaml":
		var v interface{}
		if err := json.Unmarshal([]byte(doc), &v); err != nil {
			h.logger.Error("Failed to decode OpenAPI document", zap.Error(err))
			return utils.SendError(c, errors.ErrInternal)
		}
		out, err := yaml.Marshal(v)
		if err != nil {
			h.logger.Error("Failed to encode OpenAPI document as YAML", zap.Error(err))
			return utils.SendError(c, errors.ErrInternal)
		}
		c.Set(fiber.HeaderContentType, "application/x-yaml")
		return c.Send(out)

	case "html":
		return c.Redirect(h.swaggerUIPath, fiber.StatusFound)
	}

	return utils.SendError(c, errors.ErrNotAcceptable.WithMessage(
		"format %q is not supported; use json, yaml or html", c.Query("f")))
}

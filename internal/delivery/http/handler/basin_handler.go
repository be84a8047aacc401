package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/nldi-service/internal/pkg/utils"
	"github.com/nldi-service/internal/usecase"
)

// BasinHandler serves the aggregated upstream basin endpoint.
type BasinHandler struct {
	navUC  *usecase.NavigationUsecase
	pretty bool
	logger *zap.Logger
}

func NewBasinHandler(navUC *usecase.NavigationUsecase, pretty bool, logger *zap.Logger) *BasinHandler {
	return &BasinHandler{
		navUC:  navUC,
		pretty: pretty,
		logger: logger,
	}
}

// GetBasin returns the upstream drainage area of a feature.
// @Summary Get upstream basin
// @Description Unions the catchments upstream of the feature, or splits the local catchment at the feature point
// @Tags linked-data
// @Produce json
// @Param source path string true "Source suffix"
// @Param featureId path string true "Feature identifier"
// @Param simplified query boolean false "Simplify the basin polygon" default(true)
// @Param splitCatchment query boolean false "Split the local catchment at the feature point" default(false)
// @Success 200 {object} dto.FeatureCollection
// @Failure 404 {object} errors.AppError
// @Router /linked-data/{source}/{featureId}/basin [get]
func (h *BasinHandler) GetBasin(c *fiber.Ctx) error {
	simplified := true
	if raw := c.Query("simplified"); raw != "" {
		v, err := queryBool(c, "simplified")
		if err != nil {
			return utils.SendError(c, err)
		}
		simplified = v
	}

	splitCatchment, err := queryBool(c, "splitCatchment")
	if err != nil {
		return utils.SendError(c, err)
	}

	fc, err := h.navUC.Basin(c.Context(), c.Params("source"), c.Params("featureId"), simplified, splitCatchment)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, fc, h.pretty)
}

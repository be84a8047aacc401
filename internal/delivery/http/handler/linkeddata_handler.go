package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/nldi-service/internal/pkg/errors"
	"github.com/nldi-service/internal/pkg/utils"
	"github.com/nldi-service/internal/usecase"
	"github.com/nldi-service/internal/usecase/dto"
)

// LinkedDataHandler serves the feature lookup endpoints under /linked-data.
type LinkedDataHandler struct {
	lookupUC *usecase.LookupUsecase
	links    dto.LinkBuilder
	pretty   bool
	logger   *zap.Logger
}

func NewLinkedDataHandler(lookupUC *usecase.LookupUsecase, links dto.LinkBuilder, pretty bool, logger *zap.Logger) *LinkedDataHandler {
	return &LinkedDataHandler{
		lookupUC: lookupUC,
		links:    links,
		pretty:   pretty,
		logger:   logger,
	}
}

// ListSources returns every registered source.
// @Summary List data sources
// @Description Lists all registered crawler sources plus the built-in comid source
// @Tags linked-data
// @Produce json
// @Success 200 {array} dto.DataSourceLink
// @Router /linked-data [get]
func (h *LinkedDataHandler) ListSources(c *fiber.Ctx) error {
	sources := h.lookupUC.ListSources()
	out := make([]dto.DataSourceLink, 0, len(sources))
	for _, src := range sources {
		out = append(out, dto.DataSourceLink{
			Source:     src.FoldedSuffix(),
			SourceName: src.Name,
			Features:   h.links.Source(src.FoldedSuffix()),
		})
	}
	return utils.SendJSON(c, out, h.pretty)
}

// ListFeatures pages through a source's features.
// @Summary List features of a source
// @Tags linked-data
// @Produce json
// @Param source path string true "Source suffix"
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.FeatureCollection
// @Failure 404 {object} errors.AppError
// @Router /linked-data/{source} [get]
func (h *LinkedDataHandler) ListFeatures(c *fiber.Ctx) error {
	req := dto.ListFeaturesRequest{Source: c.Params("source")}

	var err error
	if req.Limit, err = queryInt(c, "limit", dto.DefaultLimit); err != nil {
		return utils.SendError(c, err)
	}
	if req.Offset, err = queryInt(c, "offset", 0); err != nil {
		return utils.SendError(c, err)
	}

	fc, err := h.lookupUC.ListFeatures(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, fc, h.pretty)
}

// GetFeature returns one feature by source and identifier. The comid source
// resolves against the flowline table.
// @Summary Get one feature
// @Tags linked-data
// @Produce json
// @Param source path string true "Source suffix"
// @Param featureId path string true "Feature identifier"
// @Success 200 {object} dto.FeatureCollection
// @Failure 404 {object} errors.AppError
// @Router /linked-data/{source}/{featureId} [get]
func (h *LinkedDataHandler) GetFeature(c *fiber.Ctx) error {
	fc, err := h.lookupUC.GetFeature(c.Context(), c.Params("source"), c.Params("featureId"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, fc, h.pretty)
}

// GetPosition returns the catchment containing a point.
// @Summary Get catchment by position
// @Tags linked-data
// @Produce json
// @Param coords query string true "WKT point, POINT(lon lat)"
// @Success 200 {object} dto.FeatureCollection
// @Failure 400 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /linked-data/comid/position [get]
func (h *LinkedDataHandler) GetPosition(c *fiber.Ctx) error {
	lon, lat, err := coordsParam(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	fc, err := h.lookupUC.GetCatchmentByPoint(c.Context(), lon, lat)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, fc, h.pretty)
}

// GetHydrolocation snaps a point onto the flowline network.
// @Summary Get hydrologic location
// @Description Snaps a point onto the network via the remote flowtrace process
// @Tags linked-data
// @Produce json
// @Param coords query string true "WKT point, POINT(lon lat)"
// @Success 200 {object} dto.FeatureCollection
// @Failure 400 {object} errors.AppError
// @Failure 504 {object} errors.AppError
// @Router /linked-data/hydrolocation [get]
func (h *LinkedDataHandler) GetHydrolocation(c *fiber.Ctx) error {
	lon, lat, err := coordsParam(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	fc, err := h.lookupUC.Hydrolocation(c.Context(), lon, lat)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, fc, h.pretty)
}

func coordsParam(c *fiber.Ctx) (float64, float64, error) {
	coords := c.Query("coords")
	if coords == "" {
		return 0, 0, errors.ErrInvalidInput.WithMessage("required parameter coords is not present")
	}
	return utils.ParsePointWKT(coords)
}

func queryInt(c *fiber.Ctx, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.ErrInvalidInput.WithMessage("parameter %s must be an integer", name)
	}
	return v, nil
}

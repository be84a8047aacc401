package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/nldi-service/internal/pkg/errors"
	"github.com/nldi-service/internal/pkg/utils"
	"github.com/nldi-service/internal/usecase"
	"github.com/nldi-service/internal/usecase/dto"
)

// flowlinesDataSource is the reserved dataSource selecting the flowline
// projection instead of a crawler source.
const flowlinesDataSource = "flowlines"

// NavigationHandler serves the navigation endpoints.
type NavigationHandler struct {
	navUC  *usecase.NavigationUsecase
	pretty bool
	logger *zap.Logger
}

func NewNavigationHandler(navUC *usecase.NavigationUsecase, pretty bool, logger *zap.Logger) *NavigationHandler {
	return &NavigationHandler{
		navUC:  navUC,
		pretty: pretty,
		logger: logger,
	}
}

// GetIndex lists the navigation modes available from a feature.
// @Summary Navigation mode index
// @Tags navigation
// @Produce json
// @Param source path string true "Source suffix"
// @Param featureId path string true "Feature identifier"
// @Success 200 {object} dto.NavigationIndex
// @Failure 404 {object} errors.AppError
// @Router /linked-data/{source}/{featureId}/navigation [get]
func (h *NavigationHandler) GetIndex(c *fiber.Ctx) error {
	index, err := h.navUC.Index(c.Params("source"), c.Params("featureId"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, index, h.pretty)
}

// GetDataSources lists what can be collected along one navigation mode.
// @Summary Navigation data-source index
// @Tags navigation
// @Produce json
// @Param source path string true "Source suffix"
// @Param featureId path string true "Feature identifier"
// @Param mode path string true "Navigation mode" Enums(UM, UT, DM, DD, PP)
// @Success 200 {array} dto.DataSourceLink
// @Failure 400 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /linked-data/{source}/{featureId}/navigation/{mode} [get]
func (h *NavigationHandler) GetDataSources(c *fiber.Ctx) error {
	sources, err := h.navUC.DataSources(c.Params("source"), c.Params("featureId"), c.Params("mode"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, sources, h.pretty)
}

// Navigate runs the primary navigation call. dataSource selects either the
// flowlines projection or the features of one crawler source.
// @Summary Navigate from a feature
// @Description Traverses the flowline network from the anchor and projects the result
// @Tags navigation
// @Produce json
// @Param source path string true "Source suffix"
// @Param featureId path string true "Feature identifier"
// @Param mode path string true "Navigation mode" Enums(UM, UT, DM, DD, PP)
// @Param dataSource path string true "flowlines or a crawler source suffix"
// @Param distance query number false "Distance budget in km, exclusive (0, 10000)"
// @Param stopComid query integer false "Stop COMID, DM and PP only"
// @Param trimStart query boolean false "Clip the first flowline at the anchor measure"
// @Param trimTolerance query number false "Trim skip tolerance in measure percent"
// @Param excludeGeometry query boolean false "Omit flowline geometry"
// @Success 200 {object} dto.FeatureCollection
// @Failure 400 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /linked-data/{source}/{featureId}/navigation/{mode}/{dataSource} [get]
func (h *NavigationHandler) Navigate(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	dataSource := c.Params("dataSource")

	var fc dto.FeatureCollection
	if strings.EqualFold(dataSource, flowlinesDataSource) {
		fc, err = h.navUC.Flowlines(c.Context(), req)
	} else {
		fc, err = h.navUC.Features(c.Context(), req, dataSource)
	}
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, fc, h.pretty)
}

func (h *NavigationHandler) parseRequest(c *fiber.Ctx) (dto.NavigationRequest, error) {
	req := dto.NavigationRequest{
		Source:    c.Params("source"),
		FeatureID: c.Params("featureId"),
		Mode:      c.Params("mode"),
	}

	if raw := c.Query("distance"); raw != "" {
		d, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, errors.ErrInvalidInput.WithMessage("parameter distance must be a number")
		}
		req.DistanceKm = d
		req.HasDistance = true
	}

	if raw := c.Query("stopComid"); raw != "" {
		stop, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return req, errors.ErrInvalidInput.WithMessage("parameter stopComid must be an integer")
		}
		req.StopComid = &stop
	}

	var err error
	if req.TrimStart, err = queryBool(c, "trimStart"); err != nil {
		return req, err
	}
	if req.ExcludeGeometry, err = queryBool(c, "excludeGeometry"); err != nil {
		return req, err
	}
	if req.Legacy, err = queryBool(c, "legacy"); err != nil {
		return req, err
	}

	if raw := c.Query("trimTolerance"); raw != "" {
		tol, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, errors.ErrInvalidInput.WithMessage("parameter trimTolerance must be a number")
		}
		req.TrimTolerance = tol
	}

	return req, nil
}

func queryBool(c *fiber.Ctx, name string) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return false, nil
	}
	switch strings.ToLower(raw) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, errors.ErrInvalidInput.WithMessage("parameter %s must be a boolean", name)
}

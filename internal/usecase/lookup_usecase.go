package usecase

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/nldi-service/internal/domain"
	"github.com/nldi-service/internal/domain/repository"
	"github.com/nldi-service/internal/pkg/errors"
	"github.com/nldi-service/internal/pkg/validator"
	"github.com/nldi-service/internal/usecase/dto"
)

// LookupUsecase resolves linked-data identifiers: features by source and id,
// flowlines by COMID, and points by coordinate. Every navigation starts by
// going through ResolveAnchor here.
type LookupUsecase struct {
	registry   *SourceRegistry
	features   repository.FeatureRepository
	flowlines  repository.FlowlineRepository
	catchments repository.CatchmentRepository
	mainstems  repository.MainstemRepository
	pygeoapi   repository.PyGeoAPIRepository
	links      dto.LinkBuilder
	logger     *zap.Logger
}

func NewLookupUsecase(
	registry *SourceRegistry,
	features repository.FeatureRepository,
	flowlines repository.FlowlineRepository,
	catchments repository.CatchmentRepository,
	mainstems repository.MainstemRepository,
	pygeoapi repository.PyGeoAPIRepository,
	links dto.LinkBuilder,
	logger *zap.Logger,
) *LookupUsecase {
	return &LookupUsecase{
		registry:   registry,
		features:   features,
		flowlines:  flowlines,
		catchments: catchments,
		mainstems:  mainstems,
		pygeoapi:   pygeoapi,
		links:      links,
		logger:     logger,
	}
}

// ListSources returns every registered source, the synthetic comid source
// included.
func (u *LookupUsecase) ListSources() []domain.CrawlerSource {
	return u.registry.List()
}

// GetFeature returns the single feature identified by source suffix and
// provider-scoped identifier, wrapped in a one-element collection. The
// synthetic comid source resolves against the flowline table instead.
func (u *LookupUsecase) GetFeature(ctx context.Context, sourceSuffix, featureID string) (dto.FeatureCollection, error) {
	src, err := u.registry.Get(sourceSuffix)
	if err != nil {
		return dto.FeatureCollection{}, err
	}

	if src.IsComid() {
		comid, err := parseComid(featureID)
		if err != nil {
			return dto.FeatureCollection{}, err
		}
		return u.getFlowlineFeature(ctx, comid)
	}

	f, err := u.features.GetByID(ctx, src.ID, featureID)
	if err != nil {
		return dto.FeatureCollection{}, err
	}

	return dto.NewFeatureCollection([]dto.Feature{
		dto.FromSourceFeature(*f, src, u.links),
	}), nil
}

// getFlowlineFeature loads one flowline and annotates it with the canonical
// mainstem URI when one exists. A mainstem miss is a null annotation, not an
// error.
func (u *LookupUsecase) getFlowlineFeature(ctx context.Context, comid int64) (dto.FeatureCollection, error) {
	fl, err := u.flowlines.GetByComid(ctx, comid)
	if err != nil {
		return dto.FeatureCollection{}, err
	}

	if ms, err := u.mainstems.GetByComid(ctx, comid); err == nil {
		fl.Mainstem = &ms.URI
	} else if !errors.Is(err, errors.ErrNotFound) {
		return dto.FeatureCollection{}, err
	}

	return dto.NewFeatureCollection([]dto.Feature{
		dto.FromFlowline(*fl, u.links),
	}), nil
}

// ListFeatures pages through one source's features. The comid source is not
// enumerable.
func (u *LookupUsecase) ListFeatures(ctx context.Context, req dto.ListFeaturesRequest) (dto.FeatureCollection, error) {
	if req.Limit == 0 {
		req.Limit = dto.DefaultLimit
	}
	if req.Limit > dto.MaxLimit {
		return dto.FeatureCollection{}, errors.ErrInvalidInput.WithMessage(
			"limit must not exceed %d", dto.MaxLimit)
	}
	if err := validator.Validate(req); err != nil {
		return dto.FeatureCollection{}, errors.ErrInvalidInput.WithMessage(
			"invalid paging parameters: %v", err)
	}

	src, err := u.registry.Get(req.Source)
	if err != nil {
		return dto.FeatureCollection{}, err
	}
	if src.IsComid() {
		return dto.FeatureCollection{}, errors.ErrInvalidInput.WithMessage(
			"the comid source cannot be listed; look up flowlines by COMID")
	}

	rows, err := u.features.ListBySource(ctx, src.ID, req.Limit, req.Offset)
	if err != nil {
		return dto.FeatureCollection{}, err
	}

	features := make([]dto.Feature, 0, len(rows))
	for _, f := range rows {
		features = append(features, dto.FromSourceFeature(f, src, u.links))
	}
	return dto.NewFeatureCollection(features), nil
}

// GetCatchmentByPoint returns the catchment polygon containing a point.
func (u *LookupUsecase) GetCatchmentByPoint(ctx context.Context, lon, lat float64) (dto.FeatureCollection, error) {
	c, err := u.catchments.GetByPoint(ctx, lon, lat)
	if err != nil {
		return dto.FeatureCollection{}, err
	}
	return dto.NewFeatureCollection([]dto.Feature{
		dto.FromCatchment(*c, u.links),
	}), nil
}

// Hydrolocation snaps an arbitrary point onto the flowline network via the
// remote flowtrace process and reports both the snapped and the provided
// point, the snapped one carrying COMID, reach code and measure.
func (u *LookupUsecase) Hydrolocation(ctx context.Context, lon, lat float64) (dto.FeatureCollection, error) {
	snapLon, snapLat, err := u.pygeoapi.FlowtracePoint(ctx, lon, lat)
	if err != nil {
		return dto.FeatureCollection{}, err
	}

	c, err := u.catchments.GetByPoint(ctx, snapLon, snapLat)
	if err != nil {
		return dto.FeatureCollection{}, err
	}

	measure, reachcode, err := u.flowlines.MeasureAtPoint(ctx, c.FeatureID, snapLon, snapLat)
	if err != nil {
		return dto.FeatureCollection{}, err
	}

	u.logger.Debug("Hydrolocation resolved",
		zap.Float64("lon", lon),
		zap.Float64("lat", lat),
		zap.Int64("comid", c.FeatureID),
		zap.Float64("measure", measure),
	)

	return dto.NewFeatureCollection(dto.HydrolocationFeatures(
		snapLon, snapLat, c.FeatureID, measure, reachcode, lon, lat, u.links,
	)), nil
}

// ResolveAnchor turns a (source, featureId) pair into the navigation anchor.
// For the comid source the identifier is the COMID itself and its existence
// is verified; for crawler sources the indexed COMID and measure come from
// the feature row.
func (u *LookupUsecase) ResolveAnchor(ctx context.Context, sourceSuffix, featureID string) (domain.Anchor, error) {
	src, err := u.registry.Get(sourceSuffix)
	if err != nil {
		return domain.Anchor{}, err
	}

	if src.IsComid() {
		comid, err := parseComid(featureID)
		if err != nil {
			return domain.Anchor{}, err
		}
		if _, err := u.flowlines.GetByComid(ctx, comid); err != nil {
			return domain.Anchor{}, err
		}
		return domain.Anchor{Comid: comid, Origin: domain.AnchorFromComid}, nil
	}

	f, err := u.features.GetByID(ctx, src.ID, featureID)
	if err != nil {
		return domain.Anchor{}, err
	}
	if f.Comid == 0 {
		return domain.Anchor{}, errors.ErrNotFound.WithMessage(
			"feature %s/%s is not indexed to the network", sourceSuffix, featureID)
	}

	return domain.Anchor{
		Comid:   f.Comid,
		Measure: f.Measure,
		Origin:  domain.AnchorFromFeature,
	}, nil
}

func parseComid(s string) (int64, error) {
	comid, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.ErrInvalidInput.WithMessage("invalid comid: %q", s)
	}
	return comid, nil
}

package usecase

import (
	"context"
	"encoding/json"
	"sort"

	"go.uber.org/zap"

	"github.com/nldi-service/internal/domain"
	"github.com/nldi-service/internal/domain/repository"
	"github.com/nldi-service/internal/pkg/errors"
	"github.com/nldi-service/internal/usecase/dto"
)

// splitCatchmentThresholdM is the maximum distance in meters between a
// feature and its indexed flowline for the closest-point shortcut; farther
// features are snapped via the remote flowtrace process.
const splitCatchmentThresholdM = 200

// NavigationUsecase runs graph traversals from resolved anchors and shapes
// the three projections of a navigation result: flowlines, features of a
// data source, and the aggregated basin.
type NavigationUsecase struct {
	registry  *SourceRegistry
	lookup    *LookupUsecase
	nav       repository.NavigationRepository
	flowlines repository.FlowlineRepository
	features  repository.FeatureRepository
	basins    repository.BasinRepository
	pygeoapi  repository.PyGeoAPIRepository
	links     dto.LinkBuilder
	logger    *zap.Logger
}

func NewNavigationUsecase(
	registry *SourceRegistry,
	lookup *LookupUsecase,
	nav repository.NavigationRepository,
	flowlines repository.FlowlineRepository,
	features repository.FeatureRepository,
	basins repository.BasinRepository,
	pygeoapi repository.PyGeoAPIRepository,
	links dto.LinkBuilder,
	logger *zap.Logger,
) *NavigationUsecase {
	return &NavigationUsecase{
		registry:  registry,
		lookup:    lookup,
		nav:       nav,
		flowlines: flowlines,
		features:  features,
		basins:    basins,
		pygeoapi:  pygeoapi,
		links:     links,
		logger:    logger,
	}
}

// Index returns the mode URLs navigable from one feature.
func (u *NavigationUsecase) Index(source, featureID string) (dto.NavigationIndex, error) {
	src, err := u.registry.Get(source)
	if err != nil {
		return dto.NavigationIndex{}, err
	}

	suffix := src.FoldedSuffix()
	return dto.NavigationIndex{
		UpstreamMain:         u.links.NavigationMode(suffix, featureID, string(domain.NavUpstreamMain)),
		UpstreamTributaries:  u.links.NavigationMode(suffix, featureID, string(domain.NavUpstreamTributaries)),
		DownstreamMain:       u.links.NavigationMode(suffix, featureID, string(domain.NavDownstreamMain)),
		DownstreamDiversions: u.links.NavigationMode(suffix, featureID, string(domain.NavDownstreamDiversions)),
	}, nil
}

// DataSources lists what can be collected along one navigation: the
// flowlines themselves first, then every crawler source ordered by suffix.
func (u *NavigationUsecase) DataSources(source, featureID, mode string) ([]dto.DataSourceLink, error) {
	navMode, ok := domain.ParseNavigationMode(mode)
	if !ok {
		return nil, errors.ErrInvalidInput.WithMessage("invalid navigation mode: %q", mode)
	}
	src, err := u.registry.Get(source)
	if err != nil {
		return nil, err
	}
	suffix := src.FoldedSuffix()

	out := []dto.DataSourceLink{{
		Source:     "Flowlines",
		SourceName: "NHDPlus flowlines",
		Features:   u.links.NavigationModeSource(suffix, featureID, string(navMode), "flowlines"),
	}}

	sources := u.registry.List()
	sort.Slice(sources, func(i, j int) bool {
		return sources[i].FoldedSuffix() < sources[j].FoldedSuffix()
	})
	for _, s := range sources {
		if s.IsComid() {
			continue
		}
		out = append(out, dto.DataSourceLink{
			Source:     s.FoldedSuffix(),
			SourceName: s.Name,
			Features:   u.links.NavigationModeSource(suffix, featureID, string(navMode), s.FoldedSuffix()),
		})
	}
	return out, nil
}

// Flowlines navigates from the anchor and returns the traversed flowlines
// in navigation order. An empty traversal is a valid, empty collection.
func (u *NavigationUsecase) Flowlines(ctx context.Context, req dto.NavigationRequest) (dto.FeatureCollection, error) {
	mode, anchor, err := u.prepare(ctx, &req)
	if err != nil {
		return dto.FeatureCollection{}, err
	}

	comids, err := u.navigate(ctx, mode, anchor, req)
	if err != nil {
		return dto.FeatureCollection{}, err
	}

	query := repository.FlowlineQuery{ExcludeGeometry: req.ExcludeGeometry}
	if req.TrimStart && !req.ExcludeGeometry {
		trim, err := u.startTrim(ctx, mode, anchor, req)
		if err != nil {
			return dto.FeatureCollection{}, err
		}
		if trim != nil {
			query.Trims = []repository.FlowlineTrim{*trim}
		}
	}

	rows, err := u.flowlines.ListByNavigation(ctx, comids, query)
	if err != nil {
		return dto.FeatureCollection{}, err
	}

	features := make([]dto.Feature, 0, len(rows))
	for _, fl := range rows {
		features = append(features, dto.FromNavFlowline(fl))
	}
	return dto.NewFeatureCollection(features), nil
}

// Features navigates from the anchor and returns the features of one data
// source indexed to the traversed flowlines.
func (u *NavigationUsecase) Features(ctx context.Context, req dto.NavigationRequest, dataSource string) (dto.FeatureCollection, error) {
	dataSrc, err := u.registry.Get(dataSource)
	if err != nil {
		return dto.FeatureCollection{}, err
	}
	if dataSrc.IsComid() {
		return dto.FeatureCollection{}, errors.ErrNotFound.WithMessage(
			"no such data source: %s; use the flowlines projection", dataSource)
	}

	mode, anchor, err := u.prepare(ctx, &req)
	if err != nil {
		return dto.FeatureCollection{}, err
	}

	comids, err := u.navigate(ctx, mode, anchor, req)
	if err != nil {
		return dto.FeatureCollection{}, err
	}

	rows, err := u.features.ListByNavigation(ctx, dataSrc.ID, comids)
	if err != nil {
		return dto.FeatureCollection{}, err
	}

	features := make([]dto.Feature, 0, len(rows))
	for _, f := range rows {
		features = append(features, dto.FromSourceFeature(f, dataSrc, u.links))
	}
	return dto.NewFeatureCollection(features), nil
}

// Basin returns the upstream drainage area of a feature: by default the
// union of the catchments along an unbounded upstream-with-tributaries
// navigation, or the point-precise split catchment for point features.
func (u *NavigationUsecase) Basin(ctx context.Context, source, featureID string, simplified, splitCatchment bool) (dto.FeatureCollection, error) {
	src, err := u.registry.Get(source)
	if err != nil {
		return dto.FeatureCollection{}, err
	}

	anchor, isPoint, geometry, err := u.basinAnchor(ctx, src, featureID)
	if err != nil {
		return dto.FeatureCollection{}, err
	}

	if splitCatchment && isPoint {
		return u.splitBasin(ctx, src, featureID, geometry)
	}

	comids, err := u.nav.Navigate(ctx, domain.NavUpstreamTributaries, anchor.Comid, 0, nil)
	if err != nil {
		return dto.FeatureCollection{}, err
	}

	basin, err := u.basins.AggregateCatchments(ctx, comids.Dedup(), simplified)
	if err != nil {
		return dto.FeatureCollection{}, err
	}
	return dto.NewFeatureCollection([]dto.Feature{dto.FromBasin(*basin)}), nil
}

// basinAnchor resolves the basin start and reports whether the feature is a
// point, which is what makes catchment splitting meaningful.
func (u *NavigationUsecase) basinAnchor(ctx context.Context, src domain.CrawlerSource, featureID string) (domain.Anchor, bool, json.RawMessage, error) {
	if src.IsComid() {
		anchor, err := u.lookup.ResolveAnchor(ctx, src.FoldedSuffix(), featureID)
		return anchor, false, nil, err
	}

	f, err := u.features.GetByID(ctx, src.ID, featureID)
	if err != nil {
		return domain.Anchor{}, false, nil, err
	}
	if f.Comid == 0 {
		return domain.Anchor{}, false, nil, errors.ErrNotFound.WithMessage(
			"feature %s/%s is not indexed to the network", src.FoldedSuffix(), featureID)
	}

	var geom struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	}
	isPoint := json.Unmarshal(f.Geometry, &geom) == nil && geom.Type == "Point"

	anchor := domain.Anchor{
		Comid:   f.Comid,
		Measure: f.Measure,
		Origin:  domain.AnchorFromFeature,
	}
	return anchor, isPoint, f.Geometry, nil
}

// splitBasin picks the split point on the indexed flowline and delegates the
// polygon to the remote splitcatchment process. The point comes from the
// feature's measure when it has one; otherwise from the closest point on the
// flowline if the feature sits within the snap threshold, or from a remote
// flowtrace beyond it.
func (u *NavigationUsecase) splitBasin(ctx context.Context, src domain.CrawlerSource, featureID string, geometry json.RawMessage) (dto.FeatureCollection, error) {
	lon, lat, err := u.flowlines.PointAtMeasure(ctx, src.ID, featureID)
	if errors.Is(err, errors.ErrNotFound) {
		lon, lat, err = u.splitPointWithoutMeasure(ctx, src, featureID, geometry)
	}
	if err != nil {
		return dto.FeatureCollection{}, err
	}

	raw, err := u.pygeoapi.SplitCatchment(ctx, lon, lat)
	if err != nil {
		return dto.FeatureCollection{}, err
	}

	var feature struct {
		Type       string          `json:"type"`
		Geometry   json.RawMessage `json:"geometry"`
		Properties json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(raw, &feature); err != nil {
		return dto.FeatureCollection{}, errors.ErrRemoteService.WithMessage(
			"malformed splitcatchment feature")
	}

	return dto.NewFeatureCollection([]dto.Feature{{
		Type:       "Feature",
		Geometry:   feature.Geometry,
		Properties: feature.Properties,
	}}), nil
}

func (u *NavigationUsecase) splitPointWithoutMeasure(ctx context.Context, src domain.CrawlerSource, featureID string, geometry json.RawMessage) (float64, float64, error) {
	distance, err := u.flowlines.DistanceFromFlowline(ctx, src.ID, featureID)
	if err != nil {
		return 0, 0, err
	}
	if distance <= splitCatchmentThresholdM {
		return u.flowlines.ClosestPoint(ctx, src.ID, featureID)
	}

	var geom struct {
		Coordinates []float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(geometry, &geom); err != nil || len(geom.Coordinates) < 2 {
		return 0, 0, errors.ErrGeometry.WithMessage(
			"feature %s has no usable location for catchment splitting", featureID)
	}
	return u.pygeoapi.FlowtracePoint(ctx, geom.Coordinates[0], geom.Coordinates[1])
}

// prepare parses the mode, applies the mode-dependent parameter rules and
// resolves the anchor.
func (u *NavigationUsecase) prepare(ctx context.Context, req *dto.NavigationRequest) (domain.NavigationMode, domain.Anchor, error) {
	mode, ok := domain.ParseNavigationMode(req.Mode)
	if !ok {
		return "", domain.Anchor{}, errors.ErrInvalidInput.WithMessage(
			"invalid navigation mode: %q", req.Mode)
	}

	if req.Legacy {
		u.logger.Info("Ignoring deprecated legacy navigation flag",
			zap.String("source", req.Source),
			zap.String("feature_id", req.FeatureID),
		)
	}

	switch {
	case mode == domain.NavPointToPoint:
		if req.StopComid == nil {
			return "", domain.Anchor{}, errors.ErrInvalidInput.WithMessage(
				"stopComid is required for point-to-point navigation")
		}
	case req.StopComid != nil && !mode.AcceptsStopComid():
		return "", domain.Anchor{}, errors.ErrInvalidInput.WithMessage(
			"stopComid is not valid for mode %s", mode)
	default:
		if !req.HasDistance {
			return "", domain.Anchor{}, errors.ErrInvalidInput.WithMessage(
				"required parameter distance is not present")
		}
		if req.DistanceKm <= 0 || req.DistanceKm >= domain.MaxDistanceKm {
			return "", domain.Anchor{}, errors.ErrInvalidInput.WithMessage(
				"distance must be between 0 and %d km exclusive", domain.MaxDistanceKm)
		}
	}

	if req.TrimTolerance < 0 || req.TrimTolerance > 100 {
		return "", domain.Anchor{}, errors.ErrInvalidInput.WithMessage(
			"trimTolerance must be within [0, 100]")
	}

	anchor, err := u.lookup.ResolveAnchor(ctx, req.Source, req.FeatureID)
	if err != nil {
		return "", domain.Anchor{}, err
	}
	return mode, anchor, nil
}

// navigate runs the traversal and de-duplicates while preserving first
// occurrence order.
func (u *NavigationUsecase) navigate(ctx context.Context, mode domain.NavigationMode, anchor domain.Anchor, req dto.NavigationRequest) (domain.NavResult, error) {
	distance := req.DistanceKm
	if mode == domain.NavPointToPoint {
		distance = 0
	}

	comids, err := u.nav.Navigate(ctx, mode, anchor.Comid, distance, req.StopComid)
	if err != nil {
		return nil, err
	}

	u.logger.Debug("Navigation complete",
		zap.String("mode", string(mode)),
		zap.Int64("start_comid", anchor.Comid),
		zap.Int("comids", len(comids)),
	)
	return comids.Dedup(), nil
}

// startTrim resolves the measure clipping the anchor flowline. Only feature
// anchors carry trimmable measures; a comid anchor silently skips the trim.
func (u *NavigationUsecase) startTrim(ctx context.Context, mode domain.NavigationMode, anchor domain.Anchor, req dto.NavigationRequest) (*repository.FlowlineTrim, error) {
	if anchor.Origin != domain.AnchorFromFeature {
		return nil, nil
	}

	var measure float64
	if anchor.HasMeasure() {
		measure = *anchor.Measure
	} else {
		src, err := u.registry.Get(req.Source)
		if err != nil {
			return nil, err
		}
		measure, err = u.flowlines.EstimateMeasure(ctx, src.ID, req.FeatureID)
		if err != nil {
			return nil, err
		}
	}

	return &repository.FlowlineTrim{
		Comid:     anchor.Comid,
		Measure:   measure,
		Upstream:  mode.Upstream(),
		Tolerance: req.TrimTolerance,
	}, nil
}

package repository

import (
	"context"

	"github.com/nldi-service/internal/domain"
)

// FlowlineTrim asks for the geometry of one flowline in the result set to be
// clipped at a measure. Upstream modes keep the upstream part, downstream
// modes the downstream part. The clip is skipped when the remaining fraction
// is below Tolerance percent.
type FlowlineTrim struct {
	Comid     int64
	Measure   float64
	Upstream  bool
	Tolerance float64
}

// FlowlineQuery tunes the navigation projection onto flowline geometry.
type FlowlineQuery struct {
	Trims           []FlowlineTrim
	ExcludeGeometry bool
}

// FlowlineRepository queries the nhdplus flowline table.
type FlowlineRepository interface {
	GetByComid(ctx context.Context, comid int64) (*domain.Flowline, error)

	// ListByNavigation joins an ordered COMID set back onto flowline rows,
	// preserving the navigation order.
	ListByNavigation(ctx context.Context, comids domain.NavResult, q FlowlineQuery) ([]domain.Flowline, error)

	// MeasureAtPoint computes the fractional measure of a point projected
	// onto the reach, plus the reach code.
	MeasureAtPoint(ctx context.Context, comid int64, lon, lat float64) (float64, string, error)

	// EstimateMeasure derives a measure for a feature that was indexed
	// without one by projecting its location onto the indexed flowline.
	EstimateMeasure(ctx context.Context, sourceID int64, identifier string) (float64, error)

	// PointAtMeasure interpolates the point on the indexed flowline at the
	// feature's measure. NotFound when the feature carries no measure.
	PointAtMeasure(ctx context.Context, sourceID int64, identifier string) (lon, lat float64, err error)

	// DistanceFromFlowline is the geodesic distance in meters between a
	// feature's location and its indexed flowline.
	DistanceFromFlowline(ctx context.Context, sourceID int64, identifier string) (float64, error)

	// ClosestPoint projects a feature's location onto its indexed flowline.
	ClosestPoint(ctx context.Context, sourceID int64, identifier string) (lon, lat float64, err error)
}

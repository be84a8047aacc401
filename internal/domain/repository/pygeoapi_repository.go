package repository

import (
	"context"
	"encoding/json"
)

// PyGeoAPIRepository is the typed surface of the external geoprocessing
// service. The implementation is the only place in the service that performs
// outbound HTTP.
type PyGeoAPIRepository interface {
	// FlowtracePoint returns the point where the flow path from (lon, lat)
	// intersects the flowline network.
	FlowtracePoint(ctx context.Context, lon, lat float64) (float64, float64, error)

	// SplitCatchment returns the split-catchment polygon for a point as a
	// raw GeoJSON feature.
	SplitCatchment(ctx context.Context, lon, lat float64) (json.RawMessage, error)
}

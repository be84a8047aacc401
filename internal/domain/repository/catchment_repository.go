package repository

import (
	"context"

	"github.com/nldi-service/internal/domain"
)

// CatchmentRepository queries the nhdplus.catchmentsp polygons.
type CatchmentRepository interface {
	GetByComid(ctx context.Context, comid int64) (*domain.Catchment, error)

	// GetByPoint returns the catchment containing a WGS84 point, or NotFound
	// when the point falls outside every catchment.
	GetByPoint(ctx context.Context, lon, lat float64) (*domain.Catchment, error)
}

// BasinRepository aggregates catchment polygons upstream of an anchor.
type BasinRepository interface {
	// AggregateCatchments unions the catchments whose featureid is in the
	// COMID set into one multipolygon, optionally simplified.
	AggregateCatchments(ctx context.Context, comids domain.NavResult, simplified bool) (*domain.Basin, error)
}

// MainstemRepository resolves COMIDs to canonical mainstem URIs. A miss is
// reported as NotFound but consumers treat it as a null annotation.
type MainstemRepository interface {
	GetByComid(ctx context.Context, comid int64) (*domain.MainstemLookup, error)
}

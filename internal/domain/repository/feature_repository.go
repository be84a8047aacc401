package repository

import (
	"context"

	"github.com/nldi-service/internal/domain"
)

// FeatureRepository queries the shared nldi_data.feature table, always
// scoped to one crawler source.
type FeatureRepository interface {
	// GetByID returns the feature with the given provider-scoped identifier.
	GetByID(ctx context.Context, sourceID int64, identifier string) (*domain.Feature, error)

	// ListBySource pages through a source's features in ascending identifier
	// order for reproducibility.
	ListBySource(ctx context.Context, sourceID int64, limit, offset int) ([]domain.Feature, error)

	// ListByNavigation inner-joins a source's features against an ordered
	// COMID set, preserving navigation order first and identifier order
	// second. Mainstem URIs are annotated from mainstem_lookup.
	ListByNavigation(ctx context.Context, sourceID int64, comids domain.NavResult) ([]domain.Feature, error)
}

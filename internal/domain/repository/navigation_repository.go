package repository

import (
	"context"

	"github.com/nldi-service/internal/domain"
)

// NavigationRepository wraps the nhdplus_navigation.navigate set-returning
// function, the oracle for all graph traversal.
type NavigationRepository interface {
	// Navigate expands an anchor COMID into the ordered COMID set reachable
	// under the mode within distanceKm. stopComid is only meaningful for DM
	// and PP; PP ignores the distance.
	Navigate(ctx context.Context, mode domain.NavigationMode, startComid int64, distanceKm float64, stopComid *int64) (domain.NavResult, error)
}

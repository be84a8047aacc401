package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/nldi-service/internal/domain"
	"github.com/nldi-service/internal/domain/repository"
	"github.com/nldi-service/internal/pkg/errors"
)

type navigationRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewNavigationRepository creates the gateway to the
// nhdplus_navigation.navigate set-returning function, which performs the
// actual graph traversal inside the database.
func NewNavigationRepository(db *DB) repository.NavigationRepository {
	return &navigationRepository{db: db, logger: db.logger}
}

func (r *navigationRepository) Navigate(ctx context.Context, mode domain.NavigationMode, startComid int64, distanceKm float64, stopComid *int64) (domain.NavResult, error) {
	query := `
		SELECT comid
		FROM nhdplus_navigation.navigate($1, $2, $3::numeric, $4)
	`

	stop := sql.NullInt64{}
	if stopComid != nil {
		stop = sql.NullInt64{Int64: *stopComid, Valid: true}
	}

	// A non-positive distance means unbounded; the function treats NULL as
	// no distance limit.
	distance := sql.NullFloat64{Float64: distanceKm, Valid: distanceKm > 0}

	var comids []int64
	err := r.db.WithSession(ctx, func(tx *sqlx.Tx) error {
		return tx.SelectContext(ctx, &comids, query, string(mode), startComid, distance, stop)
	})
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr
		}
		r.logger.Error("Navigation function failed",
			zap.String("mode", string(mode)),
			zap.Int64("start_comid", startComid),
			zap.Float64("distance_km", distanceKm),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseUnavailable
	}

	// An isolated or sink anchor legitimately yields nothing. Empty is a
	// valid result, never an error.
	return domain.NavResult(comids), nil
}

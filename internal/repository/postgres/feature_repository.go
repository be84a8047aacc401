package postgres

import (
	"context"
	"database/sql"
	goerrors "errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/nldi-service/internal/domain"
	"github.com/nldi-service/internal/domain/repository"
	"github.com/nldi-service/internal/pkg/errors"
)

type featureRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewFeatureRepository creates the nldi_data.feature table gateway.
func NewFeatureRepository(db *DB) repository.FeatureRepository {
	return &featureRepository{db: db, logger: db.logger}
}

const featureColumns = `
	f.crawler_source_id,
	f.identifier,
	f.name,
	f.uri,
	f.comid,
	f.reachcode,
	f.measure,
	m.uri AS mainstem,
	ST_AsGeoJSON(f.location, 9, 0) AS geometry`

const featureJoins = `
	FROM nldi_data.feature f
	LEFT JOIN nldi_data.mainstem_lookup m ON m.nhdpv2_comid = f.comid`

func (r *featureRepository) GetByID(ctx context.Context, sourceID int64, identifier string) (*domain.Feature, error) {
	query := `
		SELECT ` + featureColumns + featureJoins + `
		WHERE f.crawler_source_id = $1
		  AND f.identifier = $2
	`

	var feature domain.Feature
	err := r.db.WithSession(ctx, func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &feature, query, sourceID, identifier)
	})
	if goerrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrNotFound.WithMessage(
			"no such feature: %s in source %d", identifier, sourceID)
	}
	if err != nil {
		return nil, r.dbError("Failed to get feature", err,
			zap.Int64("source_id", sourceID),
			zap.String("identifier", identifier),
		)
	}

	return &feature, nil
}

func (r *featureRepository) ListBySource(ctx context.Context, sourceID int64, limit, offset int) ([]domain.Feature, error) {
	query := `
		SELECT ` + featureColumns + featureJoins + `
		WHERE f.crawler_source_id = $1
		ORDER BY f.identifier ASC
		LIMIT $2 OFFSET $3
	`

	var features []domain.Feature
	err := r.db.WithSession(ctx, func(tx *sqlx.Tx) error {
		return tx.SelectContext(ctx, &features, query, sourceID, limit, offset)
	})
	if err != nil {
		return nil, r.dbError("Failed to list features", err, zap.Int64("source_id", sourceID))
	}

	return features, nil
}

// ListByNavigation joins the ordered COMID set onto the feature table. The
// unnest ordinality keeps the navigation order; identifier breaks ties
// within one COMID.
func (r *featureRepository) ListByNavigation(ctx context.Context, sourceID int64, comids domain.NavResult) ([]domain.Feature, error) {
	if len(comids) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + featureColumns + `
		FROM unnest($2::bigint[]) WITH ORDINALITY AS nav(comid, ord)
		JOIN nldi_data.feature f ON f.comid = nav.comid
		LEFT JOIN nldi_data.mainstem_lookup m ON m.nhdpv2_comid = f.comid
		WHERE f.crawler_source_id = $1
		ORDER BY nav.ord ASC, f.identifier ASC
	`

	var features []domain.Feature
	err := r.db.WithSession(ctx, func(tx *sqlx.Tx) error {
		return tx.SelectContext(ctx, &features, query, sourceID, pq.Array([]int64(comids)))
	})
	if err != nil {
		return nil, r.dbError("Failed to list features along navigation", err,
			zap.Int64("source_id", sourceID),
			zap.Int("comids", len(comids)),
		)
	}

	return features, nil
}

func (r *featureRepository) dbError(msg string, err error, fields ...zap.Field) error {
	if appErr, ok := err.(*errors.AppError); ok {
		return appErr
	}
	r.logger.Error(msg, append(fields, zap.Error(err))...)
	return errors.ErrDatabaseUnavailable
}

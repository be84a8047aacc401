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

type catchmentRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewCatchmentRepository creates the nhdplus.catchmentsp table gateway.
func NewCatchmentRepository(db *DB) repository.CatchmentRepository {
	return &catchmentRepository{db: db, logger: db.logger}
}

func (r *catchmentRepository) GetByComid(ctx context.Context, comid int64) (*domain.Catchment, error) {
	query := `
		SELECT
			featureid,
			areasqkm,
			ST_AsGeoJSON(the_geom, 9, 0) AS geometry
		FROM nhdplus.catchmentsp
		WHERE featureid = $1
	`

	var c domain.Catchment
	err := r.db.WithSession(ctx, func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &c, query, comid)
	})
	if goerrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrNotFound.WithMessage("no catchment for comid: %d", comid)
	}
	if err != nil {
		return nil, r.dbError("Failed to get catchment", err, zap.Int64("comid", comid))
	}

	return &c, nil
}

func (r *catchmentRepository) GetByPoint(ctx context.Context, lon, lat float64) (*domain.Catchment, error) {
	query := `
		SELECT
			featureid,
			areasqkm,
			ST_AsGeoJSON(the_geom, 9, 0) AS geometry
		FROM nhdplus.catchmentsp
		WHERE ST_Intersects(the_geom, ST_SetSRID(ST_MakePoint($1, $2), 4269))
		LIMIT 1
	`

	var c domain.Catchment
	err := r.db.WithSession(ctx, func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &c, query, lon, lat)
	})
	if goerrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrNotFound.WithMessage(
			"no catchment intersects POINT(%g %g)", lon, lat)
	}
	if err != nil {
		return nil, r.dbError("Failed to get catchment by point", err,
			zap.Float64("lon", lon), zap.Float64("lat", lat))
	}

	return &c, nil
}

func (r *catchmentRepository) dbError(msg string, err error, fields ...zap.Field) error {
	if appErr, ok := err.(*errors.AppError); ok {
		return appErr
	}
	r.logger.Error(msg, append(fields, zap.Error(err))...)
	return errors.ErrDatabaseUnavailable
}

type basinRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewBasinRepository creates the catchment aggregation gateway.
func NewBasinRepository(db *DB) repository.BasinRepository {
	return &basinRepository{db: db, logger: db.logger}
}

// AggregateCatchments unions the catchments of the navigated COMIDs into a
// single polygon, simplified to 0.001 degrees unless asked for full
// resolution.
func (r *basinRepository) AggregateCatchments(ctx context.Context, comids domain.NavResult, simplified bool) (*domain.Basin, error) {
	if len(comids) == 0 {
		return nil, errors.ErrNotFound.WithMessage("no upstream catchments")
	}

	geomExpr := "ST_AsGeoJSON(ST_Union(the_geom), 9, 0)"
	if simplified {
		geomExpr = "ST_AsGeoJSON(ST_Simplify(ST_Union(the_geom), 0.001), 9, 0)"
	}

	query := `
		SELECT ` + geomExpr + ` AS geometry
		FROM nhdplus.catchmentsp
		WHERE featureid = ANY($1::bigint[])
	`

	var geometry sql.NullString
	err := r.db.WithSession(ctx, func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &geometry, query, pq.Array([]int64(comids)))
	})
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr
		}
		r.logger.Error("Failed to aggregate basin", zap.Int("comids", len(comids)), zap.Error(err))
		return nil, errors.ErrGeometry
	}
	if !geometry.Valid {
		return nil, errors.ErrNotFound.WithMessage("no upstream catchments")
	}

	return &domain.Basin{Geometry: []byte(geometry.String)}, nil
}

type mainstemRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewMainstemRepository creates the nldi_data.mainstem_lookup gateway.
func NewMainstemRepository(db *DB) repository.MainstemRepository {
	return &mainstemRepository{db: db, logger: db.logger}
}

func (r *mainstemRepository) GetByComid(ctx context.Context, comid int64) (*domain.MainstemLookup, error) {
	query := `
		SELECT nhdpv2_comid, mainstem_id, uri
		FROM nldi_data.mainstem_lookup
		WHERE nhdpv2_comid = $1
	`

	var m domain.MainstemLookup
	err := r.db.WithSession(ctx, func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &m, query, comid)
	})
	if goerrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrNotFound.WithMessage("no mainstem for comid: %d", comid)
	}
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr
		}
		r.logger.Error("Failed to get mainstem", zap.Int64("comid", comid), zap.Error(err))
		return nil, errors.ErrDatabaseUnavailable
	}

	return &m, nil
}

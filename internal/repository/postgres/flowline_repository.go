package postgres

import (
	"context"
	"database/sql"
	goerrors "errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/nldi-service/internal/domain"
	"github.com/nldi-service/internal/domain/repository"
	"github.com/nldi-service/internal/pkg/errors"
)

type flowlineRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewFlowlineRepository creates the nhdplus flowline table gateway.
func NewFlowlineRepository(db *DB) repository.FlowlineRepository {
	return &flowlineRepository{db: db, logger: db.logger}
}

func (r *flowlineRepository) GetByComid(ctx context.Context, comid int64) (*domain.Flowline, error) {
	query := `
		SELECT
			nhdplus_comid,
			permanent_identifier,
			reachcode,
			fmeasure,
			tmeasure,
			lengthkm,
			NULL AS mainstem,
			ST_AsGeoJSON(shape, 9, 0) AS geometry
		FROM nhdplus.nhdflowline_np21
		WHERE nhdplus_comid = $1
	`

	var fl domain.Flowline
	err := r.db.WithSession(ctx, func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &fl, query, comid)
	})
	if goerrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrNotFound.WithMessage("no such comid: %d", comid)
	}
	if err != nil {
		return nil, r.dbError("Failed to get flowline", err, zap.Int64("comid", comid))
	}

	return &fl, nil
}

// ListByNavigation joins the ordered COMID set onto flowline rows. Trims are
// expressed as CASE branches over ST_LineSubstring with the measure scaled
// into the [0,1] range of the reach.
func (r *flowlineRepository) ListByNavigation(ctx context.Context, comids domain.NavResult, q repository.FlowlineQuery) ([]domain.Flowline, error) {
	if len(comids) == 0 {
		return nil, nil
	}

	args := []interface{}{pq.Array([]int64(comids))}
	geomExpr := "ST_AsGeoJSON(fl.shape, 9, 0)"

	if q.ExcludeGeometry {
		geomExpr = "NULL"
	} else if trims := applicableTrims(q.Trims); len(trims) > 0 {
		var b strings.Builder
		b.WriteString("CASE\n")
		for _, t := range trims {
			comidIdx := len(args) + 1
			measureIdx := len(args) + 2
			args = append(args, t.Comid, t.Measure)

			// scaled = 1 - ((m - fmeasure) / (tmeasure - fmeasure)), clamped.
			scaled := fmt.Sprintf(
				"LEAST(1, GREATEST(0, 1 - (($%d - fl.fmeasure) / NULLIF(fl.tmeasure - fl.fmeasure, 0))))",
				measureIdx)

			var sub string
			if t.Upstream {
				sub = fmt.Sprintf("ST_LineSubstring(fl.shape, 0, %s)", scaled)
			} else {
				sub = fmt.Sprintf("ST_LineSubstring(fl.shape, %s, 1)", scaled)
			}
			fmt.Fprintf(&b, "WHEN fl.nhdplus_comid = $%d THEN ST_AsGeoJSON(%s, 9, 0)\n", comidIdx, sub)
		}
		b.WriteString("ELSE ST_AsGeoJSON(fl.shape, 9, 0)\nEND")
		geomExpr = b.String()
	}

	query := fmt.Sprintf(`
		SELECT
			fl.nhdplus_comid,
			fl.permanent_identifier,
			fl.reachcode,
			fl.fmeasure,
			fl.tmeasure,
			fl.lengthkm,
			NULL AS mainstem,
			%s AS geometry
		FROM unnest($1::bigint[]) WITH ORDINALITY AS nav(comid, ord)
		JOIN nhdplus.nhdflowline_np21 fl ON fl.nhdplus_comid = nav.comid
		ORDER BY nav.ord ASC
	`, geomExpr)

	var flowlines []domain.Flowline
	err := r.db.WithSession(ctx, func(tx *sqlx.Tx) error {
		return tx.SelectContext(ctx, &flowlines, query, args...)
	})
	if err != nil {
		return nil, r.dbError("Failed to list flowlines along navigation", err,
			zap.Int("comids", len(comids)))
	}

	return flowlines, nil
}

// applicableTrims drops clips whose remaining fraction falls below the
// tolerance, matching the upstream behavior of skipping near-endpoint trims.
func applicableTrims(trims []repository.FlowlineTrim) []repository.FlowlineTrim {
	out := make([]repository.FlowlineTrim, 0, len(trims))
	for _, t := range trims {
		if 100-t.Measure < t.Tolerance {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (r *flowlineRepository) MeasureAtPoint(ctx context.Context, comid int64, lon, lat float64) (float64, string, error) {
	query := `
		SELECT
			fmeasure + (1 - ST_LineLocatePoint(shape, ST_SetSRID(ST_MakePoint($2, $3), 4269)))
				* (tmeasure - fmeasure) AS measure,
			reachcode
		FROM nhdplus.nhdflowline_np21
		WHERE nhdplus_comid = $1
	`

	var row struct {
		Measure   float64 `db:"measure"`
		Reachcode string  `db:"reachcode"`
	}
	err := r.db.WithSession(ctx, func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &row, query, comid, lon, lat)
	})
	if goerrors.Is(err, sql.ErrNoRows) {
		return 0, "", errors.ErrNotFound.WithMessage("no such comid: %d", comid)
	}
	if err != nil {
		return 0, "", r.dbError("Failed to compute measure", err, zap.Int64("comid", comid))
	}

	return row.Measure, row.Reachcode, nil
}

// EstimateMeasure projects the feature location onto its flowline and
// rescales the fractional position into the reach measure range.
func (r *flowlineRepository) EstimateMeasure(ctx context.Context, sourceID int64, identifier string) (float64, error) {
	query := `
		SELECT fl.fmeasure
			+ (1 - ST_LineLocatePoint(fl.shape, f.location)) * (fl.tmeasure - fl.fmeasure)
			AS measure
		FROM nldi_data.feature f
		JOIN nhdplus.nhdflowline_np21 fl ON fl.nhdplus_comid = f.comid
		WHERE f.crawler_source_id = $1
		  AND f.identifier = $2
	`

	var measure sql.NullFloat64
	err := r.db.WithSession(ctx, func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &measure, query, sourceID, identifier)
	})
	if goerrors.Is(err, sql.ErrNoRows) {
		return 0, errors.ErrNotFound.WithMessage("no indexed flowline for feature: %s", identifier)
	}
	if err != nil {
		return 0, r.dbError("Failed to estimate measure", err,
			zap.Int64("source_id", sourceID), zap.String("identifier", identifier))
	}
	if !measure.Valid {
		return 0, errors.ErrNotFound.WithMessage("feature %s has no estimable measure", identifier)
	}
	return measure.Float64, nil
}

// PointAtMeasure interpolates the feature's measure back onto the flowline.
// The measure scales the same way trims do, downstream-up.
func (r *flowlineRepository) PointAtMeasure(ctx context.Context, sourceID int64, identifier string) (float64, float64, error) {
	query := `
		SELECT
			ST_X(pt.point) AS lon,
			ST_Y(pt.point) AS lat
		FROM (
			SELECT ST_LineInterpolatePoint(
				fl.shape,
				LEAST(1, GREATEST(0,
					1 - ((f.measure - fl.fmeasure) / NULLIF(fl.tmeasure - fl.fmeasure, 0))))
			) AS point
			FROM nldi_data.feature f
			JOIN nhdplus.nhdflowline_np21 fl ON fl.nhdplus_comid = f.comid
			WHERE f.crawler_source_id = $1
			  AND f.identifier = $2
			  AND f.measure IS NOT NULL
		) pt
	`
	return r.pointQuery(ctx, query, "Failed to interpolate point at measure", sourceID, identifier)
}

func (r *flowlineRepository) DistanceFromFlowline(ctx context.Context, sourceID int64, identifier string) (float64, error) {
	query := `
		SELECT ST_Distance(f.location::geography, fl.shape::geography, false) AS distance
		FROM nldi_data.feature f
		JOIN nhdplus.nhdflowline_np21 fl ON fl.nhdplus_comid = f.comid
		WHERE f.crawler_source_id = $1
		  AND f.identifier = $2
	`

	var distance float64
	err := r.db.WithSession(ctx, func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &distance, query, sourceID, identifier)
	})
	if goerrors.Is(err, sql.ErrNoRows) {
		return 0, errors.ErrNotFound.WithMessage("no indexed flowline for feature: %s", identifier)
	}
	if err != nil {
		return 0, r.dbError("Failed to compute distance from flowline", err,
			zap.Int64("source_id", sourceID), zap.String("identifier", identifier))
	}
	return distance, nil
}

func (r *flowlineRepository) ClosestPoint(ctx context.Context, sourceID int64, identifier string) (float64, float64, error) {
	query := `
		SELECT
			ST_X(pt.point) AS lon,
			ST_Y(pt.point) AS lat
		FROM (
			SELECT ST_ClosestPoint(fl.shape, f.location) AS point
			FROM nldi_data.feature f
			JOIN nhdplus.nhdflowline_np21 fl ON fl.nhdplus_comid = f.comid
			WHERE f.crawler_source_id = $1
			  AND f.identifier = $2
		) pt
	`
	return r.pointQuery(ctx, query, "Failed to project point onto flowline", sourceID, identifier)
}

func (r *flowlineRepository) pointQuery(ctx context.Context, query, errMsg string, sourceID int64, identifier string) (float64, float64, error) {
	var row struct {
		Lon sql.NullFloat64 `db:"lon"`
		Lat sql.NullFloat64 `db:"lat"`
	}
	err := r.db.WithSession(ctx, func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &row, query, sourceID, identifier)
	})
	if goerrors.Is(err, sql.ErrNoRows) {
		return 0, 0, errors.ErrNotFound.WithMessage("no indexed flowline for feature: %s", identifier)
	}
	if err != nil {
		return 0, 0, r.dbError(errMsg, err,
			zap.Int64("source_id", sourceID), zap.String("identifier", identifier))
	}
	if !row.Lon.Valid || !row.Lat.Valid {
		return 0, 0, errors.ErrNotFound.WithMessage("no point on flowline for feature: %s", identifier)
	}
	return row.Lon.Float64, row.Lat.Float64, nil
}

func (r *flowlineRepository) dbError(msg string, err error, fields ...zap.Field) error {
	if appErr, ok := err.(*errors.AppError); ok {
		return appErr
	}
	r.logger.Error(msg, append(fields, zap.Error(err))...)
	return errors.ErrDatabaseUnavailable
}

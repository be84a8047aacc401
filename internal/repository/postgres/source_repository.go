package postgres

import (
	"context"
	"database/sql"
	goerrors "errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/nldi-service/internal/domain"
	"github.com/nldi-service/internal/domain/repository"
	"github.com/nldi-service/internal/pkg/errors"
)

type sourceRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewCrawlerSourceRepository creates the crawler_source table gateway.
func NewCrawlerSourceRepository(db *DB) repository.CrawlerSourceRepository {
	return &sourceRepository{db: db, logger: db.logger}
}

const sourceColumns = `
	crawler_source_id,
	source_name,
	lower(source_suffix) AS source_suffix,
	source_uri,
	feature_id,
	feature_name,
	feature_uri,
	feature_reach,
	feature_measure,
	COALESCE(ingest_type, '') AS ingest_type,
	COALESCE(feature_type, '') AS feature_type`

func (r *sourceRepository) GetBySuffix(ctx context.Context, suffix string) (*domain.CrawlerSource, error) {
	query := `
		SELECT ` + sourceColumns + `
		FROM nldi_data.crawler_source
		WHERE lower(source_suffix) = lower($1)
	`

	var src domain.CrawlerSource
	err := r.db.WithSession(ctx, func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &src, query, suffix)
	})
	if goerrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrNotFound.WithMessage("no such source: %s", suffix)
	}
	if err != nil {
		return nil, r.dbError("Failed to get source by suffix", err, zap.String("suffix", suffix))
	}

	return &src, nil
}

func (r *sourceRepository) GetByID(ctx context.Context, id int64) (*domain.CrawlerSource, error) {
	query := `
		SELECT ` + sourceColumns + `
		FROM nldi_data.crawler_source
		WHERE crawler_source_id = $1
	`

	var src domain.CrawlerSource
	err := r.db.WithSession(ctx, func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &src, query, id)
	})
	if goerrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrNotFound.WithMessage("no such source: id=%d", id)
	}
	if err != nil {
		return nil, r.dbError("Failed to get source by id", err, zap.Int64("id", id))
	}

	return &src, nil
}

func (r *sourceRepository) List(ctx context.Context) ([]domain.CrawlerSource, error) {
	query := `
		SELECT ` + sourceColumns + `
		FROM nldi_data.crawler_source
		ORDER BY crawler_source_id ASC
	`

	var sources []domain.CrawlerSource
	err := r.db.WithSession(ctx, func(tx *sqlx.Tx) error {
		return tx.SelectContext(ctx, &sources, query)
	})
	if err != nil {
		return nil, r.dbError("Failed to list sources", err)
	}

	return sources, nil
}

// Upsert inserts a source or updates it in place on crawler_source_id
// conflict. The suffix is case-folded on the way in; rows are never deleted.
func (r *sourceRepository) Upsert(ctx context.Context, src domain.CrawlerSource) error {
	query := `
		INSERT INTO nldi_data.crawler_source (
			crawler_source_id, source_name, source_suffix, source_uri,
			feature_id, feature_name, feature_uri, feature_reach,
			feature_measure, ingest_type, feature_type
		) VALUES ($1, $2, lower($3), $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (crawler_source_id) DO UPDATE SET
			source_name     = EXCLUDED.source_name,
			source_suffix   = EXCLUDED.source_suffix,
			source_uri      = EXCLUDED.source_uri,
			feature_id      = EXCLUDED.feature_id,
			feature_name    = EXCLUDED.feature_name,
			feature_uri     = EXCLUDED.feature_uri,
			feature_reach   = EXCLUDED.feature_reach,
			feature_measure = EXCLUDED.feature_measure,
			ingest_type     = EXCLUDED.ingest_type,
			feature_type    = EXCLUDED.feature_type
	`

	_, err := r.db.ExecContext(ctx, query,
		src.ID, src.Name, src.Suffix, src.URI,
		src.FeatureID, src.FeatureName, src.FeatureURI, src.FeatureReach,
		src.FeatureMeasure, src.IngestType, src.FeatureType,
	)
	if err != nil {
		return r.dbError("Failed to upsert source", err, zap.Int64("id", src.ID))
	}
	return nil
}

func (r *sourceRepository) dbError(msg string, err error, fields ...zap.Field) error {
	if appErr, ok := err.(*errors.AppError); ok {
		return appErr
	}
	r.logger.Error(msg, append(fields, zap.Error(err))...)
	return errors.ErrDatabaseUnavailable
}

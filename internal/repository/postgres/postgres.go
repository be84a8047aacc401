package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/nldi-service/internal/config"
	"github.com/nldi-service/internal/pkg/errors"
)

// DB wraps the shared connection pool. The DSN pins
// search_path=nldi_data,nhdplus,public so every session sees the crawler
// tables and the reference hydrography without qualification; queries still
// qualify schemas explicitly for clarity.
type DB struct {
	*sqlx.DB
	logger         *zap.Logger
	acquireTimeout time.Duration
}

func New(cfg *config.Config, logger *zap.Logger) (*DB, error) {
	db, err := sqlx.Connect("pgx", cfg.GetDatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxConns)
	db.SetMaxIdleConns(cfg.Database.MaxConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("PostgreSQL connected",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.DBName),
		zap.Int("max_conns", cfg.Database.MaxConns),
	)

	return &DB{
		DB:             db,
		logger:         logger,
		acquireTimeout: cfg.Database.AcquireTimeout,
	}, nil
}

func (db *DB) Close() error {
	db.logger.Info("Closing PostgreSQL connection")
	return db.DB.Close()
}

func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

// WithSession runs fn inside a short-lived read-only transaction. The
// session is released on every exit path, including panics inside fn.
// Acquisition failures within the configured timeout surface as
// DatabaseUnavailable.
func (db *DB) WithSession(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	acquireCtx := ctx
	if db.acquireTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, db.acquireTimeout)
		defer cancel()
	}

	tx, err := db.BeginTxx(acquireCtx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		db.logger.Error("Failed to acquire database session", zap.Error(err))
		return errors.ErrDatabaseUnavailable
	}
	defer tx.Rollback() //nolint:errcheck // read-only tx, rollback is release

	return fn(tx)
}

// NewDBForTest builds a DB around an externally managed sqlx handle.
func NewDBForTest(sqlxDB *sqlx.DB, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{
		DB:             sqlxDB,
		logger:         logger,
		acquireTimeout: 5 * time.Second,
	}
}

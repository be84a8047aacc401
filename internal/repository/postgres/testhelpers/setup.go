// Package testhelpers wires throwaway database handles and fixture data for
// the postgres repository tests. The tests need a real PostGIS instance; they
// skip themselves when NLDI_TEST_DATABASE_URL is not set.
package testhelpers

import (
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// TestDB bundles a live database connection with a test logger.
type TestDB struct {
	DB     *sqlx.DB
	Logger *zap.Logger
}

// SetupTestDB connects to the database named by NLDI_TEST_DATABASE_URL and
// verifies PostGIS is installed. Tests are skipped when the variable is
// unset, so the suite is a no-op on machines without a test database.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	url := os.Getenv("NLDI_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("NLDI_TEST_DATABASE_URL not set; skipping database tests")
	}

	var db *sqlx.DB
	var err error
	retryDelay := 500 * time.Millisecond
	const maxRetries = 5

	for i := 0; i < maxRetries; i++ {
		db, err = sqlx.Connect("postgres", url)
		if err == nil {
			break
		}
		if i < maxRetries-1 {
			t.Logf("Database not ready (attempt %d/%d), waiting %v...", i+1, maxRetries, retryDelay)
			time.Sleep(retryDelay)
			retryDelay *= 2
		}
	}
	if err != nil {
		t.Fatalf("Failed to connect to test database after %d attempts: %v", maxRetries, err)
	}

	var version string
	if err := db.Get(&version, "SELECT PostGIS_Version()"); err != nil {
		t.Fatalf("PostGIS not available: %v", err)
	}
	t.Logf("PostGIS version: %s", version)

	logger, _ := zap.NewDevelopment()

	t.Cleanup(func() {
		db.Close()
		logger.Sync() //nolint:errcheck
	})

	return &TestDB{DB: db, Logger: logger}
}

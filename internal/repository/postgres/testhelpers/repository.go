package testhelpers

import (
	"testing"

	"github.com/nldi-service/internal/repository/postgres"
)

// NewDB wraps the test connection in the session-managed handle the
// repositories expect.
func NewDB(t *testing.T, tdb *TestDB) *postgres.DB {
	t.Helper()
	return postgres.NewDBForTest(tdb.DB, tdb.Logger)
}

package testhelpers

import "testing"

// The test schema mirrors the slice of the NHDPlus and NLDI tables the
// repositories actually touch. Only the navigate function is left out; the
// tests that need it stub the traversal at the usecase layer instead.
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS postgis`,
	`CREATE SCHEMA IF NOT EXISTS nldi_data`,
	`CREATE SCHEMA IF NOT EXISTS nhdplus`,
	`CREATE TABLE IF NOT EXISTS nldi_data.crawler_source (
		crawler_source_id integer PRIMARY KEY,
		source_name       text NOT NULL,
		source_suffix     text NOT NULL,
		source_uri        text NOT NULL DEFAULT '',
		feature_id        text NOT NULL DEFAULT '',
		feature_name      text NOT NULL DEFAULT '',
		feature_uri       text NOT NULL DEFAULT '',
		feature_reach     text,
		feature_measure   text,
		ingest_type       text,
		feature_type      text
	)`,
	`CREATE TABLE IF NOT EXISTS nldi_data.feature (
		crawler_source_id integer NOT NULL,
		identifier        text NOT NULL,
		name              text,
		uri               text,
		comid             bigint,
		reachcode         text,
		measure           double precision,
		location          geometry(Point, 4269),
		PRIMARY KEY (crawler_source_id, identifier)
	)`,
	`CREATE TABLE IF NOT EXISTS nldi_data.mainstem_lookup (
		nhdpv2_comid bigint PRIMARY KEY,
		mainstem_id  bigint,
		uri          text NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS nhdplus.nhdflowline_np21 (
		nhdplus_comid        bigint PRIMARY KEY,
		permanent_identifier text NOT NULL,
		reachcode            text NOT NULL,
		fmeasure             double precision NOT NULL,
		tmeasure             double precision NOT NULL,
		lengthkm             double precision NOT NULL,
		shape                geometry(LineString, 4269)
	)`,
	`CREATE TABLE IF NOT EXISTS nhdplus.catchmentsp (
		featureid bigint PRIMARY KEY,
		areasqkm  double precision,
		the_geom  geometry(MultiPolygon, 4269)
	)`,
}

var truncateStatements = []string{
	`TRUNCATE nldi_data.crawler_source`,
	`TRUNCATE nldi_data.feature`,
	`TRUNCATE nldi_data.mainstem_lookup`,
	`TRUNCATE nhdplus.nhdflowline_np21`,
	`TRUNCATE nhdplus.catchmentsp`,
}

// ApplySchema creates the tables the repositories query. Statements are
// idempotent so suites can share one database.
func ApplySchema(t *testing.T, tdb *TestDB) {
	t.Helper()
	for _, stmt := range schemaStatements {
		if _, err := tdb.DB.Exec(stmt); err != nil {
			t.Fatalf("Failed to apply schema: %v\nstatement: %s", err, stmt)
		}
	}
}

// ResetTables empties every test table so each test starts clean.
func ResetTables(t *testing.T, tdb *TestDB) {
	t.Helper()
	for _, stmt := range truncateStatements {
		if _, err := tdb.DB.Exec(stmt); err != nil {
			t.Fatalf("Failed to reset tables: %v", err)
		}
	}
}

package testhelpers

import "testing"

// Fixture identifiers shared by the repository suites. The network is two
// flowlines stacked on the prime meridian, one gaged feature halfway up the
// lower reach and one unmeasured water quality site on the upper one.
const (
	LowerComid = int64(101)
	UpperComid = int64(102)

	WQPSourceID  = int64(1)
	NWISSourceID = int64(2)

	GageIdentifier = "USGS-05428500"
	WQPIdentifier  = "WIDNR_WQX-10032762"
)

var fixtureStatements = []string{
	`INSERT INTO nldi_data.crawler_source (
		crawler_source_id, source_name, source_suffix, source_uri,
		feature_id, feature_name, feature_uri, ingest_type, feature_type
	) VALUES
		(1, 'Water Quality Portal', 'wqp', 'https://www.waterqualitydata.us',
		 'MonitoringLocationIdentifier', 'MonitoringLocationName', 'siteUrl',
		 'point', 'varies')`,
	`INSERT INTO nldi_data.crawler_source (
		crawler_source_id, source_name, source_suffix, source_uri,
		feature_id, feature_name, feature_uri, feature_reach, feature_measure,
		ingest_type, feature_type
	) VALUES
		(2, 'NWIS Surface Water Sites', 'nwissite', 'https://waterdata.usgs.gov',
		 'provider_id', 'name', 'subjectOf', 'nhdpv2_REACHCODE', 'nhdpv2_REACH_measure',
		 'reach', 'hydrolocation')`,

	`INSERT INTO nhdplus.nhdflowline_np21 (
		nhdplus_comid, permanent_identifier, reachcode,
		fmeasure, tmeasure, lengthkm, shape
	) VALUES
		(101, '101', '07090002007373', 0, 100, 111.0,
		 ST_GeomFromText('LINESTRING(0 0, 0 1)', 4269)),
		(102, '102', '07090002007374', 0, 100, 111.0,
		 ST_GeomFromText('LINESTRING(0 1, 0 2)', 4269))`,

	`INSERT INTO nldi_data.feature (
		crawler_source_id, identifier, name, uri, comid, reachcode, measure, location
	) VALUES
		(2, 'USGS-05428500', 'YAHARA RIVER', 'https://waterdata.usgs.gov/monitoring-location/05428500',
		 101, '07090002007373', 50,
		 ST_SetSRID(ST_MakePoint(0.0005, 0.5), 4269)),
		(1, 'WIDNR_WQX-10032762', 'Yahara River at Main St', NULL,
		 102, NULL, NULL,
		 ST_SetSRID(ST_MakePoint(0.001, 1.25), 4269))`,

	`INSERT INTO nldi_data.mainstem_lookup (nhdpv2_comid, mainstem_id, uri)
	 VALUES (101, 2143, 'https://geoconnex.us/ref/mainstems/2143')`,

	`INSERT INTO nhdplus.catchmentsp (featureid, areasqkm, the_geom) VALUES
		(101, 12.5, ST_Multi(ST_GeomFromText('POLYGON((-0.5 -0.5, 0.5 -0.5, 0.5 1, -0.5 1, -0.5 -0.5))', 4269))),
		(102, 8.25, ST_Multi(ST_GeomFromText('POLYGON((-0.5 1, 0.5 1, 0.5 2, -0.5 2, -0.5 1))', 4269)))`,
}

// LoadFixtures resets every table and inserts the shared network.
func LoadFixtures(t *testing.T, tdb *TestDB) {
	t.Helper()
	ResetTables(t, tdb)
	for _, stmt := range fixtureStatements {
		if _, err := tdb.DB.Exec(stmt); err != nil {
			t.Fatalf("Failed to load fixtures: %v\nstatement: %s", err, stmt)
		}
	}
}

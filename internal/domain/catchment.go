package domain

import "encoding/json"

// Catchment is the polygon draining to one flowline; FeatureID equals the
// flowline COMID.
type Catchment struct {
	FeatureID int64           `db:"featureid"`
	AreaSqKm  *float64        `db:"areasqkm"`
	Geometry  json.RawMessage `db:"geometry"`
}

// Basin is the aggregated polygon of all catchments upstream of an anchor.
// Computed on demand, never persisted.
type Basin struct {
	Geometry json.RawMessage
}

// MainstemLookup maps a COMID to its canonical mainstem URI.
type MainstemLookup struct {
	Comid      int64  `db:"nhdpv2_comid"`
	MainstemID *int64 `db:"mainstem_id"`
	URI        string `db:"uri"`
}

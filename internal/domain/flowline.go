package domain

import "encoding/json"

// Flowline is an NHDPlus reach. Flowlines form a directed acyclic network;
// traversal itself is delegated to the database, so only the fields the
// service reports or trims against are carried here.
type Flowline struct {
	Comid               int64           `db:"nhdplus_comid"`
	PermanentIdentifier string          `db:"permanent_identifier"`
	Reachcode           string          `db:"reachcode"`
	Fmeasure            float64         `db:"fmeasure"`
	Tmeasure            float64         `db:"tmeasure"`
	Lengthkm            float64         `db:"lengthkm"`
	Mainstem            *string         `db:"mainstem"`
	Geometry            json.RawMessage `db:"geometry"`
}

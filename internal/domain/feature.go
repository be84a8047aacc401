package domain

import "encoding/json"

// Feature is a row of the shared nldi_data.feature table, owned by exactly
// one CrawlerSource. Point sources carry a snapped location; reach sources a
// (reachcode, measure) pair. Either way Comid references an existing
// flowline.
type Feature struct {
	SourceID   int64           `db:"crawler_source_id"`
	Identifier string          `db:"identifier"`
	Name       *string         `db:"name"`
	URI        *string         `db:"uri"`
	Comid      int64           `db:"comid"`
	Reachcode  *string         `db:"reachcode"`
	Measure    *float64        `db:"measure"`
	Mainstem   *string         `db:"mainstem"`
	Geometry   json.RawMessage `db:"geometry"`
}

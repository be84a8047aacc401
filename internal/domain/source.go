package domain

import "strings"

// IngestType tells how a crawler source anchors its features to the network.
type IngestType string

const (
	IngestTypePoint IngestType = "point"
	IngestTypeReach IngestType = "reach"
)

// ComidSourceID is reserved for the synthetic source whose "features" are
// NHDPlus flowlines. It never exists in the crawler_source table.
const ComidSourceID = 0

const ComidSourceSuffix = "comid"

// CrawlerSource identifies an external dataset indexed against NHDPlus
// COMIDs by an out-of-band crawler. The Feature* fields are attribute-name
// mappings describing which upstream columns carry the identifier, name and
// URI; they are reported as data and never bound into SQL.
type CrawlerSource struct {
	ID             int64      `db:"crawler_source_id" yaml:"crawler_source_id"`
	Name           string     `db:"source_name"       yaml:"source_name"`
	Suffix         string     `db:"source_suffix"     yaml:"source_suffix"`
	URI            string     `db:"source_uri"        yaml:"source_uri"`
	FeatureID      string     `db:"feature_id"        yaml:"feature_id"`
	FeatureName    string     `db:"feature_name"      yaml:"feature_name"`
	FeatureURI     string     `db:"feature_uri"       yaml:"feature_uri"`
	FeatureReach   *string    `db:"feature_reach"     yaml:"feature_reach"`
	FeatureMeasure *string    `db:"feature_measure"   yaml:"feature_measure"`
	IngestType     IngestType `db:"ingest_type"       yaml:"ingest_type"`
	FeatureType    string     `db:"feature_type"      yaml:"feature_type"`
}

// FoldedSuffix is the case-insensitive lookup key for the source.
func (s CrawlerSource) FoldedSuffix() string {
	return strings.ToLower(s.Suffix)
}

// IsComid reports whether this is the synthetic flowline source.
func (s CrawlerSource) IsComid() bool {
	return s.ID == ComidSourceID
}

// ComidSource returns the synthetic built-in source. Resolvable without a
// database hit.
func ComidSource() CrawlerSource {
	return CrawlerSource{
		ID:          ComidSourceID,
		Name:        "NHDPlus comid",
		Suffix:      ComidSourceSuffix,
		FeatureType: "hydrolocation",
		IngestType:  IngestTypeReach,
	}
}

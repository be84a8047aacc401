package dto

// NavigationRequest carries the parsed parameters of one navigation call.
// Mode-dependent rules (distance required except point-to-point, stop comid
// only where the mode accepts one) are enforced by the navigation usecase.
type NavigationRequest struct {
	Source     string `validate:"required"`
	FeatureID  string `validate:"required"`
	Mode       string `validate:"required"`
	DistanceKm float64
	// HasDistance distinguishes distance=0 from distance absent.
	HasDistance bool
	StopComid   *int64

	TrimStart       bool
	TrimTolerance   float64 `validate:"gte=0,lte=100"`
	ExcludeGeometry bool

	// Legacy selects the pre-function navigation implementation. Accepted
	// for URL compatibility and ignored.
	Legacy bool
}

// ListFeaturesRequest is the paging envelope for source feature listings.
// The upper limit bound is enforced against MaxLimit by the lookup usecase.
type ListFeaturesRequest struct {
	Source string `validate:"required"`
	Limit  int    `validate:"gte=1"`
	Offset int    `validate:"gte=0"`
}

const (
	DefaultLimit = 100
	MaxLimit     = 10000
)

// DataSourceLink is one entry of the navigation data-source index.
type DataSourceLink struct {
	Source     string `json:"source"`
	SourceName string `json:"sourceName"`
	Features   string `json:"features"`
}

// NavigationIndex lists the mode URLs available from one feature. Fixed
// field order keeps the document stable across requests.
type NavigationIndex struct {
	UpstreamMain         string `json:"upstreamMain"`
	UpstreamTributaries  string `json:"upstreamTributaries"`
	DownstreamMain       string `json:"downstreamMain"`
	DownstreamDiversions string `json:"downstreamDiversions"`
}

package domain

import (
	"strings"
)

// NavigationMode selects the traversal the database performs from an anchor.
type NavigationMode string

const (
	NavUpstreamMain         NavigationMode = "UM"
	NavUpstreamTributaries  NavigationMode = "UT"
	NavDownstreamMain       NavigationMode = "DM"
	NavDownstreamDiversions NavigationMode = "DD"
	NavPointToPoint         NavigationMode = "PP"
)

// MaxDistanceKm is the exclusive upper bound on the distance budget.
const MaxDistanceKm = 10_000

// NavigationModes in presentation order.
var NavigationModes = []NavigationMode{
	NavUpstreamMain,
	NavUpstreamTributaries,
	NavDownstreamMain,
	NavDownstreamDiversions,
	NavPointToPoint,
}

var navModeDescriptions = map[NavigationMode]string{
	NavUpstreamMain:         "Upstream navigation on the Main channel",
	NavUpstreamTributaries:  "Upstream navigation with Tributaries",
	NavDownstreamMain:       "Downstream navigation on the Main channel",
	NavDownstreamDiversions: "Downstream navigation with Diversions",
	NavPointToPoint:         "Point-to-Point navigation between two COMIDs",
}

// ParseNavigationMode folds case and rejects unknown modes.
func ParseNavigationMode(s string) (NavigationMode, bool) {
	m := NavigationMode(strings.ToUpper(s))
	_, ok := navModeDescriptions[m]
	return m, ok
}

func (m NavigationMode) Description() string {
	return navModeDescriptions[m]
}

// Upstream reports whether the mode walks against the flow direction.
func (m NavigationMode) Upstream() bool {
	return m == NavUpstreamMain || m == NavUpstreamTributaries
}

// AcceptsStopComid reports whether a stopComid parameter is legal for the
// mode. PP requires one; DM tolerates one; the rest reject it.
func (m NavigationMode) AcceptsStopComid() bool {
	return m == NavDownstreamMain || m == NavPointToPoint
}

// NavResult is the ordered COMID sequence produced by the navigation
// function. Order within one response is preserved end-to-end; callers must
// not assume stability across database releases.
type NavResult []int64

// Dedup removes repeated COMIDs keeping the first occurrence.
func (r NavResult) Dedup() NavResult {
	seen := make(map[int64]struct{}, len(r))
	out := make(NavResult, 0, len(r))
	for _, comid := range r {
		if _, ok := seen[comid]; ok {
			continue
		}
		seen[comid] = struct{}{}
		out = append(out, comid)
	}
	return out
}

// AnchorOrigin tells which kind of start identifier produced an anchor.
type AnchorOrigin string

const (
	AnchorFromComid   AnchorOrigin = "comid"
	AnchorFromFeature AnchorOrigin = "feature"
)

// Anchor is the resolved starting point of a navigation: a COMID plus an
// optional fractional measure along the reach. It lives only for the
// duration of a single request.
type Anchor struct {
	Comid   int64
	Measure *float64
	Origin  AnchorOrigin
}

// HasMeasure reports whether trimming at the start flowline is possible.
func (a Anchor) HasMeasure() bool {
	return a.Measure != nil
}

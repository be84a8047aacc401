package dto

import (
	"encoding/json"
	"strconv"

	"github.com/nldi-service/internal/domain"
)

// Feature is one GeoJSON feature on the wire. Properties vary by
// projection; geometry may be null when the caller asked for it to be
// dropped.
type Feature struct {
	Type       string          `json:"type"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties interface{}     `json:"properties"`
}

// FeatureCollection is the envelope of every data response.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// NewFeatureCollection builds an envelope that serializes features as []
// rather than null when empty.
func NewFeatureCollection(features []Feature) FeatureCollection {
	if features == nil {
		features = []Feature{}
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}

// FeatureProperties is the full property projection for linked-data
// features. Missing database values become JSON null, never the string
// "null"; comid is a string for wire stability.
type FeatureProperties struct {
	Identifier string   `json:"identifier"`
	Name       *string  `json:"name"`
	Source     string   `json:"source"`
	SourceName string   `json:"sourceName"`
	Comid      string   `json:"comid"`
	Type       string   `json:"type"`
	URI        *string  `json:"uri"`
	Reachcode  *string  `json:"reachcode"`
	Measure    *float64 `json:"measure"`
	Mainstem   *string  `json:"mainstem"`
	Navigation string   `json:"navigation"`
}

// NavFlowlineProperties is the minimal projection used for flowlines along
// a navigation.
type NavFlowlineProperties struct {
	NhdplusComid string `json:"nhdplus_comid"`
}

// nullGeometry keeps "geometry": null well-formed when geometry is absent.
var nullGeometry = json.RawMessage("null")

func geometryOrNull(g json.RawMessage) json.RawMessage {
	if len(g) == 0 {
		return nullGeometry
	}
	return g
}

// FromSourceFeature shapes a crawler-source feature row.
func FromSourceFeature(f domain.Feature, src domain.CrawlerSource, links LinkBuilder) Feature {
	return Feature{
		Type:     "Feature",
		Geometry: geometryOrNull(f.Geometry),
		Properties: FeatureProperties{
			Identifier: f.Identifier,
			Name:       f.Name,
			Source:     src.FoldedSuffix(),
			SourceName: src.Name,
			Comid:      strconv.FormatInt(f.Comid, 10),
			Type:       src.FeatureType,
			URI:        f.URI,
			Reachcode:  f.Reachcode,
			Measure:    f.Measure,
			Mainstem:   f.Mainstem,
			Navigation: links.Navigation(src.FoldedSuffix(), f.Identifier),
		},
	}
}

// FromFlowline shapes a flowline looked up by COMID as a feature of the
// synthetic comid source.
func FromFlowline(fl domain.Flowline, links LinkBuilder) Feature {
	comid := strconv.FormatInt(fl.Comid, 10)
	reachcode := fl.Reachcode
	return Feature{
		Type:     "Feature",
		Geometry: geometryOrNull(fl.Geometry),
		Properties: FeatureProperties{
			Identifier: fl.PermanentIdentifier,
			Name:       nil,
			Source:     domain.ComidSourceSuffix,
			SourceName: "NHDPlus comid",
			Comid:      comid,
			Type:       "hydrolocation",
			URI:        nil,
			Reachcode:  &reachcode,
			Measure:    nil,
			Mainstem:   fl.Mainstem,
			Navigation: links.Navigation(domain.ComidSourceSuffix, comid),
		},
	}
}

// FromNavFlowline shapes a flowline inside a navigation result.
func FromNavFlowline(fl domain.Flowline) Feature {
	return Feature{
		Type:     "Feature",
		Geometry: geometryOrNull(fl.Geometry),
		Properties: NavFlowlineProperties{
			NhdplusComid: strconv.FormatInt(fl.Comid, 10),
		},
	}
}

// FromCatchment shapes the catchment containing a queried point.
func FromCatchment(c domain.Catchment, links LinkBuilder) Feature {
	comid := strconv.FormatInt(c.FeatureID, 10)
	return Feature{
		Type:     "Feature",
		Geometry: geometryOrNull(c.Geometry),
		Properties: FeatureProperties{
			Identifier: comid,
			Source:     domain.ComidSourceSuffix,
			SourceName: "NHDPlus comid",
			Comid:      comid,
			Type:       "catchment",
			Navigation: links.Navigation(domain.ComidSourceSuffix, comid),
		},
	}
}

// FromBasin shapes an aggregated upstream basin polygon.
func FromBasin(b domain.Basin) Feature {
	return Feature{
		Type:       "Feature",
		Geometry:   geometryOrNull(b.Geometry),
		Properties: struct{}{},
	}
}

// HydrolocationFeatures shapes the two-point hydrolocation answer: the
// point snapped onto the network and the point the caller provided.
func HydrolocationFeatures(snappedLon, snappedLat float64, comid int64, measure float64, reachcode string, srcLon, srcLat float64, links LinkBuilder) []Feature {
	comidStr := strconv.FormatInt(comid, 10)
	empty := ""
	return []Feature{
		{
			Type:     "Feature",
			Geometry: pointGeometry(snappedLon, snappedLat),
			Properties: FeatureProperties{
				Identifier: "",
				Name:       &empty,
				Source:     "indexed",
				SourceName: "Automatically indexed by the NLDI",
				Comid:      comidStr,
				Type:       "hydrolocation",
				URI:        &empty,
				Reachcode:  &reachcode,
				Measure:    &measure,
				Navigation: links.Navigation(domain.ComidSourceSuffix, comidStr),
			},
		},
		{
			Type:     "Feature",
			Geometry: pointGeometry(srcLon, srcLat),
			Properties: FeatureProperties{
				Identifier: "",
				Name:       &empty,
				Source:     "provided",
				SourceName: "Provided via API call",
				Comid:      "",
				Type:       "point",
				URI:        &empty,
			},
		},
	}
}

func pointGeometry(lon, lat float64) json.RawMessage {
	g, _ := json.Marshal(struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	}{Type: "Point", Coordinates: []float64{lon, lat}})
	return g
}

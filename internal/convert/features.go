package convert

import (
	"encoding/json"
	"errors"

	"github.com/paulmach/orb/geojson"
)

// DecodeFeatures parses GeoJSON text into a feature collection,
// normalizing the accepted shapes: a FeatureCollection passes
// through, a bare Feature becomes a single-feature collection, and a
// bare geometry is wrapped in a synthetic feature with empty
// properties.
func DecodeFeatures(data []byte) (*geojson.FeatureCollection, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &ParseError{Format: "geojson", Err: err}
	}
	switch probe.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, &ParseError{Format: "geojson", Err: err}
		}
		return fc, nil
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, &ParseError{Format: "geojson", Err: err}
		}
		return geojson.NewFeatureCollection().Append(f), nil
	case "":
		return nil, &ParseError{Format: "geojson", Err: errors.New("missing type member")}
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, &ParseError{Format: "geojson", Err: err}
		}
		return geojson.NewFeatureCollection().Append(geojson.NewFeature(g.Geometry())), nil
	}
}

// EncodeFeatures serializes a feature collection as indented GeoJSON.
// Pass-through never re-rounds coordinates.
func EncodeFeatures(fc *geojson.FeatureCollection) ([]byte, error) {
	if fc == nil {
		fc = geojson.NewFeatureCollection()
	}
	return json.MarshalIndent(fc, "", "  ")
}

// Package osmconv adapts OSM documents into feature collections.
package osmconv

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"unicode"

	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmgeojson"
	"golang.org/x/net/html/charset"
)

// ErrUnsupportedFormat reports input that is neither OSM JSON nor
// OSM XML.
var ErrUnsupportedFormat = errors.New("osmconv: unsupported format")

var bom = []byte{0xEF, 0xBB, 0xBF}

// Adapt parses an OSM document and converts it to a feature
// collection. The first non-whitespace byte picks the codec: `{` is
// Overpass-style JSON, anything else is OSM XML. Way node refs are
// resolved against the document's own nodes; tags ride along as
// feature properties. A document with no elements is an empty
// collection, not an error.
func Adapt(data []byte) (*geojson.FeatureCollection, error) {
	data = bytes.TrimLeftFunc(bytes.TrimPrefix(data, bom), unicode.IsSpace)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrUnsupportedFormat)
	}

	o := &osm.OSM{}
	if data[0] == '{' {
		if err := json.Unmarshal(data, o); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
	} else {
		decoder := xml.NewDecoder(bytes.NewReader(data))
		decoder.CharsetReader = charset.NewReaderLabel
		root, err := rootElement(decoder)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		if root.Name.Local != "osm" {
			return nil, fmt.Errorf("%w: root element is <%s>, not <osm>", ErrUnsupportedFormat, root.Name.Local)
		}
		if err := decoder.DecodeElement(o, &root); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
	}

	fc, err := osmgeojson.Convert(o, osmgeojson.NoMeta(true), osmgeojson.NoRelationMembership(true))
	if err != nil {
		return nil, fmt.Errorf("osmconv: %w", err)
	}
	return fc, nil
}

// rootElement walks past declarations and comments to the document's
// root start element. paulmach/osm does not pin the root name itself,
// so the name check happens here.
func rootElement(decoder *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := decoder.Token()
		if err != nil {
			return xml.StartElement{}, err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se, nil
		}
	}
}

package tui

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"unicode"

	"golang.org/x/net/html/charset"
)

type sourceKind uint8

const (
	srcUnknown sourceKind = iota
	srcSVG
	srcGeoJSON
	srcOSM
)

func (k sourceKind) String() string {
	switch k {
	case srcSVG:
		return "svg"
	case srcGeoJSON:
		return "geojson"
	case srcOSM:
		return "osm"
	default:
		return "unknown"
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// detectKind sniffs which of the three input formats the bytes hold.
// JSON carrying an elements member is an Overpass dump, any other
// JSON is treated as GeoJSON; XML is told apart by its root element.
func detectKind(data []byte) sourceKind {
	data = bytes.TrimLeftFunc(bytes.TrimPrefix(data, utf8BOM), unicode.IsSpace)
	if len(data) == 0 {
		return srcUnknown
	}
	switch data[0] {
	case '{', '[':
		var probe struct {
			Elements json.RawMessage `json:"elements"`
		}
		if err := json.Unmarshal(data, &probe); err == nil && probe.Elements != nil {
			return srcOSM
		}
		return srcGeoJSON
	case '<':
		dec := xml.NewDecoder(bytes.NewReader(data))
		dec.CharsetReader = charset.NewReaderLabel
		for {
			tok, err := dec.Token()
			if err != nil {
				return srcUnknown
			}
			se, ok := tok.(xml.StartElement)
			if !ok {
				continue
			}
			switch se.Name.Local {
			case "svg":
				return srcSVG
			case "osm":
				return srcOSM
			default:
				return srcUnknown
			}
		}
	}
	return srcUnknown
}

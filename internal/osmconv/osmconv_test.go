package osmconv

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
)

func TestAdaptXMLWay(t *testing.T) {
	data := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
  <node id="1" lat="0" lon="0"/>
  <node id="2" lat="0" lon="1"/>
  <way id="10">
    <nd ref="1"/>
    <nd ref="2"/>
    <tag k="highway" v="residential"/>
  </way>
</osm>`)
	fc, err := Adapt(data)
	if err != nil {
		t.Fatalf("Adapt error: %v", err)
	}
	if len(fc.Features) != 1 {
		t.Fatalf("adapted %d features, want 1", len(fc.Features))
	}
	ls, ok := fc.Features[0].Geometry.(orb.LineString)
	if !ok {
		t.Fatalf("geometry = %T, want orb.LineString", fc.Features[0].Geometry)
	}
	if len(ls) != 2 || ls[0] != (orb.Point{0, 0}) || ls[1] != (orb.Point{1, 0}) {
		t.Errorf("line = %v, want (0,0)..(1,0)", ls)
	}
}

func TestAdaptXMLNode(t *testing.T) {
	data := []byte(`<osm version="0.6">
  <node id="1" lat="5" lon="5">
    <tag k="amenity" v="cafe"/>
  </node>
</osm>`)
	fc, err := Adapt(data)
	if err != nil {
		t.Fatalf("Adapt error: %v", err)
	}
	if len(fc.Features) != 1 {
		t.Fatalf("adapted %d features, want 1", len(fc.Features))
	}
	pt, ok := fc.Features[0].Geometry.(orb.Point)
	if !ok {
		t.Fatalf("geometry = %T, want orb.Point", fc.Features[0].Geometry)
	}
	if pt != (orb.Point{5, 5}) {
		t.Errorf("point = %v, want (5,5)", pt)
	}
}

func TestAdaptJSONNode(t *testing.T) {
	data := []byte(`{
  "version": 0.6,
  "elements": [
    {"type": "node", "id": 1, "lat": 5, "lon": 5, "tags": {"amenity": "cafe"}}
  ]
}`)
	fc, err := Adapt(data)
	if err != nil {
		t.Fatalf("Adapt error: %v", err)
	}
	if len(fc.Features) != 1 {
		t.Fatalf("adapted %d features, want 1", len(fc.Features))
	}
	if pt, ok := fc.Features[0].Geometry.(orb.Point); !ok || pt != (orb.Point{5, 5}) {
		t.Errorf("geometry = %v, want Point(5,5)", fc.Features[0].Geometry)
	}
}

func TestAdaptLeadingWhitespaceAndBOM(t *testing.T) {
	data := []byte("\xef\xbb\xbf\n  {\"version\": 0.6, \"elements\": []}")
	fc, err := Adapt(data)
	if err != nil {
		t.Fatalf("Adapt error: %v", err)
	}
	if len(fc.Features) != 0 {
		t.Errorf("adapted %d features, want 0", len(fc.Features))
	}
}

func TestAdaptEmptyDocument(t *testing.T) {
	fc, err := Adapt([]byte(`{}`))
	if err != nil {
		t.Fatalf("Adapt error: %v", err)
	}
	if len(fc.Features) != 0 {
		t.Errorf("adapted %d features, want 0", len(fc.Features))
	}
}

func TestAdaptCommentBeforeRoot(t *testing.T) {
	data := []byte(`<?xml version="1.0"?>
<!-- export -->
<osm version="0.6">
  <node id="1" lat="5" lon="5">
    <tag k="amenity" v="cafe"/>
  </node>
</osm>`)
	fc, err := Adapt(data)
	if err != nil {
		t.Fatalf("Adapt error: %v", err)
	}
	if len(fc.Features) != 1 {
		t.Errorf("adapted %d features, want 1", len(fc.Features))
	}
}

func TestAdaptUnsupported(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"blank", "   \n"},
		{"plain text", "hello there"},
		{"wrong xml root", "<svg></svg>"},
		{"wrong root after declaration", "<?xml version=\"1.0\"?>\n<!-- note -->\n<svg><path d=\"M0,0\"/></svg>"},
		{"comment only", "<!-- nothing here -->"},
		{"bad json", `{"elements": "nope"}`},
		{"truncated json", `{"elements": [`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Adapt([]byte(tt.data))
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("Adapt(%q) error = %v, want ErrUnsupportedFormat", tt.data, err)
			}
		})
	}
}

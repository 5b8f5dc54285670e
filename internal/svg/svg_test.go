package svg

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/paulmach/orb"

	"geovec/internal/svgpath"
)

func TestDecodeCollectsPaths(t *testing.T) {
	const doc = `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" width="100px" height="50" viewBox="0 0 100 50">
  <path d="M0,0 L10,0" stroke="red" id="a"/>
  <g>
    <path d="M1,1 L2,2 Z"/>
  </g>
</svg>`
	got, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if got.Width != 100 || got.Height != 50 {
		t.Errorf("dimensions = %v x %v, want 100 x 50", got.Width, got.Height)
	}
	if !got.HasViewBox || got.ViewBox != [4]float64{0, 0, 100, 50} {
		t.Errorf("viewBox = %v (has=%v), want 0 0 100 50", got.ViewBox, got.HasViewBox)
	}
	if len(got.Paths) != 2 {
		t.Fatalf("decoded %d paths, want 2", len(got.Paths))
	}
	if got.Paths[0].Attrs["stroke"] != "red" || got.Paths[0].Attrs["id"] != "a" {
		t.Errorf("attrs = %v, want stroke and id carried", got.Paths[0].Attrs)
	}
	if _, ok := got.Paths[0].Attrs["d"]; ok {
		t.Errorf("d must not appear in attrs: %v", got.Paths[0].Attrs)
	}
	if !got.Paths[1].Data.Closed() {
		t.Errorf("second path should be closed")
	}
}

func TestDecodeComposesNestedTransforms(t *testing.T) {
	const doc = `<svg xmlns="http://www.w3.org/2000/svg">
  <g transform="translate(10,0)">
    <g transform="scale(2)">
      <path d="M1,1"/>
    </g>
  </g>
</svg>`
	got, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(got.Paths) != 1 {
		t.Fatalf("decoded %d paths, want 1", len(got.Paths))
	}
	p := got.Paths[0].Transform.Apply(orb.Point{1, 1})
	want := orb.Point{12, 2}
	if math.Abs(p[0]-want[0]) > 1e-9 || math.Abs(p[1]-want[1]) > 1e-9 {
		t.Errorf("transformed point = %v, want %v", p, want)
	}
}

func TestDecodePathOwnTransformComposes(t *testing.T) {
	const doc = `<svg xmlns="http://www.w3.org/2000/svg">
  <g transform="translate(10,0)">
    <path d="M1,1" transform="scale(2)"/>
  </g>
</svg>`
	got, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	p := got.Paths[0].Transform.Apply(orb.Point{1, 1})
	want := orb.Point{12, 2}
	if math.Abs(p[0]-want[0]) > 1e-9 || math.Abs(p[1]-want[1]) > 1e-9 {
		t.Errorf("transformed point = %v, want %v", p, want)
	}
}

func TestDecodeEmptyDocument(t *testing.T) {
	got, err := Decode(strings.NewReader(`<svg></svg>`))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(got.Paths) != 0 {
		t.Errorf("decoded %d paths, want 0", len(got.Paths))
	}
}

func TestDecodeSkipsOtherShapes(t *testing.T) {
	const doc = `<svg xmlns="http://www.w3.org/2000/svg">
  <rect x="0" y="0" width="5" height="5"/>
  <circle cx="1" cy="1" r="1"/>
  <path d="M0,0 L1,1"/>
</svg>`
	got, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(got.Paths) != 1 {
		t.Errorf("decoded %d paths, want 1", len(got.Paths))
	}
}

func TestDecodeMalformedXML(t *testing.T) {
	if _, err := Decode(strings.NewReader(`<svg><path d="M0,0"`)); err == nil {
		t.Errorf("Decode succeeded on truncated document, want error")
	}
}

func TestDecodeBadPathData(t *testing.T) {
	_, err := Decode(strings.NewReader(`<svg><path d="M0,0 X9"/></svg>`))
	if err == nil {
		t.Fatalf("Decode succeeded on bad path data, want error")
	}
	var se *svgpath.SyntaxError
	if !errors.As(err, &se) {
		t.Errorf("error = %v, want to unwrap to *svgpath.SyntaxError", err)
	}
}

func TestDecodeBadTransform(t *testing.T) {
	if _, err := Decode(strings.NewReader(`<svg><g transform="rotate(1 2)"><path d="M0,0"/></g></svg>`)); err == nil {
		t.Errorf("Decode succeeded on bad transform, want error")
	}
}

package convert

import (
	"regexp"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func parseSVG(t *testing.T, data []byte) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		t.Fatalf("output is not valid XML: %v\n%s", err, data)
	}
	root := doc.SelectElement("svg")
	if root == nil {
		t.Fatalf("output has no svg root:\n%s", data)
	}
	return root
}

func TestToSVGPointWithOverrideExtent(t *testing.T) {
	fc := collectionOf(orb.Point{5, 5})
	extent := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}}
	out, sum, err := ToSVG(fc, RenderOptions{
		Width: 100, Height: 100,
		FitTo:       FitWidth,
		Precision:   2,
		PointRadius: 2,
		FlipY:       true,
		Extent:      &extent,
	})
	if err != nil {
		t.Fatalf("ToSVG error: %v", err)
	}
	if sum.ElementCount != 1 || sum.Extent != extent {
		t.Errorf("summary = %+v, want 1 element and the override extent", sum)
	}
	root := parseSVG(t, out)
	kids := root.ChildElements()
	if len(kids) != 1 || kids[0].Tag != "circle" {
		t.Fatalf("children = %v, want one circle", kids)
	}
	if cx := kids[0].SelectAttrValue("cx", ""); cx != "50" {
		t.Errorf("cx = %q, want 50", cx)
	}
	if cy := kids[0].SelectAttrValue("cy", ""); cy != "50" {
		t.Errorf("cy = %q, want 50", cy)
	}
	if r := kids[0].SelectAttrValue("r", ""); r != "2" {
		t.Errorf("r = %q, want 2", r)
	}
}

func TestToSVGDegenerateExtent(t *testing.T) {
	fc := collectionOf(orb.Point{3, 7}, orb.Point{3, 7}, orb.Point{3, 7})
	out, sum, err := ToSVG(fc, RenderOptions{Width: 200, Height: 200, FlipY: true})
	if err != nil {
		t.Fatalf("ToSVG error: %v", err)
	}
	if sum.ElementCount != 3 {
		t.Errorf("elementCount = %d, want 3", sum.ElementCount)
	}
	if strings.Contains(string(out), "NaN") || strings.Contains(string(out), "Inf") {
		t.Fatalf("output carries non-finite coordinates:\n%s", out)
	}
	root := parseSVG(t, out)
	for _, c := range root.ChildElements() {
		if cx, cy := c.SelectAttrValue("cx", ""), c.SelectAttrValue("cy", ""); cx != "0" || cy != "0" {
			t.Errorf("degenerate extent mapped to (%s,%s), want the viewport origin", cx, cy)
		}
	}
}

func TestToSVGEmptyCollection(t *testing.T) {
	for _, fc := range []*geojson.FeatureCollection{nil, geojson.NewFeatureCollection()} {
		out, sum, err := ToSVG(fc, DefaultRenderOptions())
		if err != nil {
			t.Fatalf("ToSVG error: %v", err)
		}
		if sum.ElementCount != 0 {
			t.Errorf("elementCount = %d, want 0", sum.ElementCount)
		}
		root := parseSVG(t, out)
		if kids := root.ChildElements(); len(kids) != 0 {
			t.Errorf("empty collection rendered %d children, want 0", len(kids))
		}
	}
}

func TestToSVGFitWidth(t *testing.T) {
	fc := collectionOf(orb.LineString{{0, 0}, {20, 10}})
	out, _, err := ToSVG(fc, RenderOptions{
		Width: 100, Height: 100,
		FitTo:     FitWidth,
		Precision: 2,
		FlipY:     true,
	})
	if err != nil {
		t.Fatalf("ToSVG error: %v", err)
	}
	root := parseSVG(t, out)
	d := root.ChildElements()[0].SelectAttrValue("d", "")
	if d != "M0,50 L100,0" {
		t.Errorf("d = %q, want M0,50 L100,0", d)
	}
}

func TestToSVGFitNone(t *testing.T) {
	fc := collectionOf(orb.LineString{{0, 0}, {20, 10}})
	out, _, err := ToSVG(fc, RenderOptions{
		Width: 100, Height: 100,
		FitTo:     FitNone,
		Precision: 2,
		FlipY:     true,
	})
	if err != nil {
		t.Fatalf("ToSVG error: %v", err)
	}
	root := parseSVG(t, out)
	d := root.ChildElements()[0].SelectAttrValue("d", "")
	if d != "M0,100 L100,0" {
		t.Errorf("d = %q, want M0,100 L100,0", d)
	}
}

func TestToSVGFitHeight(t *testing.T) {
	fc := collectionOf(orb.LineString{{0, 0}, {20, 10}})
	out, _, err := ToSVG(fc, RenderOptions{
		Width: 100, Height: 100,
		FitTo:     FitHeight,
		Precision: 2,
		FlipY:     false,
	})
	if err != nil {
		t.Fatalf("ToSVG error: %v", err)
	}
	root := parseSVG(t, out)
	d := root.ChildElements()[0].SelectAttrValue("d", "")
	if d != "M0,0 L200,100" {
		t.Errorf("d = %q, want M0,0 L200,100", d)
	}
}

var coordRe = regexp.MustCompile(`-?\d+(\.\d+)?`)

func TestToSVGPrecision(t *testing.T) {
	fc := collectionOf(orb.Point{1, 1})
	extent := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{3, 3}}
	out, _, err := ToSVG(fc, RenderOptions{
		Width: 10, Height: 10,
		Precision:   2,
		PointRadius: 2,
		Extent:      &extent,
	})
	if err != nil {
		t.Fatalf("ToSVG error: %v", err)
	}
	root := parseSVG(t, out)
	c := root.ChildElements()[0]
	if cx := c.SelectAttrValue("cx", ""); cx != "3.33" {
		t.Errorf("cx = %q, want 3.33", cx)
	}
	for _, num := range coordRe.FindAllString(c.SelectAttrValue("cx", "")+" "+c.SelectAttrValue("cy", ""), -1) {
		if dot := strings.IndexByte(num, '.'); dot >= 0 && len(num)-dot-1 > 2 {
			t.Errorf("coordinate %q exceeds 2 decimal digits", num)
		}
	}
}

func TestToSVGPolygonRingClosureUsesZ(t *testing.T) {
	fc := collectionOf(orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}})
	out, _, err := ToSVG(fc, RenderOptions{Width: 10, Height: 10, FitTo: FitNone, FlipY: false})
	if err != nil {
		t.Fatalf("ToSVG error: %v", err)
	}
	root := parseSVG(t, out)
	d := root.ChildElements()[0].SelectAttrValue("d", "")
	if !strings.HasSuffix(d, "Z") {
		t.Errorf("d = %q, want a Z-closed subpath", d)
	}
	if got := strings.Count(d, "L"); got != 2 {
		t.Errorf("d = %q has %d line commands, want 2 (closing point folded into Z)", d, got)
	}
}

func TestToSVGMultiPolygonSubpaths(t *testing.T) {
	fc := collectionOf(orb.MultiPolygon{
		{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}},
		{{{2, 2}, {3, 2}, {3, 3}, {2, 2}}},
	})
	out, sum, err := ToSVG(fc, DefaultRenderOptions())
	if err != nil {
		t.Fatalf("ToSVG error: %v", err)
	}
	if sum.ElementCount != 1 {
		t.Errorf("elementCount = %d, want 1", sum.ElementCount)
	}
	root := parseSVG(t, out)
	kids := root.ChildElements()
	if len(kids) != 1 || kids[0].Tag != "path" {
		t.Fatalf("children = %v, want a single path", kids)
	}
	d := kids[0].SelectAttrValue("d", "")
	if strings.Count(d, "M") != 2 || strings.Count(d, "Z") != 2 {
		t.Errorf("d = %q, want two Z-closed subpaths", d)
	}
}

func TestToSVGPreservesFeatureOrder(t *testing.T) {
	fc := collectionOf(
		orb.LineString{{0, 0}, {1, 1}},
		orb.Point{2, 2},
		orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}},
	)
	out, _, err := ToSVG(fc, DefaultRenderOptions())
	if err != nil {
		t.Fatalf("ToSVG error: %v", err)
	}
	root := parseSVG(t, out)
	var tags []string
	for _, c := range root.ChildElements() {
		tags = append(tags, c.Tag)
	}
	want := []string{"path", "circle", "path"}
	if len(tags) != len(want) {
		t.Fatalf("children = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("child %d = %q, want %q", i, tags[i], want[i])
		}
	}
}

func TestToSVGReemitsIdentityProperties(t *testing.T) {
	f := geojson.NewFeature(orb.LineString{{0, 0}, {1, 1}})
	f.Properties["id"] = "p1"
	f.Properties["style"] = "stroke:red"
	f.Properties["population"] = 42.0
	fc := geojson.NewFeatureCollection().Append(f)
	out, _, err := ToSVG(fc, DefaultRenderOptions())
	if err != nil {
		t.Fatalf("ToSVG error: %v", err)
	}
	root := parseSVG(t, out)
	el := root.ChildElements()[0]
	if el.SelectAttrValue("id", "") != "p1" || el.SelectAttrValue("style", "") != "stroke:red" {
		t.Errorf("identity attrs not re-emitted: %v", el.Attr)
	}
	if el.SelectAttrValue("population", "") != "" {
		t.Errorf("non-identity property leaked into output")
	}
}

func TestRoundTripElementCount(t *testing.T) {
	doc := []byte(`<svg>
  <path d="M0,0 L10,0 L10,10 Z"/>
  <path d="M20,20 L30,20"/>
  <path d="M5,5"/>
</svg>`)
	fc, csum, err := FromSVG(doc, DefaultTransformOptions())
	if err != nil {
		t.Fatalf("FromSVG error: %v", err)
	}
	_, rsum, err := ToSVG(fc, DefaultRenderOptions())
	if err != nil {
		t.Fatalf("ToSVG error: %v", err)
	}
	if rsum.ElementCount != csum.FeatureCount {
		t.Errorf("elementCount = %d, featureCount = %d, want equal", rsum.ElementCount, csum.FeatureCount)
	}
}

package convert

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// RenderSummary describes one feature-collection to SVG run.
type RenderSummary struct {
	ElementCount int       // features rendered
	Extent       orb.Bound // resolved extent, pre-scaling
}

type projFunc func(orb.Point) (x, y float64)

// ToSVG projects a feature collection into a viewport and serializes
// it as an SVG document of path and circle primitives, in feature
// order. The extent maps onto the viewport per the fit mode; a
// degenerate extent axis keeps scale 1.0, collapsing coordinates to
// the viewport origin. An empty collection yields a valid document
// with an empty root and a nil error.
func ToSVG(fc *geojson.FeatureCollection, opts RenderOptions) ([]byte, RenderSummary, error) {
	opts = opts.normalized()

	extent, err := ResolveExtent(fc, opts.Extent)
	if err != nil {
		extent = FallbackExtent()
	}

	sx, sy := 1.0, 1.0
	if w := extent.Max[0] - extent.Min[0]; w != 0 {
		sx = opts.Width / w
	}
	if h := extent.Max[1] - extent.Min[1]; h != 0 {
		sy = opts.Height / h
	}
	switch opts.FitTo {
	case FitWidth:
		sy = sx
	case FitHeight:
		sx = sy
	}

	proj := func(p orb.Point) (float64, float64) {
		x := (p[0] - extent.Min[0]) * sx
		var y float64
		if opts.FlipY {
			y = (extent.Max[1] - p[1]) * sy
		} else {
			y = (p[1] - extent.Min[1]) * sy
		}
		return roundTo(x, opts.Precision), roundTo(y, opts.Precision)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("svg")
	root.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	root.CreateAttr("width", fmtNum(opts.Width))
	root.CreateAttr("height", fmtNum(opts.Height))
	root.CreateAttr("viewBox", fmt.Sprintf("0 0 %s %s", fmtNum(opts.Width), fmtNum(opts.Height)))

	sum := RenderSummary{Extent: extent}
	if fc != nil {
		for _, f := range fc.Features {
			if f == nil || f.Geometry == nil {
				continue
			}
			if renderGeometry(root, f.Geometry, f.Properties, proj, opts.PointRadius) {
				sum.ElementCount++
			}
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, sum, err
	}
	return out, sum, nil
}

// renderGeometry emits the primitives for one geometry and reports
// whether anything was drawn.
func renderGeometry(parent *etree.Element, g orb.Geometry, props geojson.Properties, proj projFunc, radius float64) bool {
	switch g := g.(type) {
	case orb.Point:
		circle(parent, g, props, proj, radius)
		return true
	case orb.MultiPoint:
		for _, p := range g {
			circle(parent, p, props, proj, radius)
		}
		return len(g) > 0
	case orb.LineString:
		if len(g) == 0 {
			return false
		}
		pathElement(parent, lineData(g, proj), props)
		return true
	case orb.MultiLineString:
		parts := make([]string, 0, len(g))
		for _, ls := range g {
			if len(ls) > 0 {
				parts = append(parts, lineData(ls, proj))
			}
		}
		if len(parts) == 0 {
			return false
		}
		pathElement(parent, strings.Join(parts, " "), props)
		return true
	case orb.Ring:
		if len(g) == 0 {
			return false
		}
		pathElement(parent, ringData(g, proj), props)
		return true
	case orb.Polygon:
		d := polygonData(g, proj)
		if d == "" {
			return false
		}
		pathElement(parent, d, props)
		return true
	case orb.MultiPolygon:
		parts := make([]string, 0, len(g))
		for _, poly := range g {
			if d := polygonData(poly, proj); d != "" {
				parts = append(parts, d)
			}
		}
		if len(parts) == 0 {
			return false
		}
		pathElement(parent, strings.Join(parts, " "), props)
		return true
	case orb.Collection:
		any := false
		for _, sub := range g {
			if renderGeometry(parent, sub, props, proj, radius) {
				any = true
			}
		}
		return any
	case orb.Bound:
		return renderGeometry(parent, g.ToRing(), props, proj, radius)
	}
	return false
}

func lineData(ls orb.LineString, proj projFunc) string {
	var b strings.Builder
	for i, p := range ls {
		x, y := proj(p)
		if i == 0 {
			b.WriteByte('M')
		} else {
			b.WriteString(" L")
		}
		b.WriteString(fmtNum(x))
		b.WriteByte(',')
		b.WriteString(fmtNum(y))
	}
	return b.String()
}

// ringData emits a closed subpath; a ring's repeated closing point is
// dropped in favor of the Z command.
func ringData(r orb.Ring, proj projFunc) string {
	pts := []orb.Point(r)
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	return lineData(orb.LineString(pts), proj) + " Z"
}

func polygonData(poly orb.Polygon, proj projFunc) string {
	parts := make([]string, 0, len(poly))
	for _, r := range poly {
		if len(r) > 0 {
			parts = append(parts, ringData(r, proj))
		}
	}
	return strings.Join(parts, " ")
}

func pathElement(parent *etree.Element, d string, props geojson.Properties) {
	el := parent.CreateElement("path")
	el.CreateAttr("d", d)
	setIdentity(el, props)
}

func circle(parent *etree.Element, p orb.Point, props geojson.Properties, proj projFunc, radius float64) {
	x, y := proj(p)
	el := parent.CreateElement("circle")
	el.CreateAttr("cx", fmtNum(x))
	el.CreateAttr("cy", fmtNum(y))
	el.CreateAttr("r", fmtNum(radius))
	setIdentity(el, props)
}

// setIdentity re-emits the identifying string properties a feature
// carried in from its source document.
func setIdentity(el *etree.Element, props geojson.Properties) {
	for _, k := range []string{"id", "class", "style"} {
		if v, ok := props[k].(string); ok && v != "" {
			el.CreateAttr(k, v)
		}
	}
}

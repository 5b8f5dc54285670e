package convert

import (
	"bytes"
	"errors"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"geovec/internal/svg"
	"geovec/internal/svgpath"
)

// ConvertSummary describes one SVG to feature-collection run.
type ConvertSummary struct {
	PathCount    int // path elements found in the document
	FeatureCount int // features emitted
	SamplePoints int // echo of the sampling option
}

// FromSVG samples every path element of an SVG document into a
// feature collection. Each path becomes one feature: its sampled
// points are carried through the composed element transform,
// optionally Y-flipped, rounded, and classified as a Point,
// LineString or Polygon. A document with no paths yields an empty
// collection and a nil error; empty input is data, not failure.
func FromSVG(data []byte, opts TransformOptions) (*geojson.FeatureCollection, ConvertSummary, error) {
	opts = opts.normalized()
	sum := ConvertSummary{SamplePoints: opts.SamplePoints}

	doc, err := svg.Decode(bytes.NewReader(data))
	if err != nil {
		var se *svgpath.SyntaxError
		if errors.As(err, &se) {
			return nil, sum, err
		}
		return nil, sum, &ParseError{Format: "svg", Err: err}
	}

	fc := geojson.NewFeatureCollection()
	sum.PathCount = len(doc.Paths)
	for _, p := range doc.Paths {
		pts, err := p.Data.Sample(opts.SamplePoints)
		if err != nil {
			return nil, sum, err
		}
		if pts == nil {
			// a path with an empty d attribute draws nothing
			continue
		}
		for i, pt := range pts {
			pt = p.Transform.Apply(pt)
			if opts.FlipY {
				pt[1] = -pt[1]
			}
			pts[i] = orb.Point{roundTo(pt[0], opts.Precision), roundTo(pt[1], opts.Precision)}
		}
		f := geojson.NewFeature(classify(pts, p.Data.Closed()))
		for k, v := range p.Attrs {
			f.Properties[k] = v
		}
		fc.Append(f)
		sum.FeatureCount++
	}
	return fc, sum, nil
}

// classify types a sampled sequence: a single location is a Point, a
// ring that returns to its start with nonzero area is a Polygon,
// anything else is a LineString. Closedness is equality of the first
// and last samples after rounding.
func classify(pts []orb.Point, closed bool) orb.Geometry {
	if allEqual(pts) {
		return pts[0]
	}
	if (closed || pts[0] == pts[len(pts)-1]) && len(pts) >= 4 {
		ring := orb.Ring(pts)
		if math.Abs(planar.Area(ring)) > 0 {
			return orb.Polygon{ring}
		}
	}
	return orb.LineString(pts)
}

func allEqual(pts []orb.Point) bool {
	for _, p := range pts[1:] {
		if p != pts[0] {
			return false
		}
	}
	return true
}

package convert

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ResolveExtent returns the bounding box of every coordinate in fc.
// A non-nil override is returned unchanged, even when it disagrees
// with the data; a caller-declared extent always wins. A collection
// with no coordinates and no override is ErrEmptyGeometry.
func ResolveExtent(fc *geojson.FeatureCollection, override *orb.Bound) (orb.Bound, error) {
	if override != nil {
		return *override, nil
	}
	var (
		b    orb.Bound
		seen bool
	)
	add := func(p orb.Point) {
		if !seen {
			b = orb.Bound{Min: p, Max: p}
			seen = true
			return
		}
		b = b.Extend(p)
	}
	if fc != nil {
		for _, f := range fc.Features {
			if f == nil {
				continue
			}
			foldPoints(f.Geometry, add)
		}
	}
	if !seen {
		return orb.Bound{}, ErrEmptyGeometry
	}
	return b, nil
}

// FallbackExtent is the sentinel extent for collections with nothing
// to measure; it keeps the "no data" state renderable.
func FallbackExtent() orb.Bound {
	return orb.Bound{Min: orb.Point{-1, -1}, Max: orb.Point{1, 1}}
}

func foldPoints(g orb.Geometry, visit func(orb.Point)) {
	switch g := g.(type) {
	case nil:
	case orb.Point:
		visit(g)
	case orb.MultiPoint:
		for _, p := range g {
			visit(p)
		}
	case orb.LineString:
		for _, p := range g {
			visit(p)
		}
	case orb.MultiLineString:
		for _, ls := range g {
			for _, p := range ls {
				visit(p)
			}
		}
	case orb.Ring:
		for _, p := range g {
			visit(p)
		}
	case orb.Polygon:
		for _, r := range g {
			for _, p := range r {
				visit(p)
			}
		}
	case orb.MultiPolygon:
		for _, poly := range g {
			for _, r := range poly {
				for _, p := range r {
					visit(p)
				}
			}
		}
	case orb.Collection:
		for _, sub := range g {
			foldPoints(sub, visit)
		}
	case orb.Bound:
		visit(g.Min)
		visit(g.Max)
	}
}

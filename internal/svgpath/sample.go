package svgpath

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
)

// ErrSampleCount reports a sample request below the two-point minimum.
var ErrSampleCount = errors.New("svgpath: need at least 2 sample points")

const maxFlattenDepth = 16

// flat is a flattened path: points plus cumulative arc length.
// Subpath jumps append the new start with unchanged distance, so they
// never attract samples.
type flat struct {
	pts []orb.Point
	cum []float64
}

func (f *flat) add(p orb.Point, jump bool) {
	if len(f.pts) == 0 {
		f.pts = append(f.pts, p)
		f.cum = append(f.cum, 0)
		return
	}
	d := 0.0
	if !jump {
		d = dist(f.pts[len(f.pts)-1], p)
	}
	f.pts = append(f.pts, p)
	f.cum = append(f.cum, f.cum[len(f.cum)-1]+d)
}

func dist(a, b orb.Point) float64 {
	return math.Hypot(b[0]-a[0], b[1]-a[1])
}

// Sample returns n points evenly spaced by arc length from the start
// of the path to its end; the first sample is the path start and the
// last is the path end. Degenerate paths yield n copies of their
// anchor point. An empty path yields nil.
func (p Path) Sample(n int) ([]orb.Point, error) {
	if n < 2 {
		return nil, ErrSampleCount
	}
	if len(p) == 0 {
		return nil, nil
	}
	f := p.flatten(p.flattenTolerance())
	if len(f.pts) == 0 {
		return nil, nil
	}

	out := make([]orb.Point, n)
	total := f.cum[len(f.cum)-1]
	if total == 0 {
		for i := range out {
			out[i] = f.pts[0]
		}
		return out, nil
	}

	seg := 1
	for i := 0; i < n; i++ {
		target := total * float64(i) / float64(n-1)
		if i == n-1 {
			target = total // no float drift on the final point
		}
		for seg < len(f.cum)-1 && f.cum[seg] < target {
			seg++
		}
		a, b := f.pts[seg-1], f.pts[seg]
		ca, cb := f.cum[seg-1], f.cum[seg]
		if cb == ca {
			out[i] = b
			continue
		}
		t := (target - ca) / (cb - ca)
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		out[i] = orb.Point{a[0] + t*(b[0]-a[0]), a[1] + t*(b[1]-a[1])}
	}
	return out, nil
}

// flatten reduces the path to a polyline within tol of the curves.
func (p Path) flatten(tol float64) flat {
	var (
		f     flat
		cur   orb.Point
		start orb.Point
		open  bool
	)
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			f.add(orb.Point(op), open)
			cur, start = orb.Point(op), orb.Point(op)
			open = true
		case LineTo:
			f.add(orb.Point(op), false)
			cur = orb.Point(op)
		case QuadTo:
			flattenQuad(cur, op[0], op[1], tol*tol, &f, 0)
			f.add(op[1], false)
			cur = op[1]
		case CubicTo:
			flattenCubic(cur, op[0], op[1], op[2], tol*tol, &f, 0)
			f.add(op[2], false)
			cur = op[2]
		case Close:
			f.add(start, false)
			cur = start
		}
	}
	return f
}

// flattenTolerance scales curve resolution with the path's own
// extent, so pixel-space and degree-space paths flatten alike.
func (p Path) flattenTolerance() float64 {
	b, ok := p.hullBound()
	if !ok {
		return 1e-3
	}
	tol := dist(b.Min, b.Max) / 1024
	if tol < 1e-9 {
		tol = 1e-9
	}
	return tol
}

// hullBound folds every operation coordinate into a bound; control
// hulls contain their curves, so this bounds the path.
func (p Path) hullBound() (orb.Bound, bool) {
	var (
		b    orb.Bound
		seen bool
	)
	add := func(pt orb.Point) {
		if !seen {
			b = orb.Bound{Min: pt, Max: pt}
			seen = true
			return
		}
		b = b.Extend(pt)
	}
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			add(orb.Point(op))
		case LineTo:
			add(orb.Point(op))
		case QuadTo:
			add(op[0])
			add(op[1])
		case CubicTo:
			add(op[0])
			add(op[1])
			add(op[2])
		}
	}
	return b, seen
}

// flattenQuad subdivides until the control point sits within tol of
// the chord midpoint, emitting interior points only.
func flattenQuad(a, b, c orb.Point, tol2 float64, f *flat, depth int) {
	if depth >= maxFlattenDepth || quadFlat(a, b, c, tol2) {
		return
	}
	ab := mid(a, b)
	bc := mid(b, c)
	m := mid(ab, bc)
	flattenQuad(a, ab, m, tol2, f, depth+1)
	f.add(m, false)
	flattenQuad(m, bc, c, tol2, f, depth+1)
}

// flattenCubic splits at t=1/2 by de Casteljau until flat.
func flattenCubic(a, b, c, d orb.Point, tol2 float64, f *flat, depth int) {
	if depth >= maxFlattenDepth || cubicFlat(a, b, c, d, tol2) {
		return
	}
	ab := mid(a, b)
	bc := mid(b, c)
	cd := mid(c, d)
	abc := mid(ab, bc)
	bcd := mid(bc, cd)
	m := mid(abc, bcd)
	flattenCubic(a, ab, abc, m, tol2, f, depth+1)
	f.add(m, false)
	flattenCubic(m, bcd, cd, d, tol2, f, depth+1)
}

func quadFlat(a, b, c orb.Point, tol2 float64) bool {
	m := mid(a, c)
	dx, dy := b[0]-m[0], b[1]-m[1]
	return dx*dx+dy*dy <= tol2
}

func cubicFlat(a, b, c, d orb.Point, tol2 float64) bool {
	m := mid(a, d)
	dx1, dy1 := b[0]-m[0], b[1]-m[1]
	dx2, dy2 := c[0]-m[0], c[1]-m[1]
	return dx1*dx1+dy1*dy1 <= tol2 && dx2*dx2+dy2*dy2 <= tol2
}

func mid(a, b orb.Point) orb.Point {
	return orb.Point{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
}

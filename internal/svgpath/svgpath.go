// Package svgpath parses SVG path data and resamples it into
// fixed-size point sequences.
package svgpath

import "github.com/paulmach/orb"

// An Operation is a single drawing command of a path. Arc commands
// are converted to cubic runs at parse time, so the variant set stays
// closed under affine transforms.
type Operation interface {
	isOperation()
}

// MoveTo starts a new subpath at the given point.
type MoveTo orb.Point

// LineTo draws a straight segment to the given point.
type LineTo orb.Point

// QuadTo draws a quadratic bezier: control point, then end point.
type QuadTo [2]orb.Point

// CubicTo draws a cubic bezier: two control points, then end point.
type CubicTo [3]orb.Point

// Close closes the current subpath back to its start.
type Close struct{}

func (MoveTo) isOperation()  {}
func (LineTo) isOperation()  {}
func (QuadTo) isOperation()  {}
func (CubicTo) isOperation() {}
func (Close) isOperation()   {}

// Path is an ordered sequence of drawing commands.
type Path []Operation

// Start begins a new subpath at a.
func (p *Path) Start(a orb.Point) { *p = append(*p, MoveTo(a)) }

// Line adds a straight segment to b.
func (p *Path) Line(b orb.Point) { *p = append(*p, LineTo(b)) }

// QuadBezier adds a quadratic segment with control b ending at c.
func (p *Path) QuadBezier(b, c orb.Point) { *p = append(*p, QuadTo{b, c}) }

// CubeBezier adds a cubic segment with controls b and c ending at d.
func (p *Path) CubeBezier(b, c, d orb.Point) { *p = append(*p, CubicTo{b, c, d}) }

// Stop ends the current subpath, closing it when closeLoop is set.
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// Closed reports whether the path's last subpath ends with an
// explicit close command.
func (p Path) Closed() bool {
	for i := len(p) - 1; i >= 0; i-- {
		switch p[i].(type) {
		case Close:
			return true
		case MoveTo:
			return false
		}
	}
	return false
}

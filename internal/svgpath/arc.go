package svgpath

import (
	"math"

	"github.com/paulmach/orb"
)

// maxDx is the maximum radians a cubic splice is allowed to span of
// the ellipse arc.
const maxDx = math.Pi / 8

// arc appends an elliptical arc from a to b as a run of cubic
// beziers, by the method of L. Maisonobe, "Drawing an elliptical arc
// using polylines, quadratic or cubic Bezier curves", 2003.
func (p *Path) arc(a orb.Point, rx, ry, rotDeg float64, largeArc, sweep bool, b orb.Point) {
	if a == b {
		return
	}
	if rx == 0 || ry == 0 {
		// a zero radius degrades the arc to a straight segment
		p.Line(b)
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	rotX := rotDeg * math.Pi / 180
	cx, cy := findEllipseCenter(&rx, &ry, rotX, a[0], a[1], b[0], b[1], sweep, !largeArc)

	startAngle := math.Atan2(a[1]-cy, a[0]-cx) - rotX
	endAngle := math.Atan2(b[1]-cy, b[0]-cx) - rotX
	deltaTheta := endAngle - startAngle
	arcBig := math.Abs(deltaTheta) > math.Pi

	etaStart := math.Atan2(math.Sin(startAngle)/ry, math.Cos(startAngle)/rx)
	etaEnd := math.Atan2(math.Sin(endAngle)/ry, math.Cos(endAngle)/rx)
	deltaEta := etaEnd - etaStart
	if (arcBig && !largeArc) || (!arcBig && largeArc) {
		if deltaEta < 0 {
			deltaEta += math.Pi * 2
		} else {
			deltaEta -= math.Pi * 2
		}
	}
	// needed when the ellipse center sits at the chord midpoint
	if deltaEta < 0 && sweep {
		deltaEta += math.Pi * 2
	} else if deltaEta >= 0 && !sweep {
		deltaEta -= math.Pi * 2
	}

	segs := int(math.Abs(deltaEta)/maxDx) + 1
	dEta := deltaEta / float64(segs)
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3
	lx, ly := a[0], a[1]
	sinTheta, cosTheta := math.Sin(rotX), math.Cos(rotX)
	ldx, ldy := ellipsePrime(rx, ry, sinTheta, cosTheta, etaStart)
	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float64(i)
		var px, py float64
		if i == segs {
			px, py = b[0], b[1] // exact endpoint, no roundoff
		} else {
			px, py = ellipsePointAt(rx, ry, sinTheta, cosTheta, eta, cx, cy)
		}
		dx, dy := ellipsePrime(rx, ry, sinTheta, cosTheta, eta)
		p.CubeBezier(
			orb.Point{lx + alpha*ldx, ly + alpha*ldy},
			orb.Point{px - alpha*dx, py - alpha*dy},
			orb.Point{px, py},
		)
		lx, ly, ldx, ldy = px, py, dx, dy
	}
}

// ellipsePrime gives tangent vectors for the parameterized ellipse.
func ellipsePrime(a, b, sinTheta, cosTheta, eta float64) (px, py float64) {
	bCosEta := b * math.Cos(eta)
	aSinEta := a * math.Sin(eta)
	px = -aSinEta*cosTheta - bCosEta*sinTheta
	py = -aSinEta*sinTheta + bCosEta*cosTheta
	return
}

// ellipsePointAt gives points for the parameterized ellipse.
func ellipsePointAt(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	aCosEta := a * math.Cos(eta)
	bSinEta := b * math.Sin(eta)
	px = cx + aCosEta*cosTheta - bSinEta*sinTheta
	py = cy + aCosEta*sinTheta + bSinEta*cosTheta
	return
}

// findEllipseCenter locates the ellipse center, minimally growing the
// radii when no solution exists. The problem reduces to finding the
// center of a circle through the origin and one other point, then
// transforming back.
func findEllipseCenter(ra, rb *float64, rotX, startX, startY, endX, endY float64, sweep, smallArc bool) (cx, cy float64) {
	cos, sin := math.Cos(rotX), math.Sin(rotX)

	// translate the start point to the origin, rotate the ellipse
	// x-axis onto the coordinate x-axis, scale so ra == rb
	nx, ny := endX-startX, endY-startY
	nx, ny = nx*cos+ny*sin, -nx*sin+ny*cos
	nx *= *rb / *ra

	midX, midY := nx/2, ny/2
	midlenSq := midX*midX + midY*midY

	var hr float64
	if *rb**rb < midlenSq {
		// span exceeds the ellipse width; grow the radii to fit
		nrb := math.Sqrt(midlenSq)
		if *ra == *rb {
			*ra = nrb
		} else {
			*ra = *ra * nrb / *rb
		}
		*rb = nrb
	} else {
		hr = math.Sqrt(*rb**rb-midlenSq) / math.Sqrt(midlenSq)
	}
	if (sweep && smallArc) || (!sweep && !smallArc) {
		cx = midX + midY*hr
		cy = midY - midX*hr
	} else {
		cx = midX - midY*hr
		cy = midY + midX*hr
	}

	cx *= *ra / *rb
	return cx*cos - cy*sin + startX, cx*sin + cy*cos + startY
}

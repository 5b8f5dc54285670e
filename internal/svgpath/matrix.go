package svgpath

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/tdewolff/parse/v2/strconv"
)

// Matrix is an affine transform in SVG matrix(a b c d e f) form:
// x' = a*x + c*y + e, y' = b*x + d*y + f.
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the no-op transform.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Mult composes n onto m so that n applies to points first.
func (m Matrix) Mult(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Translate appends a translation by x, y.
func (m Matrix) Translate(x, y float64) Matrix { return m.Mult(Matrix{1, 0, 0, 1, x, y}) }

// Scale appends a scale by x, y.
func (m Matrix) Scale(x, y float64) Matrix { return m.Mult(Matrix{x, 0, 0, y, 0, 0}) }

// Rotate appends a rotation by a radians about the origin.
func (m Matrix) Rotate(a float64) Matrix {
	sin, cos := math.Sin(a), math.Cos(a)
	return m.Mult(Matrix{cos, sin, -sin, cos, 0, 0})
}

// SkewX appends an x-axis skew by a radians.
func (m Matrix) SkewX(a float64) Matrix { return m.Mult(Matrix{1, 0, math.Tan(a), 1, 0, 0}) }

// SkewY appends a y-axis skew by a radians.
func (m Matrix) SkewY(a float64) Matrix { return m.Mult(Matrix{1, math.Tan(a), 0, 1, 0, 0}) }

// Apply transforms p.
func (m Matrix) Apply(p orb.Point) orb.Point {
	return orb.Point{m.A*p[0] + m.C*p[1] + m.E, m.B*p[0] + m.D*p[1] + m.F}
}

var errParamMismatch = errors.New("transform parameter mismatch")

// ParseTransform parses an SVG transform attribute value, composing
// the listed transforms left to right.
func ParseTransform(v string) (Matrix, error) {
	m := Identity
	for _, t := range strings.Split(v, ")") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || d[1] == "" {
			return Identity, fmt.Errorf("svgpath: transform %q: %w", t, errParamMismatch)
		}
		args, err := parseFloats(d[1])
		if err != nil {
			return Identity, fmt.Errorf("svgpath: transform %q: %w", t, err)
		}
		ln := len(args)
		ok := false
		switch strings.ToLower(strings.TrimSpace(d[0])) {
		case "rotate":
			if ln == 1 {
				m = m.Rotate(args[0] * math.Pi / 180)
				ok = true
			} else if ln == 3 {
				m = m.Translate(args[1], args[2]).
					Rotate(args[0] * math.Pi / 180).
					Translate(-args[1], -args[2])
				ok = true
			}
		case "translate":
			if ln == 1 {
				m = m.Translate(args[0], 0)
				ok = true
			} else if ln == 2 {
				m = m.Translate(args[0], args[1])
				ok = true
			}
		case "scale":
			if ln == 1 {
				m = m.Scale(args[0], args[0])
				ok = true
			} else if ln == 2 {
				m = m.Scale(args[0], args[1])
				ok = true
			}
		case "skewx":
			if ln == 1 {
				m = m.SkewX(args[0] * math.Pi / 180)
				ok = true
			}
		case "skewy":
			if ln == 1 {
				m = m.SkewY(args[0] * math.Pi / 180)
				ok = true
			}
		case "matrix":
			if ln == 6 {
				m = m.Mult(Matrix{args[0], args[1], args[2], args[3], args[4], args[5]})
				ok = true
			}
		}
		if !ok {
			return Identity, fmt.Errorf("svgpath: transform %q: %w", t, errParamMismatch)
		}
	}
	return m, nil
}

// parseFloats splits a comma or whitespace separated number list.
func parseFloats(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, n := strconv.ParseFloat([]byte(f))
		if n != len(f) {
			return nil, fmt.Errorf("invalid number %q", f)
		}
		out = append(out, v)
	}
	return out, nil
}

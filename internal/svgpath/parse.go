package svgpath

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/tdewolff/parse/v2/strconv"
)

// SyntaxError reports malformed path data.
type SyntaxError struct {
	Offset int // byte offset into the path string
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("svgpath: %s at offset %d", e.Msg, e.Offset)
}

// cmdLens gives the argument count of each path command.
var cmdLens = map[byte]int{
	'M': 2, 'Z': 0, 'L': 2, 'H': 1, 'V': 1,
	'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7,
}

func skipCommaSpace(b []byte) int {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == ',' || b[i] == '\n' || b[i] == '\r' || b[i] == '\t') {
		i++
	}
	return i
}

// Parse parses SVG path data into a Path. The full command set is
// accepted (M Z L H V C S Q T A, absolute and relative, implicit
// repetition); arcs come out as cubic runs. An empty or blank string
// is an empty path.
func Parse(d string) (Path, error) {
	path := []byte(d)
	i := skipCommaSpace(path)
	if i >= len(path) {
		return Path{}, nil
	}
	if path[i] < 'A' {
		return nil, &SyntaxError{Offset: i, Msg: "path data must start with a command"}
	}

	var (
		p       Path
		f       [7]float64
		q, c    orb.Point // last quad and cubic control points, for T and S
		p0, p1  orb.Point
		start   orb.Point // current subpath start, for Z
		sawMove bool
		prevCmd = byte('z')
	)
	for {
		i += skipCommaSpace(path[i:])
		if len(path) <= i {
			break
		}

		cmd := prevCmd
		repeat := true
		if cmd == 'z' || cmd == 'Z' || !(path[i] >= '0' && path[i] <= '9' || path[i] == '.' || path[i] == '-' || path[i] == '+') {
			cmd = path[i]
			repeat = false
			i++
			i += skipCommaSpace(path[i:])
		}

		CMD := cmd
		if 'a' <= cmd && cmd <= 'z' {
			CMD -= 'a' - 'A'
		}
		n, known := cmdLens[CMD]
		if !known {
			return nil, &SyntaxError{Offset: i, Msg: fmt.Sprintf("unknown command %q", cmd)}
		}
		if !sawMove && CMD != 'M' {
			return nil, &SyntaxError{Offset: i, Msg: "path data must begin with a moveto"}
		}
		for j := 0; j < n; j++ {
			if CMD == 'A' && (j == 3 || j == 4) {
				// largeArc and sweep are single flag digits
				if i < len(path) && path[i] == '1' {
					f[j] = 1
				} else if i < len(path) && path[i] == '0' {
					f[j] = 0
				} else {
					return nil, &SyntaxError{Offset: i, Msg: fmt.Sprintf("largeArc and sweep flags of %q must be 0 or 1", cmd)}
				}
				i++
			} else {
				num, w := strconv.ParseFloat(path[i:])
				if w == 0 {
					if repeat && j == 0 && i < len(path) {
						return nil, &SyntaxError{Offset: i, Msg: fmt.Sprintf("unknown command %q", path[i])}
					}
					return nil, &SyntaxError{Offset: i, Msg: fmt.Sprintf("command %q needs %d numbers", cmd, n)}
				}
				f[j] = num
				i += w
			}
			i += skipCommaSpace(path[i:])
		}

		switch cmd {
		case 'M', 'm':
			p1 = orb.Point{f[0], f[1]}
			if cmd == 'm' {
				p1 = add(p1, p0)
				cmd = 'l'
			} else {
				cmd = 'L'
			}
			sawMove = true
			start = p1
			p.Start(p1)
		case 'Z', 'z':
			p1 = start
			p.Stop(true)
		case 'L', 'l':
			p1 = orb.Point{f[0], f[1]}
			if cmd == 'l' {
				p1 = add(p1, p0)
			}
			p.Line(p1)
		case 'H', 'h':
			p1[0] = f[0]
			if cmd == 'h' {
				p1[0] += p0[0]
			}
			p1[1] = p0[1]
			p.Line(p1)
		case 'V', 'v':
			p1[1] = f[0]
			if cmd == 'v' {
				p1[1] += p0[1]
			}
			p1[0] = p0[0]
			p.Line(p1)
		case 'C', 'c':
			cp1 := orb.Point{f[0], f[1]}
			cp2 := orb.Point{f[2], f[3]}
			p1 = orb.Point{f[4], f[5]}
			if cmd == 'c' {
				cp1 = add(cp1, p0)
				cp2 = add(cp2, p0)
				p1 = add(p1, p0)
			}
			p.CubeBezier(cp1, cp2, p1)
			c = cp2
		case 'S', 's':
			cp1 := p0
			cp2 := orb.Point{f[0], f[1]}
			p1 = orb.Point{f[2], f[3]}
			if cmd == 's' {
				cp2 = add(cp2, p0)
				p1 = add(p1, p0)
			}
			if prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's' {
				cp1 = orb.Point{2*p0[0] - c[0], 2*p0[1] - c[1]}
			}
			p.CubeBezier(cp1, cp2, p1)
			c = cp2
		case 'Q', 'q':
			cp := orb.Point{f[0], f[1]}
			p1 = orb.Point{f[2], f[3]}
			if cmd == 'q' {
				cp = add(cp, p0)
				p1 = add(p1, p0)
			}
			p.QuadBezier(cp, p1)
			q = cp
		case 'T', 't':
			cp := p0
			p1 = orb.Point{f[0], f[1]}
			if cmd == 't' {
				p1 = add(p1, p0)
			}
			if prevCmd == 'Q' || prevCmd == 'q' || prevCmd == 'T' || prevCmd == 't' {
				cp = orb.Point{2*p0[0] - q[0], 2*p0[1] - q[1]}
			}
			p.QuadBezier(cp, p1)
			q = cp
		case 'A', 'a':
			p1 = orb.Point{f[5], f[6]}
			if cmd == 'a' {
				p1 = add(p1, p0)
			}
			p.arc(p0, f[0], f[1], f[2], f[3] == 1, f[4] == 1, p1)
		}
		prevCmd = cmd
		p0 = p1
	}
	return p, nil
}

func add(a, b orb.Point) orb.Point { return orb.Point{a[0] + b[0], a[1] + b[1]} }

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"
)

// cellToXY converts a map cell coordinate back to data coordinates
// using the preview extent, zoom, and pan.
func (m Model) cellToXY(cx, cy, w, h int) (float64, float64, bool) {
	if !m.hasGeo || w <= 1 || h <= 1 {
		return 0, 0, false
	}
	b := m.drawBound()
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	x := b.Min[0] + nx*(b.Max[0]-b.Min[0])
	y := b.Min[1] + ny*(b.Max[1]-b.Min[1])
	return x, y, true
}

func (m Model) renderAsciiMap(w, h int) string {
	// Plain background (no grid)
	lines := make([]string, h)
	for y := 0; y < h; y++ {
		row := make([]rune, w)
		for x := 0; x < w; x++ {
			row[x] = ' '
		}
		lines[y] = string(row)
	}
	// High-resolution braille buffer for crisp lines/edges
	br := newBrailleBuf(w, h)

	// Draw polygons (fill then edges)
	if m.showPolys && len(m.polygons) > 0 {
		for _, poly := range m.polygons {
			var ringsMic [][][2]int
			for _, ring := range poly {
				var sm [][2]int
				for _, p := range ring {
					mx, my, ok := m.screenXYMicro(p, w, h)
					if !ok {
						continue
					}
					sm = append(sm, [2]int{mx, my})
				}
				if len(sm) >= 3 {
					ringsMic = append(ringsMic, sm)
				}
			}
			if len(ringsMic) == 0 {
				continue
			}
			// fill the outer ring only; holes keep their edges
			br.fillRing(ringsMic[0])
			for _, r := range ringsMic {
				for i := 0; i < len(r); i++ {
					a := r[i]
					b := r[(i+1)%len(r)]
					br.drawLineMicro(a[0], a[1], b[0], b[1])
				}
			}
		}
	}

	// Draw points only when collection has no lines or polygons
	if m.showPoints && len(m.lines) == 0 && len(m.polygons) == 0 {
		for _, p := range m.points {
			mx, my, ok := m.screenXYMicro(p, w, h)
			if !ok {
				continue
			}
			br.setPixel(mx, my)
		}
	}

	// Draw line strings (high-res)
	if m.showLines && len(m.lines) > 0 {
		for _, ls := range m.lines {
			var prev *[2]int
			for _, p := range ls {
				mx, my, ok := m.screenXYMicro(p, w, h)
				if !ok {
					continue
				}
				if prev != nil {
					br.drawLineMicro(prev[0], prev[1], mx, my)
				}
				prev = &[2]int{mx, my}
			}
		}
	}
	// Composite braille overlay onto base lines
	braLines := br.toLines()
	for y := 0; y < h && y < len(braLines); y++ {
		if len(braLines[y]) == 0 {
			continue
		}
		base := []rune(lines[y])
		over := []rune(braLines[y])
		for x := 0; x < len(base) && x < len(over); x++ {
			if over[x] != ' ' {
				base[x] = over[x]
			}
		}
		lines[y] = string(base)
	}

	// Hover highlight: draw an orange circle at the hovered vertex cell
	if m.hovering {
		cx := m.hoverMicX / 2
		cy := m.hoverMicY / 4
		if cy >= 0 && cy < len(lines) {
			r := []rune(lines[cy])
			if cx >= 0 && cx < len(r) {
				circle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render("◯")
				// rebuild line with ANSI sequence at position cx
				pre := string(r[:cx])
				post := string(r[cx+1:])
				lines[cy] = pre + circle + post
			}
		}
	}
	return strings.Join(lines, "\n")
}

// screenXYMicro maps a data point into the 2x4 microgrid per cell
// used for braille rendering.
func (m Model) screenXYMicro(p orb.Point, w, h int) (int, int, bool) {
	if !m.hasGeo {
		return 0, 0, false
	}
	b := m.drawBound()
	nx := (p[0] - b.Min[0]) / (b.Max[0] - b.Min[0])
	ny := (p[1] - b.Min[1]) / (b.Max[1] - b.Min[1])
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + m.offsetY*4
	return sx, sy, true
}

// screenXY maps a data point to screen cell coordinates considering zoom and pan.
func (m Model) screenXY(p orb.Point, w, h int) (int, int, bool) {
	if !m.hasGeo {
		return 0, 0, false
	}
	b := m.drawBound()
	nx := (p[0] - b.Min[0]) / (b.Max[0] - b.Min[0])
	ny := (p[1] - b.Min[1]) / (b.Max[1] - b.Min[1])
	// Apply zoom around center (0.5, 0.5)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx := int(zx*float64(w-1)) + m.offsetX
	sy := int((1.0-zy)*float64(h-1)) + m.offsetY
	return sx, sy, true
}

// inspectNearest finds the vertex closest to the viewport center
// across all display layers.
func (m Model) inspectNearest() (x, y float64, ok bool) {
	w, h := m.mapW, m.mapH
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	cx, cy := w/2, h/2
	bestD := 1<<31 - 1
	var best orb.Point
	visit := func(p orb.Point) {
		sx, sy, ok2 := m.screenXY(p, w, h)
		if !ok2 {
			return
		}
		dx := sx - cx
		dy := sy - cy
		if d := dx*dx + dy*dy; d < bestD {
			bestD = d
			best = p
		}
	}
	for _, p := range m.points {
		visit(p)
	}
	for _, ls := range m.lines {
		for _, p := range ls {
			visit(p)
		}
	}
	for _, poly := range m.polygons {
		for _, ring := range poly {
			for _, p := range ring {
				visit(p)
			}
		}
	}
	if bestD == 1<<31-1 {
		return 0, 0, false
	}
	return best[0], best[1], true
}

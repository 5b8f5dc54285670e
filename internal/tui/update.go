package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"

	"geovec/internal/convert"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(28-2, m.height-1-2) // provisional; will be refined in View
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			case "enter":
				w := strings.TrimSpace(m.ta.Value())
				if w == "" {
					m.status = "paste: empty"
					return m, nil
				}
				m.ingest([]byte(w), "pasted input")
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			m.inspectPopup = ""
			m.showOut = false
		case "1":
			m.showPoints = !m.showPoints
			m.status = fmt.Sprintf("points: %v", m.showPoints)
		case "2":
			m.showLines = !m.showLines
			m.status = fmt.Sprintf("lines: %v", m.showLines)
		case "3":
			m.showPolys = !m.showPolys
			m.status = fmt.Sprintf("polys: %v", m.showPolys)
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(28-2, m.height-1-2)
			}
		case "p":
			m.pasteMode = !m.pasteMode
			if m.pasteMode {
				m.ta.SetValue("")
				m.status = "paste mode"
				m.ta.Focus()
			} else {
				m.status = "view mode"
				m.ta.Blur()
			}
		case "o":
			if m.outDoc == nil {
				m.status = "no converted output yet"
			} else {
				m.showOut = !m.showOut
				if m.showOut {
					m.status = fmt.Sprintf("output: %s (%d bytes)", m.outKind, len(m.outDoc))
				} else {
					m.status = "view mode"
				}
			}
		case "f":
			switch m.fit {
			case convert.FitWidth:
				m.fit = convert.FitHeight
			case convert.FitHeight:
				m.fit = convert.FitNone
			default:
				m.fit = convert.FitWidth
			}
			m.status = "fit: " + m.fit.String()
			m.refreshOutput()
		case "y":
			m.flipY = !m.flipY
			m.status = fmt.Sprintf("flip y: %v", m.flipY)
			m.reconvert()
		case "[":
			m.samplePoints = max(convert.MinSamplePoints, m.samplePoints-50)
			m.status = fmt.Sprintf("samples: %d", m.samplePoints)
			m.reconvert()
		case "]":
			m.samplePoints = min(convert.MaxSamplePoints, m.samplePoints+50)
			m.status = fmt.Sprintf("samples: %d", m.samplePoints)
			m.reconvert()
		case "<":
			m.precision = max(0, m.precision-1)
			m.status = fmt.Sprintf("precision: %d", m.precision)
			m.reconvert()
		case ">":
			m.precision = min(convert.MaxPrecision, m.precision+1)
			m.status = fmt.Sprintf("precision: %d", m.precision)
			m.reconvert()
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrs()
			}
		case "i":
			if m.inspectPopup != "" {
				m.inspectPopup = ""
				m.status = "view mode"
				break
			}
			x, y, ok := m.inspectNearest()
			if ok {
				name := m.rawName
				if name == "" {
					name = "<none>"
				}
				meta := []string{
					fmt.Sprintf("source: %s (%s)", name, m.srcKind),
					fmt.Sprintf("features: %d", m.featureCount()),
					fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", m.bound.Min[0], m.bound.Min[1], m.bound.Max[0], m.bound.Max[1]),
					fmt.Sprintf("counts: pts=%d ls=%d poly=%d", len(m.points), len(m.lines), len(m.polygons)),
					fmt.Sprintf("nearest: x=%.6f y=%.6f", x, y),
					fmt.Sprintf("options: n=%d prec=%d flip=%v fit=%s", m.samplePoints, m.precision, m.flipY, m.fit),
				}
				m.inspectPopup = strings.Join(meta, "\n")
				m.status = "inspect popup"
			} else {
				m.inspectPopup = "no feature nearby"
				m.status = m.inspectPopup
			}
		case "l":
			// toggle all layers
			all := m.showPoints && m.showLines && m.showPolys
			m.showPoints = !all
			m.showLines = !all
			m.showPolys = !all
			m.status = fmt.Sprintf("layers: pts=%v ls=%v poly=%v", m.showPoints, m.showLines, m.showPolys)
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up":
			m.offsetY -= 1
		case "down":
			m.offsetY += 1
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		// track hover over map area
		// compute map origin and size (must match View layout)
		sidebarWidth := 0
		if m.showSidebar {
			sidebarWidth = 28
		}
		headerHeight := 1
		footerHeight := 2
		contentHeight := m.height - headerHeight - footerHeight
		if contentHeight < 4 {
			contentHeight = 4
		}
		contentWidth := max(10, m.width)

		// Update list size with accurate content height when sidebar visible
		if m.showSidebar {
			m.l.SetSize(28-2, contentHeight-2)
		}

		mapWidth := contentWidth - sidebarWidth - 1
		if mapWidth < 10 {
			mapWidth = 10
		}
		mapHeight := contentHeight
		mapOriginX := sidebarWidth + func() int {
			if m.showSidebar {
				return 1
			}
			return 0
		}()
		mapOriginY := headerHeight
		// mouse cell within map?
		cx, cy := msg.X, msg.Y
		if cx >= mapOriginX && cx < mapOriginX+mapWidth && cy >= mapOriginY && cy < mapOriginY+mapHeight {
			m.hovering = true
			m.hoverCellX = cx - mapOriginX
			m.hoverCellY = cy - mapOriginY
			// compute data coordinates for footer
			if x, y, ok := m.cellToXY(m.hoverCellX, m.hoverCellY, mapWidth, mapHeight); ok {
				m.hoverHasGeo = true
				m.hoverX = x
				m.hoverY = y
			} else {
				m.hoverHasGeo = false
			}
			// find nearest vertex (points + line vertices + polygon vertices) using micro coords
			hxMic := m.hoverCellX * 2
			hyMic := m.hoverCellY * 4
			best := 1<<31 - 1
			bx, by := hxMic, hyMic
			consider := func(p orb.Point) {
				mx, my, ok := m.screenXYMicro(p, mapWidth, mapHeight)
				if !ok {
					return
				}
				dx := mx - hxMic
				dy := my - hyMic
				if d := dx*dx + dy*dy; d < best {
					best = d
					bx, by = mx, my
				}
			}
			for _, p := range m.points {
				consider(p)
			}
			for _, ls := range m.lines {
				for _, p := range ls {
					consider(p)
				}
			}
			for _, poly := range m.polygons {
				for _, ring := range poly {
					for _, p := range ring {
						consider(p)
					}
				}
			}
			m.hoverMicX, m.hoverMicY = bx, by
		} else {
			m.hovering = false
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

package tui

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geovec/internal/convert"
	"geovec/internal/osmconv"
)

// ingest routes raw bytes through the pipeline matching their
// detected kind, then rebuilds every view derived from the pivot
// collection. On error the previous state stays untouched.
func (m *Model) ingest(data []byte, name string) {
	kind := detectKind(data)
	var (
		fc  *geojson.FeatureCollection
		err error
	)
	switch kind {
	case srcSVG:
		fc, _, err = convert.FromSVG(data, m.transformOptions())
	case srcGeoJSON:
		fc, err = convert.DecodeFeatures(data)
	case srcOSM:
		fc, err = osmconv.Adapt(data)
	default:
		m.status = "cannot detect input format (expected svg, geojson, or osm)"
		return
	}
	if err != nil {
		m.status = fmt.Sprintf("%s error: %v", kind, err)
		return
	}
	m.raw = data
	m.rawName = name
	m.srcKind = kind
	m.fc = fc
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.showOut = false
	m.inspectPopup = ""
	m.rebuildLayers()
	m.refreshOutput()
	// prefer the heaviest layer present
	m.showPolys = len(m.polygons) > 0
	m.showLines = len(m.lines) > 0 && !m.showPolys
	m.showPoints = len(m.points) > 0 && !m.showPolys
	m.status = fmt.Sprintf("%s: %s  features=%d pts=%d ls=%d poly=%d",
		kind, name, len(m.fc.Features), len(m.points), len(m.lines), len(m.polygons))
	if m.showAttrs {
		m.refreshAttrs()
	}
}

// rebuildLayers splits the pivot into point, line, and polygon
// display layers and recomputes the preview extent.
func (m *Model) rebuildLayers() {
	m.points = nil
	m.lines = nil
	m.polygons = nil
	if m.fc != nil {
		for _, f := range m.fc.Features {
			if f != nil {
				m.addLayer(f.Geometry)
			}
		}
	}
	b, err := convert.ResolveExtent(m.fc, nil)
	if err != nil {
		m.bound = convert.FallbackExtent()
		m.hasGeo = false
		return
	}
	m.bound = b
	m.hasGeo = true
}

func (m *Model) addLayer(g orb.Geometry) {
	switch g := g.(type) {
	case orb.Point:
		m.points = append(m.points, g)
	case orb.MultiPoint:
		m.points = append(m.points, g...)
	case orb.LineString:
		m.lines = append(m.lines, g)
	case orb.MultiLineString:
		for _, ls := range g {
			m.lines = append(m.lines, ls)
		}
	case orb.Ring:
		m.polygons = append(m.polygons, orb.Polygon{g})
	case orb.Polygon:
		m.polygons = append(m.polygons, g)
	case orb.MultiPolygon:
		for _, p := range g {
			m.polygons = append(m.polygons, p)
		}
	case orb.Collection:
		for _, sub := range g {
			m.addLayer(sub)
		}
	case orb.Bound:
		m.polygons = append(m.polygons, orb.Polygon{g.ToRing()})
	}
}

func (m Model) featureCount() int {
	if m.fc == nil {
		return 0
	}
	return len(m.fc.Features)
}

func (m Model) transformOptions() convert.TransformOptions {
	return convert.TransformOptions{
		SamplePoints: m.samplePoints,
		FlipY:        m.flipY,
		Precision:    m.precision,
	}
}

func (m Model) renderOptions() convert.RenderOptions {
	opts := convert.DefaultRenderOptions()
	opts.FitTo = m.fit
	opts.Precision = m.precision
	opts.FlipY = m.flipY
	return opts
}

// refreshOutput re-serializes the opposite leg: SVG input previews
// as GeoJSON, GeoJSON and OSM input preview as SVG.
func (m *Model) refreshOutput() {
	if m.fc == nil {
		m.outDoc = nil
		return
	}
	if m.srcKind == srcSVG {
		out, err := convert.EncodeFeatures(m.fc)
		if err != nil {
			m.status = "encode error: " + err.Error()
			return
		}
		m.outDoc = out
		m.outKind = "geojson"
		return
	}
	out, _, err := convert.ToSVG(m.fc, m.renderOptions())
	if err != nil {
		m.status = "render error: " + err.Error()
		return
	}
	m.outDoc = out
	m.outKind = "svg"
}

// reconvert re-runs the active leg after an option change, keeping
// the viewport where the user left it.
func (m *Model) reconvert() {
	if m.raw == nil {
		return
	}
	if m.srcKind == srcSVG {
		fc, _, err := convert.FromSVG(m.raw, m.transformOptions())
		if err != nil {
			m.status = "svg error: " + err.Error()
			return
		}
		m.fc = fc
		m.rebuildLayers()
	}
	m.refreshOutput()
	if m.showAttrs {
		m.refreshAttrs()
	}
}

// drawBound pads degenerate extent axes so screen projection never
// divides by zero.
func (m Model) drawBound() orb.Bound {
	b := m.bound
	if b.Min[0] == b.Max[0] {
		b.Min[0]--
		b.Max[0]++
	}
	if b.Min[1] == b.Max[1] {
		b.Min[1]--
		b.Max[1]++
	}
	return b
}

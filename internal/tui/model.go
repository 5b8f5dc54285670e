package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geovec/internal/convert"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Pivot collection and the raw bytes it came from
	fc      *geojson.FeatureCollection
	srcKind sourceKind
	raw     []byte
	rawName string

	// Preview extent (true data bounds; padded at draw time)
	bound  orb.Bound
	hasGeo bool

	// Display layers split from the pivot
	points   []orb.Point
	lines    []orb.LineString
	polygons []orb.Polygon

	// Conversion options
	samplePoints int
	precision    int
	flipY        bool
	fit          convert.FitMode

	// Serialized opposite-leg document
	outDoc  []byte
	outKind string
	showOut bool

	// last rendered map size (for inspect)
	mapW int
	mapH int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showPoints bool
	showLines  bool
	showPolys  bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverX      float64
	hoverY      float64

	// attributes table
	showAttrs bool
	tbl       table.Model
}

func New() Model {
	m := Model{
		showSidebar:  false,
		helpVisible:  true,
		zoom:         1.0,
		status:       "geovec ready",
		showPoints:   true,
		showLines:    true,
		showPolys:    true,
		samplePoints: convert.DefaultSamplePoints,
		precision:    convert.MaxPrecision,
		flipY:        true,
		fit:          convert.FitWidth,
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste SVG, GeoJSON, or OSM here. Press Enter to convert; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// attributes table setup (columns are inferred per collection)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a file's data at launch.
func NewWithPath(path string) Model {
	m := New()
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

package tui

import (
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb/maptile"
	"github.com/rs/zerolog"

	"geodraw/internal/component"
	"geodraw/internal/proj"
)

type Options struct {
	Title string
	// HitTolerance is the hover highlight radius in pixels.
	HitTolerance float64
	Logger       zerolog.Logger
}

type Model struct {
	width  int
	height int

	title       string
	showSidebar bool
	helpVisible bool

	status string
	log    zerolog.Logger

	comp   *component.Component
	hitTol float64

	// mode selector
	l list.Model

	// preloaded file, fitted once the map exists
	selPath    string
	fitPending bool

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// inspect popup
	inspectPopup string

	// hover state, in map pixels
	hovering    bool
	hoverPx     [2]float64
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// left button state
	pressed bool
	dragged bool
	pressPx [2]float64
	lastPx  [2]float64

	// feature table
	showAttrs bool
	tbl       table.Model
	rowIDs    []int
}

type modeItem struct {
	mode component.Mode
}

func (i modeItem) Title() string       { return i.mode.String() }
func (i modeItem) Description() string { return "draw " + i.mode.Kind().String() }
func (i modeItem) FilterValue() string { return i.mode.String() }

// tileLoadedMsg reports one finished base tile fetch.
type tileLoadedMsg struct {
	tile maptile.Tile
	err  error
}

func New(c *component.Component, o Options) Model {
	m := Model{
		title:       o.Title,
		helpVisible: true,
		status:      "ready",
		log:         o.Logger,
		comp:        c,
		hitTol:      o.HitTolerance,
	}
	if m.title == "" {
		m.title = "geodraw"
	}
	d := list.NewDefaultDelegate()
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Drawing Type"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(false)
	var items []list.Item
	for _, mode := range component.Modes {
		items = append(items, modeItem{mode: mode})
	}
	m.l.SetItems(items)
	m.l.Select(int(c.Mode()))

	m.ta = textarea.New()
	m.ta.Placeholder = "Paste lon/lat WKT here (POINT, LINESTRING, POLYGON, MULTI*, GEOMETRYCOLLECTION). Enter adds it to the map; Esc cancels."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)

	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	return m
}

// NewWithPath preloads a file's features at launch.
func NewWithPath(c *component.Component, o Options, path string) Model {
	m := New(c, o)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// layout returns the map area in terminal cells.
func (m Model) layout() (x, y, w, h int) {
	const headerHeight, footerHeight = 1, 3
	sidebarWidth := 0
	if m.showSidebar {
		sidebarWidth = 28 + 1
	}
	w = max(10, m.width-sidebarWidth)
	h = max(4, m.height-headerHeight-footerHeight)
	return sidebarWidth, headerHeight, w, h
}

// cellToPixel maps a terminal cell to the center of its braille block.
func cellToPixel(cx, cy int) [2]float64 {
	return [2]float64{float64(cx*2) + 1, float64(cy*4) + 2}
}

// mapPixel converts a mouse position to map pixels; ok is false outside
// the map area.
func (m Model) mapPixel(mx, my int) ([2]float64, bool) {
	x, y, w, h := m.layout()
	if mx < x || mx >= x+w || my < y || my >= y+h {
		return [2]float64{}, false
	}
	return cellToPixel(mx-x, my-y), true
}

func (m Model) pixelToLonLat(px [2]float64) (lon, lat float64, ok bool) {
	if !m.comp.Mounted() {
		return 0, 0, false
	}
	c := m.comp.Map().View().PixelToCoordinate(px)
	if c[1] < -proj.HalfWorld || c[1] > proj.HalfWorld {
		return 0, 0, false
	}
	lon, lat = proj.ToLonLat(c)
	return lon, lat, true
}

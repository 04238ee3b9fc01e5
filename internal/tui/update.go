package tui

import (
	"errors"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"geodraw/internal/component"
	"geodraw/internal/geom"
	"geodraw/internal/mapview"
	"geodraw/internal/proj"
	"geodraw/internal/tile"
)

const sidebarWidth = 28

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cmd := m.resize()
		return m, cmd
	case tileLoadedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Uint32("z", uint32(msg.tile.Z)).Uint32("x", msg.tile.X).Uint32("y", msg.tile.Y).Msg("tile fetch failed")
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

// resize mounts the map into the current map area, or resizes it.
func (m *Model) resize() tea.Cmd {
	_, _, w, h := m.layout()
	m.l.SetSize(sidebarWidth-2, h-2)
	if err := m.comp.Mount(w*2, h*4); err != nil {
		m.status = err.Error()
		return nil
	}
	if m.fitPending {
		m.fitTo(m.comp.Source().BBox())
		m.fitPending = false
	}
	return m.requestTiles()
}

// requestTiles starts fetches for base tiles of the current view that are
// not cached yet.
func (m Model) requestTiles() tea.Cmd {
	if !m.comp.Mounted() {
		return nil
	}
	base := m.comp.BaseLayer()
	if !base.Visible() {
		return nil
	}
	view := m.comp.Map().View()
	todo := base.Tiles.Request(tile.Coverage(view.Extent(), tile.ZoomFor(view.Zoom())))
	cmds := make([]tea.Cmd, 0, len(todo))
	for _, t := range todo {
		layer := base.Tiles
		cmds = append(cmds, func() tea.Msg {
			return tileLoadedMsg{tile: t, err: layer.Load(t)}
		})
	}
	return tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pasteMode {
		switch msg.String() {
		case "esc":
			m.pasteMode = false
			m.ta.Blur()
			return m, nil
		case "enter":
			m.addPasted(strings.TrimSpace(m.ta.Value()))
			return m, nil
		}
		var cmd tea.Cmd
		m.ta, cmd = m.ta.Update(msg)
		return m, cmd
	}
	if m.showAttrs {
		switch msg.String() {
		case "esc", "a":
			m.showAttrs = false
			return m, nil
		case "d", "delete":
			m.deleteSelected()
			return m, nil
		case "ctrl+c", "q":
		default:
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
	}
	if m.showSidebar {
		switch msg.String() {
		case "enter":
			if it, ok := m.l.SelectedItem().(modeItem); ok {
				m.setMode(it.mode)
			}
			return m, nil
		case "up", "down", "k", "j":
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.comp.Unmount()
		return m, tea.Quit
	case "1", "2", "3":
		m.setMode(component.Modes[msg.String()[0]-'1'])
	case "tab":
		m.showSidebar = !m.showSidebar
		cmd := m.resize()
		return m, cmd
	case "enter":
		switch err := m.comp.Finish(); {
		case err == nil:
			m.status = "sketch finished"
		case errors.Is(err, mapview.ErrSketchTooShort):
			m.status = "finish: " + err.Error()
		default:
			m.status = err.Error()
		}
	case "esc":
		if m.inspectPopup != "" {
			m.inspectPopup = ""
		} else {
			m.comp.Abort()
		}
	case "backspace":
		m.comp.RemoveLastPoint()
	case "p":
		m.pasteMode = true
		m.inspectPopup = ""
		m.ta.SetValue("")
		m.ta.Focus()
		m.status = "paste mode"
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
		} else {
			m.inspect()
		}
	case "t":
		if base := m.comp.BaseLayer(); base != nil {
			base.SetVisible(!base.Visible())
			m.status = fmt.Sprintf("tiles: %v", base.Visible())
			return m, m.requestTiles()
		}
	case "v":
		if vec := m.comp.VectorLayer(); vec != nil {
			vec.SetVisible(!vec.Visible())
			m.status = fmt.Sprintf("vector: %v", vec.Visible())
		}
	case "+", "=":
		cmd := m.zoom(1)
		return m, cmd
	case "-", "_":
		cmd := m.zoom(-1)
		return m, cmd
	case "up":
		cmd := m.pan(0, -8)
		return m, cmd
	case "down":
		cmd := m.pan(0, 8)
		return m, cmd
	case "left":
		cmd := m.pan(-8, 0)
		return m, cmd
	case "right":
		cmd := m.pan(8, 0)
		return m, cmd
	}
	return m, nil
}

func (m *Model) setMode(mode component.Mode) {
	m.comp.SetMode(mode)
	m.l.Select(int(mode))
	m.status = "drawing type: " + mode.String()
}

func (m *Model) zoom(delta float64) tea.Cmd {
	if !m.comp.Mounted() {
		return nil
	}
	view := m.comp.Map().View()
	view.ZoomBy(delta)
	m.status = fmt.Sprintf("zoom: %.0f", view.Zoom())
	return m.requestTiles()
}

func (m *Model) pan(dx, dy float64) tea.Cmd {
	if !m.comp.Mounted() {
		return nil
	}
	m.comp.Map().View().Pan(dx, dy)
	return m.requestTiles()
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.comp.Mounted() {
		return m, nil
	}
	px, inside := m.mapPixel(msg.X, msg.Y)
	view := m.comp.Map().View()

	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		if !inside {
			return m, nil
		}
		delta := 1.0
		if msg.Button == tea.MouseButtonWheelDown {
			delta = -1
		}
		view.ZoomAround(delta, px)
		return m, m.requestTiles()

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if !inside {
			return m, nil
		}
		m.pressed, m.dragged = true, false
		m.pressPx, m.lastPx = px, px
		m.inspectPopup = ""
		_ = m.comp.HandlePointer(mapview.PointerDown, px)

	case msg.Action == tea.MouseActionMotion:
		m.updateHover(px, inside)
		if !inside {
			return m, nil
		}
		if !m.pressed {
			_ = m.comp.HandlePointer(mapview.PointerMove, px)
			return m, nil
		}
		if !m.dragged && math.Hypot(px[0]-m.pressPx[0], px[1]-m.pressPx[1]) > mapview.ClickTolerance {
			m.dragged = true
		}
		_ = m.comp.HandlePointer(mapview.PointerDrag, px)
		if !m.dragged {
			return m, nil
		}
		var cmd tea.Cmd
		if m.comp.Map().Editing() == nil && px != m.lastPx {
			view.Pan(m.lastPx[0]-px[0], m.lastPx[1]-px[1])
			cmd = m.requestTiles()
		}
		m.lastPx = px
		return m, cmd

	case msg.Action == tea.MouseActionRelease:
		if !m.pressed {
			return m, nil
		}
		if !inside {
			px = m.lastPx
		}
		m.pressed = false
		_ = m.comp.HandlePointer(mapview.PointerUp, px)
		if !m.dragged {
			_ = m.comp.HandlePointer(mapview.Click, px)
		}
	}
	return m, nil
}

func (m *Model) updateHover(px [2]float64, inside bool) {
	m.hovering = inside
	if !inside {
		m.hoverHasGeo = false
		return
	}
	m.hoverPx = px
	m.hoverLon, m.hoverLat, m.hoverHasGeo = m.pixelToLonLat(px)
}

func (m *Model) addPasted(wkt string) {
	if wkt == "" {
		m.status = "paste: empty"
		return
	}
	fs, err := geom.ParseWKT(wkt)
	if err != nil {
		m.status = "wkt error: " + err.Error()
		return
	}
	m.comp.AddFeatures(fs)
	m.fitTo(bboxOf(fs))
	pts, ls, poly := countKinds(fs)
	m.status = fmt.Sprintf("added WKT  counts: pts=%d ls=%d poly=%d", pts, ls, poly)
	m.pasteMode = false
	m.ta.Blur()
}

// inspect describes the feature with the vertex nearest to the pointer,
// or to the map center when the pointer is elsewhere.
func (m *Model) inspect() {
	if !m.comp.Mounted() {
		m.inspectPopup = component.ErrNotMounted.Error()
		return
	}
	view := m.comp.Map().View()
	at := m.hoverPx
	if !m.hovering {
		w, h := view.Size()
		at = [2]float64{float64(w) / 2, float64(h) / 2}
	}
	src := m.comp.Source()
	ref, v, ok := m.comp.Map().VertexAt(src, at, math.Inf(1))
	if !ok {
		m.inspectPopup = "no feature nearby"
		m.status = m.inspectPopup
		return
	}
	f, _ := src.Get(ref.FeatureID)
	lon, lat := proj.ToLonLat(v)
	meta := []string{
		fmt.Sprintf("feature: #%d %s", f.ID, f.Kind),
		fmt.Sprintf("vertices: %d", f.VertexCount()),
		fmt.Sprintf("nearest: lon=%.6f lat=%.6f", lon, lat),
	}
	if ms, err := geom.Measure(*f); err == nil {
		meta = append(meta, "measure: "+ms.Label())
	}
	b := f.BBox()
	minLon, minLat := proj.ToLonLat(proj.Coord{b.MinX, b.MinY})
	maxLon, maxLat := proj.ToLonLat(proj.Coord{b.MaxX, b.MaxY})
	meta = append(meta,
		fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", minLon, minLat, maxLon, maxLat),
		"crs: EPSG:3857",
		"wkt: "+truncate(f.WKT(), 40),
	)
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect popup"
}

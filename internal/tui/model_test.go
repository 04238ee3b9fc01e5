package tui

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb/maptile"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geodraw/internal/component"
	"geodraw/internal/config"
	"geodraw/internal/mapview"
	"geodraw/internal/proj"
	"geodraw/internal/tile"
)

type solidFetcher struct{ c color.Color }

func (f solidFetcher) Fetch(_ context.Context, _ maptile.Tile) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, tile.Size, tile.Size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: f.c}, image.Point{}, draw.Src)
	return img, nil
}

// newComponent draws at one projected unit per pixel around the origin.
func newComponent(f tile.Fetcher) *component.Component {
	return component.New(component.Options{
		View:    config.ViewConfig{Zoom: math.Log2(mapview.MaxResolution), MaxZoom: 30},
		Draw:    config.DrawConfig{Mode: "Point", SnapTolerance: 4, HitTolerance: 4},
		Fetcher: f,
		Logger:  zerolog.Nop(),
	})
}

func newModel(t *testing.T) (Model, *component.Component) {
	t.Helper()
	c := newComponent(nil)
	m, _ := update(New(c, Options{Title: "OpenLayers Map Example", HitTolerance: 4, Logger: zerolog.Nop()}), tea.WindowSizeMsg{Width: 100, Height: 30})
	require.True(t, c.Mounted())
	return m, c
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	nm, cmd := m.Update(msg)
	return nm.(Model), cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// clickCell presses and releases the left button over map cell (x, y).
func clickCell(m Model, x, y int) Model {
	mx, my, _, _ := m.layout()
	m, _ = update(m, tea.MouseMsg{X: mx + x, Y: my + y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(m, tea.MouseMsg{X: mx + x, Y: my + y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	return m
}

// runCmd executes cmd and feeds every resulting message back.
func runCmd(m Model, cmd tea.Cmd) Model {
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = runCmd(m, c)
		}
		return m
	}
	m, _ = update(m, msg)
	return m
}

func TestModel_NotMountedUntilSized(t *testing.T) {
	c := newComponent(nil)
	m := New(c, Options{Logger: zerolog.Nop()})
	assert.Equal(t, "", m.View())
	assert.False(t, c.Mounted())

	m, _ = update(m, tea.MouseMsg{X: 5, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, c.Mounted())
}

func TestModel_MountsToMapArea(t *testing.T) {
	m, c := newModel(t)
	w, h := c.Map().View().Size()
	assert.Equal(t, 200, w)
	assert.Equal(t, 26*4, h)

	out := m.View()
	assert.Contains(t, out, "OpenLayers Map Example")
	assert.Contains(t, out, "Drawing Type:")
	assert.NotContains(t, out, "Measurement:")
}

func TestModel_ModeKeys(t *testing.T) {
	m, c := newModel(t)
	for k, want := range map[string]component.Mode{"2": component.ModeLine, "3": component.ModePolygon, "1": component.ModePoint} {
		m, _ = update(m, key(k))
		assert.Equal(t, want, c.Mode())
		assert.Equal(t, want.Kind(), c.Draw().Kind())
	}
}

func TestModel_SidebarSelectsMode(t *testing.T) {
	m, c := newModel(t)
	m, _ = update(m, key("tab"))
	assert.True(t, m.showSidebar)
	w, _ := c.Map().View().Size()
	assert.Equal(t, (100-sidebarWidth-1)*2, w)

	m, _ = update(m, key("down"))
	m, _ = update(m, key("down"))
	m, _ = update(m, key("enter"))
	assert.Equal(t, component.ModePolygon, c.Mode())
}

func TestModel_ClickDropsMarker(t *testing.T) {
	m, c := newModel(t)
	m = clickCell(m, 10, 5)
	m = clickCell(m, 60, 20)
	require.Equal(t, 1, c.Source().Len())
	f := c.Source().Features()[0]
	require.NotNil(t, f.Style)

	out := m.View()
	assert.Contains(t, out, "●")
}

func TestModel_DrawLineShowsMeasurement(t *testing.T) {
	m, c := newModel(t)
	m, _ = update(m, key("2"))
	m = clickCell(m, 10, 5)
	m = clickCell(m, 40, 5)
	m, _ = update(m, key("enter"))

	ms, ok := c.Measurement()
	require.True(t, ok)
	assert.InDelta(t, 60, ms.Value, 1e-6)
	assert.Equal(t, 1, c.Source().Len())
	assert.Contains(t, m.View(), "Measurement: 60.00 square meters")
}

func TestModel_SketchEditingKeys(t *testing.T) {
	m, c := newModel(t)
	m, _ = update(m, key("3"))
	m = clickCell(m, 10, 5)
	m = clickCell(m, 40, 5)
	m, _ = update(m, key("backspace"))
	v, _, _ := c.Draw().Sketch()
	assert.Len(t, v, 1)

	m, _ = update(m, key("enter"))
	assert.Contains(t, m.status, mapview.ErrSketchTooShort.Error())

	m, _ = update(m, key("esc"))
	assert.False(t, c.Draw().Drawing())
}

func TestModel_DragPansMap(t *testing.T) {
	m, c := newModel(t)
	mx, my, _, _ := m.layout()
	before := c.Map().View().Center()
	m, _ = update(m, tea.MouseMsg{X: mx + 20, Y: my + 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(m, tea.MouseMsg{X: mx + 30, Y: my + 10, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m, _ = update(m, tea.MouseMsg{X: mx + 30, Y: my + 10, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	after := c.Map().View().Center()
	assert.InDelta(t, before[0]-20, after[0], 1e-6)
	assert.Equal(t, 0, c.Source().Len(), "a drag is not a click")
}

// wiggleClick presses over map cell (x, y), moves one cell right and
// releases there.
func wiggleClick(m Model, x, y int) Model {
	mx, my, _, _ := m.layout()
	m, _ = update(m, tea.MouseMsg{X: mx + x, Y: my + y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(m, tea.MouseMsg{X: mx + x + 1, Y: my + y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m, _ = update(m, tea.MouseMsg{X: mx + x + 1, Y: my + y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	return m
}

func TestModel_WiggleWithinToleranceIsClick(t *testing.T) {
	m, c := newModel(t)
	before := c.Map().View().Center()
	m = wiggleClick(m, 20, 10)
	m = wiggleClick(m, 40, 12)

	assert.Equal(t, before, c.Map().View().Center(), "a wiggle does not pan")
	require.Equal(t, 1, c.Source().Len())
	assert.NotNil(t, c.Source().Features()[0].Style)
	assert.False(t, m.dragged)
}

func TestModel_HoverShowsLonLat(t *testing.T) {
	m, _ := newModel(t)
	mx, my, _, _ := m.layout()
	m, _ = update(m, tea.MouseMsg{X: mx + 50, Y: my + 13, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	assert.True(t, m.hoverHasGeo)
	assert.Contains(t, m.View(), "lon=")
}

func TestModel_WheelZooms(t *testing.T) {
	m, c := newModel(t)
	mx, my, _, _ := m.layout()
	z := c.Map().View().Zoom()
	m, _ = update(m, tea.MouseMsg{X: mx + 5, Y: my + 5, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.InDelta(t, z+1, c.Map().View().Zoom(), 1e-9)
	m, _ = update(m, key("-"))
	assert.InDelta(t, z, c.Map().View().Zoom(), 1e-9)
}

func TestModel_PasteWKT(t *testing.T) {
	m, c := newModel(t)
	m, _ = update(m, key("p"))
	require.True(t, m.pasteMode)
	m.ta.SetValue("LINESTRING (0 0, 1 1)")
	m, _ = update(m, key("enter"))

	assert.False(t, m.pasteMode)
	require.Equal(t, 1, c.Source().Len())
	assert.Contains(t, m.status, "ls=1")

	m, _ = update(m, key("p"))
	m.ta.SetValue("TRIANGLE")
	m, _ = update(m, key("enter"))
	assert.True(t, m.pasteMode)
	assert.Contains(t, m.status, "wkt error")
}

func TestModel_FeatureTableDeletes(t *testing.T) {
	m, c := newModel(t)
	m, _ = update(m, key("a"))
	assert.False(t, m.showAttrs)

	m = clickCell(m, 10, 5)
	m, _ = update(m, key("a"))
	require.True(t, m.showAttrs)
	assert.Contains(t, m.View(), "Point")

	m, _ = update(m, key("d"))
	assert.Equal(t, 0, c.Source().Len())
	assert.False(t, m.showAttrs)
}

func TestModel_Inspect(t *testing.T) {
	m, c := newModel(t)
	m, _ = update(m, key("i"))
	assert.Equal(t, "no feature nearby", m.inspectPopup)

	m = clickCell(m, 50, 13)
	require.Equal(t, 1, c.Source().Len())
	m, _ = update(m, key("i"))
	assert.Contains(t, m.inspectPopup, "Point")
	assert.Contains(t, m.inspectPopup, "crs: EPSG:3857")

	m, _ = update(m, key("esc"))
	assert.Empty(t, m.inspectPopup)
}

func TestModel_LayerToggles(t *testing.T) {
	m, c := newModel(t)
	m = clickCell(m, 10, 5)
	m, _ = update(m, key("v"))
	assert.False(t, c.VectorLayer().Visible())
	assert.NotContains(t, m.View(), "●")
	m, _ = update(m, key("v"))
	assert.True(t, c.VectorLayer().Visible())
}

func TestModel_TilesRender(t *testing.T) {
	c := newComponent(solidFetcher{c: color.RGBA{R: 0xAA, G: 0xD3, B: 0xDF, A: 0xFF}})
	m, cmd := update(New(c, Options{Logger: zerolog.Nop()}), tea.WindowSizeMsg{Width: 40, Height: 12})
	require.NotNil(t, cmd)
	m = runCmd(m, cmd)

	loaded, pending, failed := c.BaseLayer().Tiles.Stats()
	assert.Positive(t, loaded)
	assert.Zero(t, pending)
	assert.Zero(t, failed)
	assert.Contains(t, m.View(), "▀")

	m, cmd = update(m, key("t"))
	assert.False(t, c.BaseLayer().Visible())
	assert.Nil(t, cmd)
	assert.NotContains(t, m.View(), "▀")
}

func TestModel_QuitUnmounts(t *testing.T) {
	m, c := newModel(t)
	_, cmd := update(m, key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.False(t, c.Mounted())
}

func TestNewWithPath_PreloadsAndFits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "route.wkt")
	require.NoError(t, os.WriteFile(path, []byte("LINESTRING (10 10, 11 11)"), 0644))

	c := newComponent(nil)
	m := NewWithPath(c, Options{Logger: zerolog.Nop()}, path)
	assert.True(t, strings.HasPrefix(m.status, "loaded: route.wkt"))

	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	require.Equal(t, 1, c.Source().Len())
	lon, lat := proj.ToLonLat(c.Map().View().Center())
	assert.InDelta(t, 10.5, lon, 1e-6)
	assert.InDelta(t, 10.5, lat, 0.01)
}

func TestNewWithPath_BadFile(t *testing.T) {
	m := NewWithPath(newComponent(nil), Options{Logger: zerolog.Nop()}, "missing.shp")
	assert.Contains(t, m.status, "load error")
}

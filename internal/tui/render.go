package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"geodraw/internal/geom"
	"geodraw/internal/mapview"
	"geodraw/internal/tile"
)

type cellStyle struct {
	fg, bg string
}

// canvas is the terminal grid of the map area. Adjacent cells with the
// same colors are rendered as one styled run.
type canvas struct {
	w, h  int
	glyph [][]rune
	style [][]cellStyle
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, glyph: make([][]rune, h), style: make([][]cellStyle, h)}
	for y := range h {
		c.glyph[y] = []rune(strings.Repeat(" ", w))
		c.style[y] = make([]cellStyle, w)
	}
	return c
}

// overlay draws r over a cell. Over a half-block tile cell the upper color
// becomes the background.
func (c *canvas) overlay(x, y int, r rune, fg string) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	st := c.style[y][x]
	if c.glyph[y][x] == '▀' {
		st.bg = st.fg
	}
	st.fg = fg
	c.glyph[y][x] = r
	c.style[y][x] = st
}

func (c *canvas) String() string {
	lines := make([]string, c.h)
	for y := range c.h {
		var sb strings.Builder
		start := 0
		for x := 1; x <= c.w; x++ {
			if x < c.w && c.style[y][x] == c.style[y][start] {
				continue
			}
			run := string(c.glyph[y][start:x])
			st := c.style[y][start]
			if st == (cellStyle{}) {
				sb.WriteString(run)
			} else {
				s := lipgloss.NewStyle()
				if st.fg != "" {
					s = s.Foreground(lipgloss.Color(st.fg))
				}
				if st.bg != "" {
					s = s.Background(lipgloss.Color(st.bg))
				}
				sb.WriteString(s.Render(run))
			}
			start = x
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// renderMap draws the layer stack, the sketch and the hover highlight into
// a w x h cell area.
func (m Model) renderMap(w, h int) string {
	cv := newCanvas(w, h)
	if !m.comp.Mounted() {
		return cv.String()
	}
	view := m.comp.Map().View()
	if base := m.comp.BaseLayer(); base.Visible() {
		paintTiles(cv, view, base.Tiles)
	}
	if vec := m.comp.VectorLayer(); vec.Visible() {
		paintFeatures(cv, view, vec.Source)
	}
	m.paintSketch(cv, view)
	m.paintHover(cv)
	return cv.String()
}

// paintTiles samples the base layer twice per cell and renders an upper
// half block with the top color in front and the bottom color behind.
func paintTiles(cv *canvas, view *mapview.View, tiles *tile.Layer) {
	z := tile.ZoomFor(view.Zoom())
	sample := func(px [2]float64) string {
		c, ok := tiles.ColorAt(view.PixelToCoordinate(px), z)
		if !ok {
			return ""
		}
		return hexColor(c)
	}
	for y := range cv.h {
		for x := range cv.w {
			top := sample([2]float64{float64(x*2) + 1, float64(y*4) + 1})
			bottom := sample([2]float64{float64(x*2) + 1, float64(y*4) + 3})
			if top == "" && bottom == "" {
				continue
			}
			cv.glyph[y][x] = '▀'
			cv.style[y][x] = cellStyle{fg: top, bg: bottom}
		}
	}
}

func paintFeatures(cv *canvas, view *mapview.View, src *geom.Source) {
	fills := newBrailleBuf(cv.w, cv.h)
	strokes := newBrailleBuf(cv.w, cv.h)
	type marker struct {
		px [2]float64
		st *geom.Style
	}
	var markers []marker
	for _, f := range src.Features() {
		switch f.Kind {
		case geom.KindPoint:
			if len(f.Rings) > 0 && len(f.Rings[0]) > 0 {
				markers = append(markers, marker{px: view.CoordinateToPixel(f.Rings[0][0]), st: f.Style})
			}
		case geom.KindLineString:
			for _, r := range f.Rings {
				strokePath(strokes, pixels(view, r))
			}
		case geom.KindPolygon:
			rings := make([][][2]float64, 0, len(f.Rings))
			for _, r := range f.Rings {
				p := pixels(view, r)
				rings = append(rings, p)
				strokePath(strokes, p)
			}
			fills.fill(rings, true)
		}
	}
	overlayBraille(cv, fills, fillColor)
	overlayBraille(cv, strokes, strokeColor)
	for _, mk := range markers {
		x, y := cellOf(mk.px)
		if mk.st != nil {
			cv.overlay(x, y, '●', mk.st.Fill)
		} else {
			cv.overlay(x, y, '•', strokeColor)
		}
	}
}

// paintSketch draws the unfinished geometry with a rubber band to the
// pointer.
func (m Model) paintSketch(cv *canvas, view *mapview.View) {
	d := m.comp.Draw()
	if d == nil {
		return
	}
	verts, cursor, hasCursor := d.Sketch()
	path := pixels(view, verts)
	if hasCursor && len(path) > 0 {
		path = append(path, view.CoordinateToPixel(cursor))
		if d.Kind() == geom.KindPolygon {
			path = append(path, path[0])
		}
	}
	buf := newBrailleBuf(cv.w, cv.h)
	strokePath(buf, path)
	for _, p := range path {
		buf.setPixel(int(math.Floor(p[0])), int(math.Floor(p[1])))
	}
	overlayBraille(cv, buf, sketchColor)
}

// paintHover marks the vertex a press would grab.
func (m Model) paintHover(cv *canvas) {
	if !m.hovering || m.comp.Source() == nil {
		return
	}
	_, at, ok := m.comp.Map().VertexAt(m.comp.Source(), m.hoverPx, m.hitTol)
	if !ok {
		return
	}
	x, y := cellOf(m.comp.Map().View().CoordinateToPixel(at))
	cv.overlay(x, y, '◯', hoverColor)
}

func strokePath(b *brailleBuf, path [][2]float64) {
	for i := 1; i < len(path); i++ {
		b.line(path[i-1], path[i])
	}
}

func overlayBraille(cv *canvas, b *brailleBuf, fg string) {
	for y := range cv.h {
		for x := range cv.w {
			if r := b.glyph(x, y); r != 0 {
				cv.overlay(x, y, r, fg)
			}
		}
	}
}

func pixels(view *mapview.View, cs []geom.Coord) [][2]float64 {
	out := make([][2]float64, len(cs))
	for i, c := range cs {
		out[i] = view.CoordinateToPixel(c)
	}
	return out
}

// cellOf returns the terminal cell holding a map pixel.
func cellOf(px [2]float64) (int, int) {
	return int(math.Floor(px[0] / 2)), int(math.Floor(px[1] / 4))
}

package mapview

import (
	"math"

	"github.com/rs/zerolog"

	"geodraw/internal/geom"
	"geodraw/internal/proj"
)

// newTestMap returns a 200x100 pixel map at one projected unit per pixel,
// centered on the origin.
func newTestMap() *Map {
	m := New(Options{
		Zoom:    math.Log2(MaxResolution),
		MaxZoom: 30,
		Logger:  zerolog.Nop(),
	})
	m.View().SetSize(200, 100)
	return m
}

func px(m *Map, c proj.Coord) [2]float64 {
	return m.View().CoordinateToPixel(c)
}

// click emits the pointer sequence of a click without drag.
func click(m *Map, c proj.Coord) {
	p := px(m, c)
	m.Dispatch(PointerDown, p)
	m.Dispatch(PointerUp, p)
	m.Dispatch(Click, p)
}

func drag(m *Map, from, to proj.Coord) {
	m.Dispatch(PointerDown, px(m, from))
	m.Dispatch(PointerDrag, px(m, to))
	m.Dispatch(PointerUp, px(m, to))
}

type recorder struct {
	events []EventType
}

func (r *recorder) HandleEvent(ev *Event) bool {
	r.events = append(r.events, ev.Type)
	return true
}

func (r *recorder) SetMap(*Map) {}

type stopper struct{ recorder }

func (s *stopper) HandleEvent(ev *Event) bool {
	s.recorder.HandleEvent(ev)
	return false
}

func coordsOf(s *geom.Source) [][]proj.Coord {
	var out [][]proj.Coord
	for _, f := range s.Features() {
		out = append(out, f.Rings[0])
	}
	return out
}

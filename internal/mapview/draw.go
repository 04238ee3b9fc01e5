package mapview

import (
	"errors"

	"geodraw/internal/geom"
	"geodraw/internal/proj"
)

var ErrSketchTooShort = errors.New("sketch has too few vertices")

// ClickTolerance is how far in pixels the pointer may travel between down
// and up for the release to still count as a click.
const ClickTolerance = 6

type DrawEventType int

const (
	DrawStart DrawEventType = iota
	DrawEnd
	DrawAbort
)

// DrawEvent carries the sketch feature at start, end or abort.
type DrawEvent struct {
	Type    DrawEventType
	Feature geom.Feature
}

// Draw builds a new geometry of one kind from clicks. Points finish on the
// first click, lines on a click on their last vertex, polygons on a click on
// their first vertex. Finished features are added to the source.
type Draw struct {
	source    *geom.Source
	kind      geom.Kind
	tolerance float64

	sketch    []proj.Coord
	cursor    proj.Coord
	hasCursor bool
	down      *[2]float64

	listeners []func(DrawEvent)
	m         *Map
}

// NewDraw finishes sketches on clicks within tolerance pixels of the
// closing vertex.
func NewDraw(source *geom.Source, kind geom.Kind, tolerance float64) *Draw {
	return &Draw{source: source, kind: kind, tolerance: tolerance}
}

func (d *Draw) Kind() geom.Kind { return d.kind }

// On registers fn for draw start, end and abort events.
func (d *Draw) On(fn func(DrawEvent)) {
	d.listeners = append(d.listeners, fn)
}

func (d *Draw) SetMap(m *Map) {
	if m == nil {
		d.sketch = nil
		d.hasCursor = false
		d.down = nil
	}
	d.m = m
}

// Drawing reports whether a sketch is in progress.
func (d *Draw) Drawing() bool { return len(d.sketch) > 0 }

// Sketch returns the placed vertices and the pointer position.
func (d *Draw) Sketch() (vertices []proj.Coord, cursor proj.Coord, hasCursor bool) {
	return d.sketch, d.cursor, d.hasCursor
}

func (d *Draw) HandleEvent(ev *Event) bool {
	switch ev.Type {
	case PointerMove, PointerDrag:
		d.cursor, d.hasCursor = ev.Coordinate, true
	case PointerDown:
		px := ev.Pixel
		d.down = &px
	case PointerUp:
		d.cursor, d.hasCursor = ev.Coordinate, true
		down := d.down
		d.down = nil
		if down != nil && dist(*down, ev.Pixel) > ClickTolerance {
			return true
		}
		d.addVertex(ev)
	}
	return true
}

func (d *Draw) addVertex(ev *Event) {
	c := ev.Coordinate
	switch d.kind {
	case geom.KindPoint:
		f := geom.NewPoint(c)
		d.emit(DrawStart, f)
		d.end(f)
		return
	case geom.KindLineString:
		if len(d.sketch) >= 2 && d.near(ev, d.sketch[len(d.sketch)-1]) {
			_ = d.Finish()
			return
		}
	case geom.KindPolygon:
		if len(d.sketch) >= 3 && d.near(ev, d.sketch[0]) {
			_ = d.Finish()
			return
		}
	}
	if len(d.sketch) > 0 && d.near(ev, d.sketch[len(d.sketch)-1]) {
		return
	}
	d.sketch = append(d.sketch, c)
	if len(d.sketch) == 1 {
		d.emit(DrawStart, d.sketchFeature())
	}
}

func (d *Draw) near(ev *Event, c proj.Coord) bool {
	return dist(ev.Coordinate, c) <= d.tolerance*ev.Map.View().Resolution()
}

// Finish completes the current line or polygon sketch.
func (d *Draw) Finish() error {
	switch {
	case d.kind == geom.KindLineString && len(d.sketch) >= 2,
		d.kind == geom.KindPolygon && len(d.sketch) >= 3:
		d.end(d.sketchFeature())
		return nil
	}
	return ErrSketchTooShort
}

// Abort drops the current sketch.
func (d *Draw) Abort() {
	if len(d.sketch) == 0 {
		return
	}
	f := d.sketchFeature()
	d.sketch = nil
	d.emit(DrawAbort, f)
}

// RemoveLastPoint undoes the last placed vertex.
func (d *Draw) RemoveLastPoint() {
	switch len(d.sketch) {
	case 0:
	case 1:
		d.Abort()
	default:
		d.sketch = d.sketch[:len(d.sketch)-1]
	}
}

func (d *Draw) sketchFeature() geom.Feature {
	switch d.kind {
	case geom.KindPolygon:
		return geom.NewPolygon(d.sketch)
	case geom.KindLineString:
		return geom.NewLineString(d.sketch)
	}
	if len(d.sketch) > 0 {
		return geom.NewPoint(d.sketch[0])
	}
	return geom.Feature{Kind: geom.KindPoint}
}

func (d *Draw) end(f geom.Feature) {
	d.sketch = nil
	d.emit(DrawEnd, f)
	d.source.Add(f)
}

func (d *Draw) emit(t DrawEventType, f geom.Feature) {
	for _, fn := range d.listeners {
		fn(DrawEvent{Type: t, Feature: f})
	}
}

package mapview

import "geodraw/internal/geom"

// Snap moves pointer coordinates onto nearby vertices or edges of the
// source's features.
type Snap struct {
	source    *geom.Source
	tolerance float64
	m         *Map
}

// NewSnap snaps within tolerance pixels.
func NewSnap(source *geom.Source, tolerance float64) *Snap {
	return &Snap{source: source, tolerance: tolerance}
}

func (s *Snap) SetMap(m *Map) { s.m = m }

func (s *Snap) HandleEvent(ev *Event) bool {
	switch ev.Type {
	case PointerMove, PointerDown, PointerDrag, PointerUp, Click:
	default:
		return true
	}
	tol := s.tolerance * ev.Map.View().Resolution()
	skip := ev.Map.Editing()
	if v, ok := nearestVertex(s.source, ev.Coordinate, tol, skip); ok {
		ev.Coordinate = v.at
	} else if seg, ok := nearestSegment(s.source, ev.Coordinate, tol, skip); ok {
		ev.Coordinate = seg.at
	} else {
		return true
	}
	ev.Pixel = ev.Map.View().CoordinateToPixel(ev.Coordinate)
	return true
}

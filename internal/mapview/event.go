package mapview

import "geodraw/internal/proj"

type EventType int

const (
	PointerMove EventType = iota
	PointerDown
	PointerDrag
	PointerUp
	Click
)

func (t EventType) String() string {
	switch t {
	case PointerMove:
		return "pointermove"
	case PointerDown:
		return "pointerdown"
	case PointerDrag:
		return "pointerdrag"
	case PointerUp:
		return "pointerup"
	case Click:
		return "click"
	}
	return "unknown"
}

// Event is a pointer event over the map. Interactions may rewrite Pixel
// and Coordinate for the handlers after them.
type Event struct {
	Type       EventType
	Pixel      [2]float64
	Coordinate proj.Coord
	Map        *Map
}

// Listener receives map events.
type Listener func(ev *Event)

// ListenerKey identifies a registration made with Map.On.
type ListenerKey struct {
	typ EventType
	id  int
}

// VertexRef points at one vertex of a stored feature.
type VertexRef struct {
	FeatureID int
	Ring      int
	Index     int
}

// Package mapview is the map surface: a view, a layer stack, pointer
// interactions and event listeners bound to one terminal canvas.
package mapview

import (
	"github.com/rs/zerolog"

	"geodraw/internal/proj"
)

// Interaction handles pointer events before map listeners see them.
// Returning false stops propagation to the remaining interactions.
type Interaction interface {
	HandleEvent(ev *Event) bool
	SetMap(m *Map)
}

// Options sets the initial view and layer stack of a Map.
type Options struct {
	Center  proj.Coord
	Zoom    float64
	MinZoom float64
	MaxZoom float64
	Layers  []Layer
	Logger  zerolog.Logger
}

type listenerEntry struct {
	id int
	fn Listener
}

type Map struct {
	view         *View
	layers       []Layer
	interactions []Interaction
	listeners    map[EventType][]listenerEntry
	nextKey      int
	editing      *VertexRef
	disposed     bool
	log          zerolog.Logger
}

func New(o Options) *Map {
	m := &Map{
		view:      NewView(o.Center, o.Zoom, o.MinZoom, o.MaxZoom),
		listeners: make(map[EventType][]listenerEntry),
		log:       o.Logger,
	}
	for _, l := range o.Layers {
		m.AddLayer(l)
	}
	return m
}

func (m *Map) View() *View { return m.view }

func (m *Map) Layers() []Layer { return m.layers }

func (m *Map) AddLayer(l Layer) {
	m.layers = append(m.layers, l)
}

func (m *Map) AddInteraction(i Interaction) {
	if m.disposed {
		return
	}
	m.interactions = append(m.interactions, i)
	i.SetMap(m)
}

// RemoveInteraction detaches i and reports whether it was attached.
func (m *Map) RemoveInteraction(i Interaction) bool {
	for idx, cur := range m.interactions {
		if cur == i {
			m.interactions = append(m.interactions[:idx], m.interactions[idx+1:]...)
			i.SetMap(nil)
			return true
		}
	}
	return false
}

// Interactions returns a copy of the attached interactions in insertion order.
func (m *Map) Interactions() []Interaction {
	return append([]Interaction(nil), m.interactions...)
}

// On registers fn for events of type t.
func (m *Map) On(t EventType, fn Listener) ListenerKey {
	m.nextKey++
	m.listeners[t] = append(m.listeners[t], listenerEntry{id: m.nextKey, fn: fn})
	return ListenerKey{typ: t, id: m.nextKey}
}

// Un removes a listener registered with On.
func (m *Map) Un(key ListenerKey) {
	ls := m.listeners[key.typ]
	for i, e := range ls {
		if e.id == key.id {
			m.listeners[key.typ] = append(ls[:i], ls[i+1:]...)
			return
		}
	}
}

// Dispatch delivers a pointer event at pixel px: listeners first, then the
// interactions from last added to first.
func (m *Map) Dispatch(t EventType, px [2]float64) {
	if m.disposed {
		return
	}
	ev := &Event{Type: t, Pixel: px, Coordinate: m.view.PixelToCoordinate(px), Map: m}
	for _, e := range append([]listenerEntry(nil), m.listeners[t]...) {
		e.fn(ev)
	}
	is := m.Interactions()
	for i := len(is) - 1; i >= 0; i-- {
		if m.disposed || !is[i].HandleEvent(ev) {
			break
		}
	}
	if t != PointerMove {
		m.log.Trace().Str("type", t.String()).Float64("x", ev.Coordinate[0]).Float64("y", ev.Coordinate[1]).Msg("map event")
	}
}

// Editing returns the vertex currently dragged by a modify interaction.
func (m *Map) Editing() *VertexRef { return m.editing }

func (m *Map) setEditing(v *VertexRef) { m.editing = v }

// Dispose releases layers, interactions and listeners. Events dispatched
// afterwards are dropped.
func (m *Map) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	for _, i := range m.interactions {
		i.SetMap(nil)
	}
	m.interactions = nil
	m.listeners = make(map[EventType][]listenerEntry)
	for _, l := range m.layers {
		l.Dispose()
	}
	m.editing = nil
	m.log.Debug().Msg("map disposed")
}

func (m *Map) Disposed() bool { return m.disposed }

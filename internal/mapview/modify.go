package mapview

import "geodraw/internal/geom"

// Modify drags existing vertices. Pressing on an edge inserts a vertex there.
type Modify struct {
	source    *geom.Source
	tolerance float64
	grabbed   *VertexRef
	onEnd     []func(f geom.Feature)
	m         *Map
}

// NewModify grabs vertices within tolerance pixels.
func NewModify(source *geom.Source, tolerance float64) *Modify {
	return &Modify{source: source, tolerance: tolerance}
}

// OnModifyEnd registers fn to run when a drag is released.
func (mo *Modify) OnModifyEnd(fn func(f geom.Feature)) {
	mo.onEnd = append(mo.onEnd, fn)
}

func (mo *Modify) SetMap(m *Map) {
	if m == nil {
		mo.release()
	}
	mo.m = m
}

// Dragging reports the grabbed vertex, if any.
func (mo *Modify) Dragging() (VertexRef, bool) {
	if mo.grabbed == nil {
		return VertexRef{}, false
	}
	return *mo.grabbed, true
}

func (mo *Modify) HandleEvent(ev *Event) bool {
	switch ev.Type {
	case PointerDown:
		return !mo.grab(ev)
	case PointerDrag:
		if mo.grabbed == nil {
			return true
		}
		mo.move(ev)
		return false
	case PointerUp:
		if mo.grabbed == nil {
			return true
		}
		f, ok := mo.move(ev)
		mo.release()
		if ok {
			for _, fn := range mo.onEnd {
				fn(f.Clone())
			}
		}
		return false
	}
	return true
}

func (mo *Modify) grab(ev *Event) bool {
	tol := mo.tolerance * ev.Map.View().Resolution()
	if v, ok := nearestVertex(mo.source, ev.Coordinate, tol, nil); ok {
		ref := v.ref
		mo.grabbed = &ref
	} else if seg, ok := nearestSegment(mo.source, ev.Coordinate, tol, nil); ok {
		f, found := mo.source.Get(seg.feature)
		if !found {
			return false
		}
		f.InsertVertex(seg.ring, seg.index, seg.at)
		mo.source.Changed()
		mo.grabbed = &VertexRef{FeatureID: seg.feature, Ring: seg.ring, Index: seg.index}
	} else {
		return false
	}
	ev.Map.setEditing(mo.grabbed)
	return true
}

func (mo *Modify) move(ev *Event) (*geom.Feature, bool) {
	f, ok := mo.source.Get(mo.grabbed.FeatureID)
	if !ok {
		mo.release()
		return nil, false
	}
	f.MoveVertex(mo.grabbed.Ring, mo.grabbed.Index, ev.Coordinate)
	mo.source.Changed()
	return f, true
}

func (mo *Modify) release() {
	mo.grabbed = nil
	if mo.m != nil {
		mo.m.setEditing(nil)
	}
}

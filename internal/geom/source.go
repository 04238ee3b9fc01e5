package geom

// Source is the mutable set of features behind the vector layer.
// It is only touched from the UI loop, so it carries no lock.
type Source struct {
	features []*Feature
	nextID   int
	revision uint64
}

func NewSource() *Source {
	return &Source{nextID: 1}
}

// Add stores a copy of f under a fresh id and returns the stored feature.
func (s *Source) Add(f Feature) *Feature {
	c := f.Clone()
	c.ID = s.nextID
	s.nextID++
	s.features = append(s.features, &c)
	s.revision++
	return &c
}

// Clear removes every feature.
func (s *Source) Clear() {
	if len(s.features) == 0 {
		return
	}
	s.features = nil
	s.revision++
}

// Remove drops the feature with the given id.
func (s *Source) Remove(id int) bool {
	for i, f := range s.features {
		if f.ID == id {
			s.features = append(s.features[:i], s.features[i+1:]...)
			s.revision++
			return true
		}
	}
	return false
}

func (s *Source) Get(id int) (*Feature, bool) {
	for _, f := range s.features {
		if f.ID == id {
			return f, true
		}
	}
	return nil, false
}

// Features returns the live feature list in insertion order.
func (s *Source) Features() []*Feature { return s.features }

func (s *Source) Len() int { return len(s.features) }

// Changed marks an in-place edit of a stored feature.
func (s *Source) Changed() { s.revision++ }

// Revision increases on every mutation.
func (s *Source) Revision() uint64 { return s.revision }

// BBox covers every feature in the source.
func (s *Source) BBox() BBox {
	b := EmptyBBox()
	for _, f := range s.features {
		fb := f.BBox()
		if fb.Empty() {
			continue
		}
		b = b.Extend(Coord{fb.MinX, fb.MinY}).Extend(Coord{fb.MaxX, fb.MaxY})
	}
	return b
}

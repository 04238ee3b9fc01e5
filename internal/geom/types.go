package geom

import "math"

// Coord is a projected x/y pair.
type Coord = [2]float64

// Kind is the shape of a feature's geometry.
type Kind int

const (
	KindPoint Kind = iota
	KindLineString
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "Point"
	case KindLineString:
		return "LineString"
	case KindPolygon:
		return "Polygon"
	}
	return "Unknown"
}

// Style overrides how a feature is drawn. Colors are lipgloss color strings.
type Style struct {
	Radius      float64
	Fill        string
	Stroke      string
	StrokeWidth float64
}

// MarkerStyle is the red pin dropped by a map click in Point mode.
var MarkerStyle = Style{Radius: 6, Fill: "#FF0000", Stroke: "#FFFFFF", StrokeWidth: 2}

// Feature is a single geometry in projected coordinates.
// Points hold one ring with one coordinate, lines one open ring,
// polygons closed rings (first outer, following holes).
type Feature struct {
	ID    int
	Kind  Kind
	Rings [][]Coord
	Style *Style
}

func NewPoint(c Coord) Feature {
	return Feature{Kind: KindPoint, Rings: [][]Coord{{c}}}
}

func NewLineString(cs []Coord) Feature {
	return Feature{Kind: KindLineString, Rings: [][]Coord{append([]Coord(nil), cs...)}}
}

// NewPolygon builds a single-ring polygon, closing the ring if needed.
func NewPolygon(ring []Coord) Feature {
	r := append([]Coord(nil), ring...)
	if len(r) > 0 && r[0] != r[len(r)-1] {
		r = append(r, r[0])
	}
	return Feature{Kind: KindPolygon, Rings: [][]Coord{r}}
}

// Clone returns a deep copy.
func (f Feature) Clone() Feature {
	out := f
	out.Rings = make([][]Coord, len(f.Rings))
	for i, r := range f.Rings {
		out.Rings[i] = append([]Coord(nil), r...)
	}
	if f.Style != nil {
		s := *f.Style
		out.Style = &s
	}
	return out
}

// Closed reports whether ring i repeats its first coordinate at the end.
func (f Feature) Closed(i int) bool {
	return f.Kind == KindPolygon && i < len(f.Rings) && len(f.Rings[i]) > 1
}

// MoveVertex sets vertex idx of ring to c. On closed rings the first and
// last vertex move together.
func (f *Feature) MoveVertex(ring, idx int, c Coord) {
	if ring < 0 || ring >= len(f.Rings) || idx < 0 || idx >= len(f.Rings[ring]) {
		return
	}
	r := f.Rings[ring]
	r[idx] = c
	if f.Closed(ring) {
		last := len(r) - 1
		if idx == 0 {
			r[last] = c
		} else if idx == last {
			r[0] = c
		}
	}
}

// InsertVertex inserts c before position idx of ring.
func (f *Feature) InsertVertex(ring, idx int, c Coord) {
	if ring < 0 || ring >= len(f.Rings) || idx < 0 || idx > len(f.Rings[ring]) {
		return
	}
	r := f.Rings[ring]
	r = append(r, Coord{})
	copy(r[idx+1:], r[idx:])
	r[idx] = c
	f.Rings[ring] = r
}

// VertexCount counts distinct vertices (closing duplicates excluded).
func (f Feature) VertexCount() int {
	n := 0
	for i, r := range f.Rings {
		n += len(r)
		if f.Closed(i) {
			n--
		}
	}
	return n
}

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Empty reports whether no coordinate was ever added.
func (b BBox) Empty() bool { return b.MinX > b.MaxX }

// EmptyBBox is the identity for Extend.
func EmptyBBox() BBox {
	return BBox{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
}

func (b BBox) Extend(c Coord) BBox {
	b.MinX = math.Min(b.MinX, c[0])
	b.MinY = math.Min(b.MinY, c[1])
	b.MaxX = math.Max(b.MaxX, c[0])
	b.MaxY = math.Max(b.MaxY, c[1])
	return b
}

// BBox returns the bounds of every feature coordinate.
func (f Feature) BBox() BBox {
	b := EmptyBBox()
	for _, r := range f.Rings {
		for _, c := range r {
			b = b.Extend(c)
		}
	}
	return b
}

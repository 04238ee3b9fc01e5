package mapview

import (
	"math"

	"geodraw/internal/geom"
	"geodraw/internal/proj"
)

type vertexHit struct {
	ref  VertexRef
	at   proj.Coord
	dist float64
}

type segmentHit struct {
	feature int
	ring    int
	index   int // insert position (end vertex of the segment)
	at      proj.Coord
	dist    float64
}

func dist(a, b proj.Coord) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}

// closestOnSegment projects p onto segment ab.
func closestOnSegment(p, a, b proj.Coord) proj.Coord {
	dx, dy := b[0]-a[0], b[1]-a[1]
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return a
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return proj.Coord{a[0] + t*dx, a[1] + t*dy}
}

// sameVertex reports whether ref names v, including the closing twin of a
// polygon ring's first vertex.
func sameVertex(f *geom.Feature, ref *VertexRef, ring, idx int) bool {
	if ref == nil || ref.FeatureID != f.ID || ref.Ring != ring {
		return false
	}
	if ref.Index == idx {
		return true
	}
	if f.Closed(ring) {
		last := len(f.Rings[ring]) - 1
		return (ref.Index == 0 && idx == last) || (ref.Index == last && idx == 0)
	}
	return false
}

// nearestVertex finds the vertex closest to p within tol, skipping skip.
func nearestVertex(src *geom.Source, p proj.Coord, tol float64, skip *VertexRef) (vertexHit, bool) {
	best := vertexHit{dist: math.Inf(1)}
	for _, f := range src.Features() {
		for ri, r := range f.Rings {
			for vi, c := range r {
				if sameVertex(f, skip, ri, vi) {
					continue
				}
				if d := dist(p, c); d <= tol && d < best.dist {
					best = vertexHit{ref: VertexRef{FeatureID: f.ID, Ring: ri, Index: vi}, at: c, dist: d}
				}
			}
		}
	}
	return best, !math.IsInf(best.dist, 1)
}

// nearestSegment finds the closest point on any line or ring edge within
// tol, skipping edges that touch skip.
func nearestSegment(src *geom.Source, p proj.Coord, tol float64, skip *VertexRef) (segmentHit, bool) {
	best := segmentHit{dist: math.Inf(1)}
	for _, f := range src.Features() {
		if f.Kind == geom.KindPoint {
			continue
		}
		for ri, r := range f.Rings {
			for i := 1; i < len(r); i++ {
				if sameVertex(f, skip, ri, i-1) || sameVertex(f, skip, ri, i) {
					continue
				}
				at := closestOnSegment(p, r[i-1], r[i])
				if d := dist(p, at); d <= tol && d < best.dist {
					best = segmentHit{feature: f.ID, ring: ri, index: i, at: at, dist: d}
				}
			}
		}
	}
	return best, !math.IsInf(best.dist, 1)
}

// VertexAt returns the stored vertex nearest to pixel px, within tol pixels.
func (m *Map) VertexAt(src *geom.Source, px [2]float64, tol float64) (VertexRef, proj.Coord, bool) {
	tol *= m.view.Resolution()
	v, ok := nearestVertex(src, m.view.PixelToCoordinate(px), tol, nil)
	return v.ref, v.at, ok
}

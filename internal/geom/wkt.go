package geom

import (
	"errors"
	"fmt"
	"strings"

	sf "github.com/peterstace/simplefeatures/geom"

	"geodraw/internal/proj"
)

var (
	ErrEmptyWKT    = errors.New("empty wkt")
	ErrNoGeometry  = errors.New("no geometries found")
	ErrUnsupported = errors.New("unsupported geometry type")
)

// ParseWKT reads lon/lat WKT and returns projected features.
// Multi-geometries and collections are flattened.
func ParseWKT(wkt string) ([]Feature, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return nil, ErrEmptyWKT
	}
	g, err := sf.UnmarshalWKT(s)
	if err != nil {
		return nil, fmt.Errorf("wkt: %w", err)
	}
	out, err := fromGeometry(g)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNoGeometry
	}
	return out, nil
}

func fromGeometry(g sf.Geometry) ([]Feature, error) {
	var out []Feature
	switch g.Type() {
	case sf.TypePoint:
		if xy, ok := g.MustAsPoint().XY(); ok {
			out = append(out, NewPoint(proj.FromLonLat(xy.X, xy.Y)))
		}
	case sf.TypeMultiPoint:
		mp := g.MustAsMultiPoint()
		for i := 0; i < mp.NumPoints(); i++ {
			if xy, ok := mp.PointN(i).XY(); ok {
				out = append(out, NewPoint(proj.FromLonLat(xy.X, xy.Y)))
			}
		}
	case sf.TypeLineString:
		if cs := seqCoords(g.MustAsLineString().Coordinates()); len(cs) > 0 {
			out = append(out, NewLineString(cs))
		}
	case sf.TypeMultiLineString:
		ml := g.MustAsMultiLineString()
		for i := 0; i < ml.NumLineStrings(); i++ {
			if cs := seqCoords(ml.LineStringN(i).Coordinates()); len(cs) > 0 {
				out = append(out, NewLineString(cs))
			}
		}
	case sf.TypePolygon:
		if f, ok := fromPolygon(g.MustAsPolygon()); ok {
			out = append(out, f)
		}
	case sf.TypeMultiPolygon:
		mp := g.MustAsMultiPolygon()
		for i := 0; i < mp.NumPolygons(); i++ {
			if f, ok := fromPolygon(mp.PolygonN(i)); ok {
				out = append(out, f)
			}
		}
	case sf.TypeGeometryCollection:
		gc := g.MustAsGeometryCollection()
		for i := 0; i < gc.NumGeometries(); i++ {
			fs, err := fromGeometry(gc.GeometryN(i))
			if err != nil {
				return nil, err
			}
			out = append(out, fs...)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, g.Type())
	}
	return out, nil
}

func fromPolygon(p sf.Polygon) (Feature, bool) {
	outer := seqCoords(p.ExteriorRing().Coordinates())
	if len(outer) < 3 {
		return Feature{}, false
	}
	f := NewPolygon(outer)
	for i := 0; i < p.NumInteriorRings(); i++ {
		hole := seqCoords(p.InteriorRingN(i).Coordinates())
		if len(hole) >= 3 {
			f.Rings = append(f.Rings, hole)
		}
	}
	return f, true
}

func seqCoords(seq sf.Sequence) []Coord {
	out := make([]Coord, 0, seq.Length())
	for i := 0; i < seq.Length(); i++ {
		xy := seq.GetXY(i)
		out = append(out, proj.FromLonLat(xy.X, xy.Y))
	}
	return out
}

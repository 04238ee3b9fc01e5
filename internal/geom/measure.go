package geom

import (
	"errors"
	"fmt"

	sf "github.com/peterstace/simplefeatures/geom"
)

type MeasureKind int

const (
	MeasureLength MeasureKind = iota
	MeasureArea
)

// Measurement is a length or area in projected units.
type Measurement struct {
	Value float64
	Kind  MeasureKind
}

// Label renders the value with two decimals. The unit always reads
// "square meters", for lengths too.
func (m Measurement) Label() string {
	return fmt.Sprintf("%.2f square meters", m.Value)
}

// ErrNotMeasurable is returned by Measure for points.
var ErrNotMeasurable = errors.New("feature has no length or area")

// Measure returns the length of a line or the area of a polygon.
// Geometries simplefeatures rejects, such as a line with one distinct
// vertex or a self-intersecting ring, return its validation error.
func Measure(f Feature) (Measurement, error) {
	switch f.Kind {
	case KindLineString:
		if len(f.Rings) == 0 {
			return Measurement{}, ErrNoGeometry
		}
		ls, err := lineString(f.Rings[0])
		if err != nil {
			return Measurement{}, fmt.Errorf("measure line: %w", err)
		}
		return Measurement{Value: ls.Length(), Kind: MeasureLength}, nil
	case KindPolygon:
		p, err := polygon(f.Rings)
		if err != nil {
			return Measurement{}, fmt.Errorf("measure polygon: %w", err)
		}
		return Measurement{Value: p.Area(), Kind: MeasureArea}, nil
	}
	return Measurement{}, ErrNotMeasurable
}

// Geometry converts the feature to a simplefeatures geometry. Features
// that fail validation come back as an empty geometry of their kind.
func (f Feature) Geometry() sf.Geometry {
	switch f.Kind {
	case KindPoint:
		if len(f.Rings) == 0 || len(f.Rings[0]) == 0 {
			return sf.NewEmptyPoint(sf.DimXY).AsGeometry()
		}
		c := f.Rings[0][0]
		p, err := sf.NewPoint(sf.Coordinates{XY: sf.XY{X: c[0], Y: c[1]}, Type: sf.DimXY})
		if err != nil {
			return sf.NewEmptyPoint(sf.DimXY).AsGeometry()
		}
		return p.AsGeometry()
	case KindLineString:
		if len(f.Rings) == 0 {
			return sf.LineString{}.AsGeometry()
		}
		ls, err := lineString(f.Rings[0])
		if err != nil {
			return sf.LineString{}.AsGeometry()
		}
		return ls.AsGeometry()
	case KindPolygon:
		p, err := polygon(f.Rings)
		if err != nil {
			return sf.Polygon{}.AsGeometry()
		}
		return p.AsGeometry()
	}
	return sf.Geometry{}
}

// WKT renders the feature as well-known text.
func (f Feature) WKT() string {
	return f.Geometry().AsText()
}

func lineString(cs []Coord) (sf.LineString, error) {
	flat := make([]float64, 0, len(cs)*2)
	for _, c := range cs {
		flat = append(flat, c[0], c[1])
	}
	return sf.NewLineString(sf.NewSequence(flat, sf.DimXY))
}

func polygon(rings [][]Coord) (sf.Polygon, error) {
	lss := make([]sf.LineString, 0, len(rings))
	for _, r := range rings {
		ls, err := lineString(r)
		if err != nil {
			return sf.Polygon{}, err
		}
		lss = append(lss, ls)
	}
	return sf.NewPolygon(lss)
}

package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasure_LineLength(t *testing.T) {
	m, err := Measure(NewLineString([]Coord{{0, 0}, {100, 0}}))
	require.NoError(t, err)
	assert.Equal(t, MeasureLength, m.Kind)
	assert.InDelta(t, 100, m.Value, 1e-9)
}

func TestMeasure_PolylineLength(t *testing.T) {
	m, err := Measure(NewLineString([]Coord{{0, 0}, {3, 4}, {3, 10}}))
	require.NoError(t, err)
	assert.InDelta(t, 11, m.Value, 1e-9)
}

func TestMeasure_UnitSquareArea(t *testing.T) {
	m, err := Measure(NewPolygon([]Coord{{0, 0}, {1, 0}, {1, 1}, {0, 1}}))
	require.NoError(t, err)
	assert.Equal(t, MeasureArea, m.Kind)
	assert.InDelta(t, 1, m.Value, 1e-9)
}

func TestMeasure_AreaIgnoresWinding(t *testing.T) {
	m, err := Measure(NewPolygon([]Coord{{0, 0}, {0, 2}, {2, 2}, {2, 0}}))
	require.NoError(t, err)
	assert.InDelta(t, 4, m.Value, 1e-9)
}

func TestMeasure_PolygonWithHole(t *testing.T) {
	f := NewPolygon([]Coord{{0, 0}, {4, 0}, {4, 4}, {0, 4}})
	f.Rings = append(f.Rings, []Coord{{1, 1}, {2, 1}, {2, 2}, {1, 2}, {1, 1}})
	m, err := Measure(f)
	require.NoError(t, err)
	assert.InDelta(t, 15, m.Value, 1e-9)
}

func TestMeasure_PointHasNone(t *testing.T) {
	_, err := Measure(NewPoint(Coord{5, 5}))
	assert.ErrorIs(t, err, ErrNotMeasurable)
}

func TestMeasure_DegenerateLineFails(t *testing.T) {
	_, err := Measure(NewLineString([]Coord{{3, 3}, {3, 3}}))
	assert.Error(t, err)
}

func TestMeasure_SelfIntersectingPolygonFails(t *testing.T) {
	_, err := Measure(NewPolygon([]Coord{{0, 0}, {2, 2}, {2, 0}, {0, 2}}))
	assert.Error(t, err)
}

func TestFeature_InvalidGeometryIsEmpty(t *testing.T) {
	g := NewLineString([]Coord{{1, 1}, {1, 1}}).Geometry()
	assert.True(t, g.IsEmpty())
	assert.Equal(t, "LINESTRING EMPTY", g.AsText())
}

func TestMeasurement_Label(t *testing.T) {
	assert.Equal(t, "100.00 square meters", Measurement{Value: 100, Kind: MeasureLength}.Label())
	assert.Equal(t, "0.33 square meters", Measurement{Value: 1.0 / 3, Kind: MeasureArea}.Label())
}

func TestFeature_WKT(t *testing.T) {
	assert.Contains(t, NewPoint(Coord{1, 2}).WKT(), "POINT")
	assert.Contains(t, NewLineString([]Coord{{0, 0}, {1, 1}}).WKT(), "LINESTRING")
	assert.Contains(t, NewPolygon([]Coord{{0, 0}, {1, 0}, {1, 1}}).WKT(), "POLYGON")
}

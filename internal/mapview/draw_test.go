package mapview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geodraw/internal/geom"
	"geodraw/internal/proj"
)

func setupDraw(kind geom.Kind) (*Map, *geom.Source, *Draw, *[]DrawEvent) {
	m := newTestMap()
	src := geom.NewSource()
	d := NewDraw(src, kind, 4)
	m.AddInteraction(d)
	var events []DrawEvent
	d.On(func(ev DrawEvent) { events = append(events, ev) })
	return m, src, d, &events
}

func TestDraw_PointFinishesOnFirstClick(t *testing.T) {
	m, src, d, events := setupDraw(geom.KindPoint)
	click(m, proj.Coord{10, 20})

	require.Len(t, *events, 2)
	assert.Equal(t, DrawStart, (*events)[0].Type)
	assert.Equal(t, DrawEnd, (*events)[1].Type)
	assert.Equal(t, geom.KindPoint, (*events)[1].Feature.Kind)
	require.Equal(t, 1, src.Len())
	assert.InDelta(t, 10, src.Features()[0].Rings[0][0][0], 1e-6)
	assert.False(t, d.Drawing())
}

func TestDraw_LineFinishesOnLastVertex(t *testing.T) {
	m, src, d, events := setupDraw(geom.KindLineString)
	click(m, proj.Coord{0, 0})
	assert.True(t, d.Drawing())
	click(m, proj.Coord{100, 0})
	assert.Equal(t, 0, src.Len())
	click(m, proj.Coord{100, 0})

	require.Equal(t, 1, src.Len())
	last := (*events)[len(*events)-1]
	assert.Equal(t, DrawEnd, last.Type)
	assert.Len(t, last.Feature.Rings[0], 2)
	assert.False(t, d.Drawing())
}

func TestDraw_PolygonFinishesOnFirstVertex(t *testing.T) {
	m, src, _, events := setupDraw(geom.KindPolygon)
	for _, c := range []proj.Coord{{0, 0}, {10, 0}, {10, 10}, {0, 0}} {
		click(m, c)
	}
	require.Equal(t, 1, src.Len())
	f := src.Features()[0]
	assert.Equal(t, geom.KindPolygon, f.Kind)
	assert.Len(t, f.Rings[0], 4)
	assert.Equal(t, f.Rings[0][0], f.Rings[0][3])
	assert.Equal(t, DrawEnd, (*events)[len(*events)-1].Type)
}

func TestDraw_PolygonNeedsThreeVertices(t *testing.T) {
	m, src, d, _ := setupDraw(geom.KindPolygon)
	click(m, proj.Coord{0, 0})
	click(m, proj.Coord{10, 0})
	click(m, proj.Coord{0, 0})
	assert.Equal(t, 0, src.Len())
	v, _, _ := d.Sketch()
	assert.Len(t, v, 3)
	assert.ErrorIs(t, NewDraw(src, geom.KindPolygon, 4).Finish(), ErrSketchTooShort)
}

func TestDraw_RepeatedClickIsIgnored(t *testing.T) {
	m, _, d, _ := setupDraw(geom.KindLineString)
	click(m, proj.Coord{0, 0})
	click(m, proj.Coord{1, 1})
	v, _, _ := d.Sketch()
	assert.Len(t, v, 1)
}

func TestDraw_FinishLine(t *testing.T) {
	m, src, d, _ := setupDraw(geom.KindLineString)
	click(m, proj.Coord{0, 0})
	assert.ErrorIs(t, d.Finish(), ErrSketchTooShort)
	click(m, proj.Coord{50, 0})
	require.NoError(t, d.Finish())
	assert.Equal(t, 1, src.Len())
}

func TestDraw_AbortAndUndo(t *testing.T) {
	m, src, d, events := setupDraw(geom.KindLineString)
	click(m, proj.Coord{0, 0})
	click(m, proj.Coord{20, 0})
	d.RemoveLastPoint()
	v, _, _ := d.Sketch()
	assert.Len(t, v, 1)

	d.RemoveLastPoint()
	assert.False(t, d.Drawing())
	assert.Equal(t, DrawAbort, (*events)[len(*events)-1].Type)

	d.Abort()
	assert.Equal(t, 0, src.Len())
}

func TestDraw_CursorTracksPointer(t *testing.T) {
	m, _, d, _ := setupDraw(geom.KindLineString)
	m.Dispatch(PointerMove, px(m, proj.Coord{5, 5}))
	_, c, ok := d.Sketch()
	require.True(t, ok)
	assert.InDelta(t, 5, c[0], 1e-6)
}

func TestDraw_DetachDropsSketch(t *testing.T) {
	m, _, d, _ := setupDraw(geom.KindPolygon)
	click(m, proj.Coord{0, 0})
	m.RemoveInteraction(d)
	assert.False(t, d.Drawing())
}

func TestDraw_SnapsToExistingVertex(t *testing.T) {
	m, src, _, _ := setupDraw(geom.KindPoint)
	src.Add(geom.NewPoint(proj.Coord{50, 0}))
	m.AddInteraction(NewSnap(src, 4))

	click(m, proj.Coord{52, 1})
	require.Equal(t, 2, src.Len())
	assert.Equal(t, proj.Coord{50, 0}, src.Features()[1].Rings[0][0])
}

func TestDraw_DragDoesNotPlaceVertex(t *testing.T) {
	m, src, d, _ := setupDraw(geom.KindPoint)
	m.Dispatch(PointerDown, px(m, proj.Coord{0, 0}))
	m.Dispatch(PointerDrag, px(m, proj.Coord{30, 0}))
	m.Dispatch(PointerUp, px(m, proj.Coord{30, 0}))
	assert.Equal(t, 0, src.Len())
	assert.False(t, d.Drawing())
}

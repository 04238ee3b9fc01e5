package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_AddAssignsIDs(t *testing.T) {
	s := NewSource()
	a := s.Add(NewPoint(Coord{0, 0}))
	b := s.Add(NewPoint(Coord{1, 1}))
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
	assert.Equal(t, 2, s.Len())

	got, ok := s.Get(2)
	require.True(t, ok)
	assert.Equal(t, Coord{1, 1}, got.Rings[0][0])
}

func TestSource_AddCopiesInput(t *testing.T) {
	s := NewSource()
	f := NewLineString([]Coord{{0, 0}, {1, 1}})
	s.Add(f)
	f.Rings[0][0] = Coord{9, 9}
	assert.Equal(t, Coord{0, 0}, s.Features()[0].Rings[0][0])
}

func TestSource_ClearAndRemove(t *testing.T) {
	s := NewSource()
	s.Add(NewPoint(Coord{0, 0}))
	b := s.Add(NewPoint(Coord{1, 1}))
	rev := s.Revision()

	assert.True(t, s.Remove(b.ID))
	assert.False(t, s.Remove(b.ID))
	assert.Greater(t, s.Revision(), rev)

	s.Clear()
	assert.Equal(t, 0, s.Len())
	rev = s.Revision()
	s.Clear()
	assert.Equal(t, rev, s.Revision())
}

func TestSource_BBox(t *testing.T) {
	s := NewSource()
	assert.True(t, s.BBox().Empty())
	s.Add(NewPoint(Coord{-5, 1}))
	s.Add(NewLineString([]Coord{{0, 0}, {2, 7}}))
	assert.Equal(t, BBox{MinX: -5, MinY: 0, MaxX: 2, MaxY: 7}, s.BBox())
}

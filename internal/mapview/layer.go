package mapview

import (
	"geodraw/internal/geom"
	"geodraw/internal/tile"
)

// Layer is one slot of the map's layer stack.
type Layer interface {
	Visible() bool
	SetVisible(bool)
	Dispose()
}

// TileLayer is the raster base layer.
type TileLayer struct {
	hidden bool
	Tiles  *tile.Layer
}

func NewTileLayer(t *tile.Layer) *TileLayer { return &TileLayer{Tiles: t} }

func (l *TileLayer) Visible() bool     { return !l.hidden && l.Tiles != nil }
func (l *TileLayer) SetVisible(v bool) { l.hidden = !v }

func (l *TileLayer) Dispose() {
	if l.Tiles != nil {
		l.Tiles.Close()
	}
}

// VectorLayer renders the features of a source.
type VectorLayer struct {
	hidden bool
	Source *geom.Source
}

func NewVectorLayer(s *geom.Source) *VectorLayer { return &VectorLayer{Source: s} }

func (l *VectorLayer) Visible() bool     { return !l.hidden }
func (l *VectorLayer) SetVisible(v bool) { l.hidden = !v }
func (l *VectorLayer) Dispose()          {}

// Package tile provides the raster base layer: slippy tile coverage for a
// view, HTTP fetching and a bounded tile cache that can be sampled per pixel.
package tile

import (
	"math"

	"github.com/paulmach/orb/maptile"

	"geodraw/internal/proj"
)

const (
	// Size is the edge of a raster tile in pixels.
	Size = 256
	// MaxZoom is the deepest tile level requested.
	MaxZoom = 19
	// maxCoverage bounds the tiles requested for one view.
	maxCoverage = 64
)

// ZoomFor picks the tile level matching a fractional view zoom.
func ZoomFor(zoom float64) maptile.Zoom {
	z := math.Round(zoom)
	if z < 0 {
		z = 0
	}
	if z > MaxZoom {
		z = MaxZoom
	}
	return maptile.Zoom(z)
}

// Coverage returns the tiles at level z intersecting a projected extent.
// Tile indices come straight from projected x/y, so extents touching the
// antimeridian keep their west and east columns.
func Coverage(e proj.Extent, z maptile.Zoom) []maptile.Tile {
	e = e.Clamp()
	if e.MinX >= e.MaxX || e.MinY >= e.MaxY {
		return nil
	}
	x0, x1 := tileSpan(e.MinX, e.MaxX, z)
	y0, y1 := tileSpan(-e.MaxY, -e.MinY, z)

	var out []maptile.Tile
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			out = append(out, maptile.New(x, y, z))
			if len(out) >= maxCoverage {
				return out
			}
		}
	}
	return out
}

// tileSpan maps a projected range to the first and last tile column it
// covers at level z. Rows use the negated y range. An upper bound on a tile
// boundary does not pull in the next tile.
func tileSpan(lo, hi float64, z maptile.Zoom) (uint32, uint32) {
	n := math.Exp2(float64(z))
	first := math.Floor((lo + proj.HalfWorld) / (2 * proj.HalfWorld) * n)
	last := math.Ceil((hi+proj.HalfWorld)/(2*proj.HalfWorld)*n) - 1
	clamp := func(i float64) uint32 { return uint32(math.Max(0, math.Min(n-1, i))) }
	return clamp(first), clamp(max(first, last))
}

// locate finds the tile and in-tile pixel holding a projected coordinate.
func locate(c proj.Coord, z maptile.Zoom) (maptile.Tile, int, int, bool) {
	world := Size * math.Exp2(float64(z))
	fx := (c[0] + proj.HalfWorld) / (2 * proj.HalfWorld) * world
	fy := (proj.HalfWorld - c[1]) / (2 * proj.HalfWorld) * world
	if fx < 0 || fy < 0 || fx >= world || fy >= world {
		return maptile.Tile{}, 0, 0, false
	}
	tx, ty := int(fx)/Size, int(fy)/Size
	return maptile.New(uint32(tx), uint32(ty), z), int(fx) - tx*Size, int(fy) - ty*Size, true
}

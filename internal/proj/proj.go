// Package proj converts between geographic longitude/latitude (EPSG:4326)
// and the map's planar display projection, Web Mercator (EPSG:3857).
package proj

import (
	"math"

	"github.com/wroge/wgs84"
)

const (
	// HalfWorld is half the width of the Web Mercator plane in meters.
	HalfWorld = 20037508.342789244
	// MaxLatitude is the latitude at which Web Mercator becomes square.
	MaxLatitude = 85.0511287798066
)

var (
	toMercator = wgs84.EPSG().Transform(4326, 3857)
	toGeodetic = wgs84.EPSG().Transform(3857, 4326)
)

// Coord is a projected x/y pair.
type Coord = [2]float64

// FromLonLat projects a longitude/latitude pair into EPSG:3857.
// Latitude is clamped to the Web Mercator limit.
func FromLonLat(lon, lat float64) Coord {
	lat = math.Max(-MaxLatitude, math.Min(MaxLatitude, lat))
	x, y, _ := toMercator(lon, lat, 0)
	return Coord{x, y}
}

// ToLonLat converts an EPSG:3857 coordinate back to longitude/latitude.
func ToLonLat(c Coord) (lon, lat float64) {
	lon, lat, _ = toGeodetic(c[0], c[1], 0)
	return lon, lat
}

// Extent is a projected bounding box.
type Extent struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether c lies inside the extent.
func (e Extent) Contains(c Coord) bool {
	return c[0] >= e.MinX && c[0] <= e.MaxX && c[1] >= e.MinY && c[1] <= e.MaxY
}

// Clamp limits the extent to the Web Mercator plane.
func (e Extent) Clamp() Extent {
	return Extent{
		MinX: math.Max(e.MinX, -HalfWorld),
		MinY: math.Max(e.MinY, -HalfWorld),
		MaxX: math.Min(e.MaxX, HalfWorld),
		MaxY: math.Min(e.MaxY, HalfWorld),
	}
}

package mapview

import (
	"math"

	"geodraw/internal/proj"
)

// MaxResolution is the zoom 0 resolution of a 256px Web Mercator tile grid.
const MaxResolution = 2 * proj.HalfWorld / 256

// View is the map's camera. Pixels are braille dots: 2x4 per terminal cell.
type View struct {
	center  proj.Coord
	zoom    float64
	minZoom float64
	maxZoom float64
	width   int
	height  int
}

func NewView(center proj.Coord, zoom, minZoom, maxZoom float64) *View {
	if maxZoom < minZoom {
		maxZoom = minZoom
	}
	v := &View{center: center, minZoom: minZoom, maxZoom: maxZoom}
	v.SetZoom(zoom)
	return v
}

func (v *View) Center() proj.Coord { return v.center }

func (v *View) SetCenter(c proj.Coord) { v.center = c }

func (v *View) Zoom() float64 { return v.zoom }

// SetZoom clamps z to the view's zoom range.
func (v *View) SetZoom(z float64) {
	v.zoom = math.Max(v.minZoom, math.Min(v.maxZoom, z))
}

// ZoomBy changes the zoom level by delta.
func (v *View) ZoomBy(delta float64) { v.SetZoom(v.zoom + delta) }

// Resolution is projected units per pixel.
func (v *View) Resolution() float64 {
	return MaxResolution / math.Exp2(v.zoom)
}

func (v *View) Size() (int, int) { return v.width, v.height }

func (v *View) SetSize(w, h int) {
	v.width, v.height = max(0, w), max(0, h)
}

func (v *View) PixelToCoordinate(px [2]float64) proj.Coord {
	r := v.Resolution()
	return proj.Coord{
		v.center[0] + (px[0]-float64(v.width)/2)*r,
		v.center[1] - (px[1]-float64(v.height)/2)*r,
	}
}

func (v *View) CoordinateToPixel(c proj.Coord) [2]float64 {
	r := v.Resolution()
	return [2]float64{
		(c[0]-v.center[0])/r + float64(v.width)/2,
		(v.center[1]-c[1])/r + float64(v.height)/2,
	}
}

// Extent is the projected area covered by the current size.
func (v *View) Extent() proj.Extent {
	r := v.Resolution()
	hw, hh := float64(v.width)/2*r, float64(v.height)/2*r
	return proj.Extent{
		MinX: v.center[0] - hw,
		MinY: v.center[1] - hh,
		MaxX: v.center[0] + hw,
		MaxY: v.center[1] + hh,
	}
}

// Pan moves the center by a pixel offset.
func (v *View) Pan(dx, dy float64) {
	r := v.Resolution()
	v.center[0] += dx * r
	v.center[1] -= dy * r
}

// ZoomAround changes the zoom by delta keeping the coordinate under pixel
// px in place.
func (v *View) ZoomAround(delta float64, px [2]float64) {
	anchor := v.PixelToCoordinate(px)
	v.ZoomBy(delta)
	after := v.PixelToCoordinate(px)
	v.center[0] += anchor[0] - after[0]
	v.center[1] += anchor[1] - after[1]
}

// Fit centers the view on e and picks the deepest zoom that shows all of
// it. An extent without area only recenters.
func (v *View) Fit(e proj.Extent) {
	v.center = proj.Coord{(e.MinX + e.MaxX) / 2, (e.MinY + e.MaxY) / 2}
	if v.width == 0 || v.height == 0 {
		return
	}
	res := math.Max((e.MaxX-e.MinX)/float64(v.width), (e.MaxY-e.MinY)/float64(v.height))
	if res <= 0 {
		return
	}
	v.SetZoom(math.Log2(MaxResolution / (res * 1.1)))
}

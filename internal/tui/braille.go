package tui

import (
	"math"
	"sort"
)

// brailleBuf is a canvas of 2x4 dots per terminal cell. One dot is one map
// pixel.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// line draws a segment in map pixels, clipped to the canvas first so far
// away vertices cost nothing.
func (b *brailleBuf) line(p0, p1 [2]float64) {
	q0, q1, ok := clip(p0, p1, float64(b.w*2), float64(b.h*4))
	if !ok {
		return
	}
	b.drawLineMicro(int(math.Floor(q0[0])), int(math.Floor(q0[1])), int(math.Floor(q1[0])), int(math.Floor(q1[1])))
}

// fill shades the inside of rings with the even-odd rule. Sparse fills set
// every other dot so outlines stay readable.
func (b *brailleBuf) fill(rings [][][2]float64, sparse bool) {
	wMic, hMic := b.w*2, b.h*4
	for yMic := 0; yMic < hMic; yMic++ {
		if sparse && yMic%2 == 1 {
			continue
		}
		y := float64(yMic) + 0.5
		var xs []float64
		for _, r := range rings {
			for i := 0; i+1 < len(r); i++ {
				a, c := r[i], r[i+1]
				if a[1] == c[1] {
					continue
				}
				if (y >= a[1] && y < c[1]) || (y >= c[1] && y < a[1]) {
					t := (y - a[1]) / (c[1] - a[1])
					xs = append(xs, a[0]+t*(c[0]-a[0]))
				}
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := max(0, int(math.Ceil(xs[i]-0.5)))
			x1 := min(wMic-1, int(math.Floor(xs[i+1]-0.5)))
			for xMic := x0; xMic <= x1; xMic++ {
				if sparse && (xMic+yMic/2)%2 == 1 {
					continue
				}
				b.setPixel(xMic, yMic)
			}
		}
	}
}

// glyph returns the braille rune of a cell, or 0 when no dot is set.
func (b *brailleBuf) glyph(x, y int) rune {
	if b.m[y][x] == 0 {
		return 0
	}
	return rune(0x2800 + int(b.m[y][x]))
}

// clip is Liang-Barsky clipping of segment p0-p1 to [0,w)x[0,h).
func clip(p0, p1 [2]float64, w, h float64) ([2]float64, [2]float64, bool) {
	dx, dy := p1[0]-p0[0], p1[1]-p0[1]
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, p0[0]},
		{dx, w - 1 - p0[0]},
		{-dy, p0[1]},
		{dy, h - 1 - p0[1]},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return p0, p1, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return p0, p1, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return p0, p1, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return [2]float64{p0[0] + t0*dx, p0[1] + t0*dy}, [2]float64{p0[0] + t1*dx, p0[1] + t1*dy}, true
}

package tui

import (
	"math"

	"shapecanvas/internal/geom"
)

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
	if cy < 0 || cy >= b.h || cx < 0 || cx >= b.w {
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

// drawPath strokes screen-space points, joining the last to the first when
// closed. Segments entirely off one side of the buffer are skipped.
func (b *brailleBuf) drawPath(pts []geom.Point, closed bool) {
	if len(pts) == 1 {
		x, y := micro(pts[0])
		b.setPixel(x, y)
		return
	}
	n := len(pts) - 1
	if closed {
		n = len(pts)
	}
	for i := 0; i < n; i++ {
		x0, y0 := micro(pts[i])
		x1, y1 := micro(pts[(i+1)%len(pts)])
		if b.offscreen(x0, y0, x1, y1) {
			continue
		}
		b.drawLineMicro(x0, y0, x1, y1)
	}
}

func (b *brailleBuf) offscreen(x0, y0, x1, y1 int) bool {
	wMic, hMic := b.w*2, b.h*4
	return (x0 < 0 && x1 < 0) || (y0 < 0 && y1 < 0) ||
		(x0 >= wMic && x1 >= wMic) || (y0 >= hMic && y1 >= hMic)
}

// micro rounds a screen point to the micro grid, saturating far-away points
// so Bresenham stays bounded.
func micro(p geom.Point) (int, int) {
	const limit = 1 << 16
	return int(math.Round(clampf(p.X, -limit, limit))), int(math.Round(clampf(p.Y, -limit, limit)))
}

// glyph returns the braille character of a cell, or a space.
func (b *brailleBuf) glyph(x, y int) string {
	mask := b.m[y][x]
	if mask == 0 {
		return " "
	}
	return string(rune(0x2800 + int(mask)))
}

// cells returns the buffer as one string per cell, ready for overlays.
func (b *brailleBuf) cells() [][]string {
	out := make([][]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]string, b.w)
		for x := 0; x < b.w; x++ {
			row[x] = b.glyph(x, y)
		}
		out[y] = row
	}
	return out
}

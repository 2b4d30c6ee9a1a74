package geom

import (
	"math"

	"shapecanvas/internal/shape"
)

// Point is re-exported so geometry callers need not import shape for plain
// coordinates.
type Point = shape.Point

const eps = 1e-9

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// BoxOf converts a shape Box into a BBox.
func BoxOf(b shape.Box) BBox {
	return BBox{MinX: b.X, MinY: b.Y, MaxX: b.X + b.Width, MaxY: b.Y + b.Height}
}

// BBoxAt returns the box of size w×h centered on c.
func BBoxAt(c Point, w, h float64) BBox {
	return BBox{MinX: c.X - w/2, MinY: c.Y - h/2, MaxX: c.X + w/2, MaxY: c.Y + h/2}
}

func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }
func (b BBox) Min() Point      { return Point{X: b.MinX, Y: b.MinY} }
func (b BBox) Max() Point      { return Point{X: b.MaxX, Y: b.MaxY} }
func (b BBox) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Box converts back to the x/y/width/height form.
func (b BBox) Box() shape.Box {
	return shape.Box{X: b.MinX, Y: b.MinY, Width: b.Width(), Height: b.Height()}
}

// Corners returns the four corners clockwise from the top-left.
func (b BBox) Corners() []Point {
	return []Point{
		{X: b.MinX, Y: b.MinY},
		{X: b.MaxX, Y: b.MinY},
		{X: b.MaxX, Y: b.MaxY},
		{X: b.MinX, Y: b.MaxY},
	}
}

func (b BBox) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Union returns the smallest box containing both.
func (b BBox) Union(o BBox) BBox {
	return BBox{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// BBoxOf returns the min/max box over pts.
func BBoxOf(pts []Point) (BBox, bool) {
	if len(pts) == 0 {
		return BBox{}, false
	}
	bbox := BBox{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		if p.X < bbox.MinX {
			bbox.MinX = p.X
		}
		if p.Y < bbox.MinY {
			bbox.MinY = p.Y
		}
		if p.X > bbox.MaxX {
			bbox.MaxX = p.X
		}
		if p.Y > bbox.MaxY {
			bbox.MaxY = p.Y
		}
	}
	return bbox, true
}

// Normalize returns the box spanned by two arbitrary corners.
func Normalize(a, b Point) BBox {
	return BBox{
		MinX: math.Min(a.X, b.X),
		MinY: math.Min(a.Y, b.Y),
		MaxX: math.Max(a.X, b.X),
		MaxY: math.Max(a.Y, b.Y),
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

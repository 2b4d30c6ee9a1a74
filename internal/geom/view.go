package geom

import "math"

// View maps world coordinates to screen coordinates:
// screen = world*Scale + (X, Y).
type View struct {
	Scale float64
	X     float64
	Y     float64
}

// Identity is the view with unit scale and no offset.
var Identity = View{Scale: 1}

func (v View) Valid() bool {
	return v.Scale > 0 && finite(v.Scale, v.X, v.Y)
}

func (v View) ToScreen(p Point) Point {
	return Point{X: p.X*v.Scale + v.X, Y: p.Y*v.Scale + v.Y}
}

func (v View) ToWorld(p Point) Point {
	if !v.Valid() {
		return p
	}
	return Point{X: (p.X - v.X) / v.Scale, Y: (p.Y - v.Y) / v.Scale}
}

// Pan shifts the view by a screen-space delta.
func (v View) Pan(d Point) View {
	v.X += d.X
	v.Y += d.Y
	return v
}

// ZoomAt multiplies the scale by factor, clamped to [lo, hi], keeping the
// world point under screen point s fixed.
func (v View) ZoomAt(s Point, factor, lo, hi float64) View {
	if !v.Valid() || factor <= 0 {
		return v
	}
	w := v.ToWorld(s)
	scale := math.Max(lo, math.Min(hi, v.Scale*factor))
	return View{Scale: scale, X: s.X - w.X*scale, Y: s.Y - w.Y*scale}
}

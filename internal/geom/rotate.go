package geom

import "math"

// RotatePoint rotates p about c by deg degrees. Positive angles turn
// clockwise on screen, where Y grows downwards.
func RotatePoint(p, c Point, deg float64) Point {
	if deg == 0 {
		return p
	}
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx, dy := p.X-c.X, p.Y-c.Y
	return Point{
		X: c.X + dx*cos - dy*sin,
		Y: c.Y + dx*sin + dy*cos,
	}
}

// RotateAll rotates every point about c.
func RotateAll(pts []Point, c Point, deg float64) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = RotatePoint(p, c, deg)
	}
	return out
}

// PointerAngle is the direction from c to p in degrees, using the same
// clockwise-positive convention as RotatePoint.
func PointerAngle(c, p Point) float64 {
	return math.Atan2(p.Y-c.Y, p.X-c.X) * 180 / math.Pi
}

// Distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

package geom

import (
	"math"

	"shapecanvas/internal/shape"
)

// PolygonSideLength is the edge length of a regular polygon. Stars report
// the edge of their outer polygon.
func PolygonSideLength(p *shape.Polygon) float64 {
	if p.Sides < 3 || p.Radius <= 0 {
		return 0
	}
	return 2 * p.Radius * math.Sin(math.Pi/float64(p.Sides))
}

// PolygonRadiusFromSideLength inverts PolygonSideLength.
func PolygonRadiusFromSideLength(length float64, sides int) float64 {
	if sides < 3 || length <= 0 {
		return 0
	}
	return length / (2 * math.Sin(math.Pi/float64(sides)))
}

// StarInnerVertex is the local position of the first inner vertex of a star.
func StarInnerVertex(p *shape.Polygon) Point {
	u := StarBisector(p)
	return Point{X: p.CX, Y: p.CY}.Add(u.Scale(math.Max(p.InnerRadius, 0)))
}

package geom

import "shapecanvas/internal/shape"

// Outline returns the world-space outline of s and whether it is closed.
func Outline(s shape.Shape) ([]Point, bool) {
	pts, closed := LocalOutline(s)
	if pts == nil {
		return nil, false
	}
	c, ok := ShapeCenter(s)
	if !ok {
		return nil, false
	}
	return RotateAll(pts, c, shape.Angle(s)), closed
}

// WorldPoints returns the editable vertices of s in world space.
func WorldPoints(s shape.Shape) []Point {
	pts := EditablePoints(s)
	if pts == nil {
		return nil
	}
	c, ok := ShapeCenter(s)
	if !ok {
		return nil
	}
	return RotateAll(pts, c, shape.Angle(s))
}

// ToLocal maps a world point into the unrotated frame of s.
func ToLocal(s shape.Shape, p Point) Point {
	c, ok := ShapeCenter(s)
	if !ok {
		return p
	}
	return RotatePoint(p, c, -shape.Angle(s))
}

// ToWorld maps a local point of s into world space.
func ToWorld(s shape.Shape, p Point) Point {
	c, ok := ShapeCenter(s)
	if !ok {
		return p
	}
	return RotatePoint(p, c, shape.Angle(s))
}

// NearOutline reports whether p lies within tol of the outline of s.
func NearOutline(s shape.Shape, p Point, tol float64) bool {
	pts, closed := Outline(s)
	hit, ok := ClosestSegment(pts, closed, p)
	return ok && hit.Dist <= tol
}

// Contains reports whether p hits s: inside a closed outline, or within tol
// of any outline.
func Contains(s shape.Shape, p Point, tol float64) bool {
	if shape.AttrsOf(s).State != shape.StateNormal {
		return false
	}
	pts, closed := Outline(s)
	if len(pts) == 0 {
		return false
	}
	if closed && insidePolygon(pts, p) {
		return true
	}
	hit, ok := ClosestSegment(pts, closed, p)
	return ok && hit.Dist <= tol
}

// insidePolygon is the even-odd ray casting test.
func insidePolygon(pts []Point, p Point) bool {
	in := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

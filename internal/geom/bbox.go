package geom

import (
	"math"

	"shapecanvas/internal/shape"
)

// BoundingBox returns the unrotated local box of s. Regular polygons report
// the square around their circumscribed circle so that the box center is the
// polygon center.
func BoundingBox(s shape.Shape) (BBox, bool) {
	switch v := s.(type) {
	case *shape.Ellipse:
		if v.RX <= eps || v.RY <= eps || !finite(v.CX, v.CY, v.RX, v.RY) {
			return BBox{}, false
		}
		return BBoxAt(Point{X: v.CX, Y: v.CY}, 2*v.RX, 2*v.RY), true
	case *shape.Polygon:
		if v.Sides < 3 || v.Radius <= eps || !finite(v.CX, v.CY, v.Radius) {
			return BBox{}, false
		}
		return BBoxAt(Point{X: v.CX, Y: v.CY}, 2*v.Radius, 2*v.Radius), true
	case *shape.Text:
		return TextBox(v)
	case shape.PointSet:
		pts, _ := shape.PointsOf(v)
		if len(pts) < 2 {
			return BBox{}, false
		}
		return BBoxOf(pts)
	case shape.Boxed:
		b, _ := shape.BoxOf(v)
		if !validBox(b) {
			return BBox{}, false
		}
		return BoxOf(b), true
	}
	return BBox{}, false
}

// ResizeBox is the local box a handle resize remaps. It matches
// BoundingBox except for regular polygons, which resize on the box of their
// vertices so that the handles drawn around them stay put.
func ResizeBox(s shape.Shape) (BBox, bool) {
	if p, ok := s.(*shape.Polygon); ok {
		if _, ok := BoundingBox(p); !ok {
			return BBox{}, false
		}
		return BBoxOf(polygonPoints(p))
	}
	return BoundingBox(s)
}

// ShapeCenter is the rotation pivot of s: the center of its local box, or the
// anchor point for text.
func ShapeCenter(s shape.Shape) (Point, bool) {
	if t, ok := s.(*shape.Text); ok {
		if _, ok := TextBox(t); !ok {
			return Point{}, false
		}
		return Point{X: t.X, Y: t.Y}, true
	}
	b, ok := BoundingBox(s)
	if !ok {
		return Point{}, false
	}
	return b.Center(), true
}

// GeometricSize is the width and height of s with its rotation ignored. It
// backs numeric size editing.
func GeometricSize(s shape.Shape) (w, h float64, ok bool) {
	b, ok := BoundingBox(s)
	if !ok {
		return 0, 0, false
	}
	return b.Width(), b.Height(), true
}

// VisualBoundingBox returns the axis-aligned box of the rotated outline of s.
// The outline is rotated about centerOverride when given, otherwise about
// ShapeCenter. Ellipses are computed exactly.
func VisualBoundingBox(s shape.Shape, centerOverride *Point) (BBox, bool) {
	c, ok := ShapeCenter(s)
	if !ok {
		return BBox{}, false
	}
	if centerOverride != nil {
		c = *centerOverride
	}
	angle := shape.Angle(s)

	if e, ok := s.(*shape.Ellipse); ok {
		sin, cos := math.Sincos(radians(angle))
		hw := math.Sqrt(e.RX*e.RX*cos*cos + e.RY*e.RY*sin*sin)
		hh := math.Sqrt(e.RX*e.RX*sin*sin + e.RY*e.RY*cos*cos)
		return BBoxAt(RotatePoint(Point{X: e.CX, Y: e.CY}, c, angle), 2*hw, 2*hh), true
	}

	pts := visualPoints(s)
	if len(pts) == 0 {
		return BBox{}, false
	}
	return BBoxOf(RotateAll(pts, c, angle))
}

func visualPoints(s shape.Shape) []Point {
	switch v := s.(type) {
	case *shape.Arc:
		b, ok := BoundingBox(v)
		if !ok {
			return nil
		}
		return b.Corners()
	case *shape.Text:
		b, ok := TextBox(v)
		if !ok {
			return nil
		}
		return b.Corners()
	case *shape.Image, *shape.Bitmap:
		b, ok := BoundingBox(v)
		if !ok {
			return nil
		}
		return b.Corners()
	}
	return EditablePoints(s)
}

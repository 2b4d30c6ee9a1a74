package geom

import (
	"math"

	"shapecanvas/internal/shape"
)

// DefaultStarRatio is the inner/outer radius ratio given to stars drawn
// without an explicit inner radius.
const DefaultStarRatio = 0.5

// Translate returns a copy of s moved by d.
func Translate(s shape.Shape, d Point) shape.Shape {
	if d == (Point{}) {
		return s
	}
	c := s.Clone()
	switch v := c.(type) {
	case *shape.Ellipse:
		v.CX += d.X
		v.CY += d.Y
	case *shape.Polygon:
		v.CX += d.X
		v.CY += d.Y
	case *shape.Text:
		v.X += d.X
		v.Y += d.Y
	case shape.PointSet:
		pts, _ := shape.PointsOf(v)
		for i := range pts {
			pts[i] = pts[i].Add(d)
		}
		return shape.WithPoints(v, pts)
	case shape.Boxed:
		b, _ := shape.BoxOf(v)
		b.X += d.X
		b.Y += d.Y
		return shape.WithBox(v, b)
	}
	return c
}

// mapper is the affine map taking one box onto another. A degenerate source
// axis is translated instead of scaled.
type mapper struct {
	from, to BBox
	sx, sy   float64
}

func newMapper(from, to BBox) mapper {
	m := mapper{from: from, to: to, sx: 1, sy: 1}
	if from.Width() > eps {
		m.sx = to.Width() / from.Width()
	}
	if from.Height() > eps {
		m.sy = to.Height() / from.Height()
	}
	return m
}

func (m mapper) apply(p Point) Point {
	x := m.to.Center().X + (p.X-m.from.Center().X)*m.sx
	y := m.to.Center().Y + (p.Y-m.from.Center().Y)*m.sy
	return Point{X: x, Y: y}
}

// Fit remaps the local geometry of s from box from onto box to. Regular
// polygons scale uniformly by the smaller factor; text moves its anchor and
// scales its font with the vertical factor.
func Fit(s shape.Shape, from, to BBox) shape.Shape {
	m := newMapper(from, to)
	c := s.Clone()
	switch v := c.(type) {
	case *shape.Ellipse:
		p := m.apply(Point{X: v.CX, Y: v.CY})
		v.CX, v.CY = p.X, p.Y
		v.RX *= math.Abs(m.sx)
		v.RY *= math.Abs(m.sy)
	case *shape.Polygon:
		p := m.apply(Point{X: v.CX, Y: v.CY})
		v.CX, v.CY = p.X, p.Y
		f := math.Min(math.Abs(m.sx), math.Abs(m.sy))
		v.Radius *= f
		v.InnerRadius *= f
	case *shape.Text:
		p := m.apply(Point{X: v.X, Y: v.Y})
		v.X, v.Y = p.X, p.Y
		v.Font.Size *= math.Abs(m.sy)
	case shape.PointSet:
		pts, _ := shape.PointsOf(v)
		for i := range pts {
			pts[i] = m.apply(pts[i])
		}
		return shape.WithPoints(v, pts)
	case shape.Boxed:
		b, _ := shape.BoxOf(v)
		r := BoxOf(b)
		return shape.WithBox(v, Normalize(m.apply(r.Min()), m.apply(r.Max())).Box())
	}
	return c
}

// FromBox sets the geometry of s so that it fills box b. It is used while
// drawing. Point collections other than lines are returned unchanged.
func FromBox(s shape.Shape, b BBox) shape.Shape {
	c := s.Clone()
	ctr := b.Center()
	switch v := c.(type) {
	case *shape.Ellipse:
		v.CX, v.CY = ctr.X, ctr.Y
		v.RX, v.RY = b.Width()/2, b.Height()/2
	case *shape.Polygon:
		v.CX, v.CY = ctr.X, ctr.Y
		v.Radius = math.Min(b.Width(), b.Height()) / 2
		if v.Star {
			v.InnerRadius = v.Radius * DefaultStarRatio
		}
	case *shape.Text:
		v.X, v.Y = ctr.X, ctr.Y
	case *shape.Line:
		v.Points = []Point{b.Min(), b.Max()}
	case shape.Boxed:
		return shape.WithBox(v, b.Box())
	}
	return c
}

// Rebase translates the local geometry of s so that rendering it rotated
// about its own center gives the same picture as rendering it rotated about
// pivot. It is applied after edits that move the center of a rotated shape.
func Rebase(s shape.Shape, pivot Point) shape.Shape {
	angle := shape.Angle(s)
	if angle == 0 {
		return s
	}
	c, ok := ShapeCenter(s)
	if !ok {
		return s
	}
	// t = (I - R)(pivot - c)
	d := pivot.Sub(c)
	t := d.Sub(RotatePoint(d, Point{}, angle))
	return Translate(s, t)
}

// ToPolyline converts a primitive into an equivalent polyline carrying the
// same id, styling and rotation. The result renders identically to s.
// Point collections, text, images and bitmaps are not converted.
func ToPolyline(s shape.Shape) (*shape.Polyline, bool) {
	if shape.IsPointCollection(s) {
		return nil, false
	}
	if _, ok := s.(shape.Rotatable); !ok {
		return nil, false
	}
	pts := EditablePoints(s)
	if len(pts) < 2 {
		return nil, false
	}
	center, ok := ShapeCenter(s)
	if !ok {
		return nil, false
	}

	p := shape.New(shape.KindPolyline).(*shape.Polyline)
	p.Attrs = shape.AttrsOf(s)
	p.Points = pts
	p.Closed = Closed(s)
	if r, ok := shape.RotationOf(s); ok {
		p.Rotation = r
	}
	if f, ok := shape.FillOf(s); ok {
		p.Fill = f
	}
	if d, ok := shape.DashOf(s); ok {
		p.Dash = d
	}
	if j, ok := shape.JoinOf(s); ok {
		p.Join.Style = j
	}
	return Rebase(p, center).(*shape.Polyline), true
}

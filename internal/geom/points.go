package geom

import (
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"shapecanvas/internal/shape"
)

const (
	// EllipseSegments is the vertex count of the polygonal ellipse used for
	// point editing. A multiple of four keeps the extreme points exact.
	EllipseSegments = 36
	// arcStep is the maximum angular distance between sampled arc points.
	arcStep = 5.0
	// curveSteps is the number of samples per cubic bezier segment.
	curveSteps = 16

	textCharWidth  = 0.6
	textLineHeight = 1.2
)

// EditablePoints returns the local, unrotated vertex list of s for point
// level editing. Point collections return a copy of their stored points;
// closed primitives synthesise their vertices. Text, images and bitmaps have
// no editable vertices and return nil, as do degenerate shapes.
func EditablePoints(s shape.Shape) []Point {
	switch v := s.(type) {
	case *shape.Line:
		return minPoints(v.Points, 2)
	case *shape.Polyline:
		return minPoints(v.Points, 2)
	case *shape.Bezier:
		return minPoints(v.Points, 2)
	case *shape.Path:
		return minPoints(v.Points, 2)
	case *shape.Rectangle:
		if !validBox(v.Box) {
			return nil
		}
		return BoxOf(v.Box).Corners()
	case *shape.Ellipse:
		return ellipsePoints(v)
	case *shape.Polygon:
		return polygonPoints(v)
	case *shape.Triangle:
		return trianglePoints(v)
	case *shape.RightTriangle:
		return rightTrianglePoints(v)
	case *shape.Rhombus:
		if !validBox(v.Box) {
			return nil
		}
		b := BoxOf(v.Box)
		c := b.Center()
		return []Point{{X: c.X, Y: b.MinY}, {X: b.MaxX, Y: c.Y}, {X: c.X, Y: b.MaxY}, {X: b.MinX, Y: c.Y}}
	case *shape.Trapezoid:
		return trapezoidPoints(v)
	case *shape.Parallelogram:
		return parallelogramPoints(v)
	case *shape.Arc:
		return arcPoints(v)
	case *shape.Text, *shape.Image, *shape.Bitmap:
		return nil
	}
	return nil
}

// Closed reports whether the outline of s joins its last vertex to its first.
func Closed(s shape.Shape) bool {
	switch v := s.(type) {
	case *shape.Line, *shape.Bezier, *shape.Path:
		return false
	case *shape.Polyline:
		return v.Closed
	case *shape.Arc:
		return v.Style != shape.ArcOpen
	}
	return true
}

func minPoints(pts []Point, n int) []Point {
	if len(pts) < n {
		return nil
	}
	return slices.Clone(pts)
}

func validBox(b shape.Box) bool {
	return b.Width > eps && b.Height > eps && finite(b.X, b.Y, b.Width, b.Height)
}

func ellipsePoints(e *shape.Ellipse) []Point {
	if e.RX <= eps || e.RY <= eps {
		return nil
	}
	pts := make([]Point, EllipseSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / EllipseSegments
		pts[i] = Point{X: e.CX + e.RX*math.Cos(a), Y: e.CY + e.RY*math.Sin(a)}
	}
	return pts
}

// PolygonVertexAngle is the direction, in degrees, of outer vertex i. The
// first vertex points straight up.
func PolygonVertexAngle(sides, i int) float64 {
	return -90 + float64(i)*360/float64(sides)
}

// StarBisector is the unit direction from the center to the first inner
// vertex of a star, in local coordinates.
func StarBisector(p *shape.Polygon) Point {
	a := radians(PolygonVertexAngle(p.Sides, 0) + 180/float64(p.Sides))
	return Point{X: math.Cos(a), Y: math.Sin(a)}
}

func polygonPoints(p *shape.Polygon) []Point {
	if p.Sides < 3 || p.Radius <= eps {
		return nil
	}
	c := Point{X: p.CX, Y: p.CY}
	out := make([]Point, 0, 2*p.Sides)
	for i := 0; i < p.Sides; i++ {
		a := radians(PolygonVertexAngle(p.Sides, i))
		out = append(out, Point{X: c.X + p.Radius*math.Cos(a), Y: c.Y + p.Radius*math.Sin(a)})
		if p.Star {
			b := a + math.Pi/float64(p.Sides)
			r := math.Max(p.InnerRadius, 0)
			out = append(out, Point{X: c.X + r*math.Cos(b), Y: c.Y + r*math.Sin(b)})
		}
	}
	return out
}

func trianglePoints(t *shape.Triangle) []Point {
	if !validBox(t.Box) {
		return nil
	}
	b := BoxOf(t.Box)
	ratio := clamp(t.ApexRatio, 0, 1)
	return []Point{
		{X: b.MinX + b.Width()*ratio, Y: b.MinY},
		{X: b.MaxX, Y: b.MaxY},
		{X: b.MinX, Y: b.MaxY},
	}
}

func rightTrianglePoints(t *shape.RightTriangle) []Point {
	if !validBox(t.Box) {
		return nil
	}
	b := BoxOf(t.Box)
	if t.RightSide == shape.SideRight {
		return []Point{{X: b.MaxX, Y: b.MinY}, {X: b.MaxX, Y: b.MaxY}, {X: b.MinX, Y: b.MaxY}}
	}
	return []Point{{X: b.MinX, Y: b.MinY}, {X: b.MaxX, Y: b.MaxY}, {X: b.MinX, Y: b.MaxY}}
}

func trapezoidPoints(t *shape.Trapezoid) []Point {
	if !validBox(t.Box) {
		return nil
	}
	b := BoxOf(t.Box)
	w := b.Width()
	return []Point{
		{X: b.MinX + w*clamp(t.LeftInset, 0, 1), Y: b.MinY},
		{X: b.MaxX - w*clamp(t.RightInset, 0, 1), Y: b.MinY},
		{X: b.MaxX, Y: b.MaxY},
		{X: b.MinX, Y: b.MaxY},
	}
}

// ParallelogramOffset is the horizontal shift of the top edge relative to
// the bottom edge. Positive values lean right.
func ParallelogramOffset(p *shape.Parallelogram) float64 {
	angle := clamp(p.SlantAngle, 1, 179)
	if math.Abs(angle-90) < eps {
		return 0
	}
	off := p.Height / math.Tan(radians(angle))
	return clamp(off, -p.Width, p.Width)
}

// ParallelogramGrip is the local position of the slant handle: the midpoint
// of the top edge. It moves by half the offset, whichever way the shape
// leans.
func ParallelogramGrip(p *shape.Parallelogram) (Point, bool) {
	if !validBox(p.Box) {
		return Point{}, false
	}
	b := BoxOf(p.Box)
	return Point{X: b.Center().X + ParallelogramOffset(p)/2, Y: b.MinY}, true
}

func parallelogramPoints(p *shape.Parallelogram) []Point {
	if !validBox(p.Box) {
		return nil
	}
	b := BoxOf(p.Box)
	off := ParallelogramOffset(p)
	if off >= 0 {
		return []Point{
			{X: b.MinX + off, Y: b.MinY},
			{X: b.MaxX, Y: b.MinY},
			{X: b.MaxX - off, Y: b.MaxY},
			{X: b.MinX, Y: b.MaxY},
		}
	}
	return []Point{
		{X: b.MinX, Y: b.MinY},
		{X: b.MaxX + off, Y: b.MinY},
		{X: b.MaxX, Y: b.MaxY},
		{X: b.MinX - off, Y: b.MaxY},
	}
}

// ArcPoint returns the local point at angle deg on the ellipse inscribed in
// the arc's box.
func ArcPoint(a *shape.Arc, deg float64) Point {
	b := BoxOf(a.Box)
	c := b.Center()
	rad := radians(deg)
	return Point{X: c.X + b.Width()/2*math.Cos(rad), Y: c.Y - b.Height()/2*math.Sin(rad)}
}

// ArcAngle is the inverse of ArcPoint for a local point p.
func ArcAngle(a *shape.Arc, p Point) float64 {
	b := BoxOf(a.Box)
	c := b.Center()
	rx, ry := b.Width()/2, b.Height()/2
	if rx <= eps || ry <= eps {
		return 0
	}
	return shape.NormalizeAngle(degrees(math.Atan2(-(p.Y-c.Y)/ry, (p.X-c.X)/rx)))
}

func arcPoints(a *shape.Arc) []Point {
	if !validBox(a.Box) {
		return nil
	}
	n := int(math.Ceil(math.Abs(a.Extent)/arcStep)) + 1
	if n < 2 {
		n = 2
	}
	pts := make([]Point, 0, n+1)
	for i := 0; i < n; i++ {
		pts = append(pts, ArcPoint(a, a.Start+a.Extent*float64(i)/float64(n-1)))
	}
	if a.Style == shape.ArcPieslice {
		pts = append(pts, BoxOf(a.Box).Center())
	}
	return pts
}

// TextBox estimates the unrotated box of a text shape from its font size.
func TextBox(t *shape.Text) (BBox, bool) {
	if t.Text == "" || t.Font.Size <= eps {
		return BBox{}, false
	}
	lines := strings.Split(t.Text, "\n")
	cols := 0
	for _, l := range lines {
		cols = max(cols, utf8.RuneCountInString(l))
	}
	w := math.Max(float64(cols), 1) * t.Font.Size * textCharWidth
	h := float64(len(lines)) * t.Font.Size * textLineHeight
	x, y := t.X, t.Y
	switch t.Anchor {
	case shape.AnchorNW, shape.AnchorW, shape.AnchorSW:
	case shape.AnchorNE, shape.AnchorE, shape.AnchorSE:
		x -= w
	default:
		x -= w / 2
	}
	switch t.Anchor {
	case shape.AnchorNW, shape.AnchorN, shape.AnchorNE:
	case shape.AnchorSW, shape.AnchorS, shape.AnchorSE:
		y -= h
	default:
		y -= h / 2
	}
	return BBox{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}, true
}

// LocalOutline returns the unrotated outline of s, flattening curves, and
// whether it is closed.
func LocalOutline(s shape.Shape) ([]Point, bool) {
	switch v := s.(type) {
	case *shape.Ellipse:
		if v.RX <= eps || v.RY <= eps {
			return nil, false
		}
		pts := make([]Point, 72)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / 72
			pts[i] = Point{X: v.CX + v.RX*math.Cos(a), Y: v.CY + v.RY*math.Sin(a)}
		}
		return pts, true
	case *shape.Bezier:
		return flattenBezier(v.Points), false
	case *shape.Text:
		b, ok := TextBox(v)
		if !ok {
			return nil, false
		}
		return b.Corners(), true
	case *shape.Image, *shape.Bitmap:
		b, ok := BoundingBox(s)
		if !ok {
			return nil, false
		}
		return b.Corners(), true
	}
	pts := EditablePoints(s)
	if pts == nil {
		return nil, false
	}
	return pts, Closed(s)
}

// flattenBezier samples an anchor, control, control, anchor chain. Trailing
// points that do not complete a segment are joined with straight lines.
func flattenBezier(pts []Point) []Point {
	if len(pts) < 2 {
		return nil
	}
	if len(pts) < 4 {
		return slices.Clone(pts)
	}
	out := []Point{pts[0]}
	i := 0
	for ; i+3 < len(pts); i += 3 {
		p0, p1, p2, p3 := pts[i], pts[i+1], pts[i+2], pts[i+3]
		for s := 1; s <= curveSteps; s++ {
			t := float64(s) / curveSteps
			u := 1 - t
			out = append(out, Point{
				X: u*u*u*p0.X + 3*u*u*t*p1.X + 3*u*t*t*p2.X + t*t*t*p3.X,
				Y: u*u*u*p0.Y + 3*u*u*t*p1.Y + 3*u*t*t*p2.Y + t*t*t*p3.Y,
			})
		}
	}
	out = append(out, pts[i+1:]...)
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

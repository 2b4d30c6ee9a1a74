package action

import (
	"math"

	"shapecanvas/internal/geom"
	"shapecanvas/internal/shape"
)

// Drawing creates a shape of a tool kind, spanning from the press point to
// the pointer. Freehand paths accumulate every sample instead.
type Drawing struct {
	snapshot
	start geom.Point
	path  []geom.Point
}

// NewDrawing starts a new shape of kind at start. Unknown kinds report
// false.
func NewDrawing(kind shape.Kind, start geom.Point) (*Drawing, bool) {
	s := shape.New(kind)
	if s == nil {
		return nil, false
	}
	d := &Drawing{start: start}
	switch s.(type) {
	case *shape.Path:
		d.path = []geom.Point{start}
		s = shape.WithPoints(s, d.path)
	case *shape.Text:
		s = geom.FromBox(s, geom.BBoxAt(start, 0, 0))
	case shape.PointSet:
		s = shape.WithPoints(s, []geom.Point{start, start})
	default:
		s = geom.FromBox(s, geom.BBoxAt(start, 0, 0))
	}
	d.snapshot = newSnapshot(s)
	return d, true
}

func (*Drawing) Kind() Kind { return KindDrawing }

func (d *Drawing) Update(in Input) Result {
	p := in.World
	switch d.initial.(type) {
	case *shape.Text:
		return d.current
	case *shape.Path:
		if last := d.path[len(d.path)-1]; last != p {
			d.path = append(d.path, p)
		}
		return d.emit(shape.WithPoints(d.initial, d.path))
	case *shape.Bezier:
		return d.emit(shape.WithPoints(d.initial, []geom.Point{
			d.start, d.start.Lerp(p, 1.0/3), d.start.Lerp(p, 2.0/3), p,
		}))
	case shape.PointSet:
		return d.emit(shape.WithPoints(d.initial, []geom.Point{d.start, p}))
	}
	if in.Mods.Shift {
		p = squareCorner(d.start, p)
	}
	return d.emit(geom.FromBox(d.initial, geom.Normalize(d.start, p)))
}

// squareCorner moves p so that the box from start to p is a square.
func squareCorner(start, p geom.Point) geom.Point {
	dx, dy := p.X-start.X, p.Y-start.Y
	side := math.Max(math.Abs(dx), math.Abs(dy))
	return geom.Point{X: start.X + math.Copysign(side, dx), Y: start.Y + math.Copysign(side, dy)}
}

// Degenerate reports whether a freshly drawn shape is too small to keep.
func Degenerate(s shape.Shape) bool {
	if t, ok := s.(*shape.Text); ok {
		_, ok := geom.TextBox(t)
		return !ok
	}
	b, ok := geom.BoundingBox(s)
	if !ok {
		return true
	}
	return b.Width() < MinSize && b.Height() < MinSize
}

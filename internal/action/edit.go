package action

import (
	"math"
	"slices"

	"shapecanvas/internal/geom"
	"shapecanvas/internal/shape"
)

// Editable returns s in a form whose vertices can be edited one by one.
// Point collections are returned as is; primitives are converted to a
// polyline with the same id and converted reports true.
func Editable(s shape.Shape) (out shape.Shape, converted, ok bool) {
	if shape.IsPointCollection(s) {
		return s, false, true
	}
	p, ok := geom.ToPolyline(s)
	if !ok {
		return nil, false, false
	}
	return p, true, true
}

// SplitSegment inserts a vertex into the segment of s nearest to the world
// point p. It returns the new shape and the index of the inserted vertex.
func SplitSegment(s shape.Shape, p geom.Point) (shape.Shape, int, bool) {
	pts, ok := shape.PointsOf(s)
	if !ok || len(pts) < 2 {
		return nil, 0, false
	}
	pivot, ok := geom.ShapeCenter(s)
	if !ok {
		return nil, 0, false
	}
	angle := shape.Angle(s)
	local := geom.RotatePoint(p, pivot, -angle)
	hit, ok := geom.ClosestSegment(pts, geom.Closed(s), local)
	if !ok {
		return nil, 0, false
	}
	i := hit.Index + 1
	pts = slices.Insert(pts, i, hit.Point)
	return geom.Rebase(shape.WithPoints(s, pts), pivot), i, true
}

// PointEditing drags a single vertex of a point collection. The rotation
// pivot is frozen at the center the shape had when the drag started.
type PointEditing struct {
	snapshot
	index      int
	pivot      geom.Point
	angle      float64
	origin     geom.Point
	startLocal geom.Point
}

func NewPointEditing(s shape.Shape, index int, start geom.Point) (*PointEditing, bool) {
	pts, ok := shape.PointsOf(s)
	if !ok || index < 0 || index >= len(pts) {
		return nil, false
	}
	pivot, ok := geom.ShapeCenter(s)
	if !ok {
		return nil, false
	}
	angle := shape.Angle(s)
	return &PointEditing{
		snapshot:   newSnapshot(s),
		index:      index,
		pivot:      pivot,
		angle:      angle,
		origin:     pts[index],
		startLocal: geom.RotatePoint(start, pivot, -angle),
	}, true
}

func (*PointEditing) Kind() Kind { return KindPointEditing }

// Index is the vertex being dragged.
func (e *PointEditing) Index() int { return e.index }

func (e *PointEditing) Update(in Input) Result {
	local := geom.RotatePoint(in.World, e.pivot, -e.angle)
	pts, _ := shape.PointsOf(e.initial)
	pts[e.index] = e.origin.Add(local.Sub(e.startLocal))
	return e.emit(geom.Rebase(shape.WithPoints(e.initial, pts), e.pivot))
}

// ArcAngleEditing drags the start, end or middle of an arc's sweep.
type ArcAngleEditing struct {
	snapshot
	arc    *shape.Arc
	handle Handle
	grab   float64
}

func NewArcAngleEditing(s shape.Shape, h Handle, start geom.Point) (*ArcAngleEditing, bool) {
	a, ok := s.(*shape.Arc)
	if !ok || (h != HandleArcStart && h != HandleArcEnd && h != HandleArcMove) {
		return nil, false
	}
	if _, ok := geom.BoundingBox(a); !ok {
		return nil, false
	}
	return &ArcAngleEditing{
		snapshot: newSnapshot(s),
		arc:      a,
		handle:   h,
		grab:     geom.ArcAngle(a, geom.ToLocal(a, start)),
	}, true
}

func (*ArcAngleEditing) Kind() Kind { return KindArcAngleEditing }

func (e *ArcAngleEditing) Update(in Input) Result {
	a := e.arc
	ang := geom.ArcAngle(a, geom.ToLocal(a, in.World))
	c := a.Clone().(*shape.Arc)
	switch e.handle {
	case HandleArcStart:
		ang = snapAngle(ang, in.Mods.Shift)
		c.Start = ang
		if !a.ExtentLocked {
			c.Extent = NormalizeExtent(a.Start + a.Extent - ang)
		}
	case HandleArcEnd:
		ang = snapAngle(ang, in.Mods.Shift)
		if a.ExtentLocked {
			c.Start = ang - a.Extent
		} else {
			c.Extent = NormalizeExtent(ang - a.Start)
		}
	case HandleArcMove:
		c.Start = a.Start + snapAngle(ang-e.grab, in.Mods.Shift)
	}
	c.Start = shape.NormalizeAngle(c.Start)
	return e.emit(c)
}

// NormalizeExtent maps an arc sweep into (0,360]. A zero sweep becomes a
// full turn.
func NormalizeExtent(e float64) float64 {
	e = math.Mod(e, 360)
	if e <= 0 {
		e += 360
	}
	return e
}

// TriangleVertexEditing slides the apex of an isosceles triangle along its
// top edge.
type TriangleVertexEditing struct {
	snapshot
	tri *shape.Triangle
}

func NewTriangleVertexEditing(s shape.Shape) (*TriangleVertexEditing, bool) {
	t, ok := s.(*shape.Triangle)
	if !ok || t.Width <= 0 {
		return nil, false
	}
	return &TriangleVertexEditing{snapshot: newSnapshot(s), tri: t}, true
}

func (*TriangleVertexEditing) Kind() Kind { return KindTriangleVertex }

func (e *TriangleVertexEditing) Update(in Input) Result {
	local := geom.ToLocal(e.tri, in.World)
	c := e.tri.Clone().(*shape.Triangle)
	c.ApexRatio = clamp((local.X-c.X)/c.Width, 0, 1)
	return e.emit(c)
}

// StarInnerRadiusEditing sets the inner radius of a star from the pointer's
// projection onto the first inner vertex direction.
type StarInnerRadiusEditing struct {
	snapshot
	star  *shape.Polygon
	pivot geom.Point
}

func NewStarInnerRadiusEditing(s shape.Shape) (*StarInnerRadiusEditing, bool) {
	p, ok := s.(*shape.Polygon)
	if !ok || !p.Star {
		return nil, false
	}
	pivot, ok := geom.ShapeCenter(p)
	if !ok {
		return nil, false
	}
	return &StarInnerRadiusEditing{snapshot: newSnapshot(s), star: p, pivot: pivot}, true
}

func (*StarInnerRadiusEditing) Kind() Kind { return KindStarInnerRadius }

func (e *StarInnerRadiusEditing) Update(in Input) Result {
	local := geom.RotatePoint(in.World, e.pivot, -shape.Angle(e.star))
	c := e.star.Clone().(*shape.Polygon)
	u := geom.StarBisector(c)
	c.InnerRadius = clamp(local.Sub(geom.Point{X: c.CX, Y: c.CY}).Dot(u), 0, c.Radius)
	return e.emit(geom.Rebase(c, e.pivot))
}

// TrapezoidOffsetEditing moves one top corner of a trapezoid horizontally.
type TrapezoidOffsetEditing struct {
	snapshot
	trap *shape.Trapezoid
	left bool
}

func NewTrapezoidOffsetEditing(s shape.Shape, h Handle) (*TrapezoidOffsetEditing, bool) {
	t, ok := s.(*shape.Trapezoid)
	if !ok || t.Width <= 0 || (h != HandleTrapLeft && h != HandleTrapRight) {
		return nil, false
	}
	return &TrapezoidOffsetEditing{snapshot: newSnapshot(s), trap: t, left: h == HandleTrapLeft}, true
}

func (*TrapezoidOffsetEditing) Kind() Kind { return KindTrapezoidOffset }

func (e *TrapezoidOffsetEditing) Update(in Input) Result {
	local := geom.ToLocal(e.trap, in.World)
	c := e.trap.Clone().(*shape.Trapezoid)
	if e.left {
		c.LeftInset = clamp((local.X-c.X)/c.Width, 0, 1-c.RightInset)
	} else {
		c.RightInset = clamp((c.X+c.Width-local.X)/c.Width, 0, 1-c.LeftInset)
	}
	return e.emit(c)
}

// ParallelogramAngleEditing sets the slant so that the top-edge midpoint
// follows the pointer horizontally.
type ParallelogramAngleEditing struct {
	snapshot
	para *shape.Parallelogram
}

func NewParallelogramAngleEditing(s shape.Shape) (*ParallelogramAngleEditing, bool) {
	p, ok := s.(*shape.Parallelogram)
	if !ok {
		return nil, false
	}
	if _, ok := geom.ParallelogramGrip(p); !ok {
		return nil, false
	}
	return &ParallelogramAngleEditing{snapshot: newSnapshot(s), para: p}, true
}

func (*ParallelogramAngleEditing) Kind() Kind { return KindParallelogramAngle }

func (e *ParallelogramAngleEditing) Update(in Input) Result {
	local := geom.ToLocal(e.para, in.World)
	c := e.para.Clone().(*shape.Parallelogram)
	off := 2 * (local.X - geom.BoxOf(c.Box).Center().X)
	deg := math.Atan2(c.Height, off) * 180 / math.Pi
	c.SlantAngle = clamp(deg, 1, 179)
	return e.emit(c)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

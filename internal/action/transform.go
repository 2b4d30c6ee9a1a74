package action

import (
	"math"

	"shapecanvas/internal/geom"
	"shapecanvas/internal/shape"
)

// MinSize is the smallest width or height a resize can produce.
const MinSize = 1.0

// Dragging moves a shape by the pointer delta.
type Dragging struct {
	snapshot
	start geom.Point
}

func NewDragging(s shape.Shape, start geom.Point) *Dragging {
	return &Dragging{snapshot: newSnapshot(s), start: start}
}

func (*Dragging) Kind() Kind { return KindDragging }

func (d *Dragging) Update(in Input) Result {
	return d.emit(geom.Translate(d.initial, in.World.Sub(d.start)))
}

// Duplicating drags a copy of a shape. The copy gets a fresh id when the
// action opens; Initial returns the copy at its original position.
type Duplicating struct {
	snapshot
	source shape.Shape
	start  geom.Point
}

func NewDuplicating(s shape.Shape, start geom.Point) *Duplicating {
	dup := shape.WithID(s, shape.NewID())
	return &Duplicating{snapshot: newSnapshot(dup), source: s, start: start}
}

func (*Duplicating) Kind() Kind { return KindDuplicating }

// Source is the shape that was copied.
func (d *Duplicating) Source() shape.Shape { return d.source }

func (d *Duplicating) Update(in Input) Result {
	return d.emit(geom.Translate(d.initial, in.World.Sub(d.start)))
}

// Resizing drags one of the eight box handles, or a line endpoint. The
// opposite handle stays fixed in world space.
type Resizing struct {
	snapshot
	handle Handle
	start  geom.Point
	angle  float64
	box    geom.BBox

	localHandle geom.Point
	localAnchor geom.Point
	anchor      geom.Point

	endpoint int
}

// NewResizing opens a resize of s from handle h. It reports false when s has
// no usable box or h is not a resize handle.
func NewResizing(s shape.Shape, h Handle, start geom.Point) (*Resizing, bool) {
	r := &Resizing{snapshot: newSnapshot(s), handle: h, start: start, angle: shape.Angle(s)}

	if h == HandleStart || h == HandleEnd {
		pts, ok := shape.PointsOf(s)
		if !ok || len(pts) < 2 {
			return nil, false
		}
		r.endpoint = 0
		if h == HandleEnd {
			r.endpoint = len(pts) - 1
		}
		return r, true
	}
	if !h.IsBox() {
		return nil, false
	}
	if _, ok := s.(*shape.Text); ok {
		return nil, false
	}
	box, ok := geom.ResizeBox(s)
	if !ok {
		return nil, false
	}
	pivot, ok := geom.ShapeCenter(s)
	if !ok {
		return nil, false
	}
	r.box = box
	r.localHandle = BoxPoint(box, h)
	r.localAnchor = BoxPoint(box, h.Opposite())
	r.anchor = geom.RotatePoint(r.localAnchor, pivot, r.angle)
	return r, true
}

func (*Resizing) Kind() Kind { return KindResizing }

// Anchor is the world position of the fixed handle.
func (r *Resizing) Anchor() geom.Point { return r.anchor }

func (r *Resizing) Update(in Input) Result {
	if r.handle == HandleStart || r.handle == HandleEnd {
		pts, _ := shape.PointsOf(r.initial)
		pts[r.endpoint] = pts[r.endpoint].Add(in.World.Sub(r.start))
		return r.emit(shape.WithPoints(r.initial, pts))
	}

	// The pointer delta, not the pointer itself, drives the handle so that a
	// grab slightly off the handle does not jump.
	delta := geom.RotatePoint(in.World.Sub(r.start), geom.Point{}, -r.angle)
	v := r.localHandle.Sub(r.localAnchor).Add(delta)

	dx, dy := r.handle.Dir()
	w0, h0 := r.box.Width(), r.box.Height()
	w, h := w0, h0
	if dx != 0 {
		w = math.Max(MinSize, v.X*dx)
	}
	if dy != 0 {
		h = math.Max(MinSize, v.Y*dy)
	}

	if r.locked(in.Mods) && w0 > 0 && h0 > 0 {
		switch {
		case r.handle.IsCorner():
			f := math.Max(w/w0, h/h0)
			w, h = w0*f, h0*f
		case dx != 0:
			h = h0 * w / w0
		default:
			w = w0 * h / h0
		}
	}

	// The new box turns about its own center. Rebase keeps that picture for
	// polygons, whose pivot is not the center of their vertex box.
	half := geom.Point{X: dx * w / 2, Y: dy * h / 2}
	center := r.anchor.Add(geom.RotatePoint(half, geom.Point{}, r.angle))
	next := geom.Fit(r.initial, r.box, geom.BBoxAt(center, w, h))
	return r.emit(geom.Rebase(next, center))
}

func (r *Resizing) locked(m Mods) bool {
	if m.Shift || shape.AttrsOf(r.initial).AspectLocked {
		return true
	}
	switch r.initial.(type) {
	case *shape.Polygon, *shape.Text:
		return true
	}
	return false
}

// Rotating turns a shape about its center following the pointer angle.
type Rotating struct {
	snapshot
	center geom.Point
	offset float64
}

// NewRotating reports false for shapes that cannot rotate or have no center.
func NewRotating(s shape.Shape, start geom.Point) (*Rotating, bool) {
	if _, ok := s.(shape.Rotatable); !ok {
		return nil, false
	}
	c, ok := geom.ShapeCenter(s)
	if !ok {
		return nil, false
	}
	return &Rotating{
		snapshot: newSnapshot(s),
		center:   c,
		offset:   shape.Angle(s) - geom.PointerAngle(c, start),
	}, true
}

func (*Rotating) Kind() Kind { return KindRotating }

func (r *Rotating) Update(in Input) Result {
	a := geom.PointerAngle(r.center, in.World) + r.offset
	return r.emit(shape.WithRotation(r.initial, snapAngle(a, in.Mods.Shift)))
}

// Panning moves the view by the screen-space pointer delta.
type Panning struct {
	view    geom.View
	start   geom.Point
	current Result
}

func NewPanning(v geom.View, screen geom.Point) *Panning {
	return &Panning{view: v, start: screen, current: Result{View: v}}
}

func (*Panning) Kind() Kind               { return KindPanning }
func (*Panning) Initial() shape.Shape     { return nil }
func (p *Panning) Current() Result        { return p.current }
func (p *Panning) InitialView() geom.View { return p.view }

func (p *Panning) Update(in Input) Result {
	p.current = Result{View: p.view.Pan(in.Screen.Sub(p.start))}
	return p.current
}

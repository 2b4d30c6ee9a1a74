package action

import (
	"math"

	"shapecanvas/internal/geom"
)

// Handle identifies a grip on the selection.
type Handle string

const (
	HandleNone Handle = ""

	HandleNW Handle = "nw"
	HandleN  Handle = "n"
	HandleNE Handle = "ne"
	HandleE  Handle = "e"
	HandleSE Handle = "se"
	HandleS  Handle = "s"
	HandleSW Handle = "sw"
	HandleW  Handle = "w"

	// Line endpoints.
	HandleStart Handle = "start"
	HandleEnd   Handle = "end"

	HandleRotate Handle = "rotate"
	HandleVertex Handle = "vertex"

	HandleArcStart Handle = "arc-start"
	HandleArcEnd   Handle = "arc-end"
	HandleArcMove  Handle = "arc-move"

	HandleApex        Handle = "apex"
	HandleInnerRadius Handle = "inner-radius"
	HandleTrapLeft    Handle = "trapezoid-left"
	HandleTrapRight   Handle = "trapezoid-right"
	HandleSlant       Handle = "slant"
)

// BoxHandles lists the eight resize handles clockwise from the top-left.
var BoxHandles = []Handle{HandleNW, HandleN, HandleNE, HandleE, HandleSE, HandleS, HandleSW, HandleW}

// Dir returns the unit direction of a box handle from the box center. Both
// components are zero for other handles.
func (h Handle) Dir() (dx, dy float64) {
	switch h {
	case HandleNW:
		return -1, -1
	case HandleN:
		return 0, -1
	case HandleNE:
		return 1, -1
	case HandleE:
		return 1, 0
	case HandleSE:
		return 1, 1
	case HandleS:
		return 0, 1
	case HandleSW:
		return -1, 1
	case HandleW:
		return -1, 0
	}
	return 0, 0
}

func (h Handle) IsBox() bool {
	dx, dy := h.Dir()
	return dx != 0 || dy != 0
}

func (h Handle) IsCorner() bool {
	dx, dy := h.Dir()
	return dx != 0 && dy != 0
}

// Opposite returns the handle diagonally or directly across the box.
func (h Handle) Opposite() Handle {
	switch h {
	case HandleNW:
		return HandleSE
	case HandleN:
		return HandleS
	case HandleNE:
		return HandleSW
	case HandleE:
		return HandleW
	case HandleSE:
		return HandleNW
	case HandleS:
		return HandleN
	case HandleSW:
		return HandleNE
	case HandleW:
		return HandleE
	case HandleStart:
		return HandleEnd
	case HandleEnd:
		return HandleStart
	}
	return HandleNone
}

// Local maps a handle drawn on the axis-aligned box of a shape rotated by
// angle to the handle of the unrotated box that points the same way on
// screen. Other handles are returned as is.
func (h Handle) Local(angle float64) Handle {
	if !h.IsBox() || angle == 0 {
		return h
	}
	want := unitDir(h)
	best, score := h, math.Inf(-1)
	for _, l := range BoxHandles {
		d := geom.RotatePoint(unitDir(l), geom.Point{}, angle)
		if v := d.Dot(want); v > score {
			best, score = l, v
		}
	}
	return best
}

func unitDir(h Handle) geom.Point {
	dx, dy := h.Dir()
	n := math.Hypot(dx, dy)
	return geom.Point{X: dx / n, Y: dy / n}
}

// BoxPoint is the position of a box handle on b.
func BoxPoint(b geom.BBox, h Handle) geom.Point {
	dx, dy := h.Dir()
	c := b.Center()
	return geom.Point{X: c.X + dx*b.Width()/2, Y: c.Y + dy*b.Height()/2}
}

// Cursor is the pointer hint shown over a handle. It depends on the handle
// identity only.
func (h Handle) Cursor() string {
	switch h {
	case HandleNW, HandleSE:
		return "nwse-resize"
	case HandleNE, HandleSW:
		return "nesw-resize"
	case HandleN, HandleS:
		return "ns-resize"
	case HandleE, HandleW:
		return "ew-resize"
	case HandleRotate:
		return "grab"
	case HandleStart, HandleEnd, HandleVertex:
		return "crosshair"
	case HandleNone:
		return "default"
	}
	return "pointer"
}

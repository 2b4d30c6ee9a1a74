package canvas

import (
	"math"

	"shapecanvas/internal/action"
	"shapecanvas/internal/geom"
	"shapecanvas/internal/shape"
)

// HandleInfo is one grip of the selected shape in screen space.
type HandleInfo struct {
	ID     action.Handle
	Index  int
	World  geom.Point
	Screen geom.Point
	Cursor string
}

// arcMoveRadius places the arc move grip inside the sweep, as a fraction of
// the radii.
const arcMoveRadius = 0.6

// Handles returns the grips of s for the current tool and action. Only the
// select tool shows handles; none are shown while drawing or panning.
func Handles(s shape.Shape, tool Tool, act action.Action, view geom.View, opts Options) []HandleInfo {
	if s == nil || tool != ToolSelect || !view.Valid() {
		return nil
	}
	if shape.AttrsOf(s).State != shape.StateNormal {
		return nil
	}
	if act != nil {
		switch act.Kind() {
		case action.KindDrawing, action.KindPanning:
			return nil
		}
	}

	var out []HandleInfo
	add := func(id action.Handle, index int, w geom.Point) {
		out = append(out, HandleInfo{ID: id, Index: index, World: w, Screen: view.ToScreen(w), Cursor: id.Cursor()})
	}

	if opts.PointMode {
		if pts := geom.WorldPoints(s); len(pts) > 0 {
			for i, p := range pts {
				add(action.HandleVertex, i, p)
			}
			return out
		}
	}

	if l, ok := s.(*shape.Line); ok {
		if len(l.Points) < 2 {
			return nil
		}
		add(action.HandleStart, 0, l.Points[0])
		add(action.HandleEnd, len(l.Points)-1, l.Points[len(l.Points)-1])
		return out
	}

	vis, ok := geom.VisualBoundingBox(s, nil)
	if !ok {
		return nil
	}
	if _, isText := s.(*shape.Text); !isText {
		for _, h := range action.BoxHandles {
			add(h, -1, action.BoxPoint(vis, h))
		}
	}
	if _, ok := s.(shape.Rotatable); ok {
		add(action.HandleRotate, -1, rotateGrip(s, vis, view, opts))
	}

	for _, p := range parametric(s, view, opts) {
		add(p.id, -1, p.world)
	}
	return out
}

func rotateGrip(s shape.Shape, vis geom.BBox, view geom.View, opts Options) geom.Point {
	off := opts.RotateOffset / view.Scale
	c := vis.Center()
	r, _ := shape.RotationOf(s)
	switch r.HandleSide {
	case shape.SideBottom:
		return geom.Point{X: c.X, Y: vis.MaxY + off}
	case shape.SideLeft:
		return geom.Point{X: vis.MinX - off, Y: c.Y}
	case shape.SideRight:
		return geom.Point{X: vis.MaxX + off, Y: c.Y}
	}
	return geom.Point{X: c.X, Y: vis.MinY - off}
}

type grip struct {
	id    action.Handle
	world geom.Point
}

// parametric returns the shape-specific grips of s in world space.
func parametric(s shape.Shape, view geom.View, opts Options) []grip {
	switch v := s.(type) {
	case *shape.Arc:
		if _, ok := geom.BoundingBox(v); !ok {
			return nil
		}
		c := geom.BoxOf(v.Box).Center()
		mid := geom.ArcPoint(v, v.Start+v.Extent/2)
		return []grip{
			{action.HandleArcStart, geom.ToWorld(v, geom.ArcPoint(v, v.Start))},
			{action.HandleArcEnd, geom.ToWorld(v, geom.ArcPoint(v, v.Start+v.Extent))},
			{action.HandleArcMove, geom.ToWorld(v, c.Lerp(mid, arcMoveRadius))},
		}
	case *shape.Triangle:
		if pts := geom.WorldPoints(v); len(pts) == 3 {
			return []grip{{action.HandleApex, pts[0]}}
		}
	case *shape.Polygon:
		if !v.Star {
			return nil
		}
		return []grip{{action.HandleInnerRadius, starGrip(v, view, opts)}}
	case *shape.Trapezoid:
		if pts := geom.WorldPoints(v); len(pts) == 4 {
			return []grip{{action.HandleTrapLeft, pts[0]}, {action.HandleTrapRight, pts[1]}}
		}
	case *shape.Parallelogram:
		if g, ok := geom.ParallelogramGrip(v); ok {
			return []grip{{action.HandleSlant, geom.ToWorld(v, g)}}
		}
	}
	return nil
}

// starGrip is the inner vertex of a star, pushed out along the bisector
// when it would sit too close to the center to be grabbed.
func starGrip(p *shape.Polygon, view geom.View, opts Options) geom.Point {
	c := geom.Point{X: p.CX, Y: p.CY}
	r := math.Max(p.InnerRadius, opts.StarHandleMin/view.Scale)
	local := c.Add(geom.StarBisector(p).Scale(r))
	return geom.ToWorld(p, local)
}

// hitHandle returns the handle nearest to the screen point within radius.
func hitHandle(hs []HandleInfo, screen geom.Point, radius float64) (HandleInfo, bool) {
	best, found := HandleInfo{}, false
	bestDist := math.Inf(1)
	for _, h := range hs {
		if d := geom.Distance(h.Screen, screen); d <= radius && d < bestDist {
			best, bestDist, found = h, d, true
		}
	}
	return best, found
}

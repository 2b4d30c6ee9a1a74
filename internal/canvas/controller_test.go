package canvas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapecanvas/internal/action"
	"shapecanvas/internal/geom"
	"shapecanvas/internal/shape"
)

// board is the host side of the controller in tests: an ordered,
// upsert-by-id shape list.
type board struct {
	shapes  []shape.Shape
	edits   []Edit
	removed []string
	views   []geom.View
}

func (b *board) upsert(s shape.Shape) {
	for i, o := range b.shapes {
		if o.Identity() == s.Identity() {
			b.shapes[i] = s
			return
		}
	}
	b.shapes = append(b.shapes, s)
}

func (b *board) remove(id string) {
	b.removed = append(b.removed, id)
	for i, o := range b.shapes {
		if o.Identity() == id {
			b.shapes = append(b.shapes[:i], b.shapes[i+1:]...)
			return
		}
	}
}

func (b *board) get(id string) shape.Shape {
	for _, s := range b.shapes {
		if s.Identity() == id {
			return s
		}
	}
	return nil
}

func harness(shapes ...shape.Shape) (*Controller, *board) {
	b := &board{shapes: shapes}
	c := New()
	c.Shapes = func() []shape.Shape { return b.shapes }
	c.OnUpdate = b.upsert
	c.OnRemove = b.remove
	c.OnCommit = func(e Edit) { b.edits = append(b.edits, e) }
	c.OnView = func(v geom.View) { b.views = append(b.views, v) }
	return c, b
}

func ptr(x, y float64) Pointer { return Pointer{Screen: geom.Point{X: x, Y: y}} }

func boxOf(t *testing.T, s shape.Shape) shape.Box {
	t.Helper()
	b, ok := shape.BoxOf(s)
	require.True(t, ok)
	return b
}

func TestDragBody(t *testing.T) {
	r := shape.NewRectangle(0, 0, 100, 50)
	c, b := harness(r)

	require.NoError(t, c.PointerDown(ptr(50, 25)))
	require.NotNil(t, c.Active())
	assert.Equal(t, action.KindDragging, c.Active().Kind())

	assert.True(t, c.PointerMove(ptr(60, 30)))
	c.PointerUp(ptr(60, 30))

	assert.Nil(t, c.Active())
	require.Len(t, b.edits, 1)
	assert.Same(t, r, b.edits[0].Before)
	assert.Equal(t, shape.Box{X: 10, Y: 5, Width: 100, Height: 50}, boxOf(t, b.get(r.ID)))

	sel, ok := c.Selected()
	require.True(t, ok)
	assert.Equal(t, r.ID, sel.Identity())
}

func TestClickWithoutMoveDoesNotCommit(t *testing.T) {
	c, b := harness(shape.NewRectangle(0, 0, 100, 50))
	require.NoError(t, c.PointerDown(ptr(50, 25)))
	c.PointerUp(ptr(50, 25))
	assert.Empty(t, b.edits)
}

func TestCancelRestoresInitial(t *testing.T) {
	r := shape.NewRectangle(0, 0, 100, 50)
	c, b := harness(r)

	require.NoError(t, c.PointerDown(ptr(50, 25)))
	c.PointerMove(ptr(80, 90))
	c.PointerMove(ptr(10, 10))
	c.Cancel()

	assert.Same(t, r, b.get(r.ID))
	assert.Empty(t, b.edits)
	assert.Nil(t, c.Active())
}

func TestBusySlot(t *testing.T) {
	c, _ := harness(shape.NewRectangle(0, 0, 100, 50))
	require.NoError(t, c.PointerDown(ptr(50, 25)))
	assert.ErrorIs(t, c.PointerDown(ptr(50, 25)), action.ErrBusy)
}

func TestResizeFromHandle(t *testing.T) {
	r := shape.NewRectangle(0, 0, 100, 50)
	c, b := harness(r)
	c.Select(r.ID)

	require.NoError(t, c.PointerDown(ptr(100, 50)))
	require.Equal(t, action.KindResizing, c.Active().Kind())
	c.PointerMove(ptr(150, 75))
	c.PointerUp(ptr(150, 75))

	assert.Equal(t, shape.Box{Width: 150, Height: 75}, boxOf(t, b.get(r.ID)))
	require.Len(t, b.edits, 1)
	assert.Equal(t, action.KindResizing, b.edits[0].Kind)
}

func handleAt(t *testing.T, c *Controller, id action.Handle) HandleInfo {
	t.Helper()
	for _, h := range c.Handles() {
		if h.ID == id {
			return h
		}
	}
	require.Failf(t, "no handle", "%s", id)
	return HandleInfo{}
}

func dragHandle(t *testing.T, c *Controller, h HandleInfo, by geom.Point) {
	t.Helper()
	require.NoError(t, c.PointerDown(ptr(h.Screen.X, h.Screen.Y)))
	require.NotNil(t, c.Active())
	require.Equal(t, action.KindResizing, c.Active().Kind())
	end := h.Screen.Add(by)
	c.PointerMove(ptr(end.X, end.Y))
	c.PointerUp(ptr(end.X, end.Y))
}

func TestResizeRotatedFromVisualHandle(t *testing.T) {
	tests := []struct {
		angle  float64
		handle action.Handle
		by     geom.Point
	}{
		{0, action.HandleN, geom.Point{Y: -30}},
		{90, action.HandleN, geom.Point{Y: -30}},
		{90, action.HandleE, geom.Point{X: 30}},
		{45, action.HandleN, geom.Point{Y: -30}},
		{45, action.HandleE, geom.Point{X: 30}},
		{270, action.HandleS, geom.Point{Y: 30}},
	}
	for _, tt := range tests {
		r := shape.WithRotation(shape.NewRectangle(0, 0, 100, 50), tt.angle)
		c, b := harness(r)
		c.Select(r.Identity())
		before, ok := geom.VisualBoundingBox(r, nil)
		require.True(t, ok)

		dragHandle(t, c, handleAt(t, c, tt.handle), tt.by)
		after, ok := geom.VisualBoundingBox(b.get(r.Identity()), nil)
		require.True(t, ok)

		msg := []any{"angle %v handle %s", tt.angle, tt.handle}
		switch tt.handle {
		case action.HandleN:
			assert.InDelta(t, before.Height()+30, after.Height(), 1e-6, msg...)
			assert.InDelta(t, before.MaxY, after.MaxY, 1e-6, msg...)
		case action.HandleS:
			assert.InDelta(t, before.Height()+30, after.Height(), 1e-6, msg...)
			assert.InDelta(t, before.MinY, after.MinY, 1e-6, msg...)
		case action.HandleE:
			assert.InDelta(t, before.Width()+30, after.Width(), 1e-6, msg...)
			assert.InDelta(t, before.MinX, after.MinX, 1e-6, msg...)
		}
		assert.Equal(t, tt.angle, shape.Angle(b.get(r.Identity())))
	}
}

func TestResizeRotatedCornerKeepsOppositeCorner(t *testing.T) {
	r := shape.WithRotation(shape.NewRectangle(0, 0, 100, 50), 90)
	c, b := harness(r)
	c.Select(r.Identity())
	nw := handleAt(t, c, action.HandleNW)

	dragHandle(t, c, handleAt(t, c, action.HandleSE), geom.Point{X: 20, Y: 40})
	after, ok := geom.VisualBoundingBox(b.get(r.Identity()), nil)
	require.True(t, ok)
	assert.InDelta(t, nw.World.X, after.MinX, 1e-6)
	assert.InDelta(t, nw.World.Y, after.MinY, 1e-6)
	assert.InDelta(t, 70, after.Width(), 1e-6)
	assert.InDelta(t, 140, after.Height(), 1e-6)
}

func TestResizePolygonKeepsOppositeHandle(t *testing.T) {
	pentagon := shape.New(shape.KindPolygon).(*shape.Polygon)
	pentagon.CX, pentagon.CY, pentagon.Radius = 100, 100, 50
	hexagon := shape.New(shape.KindPolygon).(*shape.Polygon)
	hexagon.CX, hexagon.CY, hexagon.Radius, hexagon.Sides = 100, 100, 50, 6
	star := shape.NewStar(5)
	star.CX, star.CY, star.Radius, star.InnerRadius = 100, 100, 50, 20

	tests := []struct {
		name   string
		s      shape.Shape
		handle action.Handle
		fixed  action.Handle
		by     geom.Point
	}{
		{"pentagon se", pentagon, action.HandleSE, action.HandleNW, geom.Point{X: 40, Y: 40}},
		{"pentagon n", pentagon, action.HandleN, action.HandleS, geom.Point{Y: -25}},
		{"hexagon w", hexagon, action.HandleW, action.HandleE, geom.Point{X: -30}},
		{"star ne", star, action.HandleNE, action.HandleSW, geom.Point{X: 15, Y: -10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, b := harness(tt.s)
			c.Select(tt.s.Identity())
			fixed := handleAt(t, c, tt.fixed)
			moved := handleAt(t, c, tt.handle)

			dragHandle(t, c, moved, tt.by)
			got := b.get(tt.s.Identity())
			require.NotSame(t, tt.s, got)

			now := handleAt(t, c, tt.fixed)
			assert.InDelta(t, fixed.Screen.X, now.Screen.X, 1e-6)
			assert.InDelta(t, fixed.Screen.Y, now.Screen.Y, 1e-6)
			assert.Greater(t, got.(*shape.Polygon).Radius, 50.0)
		})
	}
}

func TestTouchWidensHitRadius(t *testing.T) {
	r := shape.NewRectangle(0, 0, 100, 50)
	c, _ := harness(r)
	c.Select(r.ID)

	require.NoError(t, c.PointerDown(ptr(109, 50)))
	assert.Nil(t, c.Active())

	c.Select(r.ID)
	p := ptr(109, 50)
	p.Touch = true
	require.NoError(t, c.PointerDown(p))
	require.NotNil(t, c.Active())
	assert.Equal(t, action.KindResizing, c.Active().Kind())
}

func TestRotateFromHandle(t *testing.T) {
	r := shape.NewRectangle(0, 0, 100, 50)
	c, b := harness(r)
	c.Select(r.ID)

	grip := geom.Point{X: 50, Y: -c.Options.RotateOffset}
	require.NoError(t, c.PointerDown(ptr(grip.X, grip.Y)))
	require.Equal(t, action.KindRotating, c.Active().Kind())
	c.PointerMove(ptr(150, 25))
	c.PointerUp(ptr(150, 25))

	assert.InDelta(t, 90, shape.Angle(b.get(r.ID)), 1e-9)
}

func TestDrawing(t *testing.T) {
	c, b := harness()
	c.Tool = DrawTool(shape.KindEllipse)

	require.NoError(t, c.PointerDown(ptr(10, 10)))
	c.PointerMove(ptr(50, 30))
	c.PointerUp(ptr(50, 30))

	require.Len(t, b.shapes, 1)
	e := b.shapes[0].(*shape.Ellipse)
	assert.Equal(t, 30.0, e.CX)
	assert.Equal(t, 20.0, e.RX)
	require.Len(t, b.edits, 1)
	assert.Nil(t, b.edits[0].Before)
	assert.Equal(t, action.KindDrawing, b.edits[0].Kind)
}

func TestDrawingDiscardsDegenerate(t *testing.T) {
	c, b := harness()
	c.Tool = DrawTool(shape.KindRectangle)

	require.NoError(t, c.PointerDown(ptr(10, 10)))
	c.PointerUp(ptr(10, 10))

	assert.Empty(t, b.shapes)
	assert.Len(t, b.removed, 1)
	assert.Empty(t, b.edits)
}

func TestDrawingCancelRemoves(t *testing.T) {
	c, b := harness()
	c.Tool = DrawTool(shape.KindPath)

	require.NoError(t, c.PointerDown(ptr(0, 0)))
	c.PointerMove(ptr(5, 5))
	c.PointerMove(ptr(9, 2))
	require.Len(t, b.shapes, 1)
	c.Cancel()

	assert.Empty(t, b.shapes)
	_, ok := c.Selected()
	assert.False(t, ok)
}

func TestDuplicate(t *testing.T) {
	r := shape.NewRectangle(0, 0, 100, 50)
	c, b := harness(r)

	p := ptr(50, 25)
	p.Mods.Alt = true
	require.NoError(t, c.PointerDown(p))
	require.Equal(t, action.KindDuplicating, c.Active().Kind())
	c.PointerMove(ptr(70, 25))
	require.Len(t, b.shapes, 2)
	c.Cancel()

	require.Len(t, b.shapes, 1)
	assert.Same(t, r, b.shapes[0])
	sel, _ := c.Selected()
	assert.Equal(t, r.ID, sel.Identity())

	require.NoError(t, c.PointerDown(p))
	c.PointerMove(ptr(70, 25))
	c.PointerUp(ptr(70, 25))
	require.Len(t, b.shapes, 2)
	assert.NotEqual(t, r.ID, b.shapes[1].Identity())
	assert.Equal(t, 20.0, boxOf(t, b.shapes[1]).X)
	assert.Equal(t, 0.0, boxOf(t, b.shapes[0]).X)
}

func TestPointModeConvertsPrimitive(t *testing.T) {
	r := shape.NewRectangle(0, 0, 100, 50)
	c, b := harness(r)
	c.Select(r.ID)
	c.Options.PointMode = true

	require.NoError(t, c.PointerDown(ptr(100, 0)))
	require.Equal(t, action.KindPointEditing, c.Active().Kind())
	require.Len(t, b.edits, 1)
	assert.Equal(t, KindConvert, b.edits[0].Kind)
	assert.Same(t, r, b.edits[0].Before)

	c.PointerMove(ptr(120, -10))
	pts, _ := shape.PointsOf(b.get(r.ID))
	assert.Equal(t, geom.Point{X: 120, Y: -10}, pts[1])

	// Escape keeps the conversion and only drops the vertex drag.
	c.Cancel()
	got := b.get(r.ID)
	require.IsType(t, &shape.Polyline{}, got)
	pts, _ = shape.PointsOf(got)
	assert.Equal(t, []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 50}, {X: 0, Y: 50}}, pts)
	assert.Len(t, b.edits, 1)
}

func TestPointModeSplitsSegment(t *testing.T) {
	p := shape.New(shape.KindPolyline).(*shape.Polyline)
	p.Points = []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}
	p.Closed = true
	c, b := harness(p)
	c.Select(p.ID)
	c.Options.PointMode = true

	require.NoError(t, c.PointerDown(ptr(50, 1)))
	pts, _ := shape.PointsOf(b.get(p.ID))
	require.Len(t, pts, 5)
	assert.Equal(t, geom.Point{X: 50, Y: 0}, pts[1])

	c.PointerMove(ptr(50, -19))
	pts, _ = shape.PointsOf(b.get(p.ID))
	assert.Equal(t, geom.Point{X: 50, Y: -20}, pts[1])

	c.Cancel()
	pts, _ = shape.PointsOf(b.get(p.ID))
	assert.Len(t, pts, 4)
}

func TestPanning(t *testing.T) {
	c, b := harness()
	p := ptr(10, 10)
	p.Button = ButtonMiddle

	require.NoError(t, c.PointerDown(p))
	c.PointerMove(ptr(30, 5))
	assert.Equal(t, geom.View{Scale: 1, X: 20, Y: -5}, c.View)

	c.Cancel()
	assert.Equal(t, geom.Identity, c.View)
	assert.Equal(t, geom.Identity, b.views[len(b.views)-1])
}

func TestSnapAppliesToActions(t *testing.T) {
	r := shape.NewRectangle(0, 0, 100, 50)
	c, b := harness(r)
	c.Snap = func(p geom.Point) geom.Point {
		return geom.Point{X: math.Round(p.X/10) * 10, Y: math.Round(p.Y/10) * 10}
	}

	require.NoError(t, c.PointerDown(ptr(50, 25)))
	c.PointerMove(ptr(63, 31))
	assert.Equal(t, shape.Box{X: 10, Y: 0, Width: 100, Height: 50}, boxOf(t, b.get(r.ID)))
}

func TestHandles(t *testing.T) {
	r := shape.NewRectangle(0, 0, 100, 50)
	hs := Handles(r, ToolSelect, nil, geom.Identity, DefaultOptions())
	require.Len(t, hs, 9)
	assert.Equal(t, action.HandleNW, hs[0].ID)
	assert.Equal(t, geom.Point{X: 100, Y: 50}, hs[4].Screen)
	assert.Equal(t, action.HandleRotate, hs[8].ID)

	assert.Nil(t, Handles(r, DrawTool(shape.KindRectangle), nil, geom.Identity, DefaultOptions()))
	assert.Nil(t, Handles(r, ToolPan, nil, geom.Identity, DefaultOptions()))

	text := shape.New(shape.KindText)
	hs = Handles(text, ToolSelect, nil, geom.Identity, DefaultOptions())
	require.Len(t, hs, 1)
	assert.Equal(t, action.HandleRotate, hs[0].ID)

	line := shape.WithPoints(shape.New(shape.KindLine), []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 10}})
	hs = Handles(line, ToolSelect, nil, geom.Identity, DefaultOptions())
	require.Len(t, hs, 2)
	assert.Equal(t, action.HandleStart, hs[0].ID)
	assert.Equal(t, action.HandleEnd, hs[1].ID)
}

func TestHandlesOnVisualBox(t *testing.T) {
	r := shape.WithRotation(shape.NewRectangle(0, 0, 100, 50), 45)
	hs := Handles(r, ToolSelect, nil, geom.Identity, DefaultOptions())
	vis, _ := geom.VisualBoundingBox(r, nil)
	assert.InDelta(t, vis.MinX, hs[0].World.X, 1e-9)
	assert.InDelta(t, vis.MinY, hs[0].World.Y, 1e-9)
	assert.InDelta(t, vis.MaxX, hs[4].World.X, 1e-9)
	assert.InDelta(t, vis.MaxY, hs[4].World.Y, 1e-9)
}

func TestStarHandleWithZeroInnerRadius(t *testing.T) {
	star := shape.NewStar(5)
	star.CX, star.CY, star.Radius, star.InnerRadius = 50, 50, 40, 0
	view := geom.View{Scale: 2}
	opts := DefaultOptions()

	var grip *HandleInfo
	for _, h := range Handles(star, ToolSelect, nil, view, opts) {
		if h.ID == action.HandleInnerRadius {
			grip = &h
		}
	}
	require.NotNil(t, grip)
	center := view.ToScreen(geom.Point{X: 50, Y: 50})
	assert.InDelta(t, opts.StarHandleMin, geom.Distance(center, grip.Screen), 1e-9)
}

func TestParametricHandles(t *testing.T) {
	arc := shape.New(shape.KindArc).(*shape.Arc)
	arc.Box = shape.Box{Width: 100, Height: 100}
	ids := map[action.Handle]geom.Point{}
	for _, h := range Handles(arc, ToolSelect, nil, geom.Identity, DefaultOptions()) {
		ids[h.ID] = h.World
	}
	assert.InDelta(t, 100, ids[action.HandleArcStart].X, 1e-9)
	assert.InDelta(t, 0, ids[action.HandleArcEnd].Y, 1e-9)
	assert.Contains(t, ids, action.HandleArcMove)

	tr := shape.WithBox(shape.New(shape.KindTrapezoid), shape.Box{Width: 100, Height: 40})
	ids = map[action.Handle]geom.Point{}
	for _, h := range Handles(tr, ToolSelect, nil, geom.Identity, DefaultOptions()) {
		ids[h.ID] = h.World
	}
	assert.Equal(t, geom.Point{X: 25, Y: 0}, ids[action.HandleTrapLeft])
	assert.Equal(t, geom.Point{X: 75, Y: 0}, ids[action.HandleTrapRight])
}

func TestCursor(t *testing.T) {
	r := shape.NewRectangle(0, 0, 100, 50)
	c, _ := harness(r)
	c.Select(r.ID)

	assert.Equal(t, "nwse-resize", c.Cursor(ptr(0, 0)))
	assert.Equal(t, "ew-resize", c.Cursor(ptr(100, 25)))
	assert.Equal(t, "grab", c.Cursor(ptr(50, -c.Options.RotateOffset)))
	assert.Equal(t, "move", c.Cursor(ptr(50, 25)))
	assert.Equal(t, "default", c.Cursor(ptr(300, 300)))

	c.Tool = DrawTool(shape.KindRectangle)
	assert.Equal(t, "crosshair", c.Cursor(ptr(50, 25)))
}

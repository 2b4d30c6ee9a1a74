package action

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapecanvas/internal/geom"
	"shapecanvas/internal/shape"
)

var approx = cmpopts.EquateApprox(0, 1e-6)

func at(x, y float64) Input { return Input{World: geom.Point{X: x, Y: y}} }

func shifted(x, y float64) Input {
	in := at(x, y)
	in.Mods.Shift = true
	return in
}

func TestSlot(t *testing.T) {
	var s Slot
	_, ok := s.Update(at(0, 0))
	assert.False(t, ok)

	d := NewDragging(shape.NewRectangle(0, 0, 1, 1), geom.Point{})
	require.NoError(t, s.Open(d))
	assert.ErrorIs(t, s.Open(NewPanning(geom.Identity, geom.Point{})), ErrBusy)
	assert.Same(t, d, s.Active())

	_, ok = s.Update(at(1, 1))
	assert.True(t, ok)

	a, ok := s.Cancel()
	assert.True(t, ok)
	assert.Same(t, d, a)
	assert.Nil(t, s.Active())

	_, ok = s.Commit()
	assert.False(t, ok)
}

func TestDraggingUsesInitialSnapshot(t *testing.T) {
	r := shape.NewRectangle(10, 10, 20, 20)
	d := NewDragging(r, geom.Point{X: 15, Y: 15})
	d.Update(at(100, 100))
	res := d.Update(at(20, 25))

	b, _ := shape.BoxOf(res.Shape)
	assert.Equal(t, shape.Box{X: 15, Y: 20, Width: 20, Height: 20}, b)
	assert.Same(t, r, d.Initial())
	assert.Equal(t, 10.0, r.X)
}

func TestDuplicatingGetsNewID(t *testing.T) {
	r := shape.NewRectangle(0, 0, 10, 10)
	d := NewDuplicating(r, geom.Point{})
	res := d.Update(at(5, 0))

	assert.NotEqual(t, r.Identity(), res.Shape.Identity())
	assert.Equal(t, d.Initial().Identity(), res.Shape.Identity())
	assert.Same(t, r, d.Source())
	b, _ := shape.BoxOf(res.Shape)
	assert.Equal(t, 5.0, b.X)
}

func TestResizeSquareWithAspectLock(t *testing.T) {
	r := shape.NewRectangle(0, 0, 100, 100)
	r.AspectLocked = true

	rs, ok := NewResizing(r, HandleSE, geom.Point{X: 100, Y: 100})
	require.True(t, ok)
	res := rs.Update(at(150, 120))

	b, _ := shape.BoxOf(res.Shape)
	if diff := cmp.Diff(shape.Box{X: 0, Y: 0, Width: 150, Height: 150}, b, approx); diff != "" {
		t.Errorf("box (-want +got):\n%s", diff)
	}
}

func TestResizeAnchorStaysFixed(t *testing.T) {
	opposite := map[Handle]int{HandleSE: 0, HandleSW: 1, HandleNW: 2, HandleNE: 3}
	for _, angle := range []float64{0, 30, 135, 290} {
		r := shape.WithRotation(shape.NewRectangle(20, 10, 80, 40), angle)
		before := geom.WorldPoints(r)
		for h, corner := range opposite {
			c, _ := geom.ShapeCenter(r)
			grab := geom.RotatePoint(BoxPoint(geom.BoxOf(shape.Box{X: 20, Y: 10, Width: 80, Height: 40}), h), c, angle)
			for _, in := range []Input{at(grab.X+13, grab.Y-7), shifted(grab.X-20, grab.Y+31), at(300, -200)} {
				rs, ok := NewResizing(r, h, grab)
				require.True(t, ok)
				res := rs.Update(in)
				after := geom.WorldPoints(res.Shape)
				assert.InDelta(t, before[corner].X, after[corner].X, 1e-6, "angle %v handle %s", angle, h)
				assert.InDelta(t, before[corner].Y, after[corner].Y, 1e-6, "angle %v handle %s", angle, h)
				assert.Equal(t, angle, shape.Angle(res.Shape))
			}
		}
	}
}

func TestResizeAspectLockKeepsRatio(t *testing.T) {
	r := shape.WithRotation(shape.NewRectangle(0, 0, 120, 40), 40)
	for _, h := range BoxHandles {
		grab := geom.Point{}
		rs, ok := NewResizing(r, h, grab)
		require.True(t, ok)
		for _, in := range []Input{shifted(30, 12), shifted(-50, 80), shifted(7, -3)} {
			w, hh, ok := geom.GeometricSize(rs.Update(in).Shape)
			require.True(t, ok)
			assert.InDelta(t, 3.0, w/hh, 1e-9, "handle %s", h)
		}
	}
}

func TestResizeEdgeHandle(t *testing.T) {
	r := shape.NewRectangle(0, 0, 100, 50)
	rs, ok := NewResizing(r, HandleE, geom.Point{X: 100, Y: 25})
	require.True(t, ok)

	b, _ := shape.BoxOf(rs.Update(at(150, 90)).Shape)
	assert.Equal(t, shape.Box{X: 0, Y: 0, Width: 150, Height: 50}, b)

	b, _ = shape.BoxOf(rs.Update(shifted(150, 25)).Shape)
	if diff := cmp.Diff(shape.Box{X: 0, Y: -12.5, Width: 150, Height: 75}, b, approx); diff != "" {
		t.Errorf("locked edge (-want +got):\n%s", diff)
	}

	b, _ = shape.BoxOf(rs.Update(at(-400, 25)).Shape)
	assert.InDelta(t, MinSize, b.Width, 1e-9)
}

func TestResizeRefusals(t *testing.T) {
	_, ok := NewResizing(shape.New(shape.KindText), HandleSE, geom.Point{})
	assert.False(t, ok)
	_, ok = NewResizing(shape.NewRectangle(0, 0, 0, 0), HandleSE, geom.Point{})
	assert.False(t, ok)
	_, ok = NewResizing(shape.NewRectangle(0, 0, 5, 5), HandleRotate, geom.Point{})
	assert.False(t, ok)
}

func TestResizeLineEndpoint(t *testing.T) {
	l := shape.WithPoints(shape.New(shape.KindLine), []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}})
	rs, ok := NewResizing(l, HandleEnd, geom.Point{X: 10, Y: 0})
	require.True(t, ok)
	pts, _ := shape.PointsOf(rs.Update(at(12, 5)).Shape)
	assert.Equal(t, []geom.Point{{X: 0, Y: 0}, {X: 12, Y: 5}}, pts)
}

func TestResizePolygonIsUniform(t *testing.T) {
	p := shape.New(shape.KindPolygon).(*shape.Polygon)
	p.CX, p.CY, p.Radius = 50, 50, 50
	before, ok := geom.ResizeBox(p)
	require.True(t, ok)

	rs, ok := NewResizing(p, HandleE, geom.Point{X: before.MaxX, Y: 50})
	require.True(t, ok)
	got := rs.Update(at(before.MaxX+50, 50)).Shape.(*shape.Polygon)
	after, ok := geom.ResizeBox(got)
	require.True(t, ok)

	f := (before.Width() + 50) / before.Width()
	assert.InDelta(t, 50*f, got.Radius, 1e-9)
	assert.InDelta(t, before.Width()+50, after.Width(), 1e-9)
	assert.InDelta(t, before.Height()*f, after.Height(), 1e-9)
	assert.InDelta(t, before.MinX, after.MinX, 1e-9)
	assert.InDelta(t, before.Center().Y, after.Center().Y, 1e-9)
}

func TestResizePolygonKeepsVertexBoxCorner(t *testing.T) {
	for _, angle := range []float64{0, 40} {
		p := shape.New(shape.KindPolygon).(*shape.Polygon)
		p.CX, p.CY, p.Radius = 100, 100, 50
		s := shape.WithRotation(p, angle)
		box, ok := geom.ResizeBox(s)
		require.True(t, ok)
		pivot, _ := geom.ShapeCenter(s)
		nw := geom.RotatePoint(box.Min(), pivot, angle)
		se := geom.RotatePoint(box.Max(), pivot, angle)

		rs, ok := NewResizing(s, HandleSE, se)
		require.True(t, ok)
		got := rs.Update(at(se.X+40, se.Y+40)).Shape
		assert.InDelta(t, nw.X, rs.Anchor().X, 1e-9)
		assert.InDelta(t, nw.Y, rs.Anchor().Y, 1e-9)

		after, ok := geom.ResizeBox(got)
		require.True(t, ok)
		c, _ := geom.ShapeCenter(got)
		moved := geom.RotatePoint(after.Min(), c, angle)
		assert.InDelta(t, nw.X, moved.X, 1e-6, "angle %v", angle)
		assert.InDelta(t, nw.Y, moved.Y, 1e-6, "angle %v", angle)
	}
}

func TestRotating(t *testing.T) {
	r := shape.NewRectangle(0, 0, 100, 100)
	rot, ok := NewRotating(r, geom.Point{X: 50, Y: -20})
	require.True(t, ok)

	assert.InDelta(t, 90, shape.Angle(rot.Update(at(120, 50)).Shape), 1e-9)

	p := geom.RotatePoint(geom.Point{X: 120, Y: 50}, geom.Point{X: 50, Y: 50}, 7)
	assert.InDelta(t, 97, shape.Angle(rot.Update(at(p.X, p.Y)).Shape), 1e-9)
	assert.InDelta(t, 90, shape.Angle(rot.Update(shifted(p.X, p.Y)).Shape), 1e-9)

	// The grab offset is kept: a press off the handle does not jump.
	r2 := shape.WithRotation(r, 30)
	rot, _ = NewRotating(r2, geom.Point{X: 120, Y: 50})
	assert.InDelta(t, 30, shape.Angle(rot.Update(at(120, 50)).Shape), 1e-9)

	_, ok = NewRotating(shape.New(shape.KindImage), geom.Point{})
	assert.False(t, ok)
}

func TestPanning(t *testing.T) {
	p := NewPanning(geom.View{Scale: 2, X: 10, Y: 10}, geom.Point{X: 5, Y: 5})
	res := p.Update(Input{Screen: geom.Point{X: 8, Y: 1}})
	assert.Nil(t, res.Shape)
	assert.Equal(t, geom.View{Scale: 2, X: 13, Y: 6}, res.View)
	assert.Nil(t, p.Initial())
}

func TestDrawing(t *testing.T) {
	d, ok := NewDrawing(shape.KindRectangle, geom.Point{X: 10, Y: 10})
	require.True(t, ok)
	assert.True(t, Degenerate(d.Current().Shape))

	b, _ := shape.BoxOf(d.Update(at(0, 30)).Shape)
	assert.Equal(t, shape.Box{X: 0, Y: 10, Width: 10, Height: 20}, b)
	b, _ = shape.BoxOf(d.Update(shifted(0, 30)).Shape)
	assert.Equal(t, shape.Box{X: -10, Y: 10, Width: 20, Height: 20}, b)
	assert.Equal(t, d.Initial().Identity(), d.Current().Shape.Identity())

	f, _ := NewDrawing(shape.KindPath, geom.Point{})
	f.Update(at(1, 1))
	f.Update(at(1, 1))
	pts, _ := shape.PointsOf(f.Update(at(2, 3)).Shape)
	assert.Len(t, pts, 3)

	l, _ := NewDrawing(shape.KindLine, geom.Point{X: 1, Y: 1})
	pts, _ = shape.PointsOf(l.Update(at(4, 5)).Shape)
	assert.Equal(t, []geom.Point{{X: 1, Y: 1}, {X: 4, Y: 5}}, pts)

	tx, _ := NewDrawing(shape.KindText, geom.Point{X: 7, Y: 8})
	assert.False(t, Degenerate(tx.Update(at(50, 50)).Shape))
	c, _ := geom.ShapeCenter(tx.Current().Shape)
	assert.Equal(t, geom.Point{X: 7, Y: 8}, c)

	_, ok = NewDrawing(shape.Kind("blob"), geom.Point{})
	assert.False(t, ok)
}

func TestPointEditingFreezesPivot(t *testing.T) {
	p := shape.New(shape.KindPolyline).(*shape.Polyline)
	p.Points = []geom.Point{{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 40, Y: 20}}
	s := shape.WithRotation(p, 50)
	before := geom.WorldPoints(s)

	e, ok := NewPointEditing(s, 2, before[2])
	require.True(t, ok)
	res := e.Update(at(before[2].X+35, before[2].Y+60))
	after := geom.WorldPoints(res.Shape)

	for i := 0; i < 2; i++ {
		assert.InDelta(t, before[i].X, after[i].X, 1e-6)
		assert.InDelta(t, before[i].Y, after[i].Y, 1e-6)
	}
	assert.InDelta(t, before[2].X+35, after[2].X, 1e-6)
	assert.InDelta(t, before[2].Y+60, after[2].Y, 1e-6)
}

func TestEditableConvertsPrimitive(t *testing.T) {
	r := shape.WithRotation(shape.NewRectangle(0, 0, 10, 10), 20)
	got, converted, ok := Editable(r)
	require.True(t, ok)
	assert.True(t, converted)
	assert.Equal(t, shape.KindPolyline, got.Kind())
	assert.Equal(t, r.Identity(), got.Identity())

	l := shape.New(shape.KindLine)
	got, converted, ok = Editable(l)
	require.True(t, ok)
	assert.False(t, converted)
	assert.Same(t, l, got)

	_, _, ok = Editable(shape.New(shape.KindText))
	assert.False(t, ok)
}

func TestSplitSegment(t *testing.T) {
	p := shape.New(shape.KindPolyline).(*shape.Polyline)
	p.Points = []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	p.Closed = true

	got, i, ok := SplitSegment(p, geom.Point{X: 5, Y: 1})
	require.True(t, ok)
	assert.Equal(t, 1, i)
	pts, _ := shape.PointsOf(got)
	assert.Equal(t, geom.Point{X: 5, Y: 0}, pts[1])
	assert.Len(t, pts, 5)

	_, i, _ = SplitSegment(p, geom.Point{X: -1, Y: 5})
	assert.Equal(t, 4, i)
}

func newArc() *shape.Arc {
	a := shape.New(shape.KindArc).(*shape.Arc)
	a.Box = shape.Box{Width: 100, Height: 100}
	return a
}

func TestArcAngleEditing(t *testing.T) {
	a := newArc()
	end := geom.ArcPoint(a, 90)
	target := geom.ArcPoint(a, 180)

	e, ok := NewArcAngleEditing(a, HandleArcEnd, end)
	require.True(t, ok)
	got := e.Update(at(target.X, target.Y)).Shape.(*shape.Arc)
	assert.InDelta(t, 0, got.Start, 1e-9)
	assert.InDelta(t, 180, got.Extent, 1e-9)

	locked := newArc()
	locked.ExtentLocked = true
	e, _ = NewArcAngleEditing(locked, HandleArcEnd, end)
	got = e.Update(at(target.X, target.Y)).Shape.(*shape.Arc)
	assert.InDelta(t, 90, got.Start, 1e-9)
	assert.InDelta(t, 90, got.Extent, 1e-9)

	p45 := geom.ArcPoint(a, 45)
	e, _ = NewArcAngleEditing(a, HandleArcStart, geom.ArcPoint(a, 0))
	got = e.Update(at(p45.X, p45.Y)).Shape.(*shape.Arc)
	assert.InDelta(t, 45, got.Start, 1e-9)
	assert.InDelta(t, 45, got.Extent, 1e-9)

	e, _ = NewArcAngleEditing(a, HandleArcMove, p45)
	p135 := geom.ArcPoint(a, 135)
	got = e.Update(at(p135.X, p135.Y)).Shape.(*shape.Arc)
	assert.InDelta(t, 90, got.Start, 1e-9)
	assert.InDelta(t, 90, got.Extent, 1e-9)

	_, ok = NewArcAngleEditing(shape.NewRectangle(0, 0, 1, 1), HandleArcEnd, geom.Point{})
	assert.False(t, ok)
}

func TestNormalizeExtent(t *testing.T) {
	assert.Equal(t, 360.0, NormalizeExtent(0))
	assert.Equal(t, 270.0, NormalizeExtent(-90))
	assert.Equal(t, 360.0, NormalizeExtent(720))
	assert.Equal(t, 10.0, NormalizeExtent(370))
}

func TestTriangleVertexEditing(t *testing.T) {
	tri := shape.WithBox(shape.New(shape.KindTriangle), shape.Box{X: 10, Y: 0, Width: 100, Height: 50})
	e, ok := NewTriangleVertexEditing(tri)
	require.True(t, ok)
	assert.InDelta(t, 0.2, e.Update(at(30, 0)).Shape.(*shape.Triangle).ApexRatio, 1e-9)
	assert.Equal(t, 1.0, e.Update(at(500, 0)).Shape.(*shape.Triangle).ApexRatio)
	assert.Equal(t, 0.0, e.Update(at(-500, 0)).Shape.(*shape.Triangle).ApexRatio)
}

func TestStarInnerRadiusEditing(t *testing.T) {
	star := shape.NewStar(5)
	star.CX, star.CY, star.Radius, star.InnerRadius = 50, 50, 40, 20
	s := shape.WithRotation(star, 33)

	e, ok := NewStarInnerRadiusEditing(s)
	require.True(t, ok)

	got := e.Update(at(50, 50)).Shape.(*shape.Polygon)
	assert.Zero(t, got.InnerRadius)

	u := geom.StarBisector(star)
	p := geom.RotatePoint(geom.Point{X: 50 + 7*u.X, Y: 50 + 7*u.Y}, geom.Point{X: 50, Y: 50}, 33)
	got = e.Update(at(p.X, p.Y)).Shape.(*shape.Polygon)
	assert.InDelta(t, 7, got.InnerRadius, 1e-9)

	away := geom.RotatePoint(geom.Point{X: 50 - 30*u.X, Y: 50 - 30*u.Y}, geom.Point{X: 50, Y: 50}, 33)
	got = e.Update(at(away.X, away.Y)).Shape.(*shape.Polygon)
	assert.Zero(t, got.InnerRadius)

	beyond := geom.RotatePoint(geom.Point{X: 50 + 200*u.X, Y: 50 + 200*u.Y}, geom.Point{X: 50, Y: 50}, 33)
	got = e.Update(at(beyond.X, beyond.Y)).Shape.(*shape.Polygon)
	assert.Equal(t, 40.0, got.InnerRadius)

	_, ok = NewStarInnerRadiusEditing(shape.New(shape.KindPolygon))
	assert.False(t, ok)
}

func TestTrapezoidOffsetEditing(t *testing.T) {
	tr := shape.WithBox(shape.New(shape.KindTrapezoid), shape.Box{Width: 100, Height: 40})
	e, ok := NewTrapezoidOffsetEditing(tr, HandleTrapLeft)
	require.True(t, ok)
	got := e.Update(at(10, 0)).Shape.(*shape.Trapezoid)
	assert.InDelta(t, 0.1, got.LeftInset, 1e-9)
	got = e.Update(at(90, 0)).Shape.(*shape.Trapezoid)
	assert.InDelta(t, 0.75, got.LeftInset, 1e-9)

	e, _ = NewTrapezoidOffsetEditing(tr, HandleTrapRight)
	got = e.Update(at(60, 0)).Shape.(*shape.Trapezoid)
	assert.InDelta(t, 0.4, got.RightInset, 1e-9)
	assert.Equal(t, 0.25, got.LeftInset)
}

func TestParallelogramAngleEditing(t *testing.T) {
	p := shape.WithBox(shape.New(shape.KindParallelogram), shape.Box{Width: 100, Height: 40})
	e, ok := NewParallelogramAngleEditing(p)
	require.True(t, ok)

	got := e.Update(at(70, 0)).Shape.(*shape.Parallelogram)
	assert.InDelta(t, 45, got.SlantAngle, 1e-9)
	got = e.Update(at(50, 0)).Shape.(*shape.Parallelogram)
	assert.InDelta(t, 90, got.SlantAngle, 1e-9)
	got = e.Update(at(-1e6, 0)).Shape.(*shape.Parallelogram)
	assert.Equal(t, 179.0, got.SlantAngle)
	assert.False(t, math.IsNaN(geom.ParallelogramOffset(got)))
}

func TestParallelogramGripFollowsPointer(t *testing.T) {
	tests := []struct {
		name  string
		slant float64
	}{
		{"leaning right", 60},
		{"leaning left", 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := shape.WithBox(shape.New(shape.KindParallelogram), shape.Box{X: 10, Y: 20, Width: 100, Height: 40}).(*shape.Parallelogram)
			p.SlantAngle = tt.slant
			s := shape.WithRotation(p, 25)
			e, ok := NewParallelogramAngleEditing(s)
			require.True(t, ok)

			// sweep across the upright position in both directions
			for _, x := range []float64{90, 70, 60, 50, 30, 15, 40, 80} {
				target := geom.ToWorld(s, geom.Point{X: x, Y: 20})
				got := e.Update(at(target.X, target.Y)).Shape.(*shape.Parallelogram)
				g, ok := geom.ParallelogramGrip(got)
				require.True(t, ok)
				assert.InDelta(t, x, g.X, 1e-6, "pointer at %v", x)
			}
		})
	}
}

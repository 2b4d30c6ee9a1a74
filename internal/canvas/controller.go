// Package canvas binds pointer input to shape actions. The Controller owns
// the action slot and talks to the host through callbacks: it never stores
// shapes itself.
package canvas

import (
	"fmt"

	"go.uber.org/zap"

	"shapecanvas/internal/action"
	"shapecanvas/internal/geom"
	"shapecanvas/internal/shape"
)

// Tool is the active canvas tool: select, pan, or the kind of shape to draw.
type Tool string

const (
	ToolSelect Tool = "select"
	ToolPan    Tool = "pan"
)

// DrawTool returns the tool that draws shapes of kind k.
func DrawTool(k shape.Kind) Tool { return Tool(k) }

// DrawKind reports the shape kind drawn by t.
func (t Tool) DrawKind() (shape.Kind, bool) {
	if t == ToolSelect || t == ToolPan || t == "" {
		return "", false
	}
	return shape.Kind(t), true
}

// Options are the interaction tunables. Distances are in screen units.
type Options struct {
	HandleRadius  float64
	TouchFactor   float64
	RotateOffset  float64
	StarHandleMin float64
	PointMode     bool
}

func DefaultOptions() Options {
	return Options{
		HandleRadius:  6,
		TouchFactor:   2.5,
		RotateOffset:  24,
		StarHandleMin: 12,
	}
}

// Button is the pointer button of a press.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Pointer is a raw pointer or touch event in screen coordinates.
type Pointer struct {
	Screen geom.Point
	Button Button
	Mods   action.Mods
	Touch  bool
}

// KindConvert tags the edit that replaces a primitive by its polyline before
// vertex editing.
const KindConvert action.Kind = "convert-to-polyline"

// Edit is a finished change reported through OnCommit. Before is nil for
// created shapes; both are nil for view changes.
type Edit struct {
	Kind   action.Kind
	Before shape.Shape
	After  shape.Shape
	View   geom.View
}

type Controller struct {
	Tool    Tool
	View    geom.View
	Options Options

	// Shapes returns the current shapes, bottom to top.
	Shapes func() []shape.Shape
	// Snap adjusts a world point, for example to a grid.
	Snap func(geom.Point) geom.Point
	// Locate maps a pointer event to a world point.
	Locate func(Pointer) geom.Point

	OnUpdate func(shape.Shape)
	OnRemove func(id string)
	OnCommit func(Edit)
	OnView   func(geom.View)

	Logger *zap.Logger

	slot     action.Slot
	selected string
	cursor   string
}

// New returns a controller with the select tool, identity view and default
// options.
func New() *Controller {
	return &Controller{
		Tool:    ToolSelect,
		View:    geom.Identity,
		Options: DefaultOptions(),
		Logger:  zap.NewNop(),
	}
}

func (c *Controller) log() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c *Controller) world(p Pointer) geom.Point {
	var w geom.Point
	if c.Locate != nil {
		w = c.Locate(p)
	} else {
		w = c.View.ToWorld(p.Screen)
	}
	if c.Snap != nil {
		w = c.Snap(w)
	}
	return w
}

func (c *Controller) shapes() []shape.Shape {
	if c.Shapes == nil {
		return nil
	}
	return c.Shapes()
}

func (c *Controller) lookup(id string) (shape.Shape, bool) {
	if id == "" {
		return nil, false
	}
	for _, s := range c.shapes() {
		if s.Identity() == id {
			return s, true
		}
	}
	return nil, false
}

// Selected returns the selected shape, if it still exists.
func (c *Controller) Selected() (shape.Shape, bool) { return c.lookup(c.selected) }

// Select selects the shape with id; an empty id clears the selection.
func (c *Controller) Select(id string) { c.selected = id }

// Active returns the action in progress, or nil.
func (c *Controller) Active() action.Action { return c.slot.Active() }

// Handles returns the grips of the selected shape.
func (c *Controller) Handles() []HandleInfo {
	s, ok := c.Selected()
	if !ok {
		return nil
	}
	return Handles(s, c.Tool, c.slot.Active(), c.View, c.Options)
}

func (c *Controller) hitRadius(p Pointer) float64 {
	r := c.Options.HandleRadius
	if p.Touch && c.Options.TouchFactor > 0 {
		r *= c.Options.TouchFactor
	}
	return r
}

// bodyAt returns the topmost shape hit at world point w.
func (c *Controller) bodyAt(w geom.Point, tol float64) (shape.Shape, bool) {
	all := c.shapes()
	for i := len(all) - 1; i >= 0; i-- {
		if geom.Contains(all[i], w, tol) {
			return all[i], true
		}
	}
	return nil, false
}

// PointerDown opens an action for a press. Hit order: handles of the
// selection, then its segments in point mode, then shape bodies, then the
// empty canvas. It returns action.ErrBusy while another action is open.
func (c *Controller) PointerDown(p Pointer) error {
	if a := c.slot.Active(); a != nil {
		c.log().Warn("pointer down ignored", zap.String("active", string(a.Kind())))
		return fmt.Errorf("pointer down: %w", action.ErrBusy)
	}
	w := c.world(p)
	radius := c.hitRadius(p)

	if p.Button == ButtonMiddle || c.Tool == ToolPan {
		return c.open(action.NewPanning(c.View, p.Screen), "grabbing")
	}
	if kind, ok := c.Tool.DrawKind(); ok {
		d, ok := action.NewDrawing(kind, w)
		if !ok {
			c.log().Warn("unknown draw tool", zap.String("tool", string(c.Tool)))
			return nil
		}
		c.emit(d.Initial())
		c.selected = d.Initial().Identity()
		return c.open(d, "crosshair")
	}

	if sel, ok := c.Selected(); ok {
		if h, ok := hitHandle(Handles(sel, c.Tool, nil, c.View, c.Options), p.Screen, radius); ok {
			return c.grab(sel, h, w)
		}
		if c.Options.PointMode {
			if done, err := c.splitAt(sel, w, radius/c.View.Scale); done {
				return err
			}
		}
	}

	if s, ok := c.bodyAt(w, radius/c.View.Scale); ok {
		c.selected = s.Identity()
		if p.Mods.Alt {
			d := action.NewDuplicating(s, w)
			c.emit(d.Initial())
			c.selected = d.Initial().Identity()
			return c.open(d, "copy")
		}
		return c.open(action.NewDragging(s, w), "move")
	}

	c.selected = ""
	return nil
}

// grab opens the action bound to handle h of s.
func (c *Controller) grab(s shape.Shape, h HandleInfo, w geom.Point) error {
	if h.ID == action.HandleVertex {
		return c.editVertex(s, h.Index, w)
	}
	var a action.Action
	switch h.ID {
	case action.HandleRotate:
		if r, ok := action.NewRotating(s, w); ok {
			a = r
		}
	case action.HandleArcStart, action.HandleArcEnd, action.HandleArcMove:
		if e, ok := action.NewArcAngleEditing(s, h.ID, w); ok {
			a = e
		}
	case action.HandleApex:
		if e, ok := action.NewTriangleVertexEditing(s); ok {
			a = e
		}
	case action.HandleInnerRadius:
		if e, ok := action.NewStarInnerRadiusEditing(s); ok {
			a = e
		}
	case action.HandleTrapLeft, action.HandleTrapRight:
		if e, ok := action.NewTrapezoidOffsetEditing(s, h.ID); ok {
			a = e
		}
	case action.HandleSlant:
		if e, ok := action.NewParallelogramAngleEditing(s); ok {
			a = e
		}
	default:
		// Box handles sit on the visual box of a rotated shape.
		if r, ok := action.NewResizing(s, h.ID.Local(shape.Angle(s)), w); ok {
			a = r
		}
	}
	if a == nil {
		c.log().Warn("handle skipped", zap.String("handle", string(h.ID)), zap.String("kind", string(s.Kind())))
		return nil
	}
	return c.open(a, h.Cursor)
}

// editable converts s to a point collection, committing the conversion as
// its own edit.
func (c *Controller) editable(s shape.Shape) (shape.Shape, bool) {
	e, converted, ok := action.Editable(s)
	if !ok {
		return nil, false
	}
	if converted {
		c.emit(e)
		c.commit(Edit{Kind: KindConvert, Before: s, After: e})
		c.log().Debug("converted to polyline", zap.String("id", s.Identity()), zap.String("kind", string(s.Kind())))
	}
	return e, true
}

func (c *Controller) editVertex(s shape.Shape, index int, w geom.Point) error {
	e, ok := c.editable(s)
	if !ok {
		return nil
	}
	a, ok := action.NewPointEditing(e, index, w)
	if !ok {
		c.log().Warn("vertex skipped", zap.Int("index", index))
		return nil
	}
	return c.open(a, action.HandleVertex.Cursor())
}

// splitAt inserts a vertex when w lies on a segment of s. done reports
// whether the press was consumed.
func (c *Controller) splitAt(s shape.Shape, w geom.Point, tol float64) (done bool, err error) {
	pts := geom.WorldPoints(s)
	hit, ok := geom.ClosestSegment(pts, geom.Closed(s), w)
	if !ok || hit.Dist > tol {
		return false, nil
	}
	e, ok := c.editable(s)
	if !ok {
		return false, nil
	}
	split, i, ok := action.SplitSegment(e, w)
	if !ok {
		return false, nil
	}
	// The split itself is part of the vertex drag: cancelling restores the
	// shape without the new vertex.
	a, ok := action.NewPointEditing(split, i, w)
	if !ok {
		return false, nil
	}
	pe := &splitEditing{PointEditing: a, before: e}
	c.emit(split)
	return true, c.open(pe, action.HandleVertex.Cursor())
}

// splitEditing is a vertex drag whose initial shape predates the inserted
// vertex.
type splitEditing struct {
	*action.PointEditing
	before shape.Shape
}

func (s *splitEditing) Initial() shape.Shape { return s.before }

func (c *Controller) open(a action.Action, cursor string) error {
	if err := c.slot.Open(a); err != nil {
		return err
	}
	c.cursor = cursor
	c.log().Debug("action opened", zap.String("action", string(a.Kind())))
	return nil
}

func (c *Controller) emit(s shape.Shape) {
	if s != nil && c.OnUpdate != nil {
		c.OnUpdate(s)
	}
}

func (c *Controller) commit(e Edit) {
	if c.OnCommit != nil {
		c.OnCommit(e)
	}
}

func (c *Controller) setView(v geom.View) {
	c.View = v
	if c.OnView != nil {
		c.OnView(v)
	}
}

// PointerMove feeds the pointer to the active action and emits the result
// once. It reports whether an action consumed the event.
func (c *Controller) PointerMove(p Pointer) bool {
	a := c.slot.Active()
	if a == nil {
		return false
	}
	res, _ := c.slot.Update(action.Input{World: c.world(p), Screen: p.Screen, Mods: p.Mods})
	if a.Kind() == action.KindPanning {
		c.setView(res.View)
		return true
	}
	c.emit(res.Shape)
	return true
}

// PointerUp closes the active action and reports its edit.
func (c *Controller) PointerUp(p Pointer) {
	a, ok := c.slot.Commit()
	if !ok {
		return
	}
	c.cursor = ""
	res := a.Current()
	log := c.log().With(zap.String("action", string(a.Kind())))

	switch a.Kind() {
	case action.KindPanning:
		c.commit(Edit{Kind: a.Kind(), View: res.View})
	case action.KindDrawing:
		if action.Degenerate(res.Shape) {
			log.Debug("degenerate shape discarded")
			c.remove(res.Shape)
			c.selected = ""
			return
		}
		c.commit(Edit{Kind: a.Kind(), After: res.Shape})
	case action.KindDuplicating:
		c.commit(Edit{Kind: a.Kind(), After: res.Shape})
	default:
		if res.Shape == a.Initial() {
			log.Debug("action closed without change")
			return
		}
		c.commit(Edit{Kind: a.Kind(), Before: a.Initial(), After: res.Shape})
	}
	log.Debug("action committed")
}

// Cancel abandons the active action, restoring its initial state in one
// step. New shapes from drawing or duplicating are removed.
func (c *Controller) Cancel() {
	a, ok := c.slot.Cancel()
	if !ok {
		return
	}
	c.cursor = ""
	switch a.Kind() {
	case action.KindPanning:
		if pn, ok := a.(*action.Panning); ok {
			c.setView(pn.InitialView())
		}
	case action.KindDrawing, action.KindDuplicating:
		c.remove(a.Initial())
		if d, ok := a.(*action.Duplicating); ok {
			c.selected = d.Source().Identity()
		} else {
			c.selected = ""
		}
	default:
		c.emit(a.Initial())
	}
	c.log().Debug("action cancelled", zap.String("action", string(a.Kind())))
}

func (c *Controller) remove(s shape.Shape) {
	if s != nil && c.OnRemove != nil {
		c.OnRemove(s.Identity())
	}
}

// Cursor returns the pointer hint for hovering at p.
func (c *Controller) Cursor(p Pointer) string {
	if c.slot.Active() != nil {
		return c.cursor
	}
	switch c.Tool {
	case ToolPan:
		return "grab"
	case ToolSelect:
	default:
		return "crosshair"
	}
	if h, ok := hitHandle(c.Handles(), p.Screen, c.hitRadius(p)); ok {
		return h.Cursor
	}
	if _, ok := c.bodyAt(c.world(p), c.hitRadius(p)/c.View.Scale); ok {
		return "move"
	}
	return "default"
}

// Package action holds the in-progress pointer operations of the canvas.
// Every action snapshots the shape it started from and computes each update
// from that snapshot, never from the previous frame.
package action

import (
	"errors"
	"math"

	"shapecanvas/internal/geom"
	"shapecanvas/internal/shape"
)

// Kind tags an action variant.
type Kind string

const (
	KindDrawing            Kind = "drawing"
	KindDragging           Kind = "dragging"
	KindDuplicating        Kind = "duplicating"
	KindResizing           Kind = "resizing"
	KindRotating           Kind = "rotating"
	KindPanning            Kind = "panning"
	KindPointEditing       Kind = "point-editing"
	KindArcAngleEditing    Kind = "arc-angle-editing"
	KindTriangleVertex     Kind = "triangle-vertex-editing"
	KindStarInnerRadius    Kind = "star-inner-radius-editing"
	KindTrapezoidOffset    Kind = "trapezoid-offset-editing"
	KindParallelogramAngle Kind = "parallelogram-angle-editing"
)

// Mods are the keyboard modifiers held during a pointer event.
type Mods struct {
	Shift bool
	Alt   bool
	Ctrl  bool
}

// Input is one pointer sample. World is already snapped.
type Input struct {
	World  geom.Point
	Screen geom.Point
	Mods   Mods
}

// Result is the outcome of an update. Shape is nil for view-only actions.
type Result struct {
	Shape shape.Shape
	View  geom.View
}

// Action is an in-progress operation.
type Action interface {
	Kind() Kind
	// Initial is the shape as it was when the action opened. Cancelling
	// restores it. Nil for panning.
	Initial() shape.Shape
	// Current is the most recent result of Update.
	Current() Result
	Update(in Input) Result
}

// RotationSnap is the step used for rotation and arc angles while shift is
// held.
const RotationSnap = 15.0

// snapshot carries the initial and latest shape of an action.
type snapshot struct {
	initial shape.Shape
	current Result
}

func newSnapshot(s shape.Shape) snapshot {
	return snapshot{initial: s, current: Result{Shape: s}}
}

func (s *snapshot) Initial() shape.Shape { return s.initial }
func (s *snapshot) Current() Result      { return s.current }

func (s *snapshot) emit(sh shape.Shape) Result {
	s.current = Result{Shape: sh}
	return s.current
}

var ErrBusy = errors.New("action: another action is in progress")

// Slot holds at most one active action.
type Slot struct {
	active Action
}

// Open makes a the active action. It fails with ErrBusy while another
// action is open.
func (s *Slot) Open(a Action) error {
	if s.active != nil {
		return ErrBusy
	}
	s.active = a
	return nil
}

func (s *Slot) Active() Action { return s.active }

// Update feeds in to the active action.
func (s *Slot) Update(in Input) (Result, bool) {
	if s.active == nil {
		return Result{}, false
	}
	return s.active.Update(in), true
}

// Commit closes the slot and returns the finished action.
func (s *Slot) Commit() (Action, bool) {
	a := s.active
	s.active = nil
	return a, a != nil
}

// Cancel closes the slot and returns the abandoned action. Restoring its
// initial shape is up to the caller.
func (s *Slot) Cancel() (Action, bool) {
	return s.Commit()
}

func snapAngle(deg float64, on bool) float64 {
	if !on {
		return deg
	}
	return math.Round(deg/RotationSnap) * RotationSnap
}

var (
	_ Action = (*Drawing)(nil)
	_ Action = (*Dragging)(nil)
	_ Action = (*Duplicating)(nil)
	_ Action = (*Resizing)(nil)
	_ Action = (*Rotating)(nil)
	_ Action = (*Panning)(nil)
	_ Action = (*PointEditing)(nil)
	_ Action = (*ArcAngleEditing)(nil)
	_ Action = (*TriangleVertexEditing)(nil)
	_ Action = (*StarInnerRadiusEditing)(nil)
	_ Action = (*TrapezoidOffsetEditing)(nil)
	_ Action = (*ParallelogramAngleEditing)(nil)
)

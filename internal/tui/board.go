package tui

import (
	"math"

	"shapecanvas/internal/action"
	"shapecanvas/internal/canvas"
	"shapecanvas/internal/geom"
	"shapecanvas/internal/shape"
)

// Edits the host records besides the controller's own.
const (
	kindDelete   action.Kind = "delete"
	kindProperty action.Kind = "set-property"
	kindPaste    action.Kind = "paste-wkt"
	kindOpen     action.Kind = "open"
)

// board owns the shapes the controller edits. The Model is copied by value
// on every update, so the controller callbacks close over a board pointer.
type board struct {
	shapes  []shape.Shape
	history []entry

	grid float64
	snap bool
}

// entry is one undoable edit. at is the stacking index of a deleted shape.
type entry struct {
	canvas.Edit
	at int
}

func (b *board) all() []shape.Shape { return b.shapes }

func (b *board) index(id string) int {
	for i, s := range b.shapes {
		if s.Identity() == id {
			return i
		}
	}
	return -1
}

// upsert replaces the shape with the same id or appends s on top.
func (b *board) upsert(s shape.Shape) {
	if i := b.index(s.Identity()); i >= 0 {
		b.shapes[i] = s
		return
	}
	b.shapes = append(b.shapes, s)
}

func (b *board) remove(id string) {
	if i := b.index(id); i >= 0 {
		b.shapes = append(b.shapes[:i], b.shapes[i+1:]...)
	}
}

// insert puts s at stacking index i, clamped to the list.
func (b *board) insert(i int, s shape.Shape) {
	i = max(0, min(i, len(b.shapes)))
	b.shapes = append(b.shapes, nil)
	copy(b.shapes[i+1:], b.shapes[i:])
	b.shapes[i] = s
}

// record keeps shape edits for undo. View changes are not undoable.
func (b *board) record(e canvas.Edit) {
	if e.Before == nil && e.After == nil {
		return
	}
	b.history = append(b.history, entry{Edit: e, at: -1})
}

// delete removes s and records where it sat so undo can put it back.
func (b *board) delete(s shape.Shape) {
	i := b.index(s.Identity())
	if i < 0 {
		return
	}
	b.remove(s.Identity())
	b.history = append(b.history, entry{Edit: canvas.Edit{Kind: kindDelete, Before: s}, at: i})
}

// undo reverts the last edit and reports its kind.
func (b *board) undo() (action.Kind, bool) {
	if len(b.history) == 0 {
		return "", false
	}
	e := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	switch {
	case e.Before == nil:
		b.remove(e.After.Identity())
	case e.After == nil && e.at >= 0 && b.index(e.Before.Identity()) < 0:
		b.insert(e.at, e.Before)
	default:
		b.upsert(e.Before)
	}
	return e.Kind, true
}

// replace swaps the whole drawing, as when a file is opened.
func (b *board) replace(shapes []shape.Shape) {
	b.shapes = shapes
	b.history = nil
}

func (b *board) snapPoint(p geom.Point) geom.Point {
	if !b.snap || b.grid <= 0 {
		return p
	}
	return geom.Point{X: math.Round(p.X/b.grid) * b.grid, Y: math.Round(p.Y/b.grid) * b.grid}
}

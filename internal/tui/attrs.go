package tui

import (
	"errors"
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"shapecanvas/internal/action"
	"shapecanvas/internal/canvas"
	"shapecanvas/internal/props"
	"shapecanvas/internal/shape"
)

// refreshProps rebuilds the property table from the selected shape.
func (m *Model) refreshProps() {
	s, ok := m.ctl.Selected()
	if !ok {
		m.tbl.SetRows(nil)
		return
	}
	fields := props.Fields(s)
	rows := make([]table.Row, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, table.Row{f.Name, props.Format(f.Value), props.Format(f.Min), props.Format(f.Max)})
	}
	if c := m.tbl.Cursor(); c >= len(rows) {
		m.tbl.SetCursor(max(0, len(rows)-1))
	}
	m.tbl.SetRows(rows)
}

// startEdit opens numeric entry for the field under the table cursor.
func (m *Model) startEdit() {
	row := m.tbl.SelectedRow()
	if len(row) < 2 {
		return
	}
	m.editing = row[0]
	m.ti.SetValue(row[1])
	m.ti.CursorEnd()
	m.ti.Focus()
	m.status = "edit " + m.editing
}

// applyEdit commits the entered value. Out-of-range values are clamped;
// text that is not a number keeps the current value.
func (m *Model) applyEdit() {
	name := m.editing
	m.editing = ""
	m.ti.Blur()
	s, ok := m.ctl.Selected()
	if !ok {
		return
	}
	got, err := props.SetText(s, name, m.ti.Value())
	if err != nil {
		if errors.Is(err, props.ErrNotNumber) {
			m.status = fmt.Sprintf("%s: not a number, kept %s", name, m.currentValue(s, name))
		} else {
			m.status = err.Error()
		}
		return
	}
	m.commitShape(kindProperty, s, got)
	m.status = fmt.Sprintf("%s = %s", name, m.currentValue(got, name))
}

func (m *Model) currentValue(s shape.Shape, name string) string {
	for _, f := range props.Fields(s) {
		if f.Name == name {
			return props.Format(f.Value)
		}
	}
	return "?"
}

// commitShape stores an edit made outside the controller.
func (m *Model) commitShape(kind action.Kind, before, after shape.Shape) {
	m.board.upsert(after)
	m.board.record(canvas.Edit{Kind: kind, Before: before, After: after})
	m.refreshShapes()
}

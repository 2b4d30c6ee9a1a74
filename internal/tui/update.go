package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"shapecanvas/internal/action"
	"shapecanvas/internal/canvas"
	"shapecanvas/internal/geom"
	"shapecanvas/internal/shape"
)

// panStep is the arrow-key pan distance in micro pixels (two cells wide,
// one cell tall).
var panStep = geom.Point{X: 4, Y: 4}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		lay := m.layout()
		m.l.SetSize(sidebarWidth-2, lay.contentH-2)
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.sidebar != sidebarHidden && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.editing != "" {
			switch msg.String() {
			case "esc":
				m.editing = ""
				m.ti.Blur()
				m.status = "edit cancelled"
				return m, nil
			case "enter":
				m.applyEdit()
				return m, nil
			}
			var cmd tea.Cmd
			m.ti, cmd = m.ti.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			case "enter":
				m.pasteWKT()
				return m, nil
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		if cmd, done := m.handleKey(msg); done {
			return m, cmd
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	// Pass messages to list when visible
	if m.sidebar != sidebarHidden {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey runs a global command. done reports that the key must not reach
// the sidebar list.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit, true
	case "esc":
		switch {
		case m.ctl.Active() != nil:
			m.ctl.Cancel()
			m.status = "cancelled"
		case m.inspectPopup != "":
			m.inspectPopup = ""
		default:
			m.ctl.Select("")
		}
		m.refreshShapes()
	case "v":
		m.setTool(canvas.ToolSelect)
	case "g":
		m.setTool(canvas.ToolPan)
	case "r":
		m.setTool(canvas.DrawTool(shape.KindRectangle))
	case "e":
		m.setTool(canvas.DrawTool(shape.KindEllipse))
	case "l":
		m.setTool(canvas.DrawTool(shape.KindLine))
	case "t":
		m.setTool(nextDrawTool(m.ctl.Tool, 1))
	case "T":
		m.setTool(nextDrawTool(m.ctl.Tool, -1))
	case ".":
		m.ctl.Options.PointMode = !m.ctl.Options.PointMode
		m.status = fmt.Sprintf("point mode: %v", m.ctl.Options.PointMode)
	case "#":
		m.board.snap = !m.board.snap
		m.status = fmt.Sprintf("grid snap: %v (%g)", m.board.snap, m.board.grid)
	case "k":
		m.toggleAspectLock()
	case "*":
		m.toggleStar()
	case "+", "=":
		m.zoom(m.mapCenter(), m.cfg.Zoom.Step)
	case "-", "_":
		m.zoom(m.mapCenter(), 1/m.cfg.Zoom.Step)
	case "left", "right", "up", "down":
		if m.showProps && (msg.String() == "up" || msg.String() == "down") {
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return cmd, true
		}
		if m.sidebar != sidebarHidden && (msg.String() == "up" || msg.String() == "down") {
			return nil, false
		}
		m.pan(msg.String())
	case "tab":
		m.sidebar = (m.sidebar + 1) % 3
		switch m.sidebar {
		case sidebarShapes:
			m.refreshShapes()
		case sidebarFiles:
			m.refreshDir()
		}
		return nil, true
	case "enter":
		switch {
		case m.showProps:
			m.startEdit()
			return nil, true
		case m.sidebar == sidebarShapes:
			if it, ok := m.l.SelectedItem().(shapeItem); ok {
				m.ctl.Select(it.id)
				m.status = "selected " + it.title
				m.refreshShapes()
			}
		case m.sidebar == sidebarFiles:
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
		}
	case "p":
		m.pasteMode = !m.pasteMode
		if m.pasteMode {
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
		} else {
			m.status = "view mode"
			m.ta.Blur()
		}
		return nil, true
	case "a":
		m.showProps = !m.showProps
		if m.showProps {
			m.refreshProps()
		}
	case "i":
		m.inspect()
	case "x", "delete":
		m.deleteSelected()
	case "u", "ctrl+z":
		if m.ctl.Active() != nil {
			m.status = "undo: finish the current action first"
			break
		}
		if kind, ok := m.board.undo(); ok {
			m.status = "undo " + string(kind)
		} else {
			m.status = "nothing to undo"
		}
		m.refreshShapes()
	case "ctrl+s":
		m.save()
	case "h":
		m.helpVisible = !m.helpVisible
	}
	return nil, false
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	lay := m.layout()
	cx, cy := msg.X-lay.mapX, msg.Y-lay.mapY
	inside := cx >= 0 && cx < lay.mapW && cy >= 0 && cy < lay.mapH
	m.hovering = inside
	m.hoverCellX, m.hoverCellY = cx, cy

	p := canvas.Pointer{
		Screen: cellPoint(cx, cy),
		Mods:   action.Mods{Shift: msg.Shift, Alt: msg.Alt, Ctrl: msg.Ctrl},
	}
	busy := m.pasteMode || m.editing != ""
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if inside {
				m.zoom(p.Screen, m.cfg.Zoom.Step)
			}
		case tea.MouseButtonWheelDown:
			if inside {
				m.zoom(p.Screen, 1/m.cfg.Zoom.Step)
			}
		case tea.MouseButtonLeft, tea.MouseButtonMiddle:
			if !inside || busy {
				break
			}
			if msg.Button == tea.MouseButtonMiddle {
				p.Button = canvas.ButtonMiddle
			}
			if err := m.ctl.PointerDown(p); err != nil {
				m.status = err.Error()
				break
			}
			m.inspectPopup = ""
			m.refreshShapes()
		}
	case tea.MouseActionMotion:
		if m.ctl.PointerMove(p) && m.showProps {
			m.refreshProps()
		}
	case tea.MouseActionRelease:
		a := m.ctl.Active()
		if a == nil {
			break
		}
		m.ctl.PointerUp(p)
		m.status = string(a.Kind()) + " done"
		if a.Kind() == action.KindDrawing {
			if _, ok := m.ctl.Selected(); ok {
				m.ctl.Tool = canvas.ToolSelect
			} else {
				m.status = "drawing discarded"
			}
		}
		m.refreshShapes()
	}
	m.cursor = m.ctl.Cursor(p)
}

func (m *Model) setTool(t canvas.Tool) {
	if m.ctl.Active() != nil {
		m.status = "tool: finish the current action first"
		return
	}
	m.ctl.Tool = t
	m.status = "tool: " + string(t)
}

// nextDrawTool steps through the drawable kinds from the current tool.
func nextDrawTool(cur canvas.Tool, step int) canvas.Tool {
	kinds := shape.Kinds
	i := -1
	if k, ok := cur.DrawKind(); ok {
		for j, kk := range kinds {
			if kk == k {
				i = j
			}
		}
	}
	if i < 0 && step < 0 {
		i = 0
	}
	n := len(kinds)
	return canvas.DrawTool(kinds[((i+step)%n+n)%n])
}

func (m *Model) zoom(at geom.Point, factor float64) {
	m.ctl.View = m.ctl.View.ZoomAt(at, factor, m.cfg.Zoom.Min, m.cfg.Zoom.Max)
	m.status = fmt.Sprintf("zoom: %.2fx", m.ctl.View.Scale)
}

func (m *Model) pan(dir string) {
	var d geom.Point
	switch dir {
	case "left":
		d.X = -panStep.X
	case "right":
		d.X = panStep.X
	case "up":
		d.Y = -panStep.Y
	case "down":
		d.Y = panStep.Y
	}
	m.ctl.View = m.ctl.View.Pan(d)
}

func (m Model) mapCenter() geom.Point {
	lay := m.layout()
	return cellPoint(lay.mapW/2, lay.mapH/2)
}

func (m *Model) pasteWKT() {
	w := strings.TrimSpace(m.ta.Value())
	if w == "" {
		m.status = "paste: empty"
		return
	}
	p, err := geom.PolylineFromWKT(w)
	if err != nil {
		m.status = "wkt error: " + err.Error()
		return
	}
	m.commitShape(kindPaste, nil, p)
	m.ctl.Select(p.Identity())
	m.status = fmt.Sprintf("pasted polyline with %d points", len(p.Points))
	m.pasteMode = false
	m.ta.Blur()
}

func (m *Model) selectedIdle() (shape.Shape, bool) {
	if m.ctl.Active() != nil {
		m.status = "finish the current action first"
		return nil, false
	}
	s, ok := m.ctl.Selected()
	if !ok {
		m.status = "nothing selected"
	}
	return s, ok
}

func (m *Model) deleteSelected() {
	s, ok := m.selectedIdle()
	if !ok {
		return
	}
	m.board.delete(s)
	m.ctl.Select("")
	m.status = "deleted " + shapeTitle(s)
	m.log.Debug("shape deleted", zap.String("id", s.Identity()))
	m.refreshShapes()
}

func (m *Model) toggleAspectLock() {
	s, ok := m.selectedIdle()
	if !ok {
		return
	}
	a := shape.AttrsOf(s)
	a.AspectLocked = !a.AspectLocked
	m.commitShape(kindProperty, s, shape.WithAttrs(s, a))
	m.status = fmt.Sprintf("aspect lock: %v", a.AspectLocked)
}

func (m *Model) toggleStar() {
	s, ok := m.selectedIdle()
	if !ok {
		return
	}
	p, isPoly := s.(*shape.Polygon)
	if !isPoly {
		m.status = "star: select a polygon"
		return
	}
	c := p.Clone().(*shape.Polygon)
	c.Star = !c.Star
	if c.Star && c.InnerRadius <= 0 {
		c.InnerRadius = c.Radius * geom.DefaultStarRatio
	}
	m.commitShape(kindProperty, s, c)
	m.status = fmt.Sprintf("star: %v", c.Star)
}

func (m *Model) inspect() {
	s, ok := m.ctl.Selected()
	if !ok {
		m.inspectPopup = "no shape selected"
		m.status = m.inspectPopup
		return
	}
	a := shape.AttrsOf(s)
	meta := []string{
		fmt.Sprintf("kind: %s", s.Kind()),
		fmt.Sprintf("id: %s", a.ID),
		fmt.Sprintf("state: %s", a.State),
		fmt.Sprintf("rotation: %.1f°", shape.Angle(s)),
		fmt.Sprintf("vertices: %d", len(geom.EditablePoints(s))),
	}
	if a.Name != "" {
		meta = append(meta, "name: "+a.Name)
	}
	if w, h, ok := geom.GeometricSize(s); ok {
		meta = append(meta, fmt.Sprintf("size: %.2f × %.2f", w, h))
	}
	if b, ok := geom.VisualBoundingBox(s, nil); ok {
		meta = append(meta, fmt.Sprintf("bbox: [%.2f, %.2f, %.2f, %.2f]", b.MinX, b.MinY, b.MaxX, b.MaxY))
	}
	if wkt, ok := geom.FormatWKT(s); ok {
		if len(wkt) > 240 {
			wkt = wkt[:240] + "…"
		}
		meta = append(meta, "wkt: "+wkt)
	}
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect popup"
}

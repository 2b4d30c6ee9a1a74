package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	"go.uber.org/zap"

	"shapecanvas/internal/canvas"
	"shapecanvas/internal/document"
	"shapecanvas/internal/shape"
)

// file explorer helpers
type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func isWKT(p string) bool { return strings.EqualFold(filepath.Ext(p), ".wkt") }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !document.Supported(name) {
			continue
		}
		items = append(items, fileItem{title: name, desc: strings.ToLower(filepath.Ext(name)), path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.l.Title = "Files"
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no drawings in current directory"
	}
}

// loadPath opens a drawing. A drawing replaces the board; a WKT file adds
// its outline as a polyline.
func (m *Model) loadPath(p string) {
	shapes, err := document.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		m.log.Warn("load failed", zap.String("path", p), zap.Error(err))
		return
	}
	if isWKT(p) {
		for _, s := range shapes {
			m.board.upsert(s)
			m.board.record(canvas.Edit{Kind: kindOpen, After: s})
		}
	} else {
		m.ctl.Cancel()
		m.board.replace(shapes)
		m.ctl.Select("")
		m.selPath = p
	}
	m.status = fmt.Sprintf("loaded: %s  shapes=%d", filepath.Base(p), len(m.board.shapes))
	m.refreshShapes()
}

func (m *Model) save() {
	p := m.savePath()
	if err := document.Save(p, m.board.shapes); err != nil {
		m.status = "save error: " + err.Error()
		m.log.Warn("save failed", zap.String("path", p), zap.Error(err))
		return
	}
	m.selPath = p
	m.status = fmt.Sprintf("saved: %s  shapes=%d", filepath.Base(p), len(m.board.shapes))
}

type shapeItem struct {
	title, desc string
	id          string
}

func (s shapeItem) Title() string       { return s.title }
func (s shapeItem) Description() string { return s.desc }
func (s shapeItem) FilterValue() string { return s.title }

func shapeTitle(s shape.Shape) string {
	a := shape.AttrsOf(s)
	if a.Name != "" {
		return a.Name
	}
	id := a.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s %s", s.Kind(), id)
}

// refreshShapes lists the drawing top to bottom when the shapes sidebar is
// open, and keeps the property table in step with the selection.
func (m *Model) refreshShapes() {
	if m.sidebar == sidebarShapes {
		items := make([]list.Item, 0, len(m.board.shapes))
		for i := len(m.board.shapes) - 1; i >= 0; i-- {
			s := m.board.shapes[i]
			items = append(items, shapeItem{title: shapeTitle(s), desc: string(s.Kind()), id: s.Identity()})
		}
		m.l.Title = "Shapes"
		m.l.SetItems(items)
	}
	if m.showProps {
		m.refreshProps()
	}
}
